// Package validate computes structural statistics and issue reports over a
// finished grid. Grounded on the teacher's pkg/validation (ValidationReport,
// hard/soft constraint results, Summary rendering), replacing its
// hub-and-spoke constraint-satisfaction model with the fixed statistic/issue
// set of spec §4.10 built directly on pkg/connectivity's flood-fill room
// segmentation.
package validate

import (
	"fmt"
	"strings"

	"github.com/dshills/dunegen/pkg/connectivity"
	"github.com/dshills/dunegen/pkg/tile"
)

// Severity classifies a validation Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single finding from ValidateDungeon.
type Issue struct {
	Code     string
	Severity Severity
	Message  string
}

// Options configures ValidateDungeon's thresholds.
type Options struct {
	MinWalkablePercent   float64 // default 10
	MaxWalkablePercent   float64 // default 70
	MinRooms             int     // default 1
	MinRoomSize          int     // default 4, shared with connectivity.Analyze's room-segmentation threshold
	MaxDeadEnds          int     // default: no warning threshold (0 disables)
	IsolatedRoomsAsError bool    // false unless set: isolated rooms are then reported as warnings
}

func defaultOptions(opts Options) Options {
	if opts.MinWalkablePercent <= 0 {
		opts.MinWalkablePercent = 10
	}
	if opts.MaxWalkablePercent <= 0 {
		opts.MaxWalkablePercent = 70
	}
	if opts.MinRooms <= 0 {
		opts.MinRooms = 1
	}
	if opts.MinRoomSize <= 0 {
		opts.MinRoomSize = connectivity.DefaultMinRoomSize
	}
	return opts
}

// Stats is the set of structural statistics spec §4.10 names.
type Stats struct {
	WalkableTiles   int
	WallTiles       int
	RoomCount       int
	IsolatedRooms   int
	DeadEnds        int
	WalkablePercent float64
	AvgRoomSize     float64
	MaxRoomSize     int
	MinRoomSize     int
}

// Report is the result of ValidateDungeon: the computed Stats plus a list
// of Issues. Valid reflects the absence of any error-severity issue only.
type Report struct {
	Stats  Stats
	Issues []Issue
	Valid  bool
}

// GetDungeonStats computes Stats alone, without running issue checks.
func GetDungeonStats(g *tile.Grid, opts Options) Stats {
	opts = defaultOptions(opts)

	walkable, walls := 0, 0
	g.Each(func(x, y int, t tile.Tile) {
		if tile.IsWalkable(t) {
			walkable++
		} else if t == tile.Wall {
			walls++
		}
	})

	report := connectivity.Analyze(g, opts.MinRoomSize)
	roomSizes := make([]int, len(report.Rooms))
	total := 0
	maxSize, minSize := 0, -1
	for i, r := range report.Rooms {
		n := len(r.Tiles)
		roomSizes[i] = n
		total += n
		if n > maxSize {
			maxSize = n
		}
		if minSize < 0 || n < minSize {
			minSize = n
		}
	}
	if minSize < 0 {
		minSize = 0
	}
	avg := 0.0
	if len(roomSizes) > 0 {
		avg = float64(total) / float64(len(roomSizes))
	}

	isolated := 0
	for _, id := range roomIDs(report) {
		if len(report.Adjacency[id]) == 0 {
			isolated++
		}
	}

	pct := 0.0
	if g.Width()*g.Height() > 0 {
		pct = 100 * float64(walkable) / float64(g.Width()*g.Height())
	}

	return Stats{
		WalkableTiles:   walkable,
		WallTiles:       walls,
		RoomCount:       len(report.Rooms),
		IsolatedRooms:   isolated,
		DeadEnds:        countDeadEnds(g),
		WalkablePercent: pct,
		AvgRoomSize:     avg,
		MaxRoomSize:     maxSize,
		MinRoomSize:     minSize,
	}
}

func roomIDs(report connectivity.Report) []int {
	ids := make([]int, len(report.Rooms))
	for i, r := range report.Rooms {
		ids[i] = r.ID
	}
	return ids
}

func countDeadEnds(g *tile.Grid) int {
	n := 0
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			t := g.At(x, y)
			if t != tile.Floor && t != tile.Corridor {
				continue
			}
			if g.CardinalNeighborCount(x, y, func(t tile.Tile) bool { return t == tile.Wall }) == 3 {
				n++
			}
		}
	}
	return n
}

// ValidateDungeon computes Stats and reports issues per spec §4.10's fixed
// rule set.
func ValidateDungeon(g *tile.Grid, opts Options) Report {
	opts = defaultOptions(opts)
	stats := GetDungeonStats(g, opts)

	var issues []Issue
	if stats.WalkableTiles == 0 {
		issues = append(issues, Issue{Code: "empty_dungeon", Severity: SeverityError, Message: "dungeon has no walkable tiles"})
	}
	if stats.WalkablePercent < opts.MinWalkablePercent {
		issues = append(issues, Issue{Code: "too_sparse", Severity: SeverityWarning,
			Message: fmt.Sprintf("walkable_percent %.1f below minimum %.1f", stats.WalkablePercent, opts.MinWalkablePercent)})
	}
	if stats.WalkablePercent > opts.MaxWalkablePercent {
		issues = append(issues, Issue{Code: "too_dense", Severity: SeverityWarning,
			Message: fmt.Sprintf("walkable_percent %.1f above maximum %.1f", stats.WalkablePercent, opts.MaxWalkablePercent)})
	}
	if stats.RoomCount < opts.MinRooms {
		issues = append(issues, Issue{Code: "insufficient_rooms", Severity: SeverityError,
			Message: fmt.Sprintf("room_count %d below minimum %d", stats.RoomCount, opts.MinRooms)})
	}
	if !connectivity.IsFullyConnected(g) {
		issues = append(issues, Issue{Code: "disconnected_regions", Severity: SeverityError, Message: "dungeon has more than one walkable component"})
	}
	if stats.IsolatedRooms > 0 {
		sev := SeverityWarning
		if opts.IsolatedRoomsAsError {
			sev = SeverityError
		}
		issues = append(issues, Issue{Code: "isolated_rooms", Severity: sev,
			Message: fmt.Sprintf("%d room(s) have no adjacency-graph edges", stats.IsolatedRooms)})
	}
	if stats.DeadEnds > 0 {
		sev := SeverityInfo
		if opts.MaxDeadEnds > 0 && stats.DeadEnds > opts.MaxDeadEnds {
			sev = SeverityWarning
		}
		issues = append(issues, Issue{Code: "dead_ends", Severity: sev,
			Message: fmt.Sprintf("%d dead end(s)", stats.DeadEnds)})
	}
	if stats.MinRoomSize > 0 && stats.MinRoomSize < opts.MinRoomSize {
		issues = append(issues, Issue{Code: "tiny_rooms", Severity: SeverityInfo,
			Message: fmt.Sprintf("smallest room has %d tiles, below %d", stats.MinRoomSize, opts.MinRoomSize)})
	}

	valid := true
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			valid = false
			break
		}
	}

	return Report{Stats: stats, Issues: issues, Valid: valid}
}

// Summary renders a human-readable report, in the teacher's section-header
// style.
func Summary(r Report) string {
	var b strings.Builder
	b.WriteString("=== Validation Report ===\n\n")
	if r.Valid {
		b.WriteString("Status: PASSED\n")
	} else {
		b.WriteString("Status: FAILED\n")
	}

	b.WriteString("\n=== Stats ===\n")
	fmt.Fprintf(&b, "Walkable Tiles: %d\n", r.Stats.WalkableTiles)
	fmt.Fprintf(&b, "Wall Tiles: %d\n", r.Stats.WallTiles)
	fmt.Fprintf(&b, "Room Count: %d\n", r.Stats.RoomCount)
	fmt.Fprintf(&b, "Isolated Rooms: %d\n", r.Stats.IsolatedRooms)
	fmt.Fprintf(&b, "Dead Ends: %d\n", r.Stats.DeadEnds)
	fmt.Fprintf(&b, "Walkable Percent: %.1f\n", r.Stats.WalkablePercent)
	fmt.Fprintf(&b, "Room Size (avg/min/max): %.1f / %d / %d\n", r.Stats.AvgRoomSize, r.Stats.MinRoomSize, r.Stats.MaxRoomSize)

	if len(r.Issues) == 0 {
		return b.String()
	}
	b.WriteString("\n=== Issues ===\n")
	for i, iss := range r.Issues {
		fmt.Fprintf(&b, "  %d. [%s] %s: %s\n", i+1, strings.ToUpper(string(iss.Severity)), iss.Code, iss.Message)
	}
	return b.String()
}

// HasErrors reports whether r contains any error-severity issue.
func HasErrors(r Report) bool {
	for _, iss := range r.Issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}
