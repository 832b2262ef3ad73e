package validate

import (
	"testing"

	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullFloorGrid(w, h int) *tile.Grid {
	g := tile.NewGrid(w, h, tile.Wall)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	return g
}

func TestValidateEmptyDungeonReportsError(t *testing.T) {
	g := tile.NewGrid(10, 10, tile.Wall)
	report := ValidateDungeon(g, Options{})
	assert.False(t, report.Valid)
	found := false
	for _, iss := range report.Issues {
		if iss.Code == "empty_dungeon" {
			found = true
			assert.Equal(t, SeverityError, iss.Severity)
		}
	}
	assert.True(t, found)
}

func TestValidateHealthyDungeonHasNoErrors(t *testing.T) {
	g := tile.NewGrid(20, 20, tile.Wall)
	for y := 1; y < 10; y++ {
		for x := 1; x < 10; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	report := ValidateDungeon(g, Options{})
	assert.True(t, report.Valid)
	assert.False(t, HasErrors(report))
	assert.Equal(t, 1, report.Stats.RoomCount)
}

func TestValidateTooDenseWarnsOnFullGrid(t *testing.T) {
	g := fullFloorGrid(20, 20)
	report := ValidateDungeon(g, Options{})
	found := false
	for _, iss := range report.Issues {
		if iss.Code == "too_dense" {
			found = true
			assert.Equal(t, SeverityWarning, iss.Severity)
		}
	}
	assert.True(t, found)
}

func TestValidateDisconnectedRegionsIsError(t *testing.T) {
	g := tile.NewGrid(20, 20, tile.Wall)
	for _, p := range [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		g.Set(p[0], p[1], tile.Floor)
	}
	for _, p := range [][2]int{{15, 15}, {16, 15}, {15, 16}, {16, 16}} {
		g.Set(p[0], p[1], tile.Floor)
	}
	report := ValidateDungeon(g, Options{MinRooms: 1})
	require.False(t, report.Valid)
	found := false
	for _, iss := range report.Issues {
		if iss.Code == "disconnected_regions" {
			found = true
		}
	}
	assert.True(t, found)
	assert.Equal(t, 2, report.Stats.RoomCount)
}

func TestValidateInsufficientRoomsError(t *testing.T) {
	g := tile.NewGrid(20, 20, tile.Wall)
	g.Set(5, 5, tile.Floor)
	report := ValidateDungeon(g, Options{MinRooms: 3})
	found := false
	for _, iss := range report.Issues {
		if iss.Code == "insufficient_rooms" {
			found = true
			assert.Equal(t, SeverityError, iss.Severity)
		}
	}
	assert.True(t, found)
}

func TestGetDungeonStatsRoomSizeAggregates(t *testing.T) {
	g := tile.NewGrid(20, 20, tile.Wall)
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	stats := GetDungeonStats(g, Options{})
	assert.Equal(t, 1, stats.RoomCount)
	assert.Equal(t, 9, stats.MaxRoomSize)
	assert.Equal(t, 9, stats.MinRoomSize)
	assert.InDelta(t, 9.0, stats.AvgRoomSize, 0.001)
}

func TestSummaryIncludesStatusAndStats(t *testing.T) {
	g := fullFloorGrid(12, 12)
	report := ValidateDungeon(g, Options{})
	out := Summary(report)
	assert.Contains(t, out, "Status:")
	assert.Contains(t, out, "Walkable Tiles:")
}
