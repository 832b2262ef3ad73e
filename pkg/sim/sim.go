// Package sim runs a tactical combat simulation over a finished grid: unit
// spawning, per-unit targeting and movement, attack resolution, and a turn
// loop to victory. Grounded on Garsondee-Soldier-Sense's TacticalMap (per-
// cell desirability scoring feeding a single best-score pick) for the
// targeting-score shape, and KirkDiggler-rpg-toolkit's BasicSpawnEngine
// (Config struct, Validate, geographic/pattern-based placement, Result with
// per-entity failures) for the spawn engine's API shape. Movement reuses
// pkg/connectivity's A* over a mutable occupied set (spec §4.11).
package sim

import (
	"fmt"
	"math"

	"github.com/dshills/dunegen/pkg/connectivity"
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// Faction identifies which side a Unit fights for.
type Faction int

const (
	FactionA Faction = iota
	FactionB
)

// UnitType is a named baseline stat block.
type UnitType struct {
	Name    string
	HP      int
	Attack  int
	Defense int
	Range   int
	Speed   int
}

// Canonical baseline stat blocks. Every simulation's default unit_types.
var (
	Warrior = UnitType{Name: "WARRIOR", HP: 100, Attack: 15, Defense: 10, Speed: 1, Range: 1}
	Archer  = UnitType{Name: "ARCHER", HP: 60, Attack: 20, Defense: 5, Speed: 1, Range: 4}
	Mage    = UnitType{Name: "MAGE", HP: 50, Attack: 25, Defense: 3, Speed: 1, Range: 3}
)

// DefaultUnitTypes is the canonical WARRIOR/ARCHER/MAGE roster SpawnUnits
// draws from when the caller doesn't supply its own UnitTypes.
var DefaultUnitTypes = []UnitType{Warrior, Archer, Mage}

// Unit is a single combatant.
type Unit struct {
	ID      int
	Type    UnitType
	Faction Faction
	Pos     tile.Point
	HP      int
	IsDead  bool
}

func (u *Unit) hpRatio() float64 {
	if u.Type.HP <= 0 {
		return 0
	}
	return float64(u.HP) / float64(u.Type.HP)
}

// EventKind discriminates SimulationEvent's sum-type payload.
type EventKind string

const (
	EventMove    EventKind = "move"
	EventCombat  EventKind = "combat"
	EventDeath   EventKind = "death"
	EventVictory EventKind = "victory"
)

// Event is a single simulation event. Fields not relevant to Kind are zero.
type Event struct {
	Kind      EventKind
	Turn      int
	UnitID    int
	TargetID  int
	From, To  tile.Point
	Damage    int
	Winner    Faction
	WinnerSet bool
}

// State is the mutable simulation state threaded through every turn.
type State struct {
	Grid       *tile.Grid
	Units      []*Unit
	Turn       int
	IsComplete bool
	Winner     Faction
	WinnerSet  bool
	Events     []Event
}

func (s *State) aliveUnits(f Faction) []*Unit {
	var out []*Unit
	for _, u := range s.Units {
		if !u.IsDead && u.Faction == f {
			out = append(out, u)
		}
	}
	return out
}

func (s *State) unitByID(id int) *Unit {
	for _, u := range s.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// SpawnOptions configures SpawnUnits.
type SpawnOptions struct {
	UnitsPerFaction  int
	UnitTypes        []UnitType
	OpposingSides    bool // false unless set: both factions then draw from every walkable tile
	MinSpawnDistance int  // default 3
	Seed             *uint64
}

func defaultSpawnOptions(opts SpawnOptions) SpawnOptions {
	if opts.MinSpawnDistance <= 0 {
		opts.MinSpawnDistance = 3
	}
	if opts.UnitsPerFaction <= 0 {
		opts.UnitsPerFaction = 4
	}
	if len(opts.UnitTypes) == 0 {
		opts.UnitTypes = DefaultUnitTypes
	}
	return opts
}

// SpawnUnits finds walkable positions, splits them geographically when
// OpposingSides is set (left/right if width>=height, else top/bottom), and
// for each faction greedily picks UnitsPerFaction positions respecting
// MinSpawnDistance, falling back to any remaining slot if spacing cannot be
// satisfied.
func SpawnUnits(g *tile.Grid, opts SpawnOptions) ([]*Unit, error) {
	opts = defaultSpawnOptions(opts)

	var walkable []tile.Point
	g.Each(func(x, y int, t tile.Tile) {
		if tile.IsWalkable(t) {
			walkable = append(walkable, tile.Point{X: x, Y: y})
		}
	})
	if len(walkable) == 0 {
		return nil, fmt.Errorf("spawn_units: grid has no walkable tiles")
	}

	var sideA, sideB []tile.Point
	if opts.OpposingSides {
		splitVertical := g.Width() >= g.Height()
		mid := g.Width() / 2
		if !splitVertical {
			mid = g.Height() / 2
		}
		for _, p := range walkable {
			coord := p.X
			if !splitVertical {
				coord = p.Y
			}
			if coord < mid {
				sideA = append(sideA, p)
			} else {
				sideB = append(sideB, p)
			}
		}
	} else {
		sideA = walkable
		sideB = walkable
	}

	var units []*Unit
	nextID := 1
	return rng.WithSeed(opts.Seed, func(r *rng.RNG) []*Unit {
		units = append(units, spawnFaction(r, sideA, FactionA, opts, &nextID)...)
		units = append(units, spawnFaction(r, sideB, FactionB, opts, &nextID)...)
		return units
	}), nil
}

func spawnFaction(r *rng.RNG, candidates []tile.Point, f Faction, opts SpawnOptions, nextID *int) []*Unit {
	if len(candidates) == 0 {
		return nil
	}
	pool := make([]tile.Point, len(candidates))
	copy(pool, candidates)
	rng.Shuffle(r, pool)

	var chosen []tile.Point
	var remaining []tile.Point
	for _, p := range pool {
		ok := true
		for _, c := range chosen {
			if p.Manhattan(c) < opts.MinSpawnDistance {
				ok = false
				break
			}
		}
		if ok && len(chosen) < opts.UnitsPerFaction {
			chosen = append(chosen, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	for i := 0; len(chosen) < opts.UnitsPerFaction && i < len(remaining); i++ {
		chosen = append(chosen, remaining[i])
	}

	units := make([]*Unit, 0, len(chosen))
	for _, p := range chosen {
		ut := rng.Pick(r, opts.UnitTypes)
		units = append(units, &Unit{
			ID: *nextID, Type: ut, Faction: f, Pos: p, HP: ut.HP,
		})
		*nextID++
	}
	return units
}

// TurnOptions configures SimulateTurn.
type TurnOptions struct {
	RandomizeTurnOrder bool // false unless set: units then act in State.Units order
	Seed               *uint64
}

// CreateSimulation builds a fresh State from a grid and spawn options.
func CreateSimulation(g *tile.Grid, spawnOpts SpawnOptions) (*State, error) {
	units, err := SpawnUnits(g, spawnOpts)
	if err != nil {
		return nil, err
	}
	return &State{Grid: g, Units: units}, nil
}

// FindBestTarget implements spec §4.11's two-branch scoring: in-range
// enemies score by HP ratio minus ally pressure (lower is better), out-of-range
// enemies score by distance-plus-pressure (lower is better). Returns nil if
// the unit's faction has no living enemies.
func FindBestTarget(u *Unit, s *State) *Unit {
	var enemies []*Unit
	for _, o := range s.Units {
		if !o.IsDead && o.Faction != u.Faction {
			enemies = append(enemies, o)
		}
	}
	if len(enemies) == 0 {
		return nil
	}

	allies := s.aliveUnits(u.Faction)

	var inRange []*Unit
	for _, e := range enemies {
		if u.Pos.Manhattan(e.Pos) <= u.Type.Range {
			inRange = append(inRange, e)
		}
	}

	if len(inRange) > 0 {
		best := inRange[0]
		bestScore := targetScoreInRange(best, allies)
		for _, e := range inRange[1:] {
			if sc := targetScoreInRange(e, allies); sc < bestScore {
				bestScore = sc
				best = e
			}
		}
		return best
	}

	best := enemies[0]
	bestScore := targetScoreOutOfRange(u, best, allies)
	for _, e := range enemies[1:] {
		if sc := targetScoreOutOfRange(u, e, allies); sc < bestScore {
			bestScore = sc
			best = e
		}
	}
	return best
}

func allyPressure(target *Unit, allies []*Unit) float64 {
	pressure := 0.0
	for _, a := range allies {
		dist := a.Pos.Manhattan(target.Pos)
		if dist <= 3 {
			pressure += math.Max(0, float64(4-dist)) * 2
		}
		if dist <= a.Type.Range {
			pressure += 5
		}
	}
	return pressure
}

func targetScoreInRange(target *Unit, allies []*Unit) float64 {
	return target.hpRatio()*100 - allyPressure(target, allies)*10
}

func targetScoreOutOfRange(u, target *Unit, allies []*Unit) float64 {
	dist := float64(u.Pos.Manhattan(target.Pos))
	return dist*10 + target.hpRatio()*20 - allyPressure(target, allies)*5
}

// ExecuteAttack resolves attacker hitting defender: damage =
// max(1, round(attack - floor(defense/2) + uniform(-0.2,+0.2)*base))` where
// base = attack. Always emits a Combat event; emits a Death event too if
// defender's HP drops to zero or below.
func ExecuteAttack(r *rng.RNG, attacker, defender *Unit, turn int) []Event {
	base := float64(attacker.Type.Attack)
	raw := base - math.Floor(float64(defender.Type.Defense)/2) + r.Float64Range(-0.2, 0.2)*base
	damage := int(math.Round(raw))
	if damage < 1 {
		damage = 1
	}

	defender.HP -= damage
	events := []Event{{
		Kind: EventCombat, Turn: turn, UnitID: attacker.ID, TargetID: defender.ID, Damage: damage,
	}}
	if defender.HP <= 0 && !defender.IsDead {
		defender.IsDead = true
		events = append(events, Event{Kind: EventDeath, Turn: turn, UnitID: defender.ID})
	}
	return events
}

// SimulateTurn processes every living unit once: find a target, attack if
// in range, otherwise move (with swarming blend) and retry. Turn order is
// shuffled when RandomizeTurnOrder is set. Increments state.Turn once.
func SimulateTurn(s *State, opts TurnOptions) {
	s.Turn++
	turn := s.Turn

	order := make([]*Unit, 0, len(s.Units))
	for _, u := range s.Units {
		if !u.IsDead {
			order = append(order, u)
		}
	}

	rng.WithSeed(opts.Seed, func(r *rng.RNG) struct{} {
		if opts.RandomizeTurnOrder {
			rng.Shuffle(r, order)
		}

		for _, u := range order {
			if u.IsDead {
				continue
			}
			if actUnit(r, u, s, turn) {
				if checkVictory(s, turn) {
					return struct{}{}
				}
			}
		}
		checkVictory(s, turn)
		return struct{}{}
	})
}

// actUnit runs one unit's action; returns true if anything happened
// (attack executed, possibly after a move).
func actUnit(r *rng.RNG, u *Unit, s *State, turn int) bool {
	target := FindBestTarget(u, s)
	if target == nil {
		return false
	}

	if canAttack(u, target) {
		s.Events = append(s.Events, ExecuteAttack(r, u, target, turn)...)
		return true
	}

	dest := movementDestination(u, target, s)
	occupied := map[tile.Point]bool{}
	for _, o := range s.Units {
		if !o.IsDead && o.ID != u.ID {
			occupied[o.Pos] = true
		}
	}
	path, ok := connectivity.FindPathAvoiding(s.Grid, u.Pos, dest, occupied)
	if ok && len(path) > 1 {
		steps := u.Type.Speed
		if steps <= 0 {
			steps = 1
		}
		idx := steps
		if idx >= len(path) {
			idx = len(path) - 1
		}
		from := u.Pos
		u.Pos = path[idx]
		s.Events = append(s.Events, Event{Kind: EventMove, Turn: turn, UnitID: u.ID, From: from, To: u.Pos})
	}

	if canAttack(u, target) {
		s.Events = append(s.Events, ExecuteAttack(r, u, target, turn)...)
		return true
	}
	return false
}

func canAttack(u, target *Unit) bool {
	return !target.IsDead && target.Faction != u.Faction && u.Pos.Manhattan(target.Pos) <= u.Type.Range
}

// movementDestination computes the pre-swarm destination, then applies the
// swarming blend described in spec §4.11 step 4.
func movementDestination(u, target *Unit, s *State) tile.Point {
	var dest tile.Point
	if u.Type.Range > 1 {
		dest = closestUnoccupiedWithinRange(u, target, s)
	} else {
		dest = target.Pos
	}

	allies := s.aliveUnits(u.Faction)
	if len(allies) == 0 {
		return dest
	}
	centroid := alliesCentroid(allies)

	blendFactor := 0.2
	if centroid.Manhattan(dest) > 6 && u.Pos.Manhattan(centroid) > u.Pos.Manhattan(dest) {
		blendFactor = 0.7
	}
	return blendPoint(dest, centroid, blendFactor)
}

func closestUnoccupiedWithinRange(u, target *Unit, s *State) tile.Point {
	occupied := map[tile.Point]bool{}
	for _, o := range s.Units {
		if !o.IsDead {
			occupied[o.Pos] = true
		}
	}
	best := target.Pos
	bestDist := -1
	for dx := -u.Type.Range; dx <= u.Type.Range; dx++ {
		for dy := -u.Type.Range; dy <= u.Type.Range; dy++ {
			p := tile.Point{X: target.Pos.X + dx, Y: target.Pos.Y + dy}
			if p.Manhattan(target.Pos) > u.Type.Range {
				continue
			}
			if !s.Grid.InBounds(p.X, p.Y) || !tile.IsWalkable(s.Grid.Get(p)) || occupied[p] {
				continue
			}
			d := u.Pos.Manhattan(p)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = p
			}
		}
	}
	return best
}

func alliesCentroid(allies []*Unit) tile.Point {
	sx, sy := 0, 0
	for _, a := range allies {
		sx += a.Pos.X
		sy += a.Pos.Y
	}
	return tile.Point{X: sx / len(allies), Y: sy / len(allies)}
}

func blendPoint(dest, centroid tile.Point, factor float64) tile.Point {
	x := float64(dest.X) + factor*float64(centroid.X-dest.X)
	y := float64(dest.Y) + factor*float64(centroid.Y-dest.Y)
	return tile.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// checkVictory counts living units per faction; if one faction is empty,
// marks the state complete and emits a Victory event. Returns whether the
// simulation ended.
func checkVictory(s *State, turn int) bool {
	if s.IsComplete {
		return true
	}
	aliveA := len(s.aliveUnits(FactionA))
	aliveB := len(s.aliveUnits(FactionB))
	if aliveA > 0 && aliveB > 0 {
		return false
	}
	s.IsComplete = true
	if aliveA > 0 {
		s.Winner, s.WinnerSet = FactionA, true
	} else if aliveB > 0 {
		s.Winner, s.WinnerSet = FactionB, true
	}
	s.Events = append(s.Events, Event{Kind: EventVictory, Turn: turn, Winner: s.Winner, WinnerSet: s.WinnerSet})
	return true
}

// RunSimulation repeats SimulateTurn until IsComplete or MaxTurns (default
// 100) is reached, then forces completion.
func RunSimulation(s *State, opts TurnOptions, maxTurns int) {
	if maxTurns <= 0 {
		maxTurns = 100
	}
	for i := 0; i < maxTurns && !s.IsComplete; i++ {
		SimulateTurn(s, opts)
	}
	if !s.IsComplete {
		s.IsComplete = true
	}
}

// Simulate is the create-and-run shorthand.
func Simulate(g *tile.Grid, spawnOpts SpawnOptions, turnOpts TurnOptions, maxTurns int) (*State, error) {
	s, err := CreateSimulation(g, spawnOpts)
	if err != nil {
		return nil, err
	}
	RunSimulation(s, turnOpts, maxTurns)
	return s, nil
}
