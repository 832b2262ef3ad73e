package sim

import (
	"testing"

	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(s uint64) *uint64 { return &s }

func openGrid(w, h int) *tile.Grid {
	g := tile.NewGrid(w, h, tile.Wall)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			g.Set(x, y, tile.Floor)
		}
	}
	return g
}

var soldier = Warrior
var archer = Archer

func TestSpawnUnitsSplitsGeographically(t *testing.T) {
	g := openGrid(30, 10)
	units, err := SpawnUnits(g, SpawnOptions{
		UnitsPerFaction: 3,
		UnitTypes:       []UnitType{soldier},
		OpposingSides:   true,
		Seed:            seeded(1),
	})
	require.NoError(t, err)
	require.Len(t, units, 6)

	mid := g.Width() / 2
	for _, u := range units {
		if u.Faction == FactionA {
			assert.Less(t, u.Pos.X, mid)
		} else {
			assert.GreaterOrEqual(t, u.Pos.X, mid)
		}
	}
}

func TestSpawnUnitsRespectsMinDistanceWhenPossible(t *testing.T) {
	g := openGrid(40, 40)
	units, err := SpawnUnits(g, SpawnOptions{
		UnitsPerFaction:  5,
		UnitTypes:        []UnitType{soldier},
		MinSpawnDistance: 4,
		OpposingSides:    true,
		Seed:             seeded(7),
	})
	require.NoError(t, err)
	byFaction := map[Faction][]*Unit{}
	for _, u := range units {
		byFaction[u.Faction] = append(byFaction[u.Faction], u)
	}
	for _, group := range byFaction {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				assert.GreaterOrEqual(t, group[i].Pos.Manhattan(group[j].Pos), 4)
			}
		}
	}
}

func TestSpawnUnitsEmptyGridErrors(t *testing.T) {
	g := tile.NewGrid(5, 5, tile.Wall)
	_, err := SpawnUnits(g, SpawnOptions{UnitsPerFaction: 1, UnitTypes: []UnitType{soldier}})
	assert.Error(t, err)
}

func TestFindBestTargetPrefersInRangeEnemy(t *testing.T) {
	s := &State{Grid: openGrid(20, 20)}
	u := &Unit{ID: 1, Faction: FactionA, Pos: tile.Point{X: 5, Y: 5}, Type: soldier, HP: soldier.HP}
	near := &Unit{ID: 2, Faction: FactionB, Pos: tile.Point{X: 6, Y: 5}, Type: soldier, HP: soldier.HP}
	far := &Unit{ID: 3, Faction: FactionB, Pos: tile.Point{X: 15, Y: 15}, Type: soldier, HP: soldier.HP}
	s.Units = []*Unit{u, near, far}

	target := FindBestTarget(u, s)
	require.NotNil(t, target)
	assert.Equal(t, near.ID, target.ID)
}

func TestFindBestTargetNilWhenNoEnemies(t *testing.T) {
	s := &State{Grid: openGrid(10, 10)}
	u := &Unit{ID: 1, Faction: FactionA, Pos: tile.Point{X: 1, Y: 1}, Type: soldier, HP: soldier.HP}
	ally := &Unit{ID: 2, Faction: FactionA, Pos: tile.Point{X: 2, Y: 2}, Type: soldier, HP: soldier.HP}
	s.Units = []*Unit{u, ally}
	assert.Nil(t, FindBestTarget(u, s))
}

func TestExecuteAttackDealsAtLeastOneDamageAndMayKill(t *testing.T) {
	r := rng.NewSeeded(1)
	attacker := &Unit{ID: 1, Type: soldier, HP: soldier.HP}
	defender := &Unit{ID: 2, Type: UnitType{HP: 1, Defense: 0}, HP: 1}

	events := ExecuteAttack(r, attacker, defender, 1)
	require.GreaterOrEqual(t, len(events), 1)
	assert.Equal(t, EventCombat, events[0].Kind)
	assert.GreaterOrEqual(t, events[0].Damage, 1)
	assert.True(t, defender.IsDead)
	require.Len(t, events, 2)
	assert.Equal(t, EventDeath, events[1].Kind)
}

func TestSimulateTurnIncrementsTurnCounter(t *testing.T) {
	g := openGrid(20, 20)
	s := &State{Grid: g, Units: []*Unit{
		{ID: 1, Faction: FactionA, Pos: tile.Point{X: 2, Y: 2}, Type: soldier, HP: soldier.HP},
		{ID: 2, Faction: FactionB, Pos: tile.Point{X: 17, Y: 17}, Type: soldier, HP: soldier.HP},
	}}
	SimulateTurn(s, TurnOptions{RandomizeTurnOrder: true, Seed: seeded(42)})
	assert.Equal(t, 1, s.Turn)
}

// S8-style scenario: a full simulation with one unit per side at melee
// range always ends in victory within a bounded number of turns.
func TestRunSimulationReachesVictory(t *testing.T) {
	g := openGrid(10, 10)
	s := &State{Grid: g, Units: []*Unit{
		{ID: 1, Faction: FactionA, Pos: tile.Point{X: 2, Y: 2}, Type: soldier, HP: soldier.HP},
		{ID: 2, Faction: FactionB, Pos: tile.Point{X: 3, Y: 2}, Type: soldier, HP: soldier.HP},
	}}
	RunSimulation(s, TurnOptions{Seed: seeded(99)}, 50)
	assert.True(t, s.IsComplete)
	assert.True(t, s.WinnerSet)
}

func TestRunSimulationForcesCompletionAtMaxTurns(t *testing.T) {
	g := openGrid(60, 60)
	s := &State{Grid: g, Units: []*Unit{
		{ID: 1, Faction: FactionA, Pos: tile.Point{X: 2, Y: 2}, Type: archer, HP: 1000000},
		{ID: 2, Faction: FactionB, Pos: tile.Point{X: 57, Y: 57}, Type: archer, HP: 1000000},
	}}
	RunSimulation(s, TurnOptions{Seed: seeded(3)}, 3)
	assert.True(t, s.IsComplete)
}

func TestSimulateEndToEnd(t *testing.T) {
	g := openGrid(30, 30)
	seed := uint64(5)
	state, err := Simulate(g,
		SpawnOptions{UnitsPerFaction: 2, UnitTypes: []UnitType{soldier, archer}, OpposingSides: true, Seed: &seed},
		TurnOptions{RandomizeTurnOrder: true, Seed: &seed},
		30)
	require.NoError(t, err)
	assert.True(t, state.IsComplete)
}
