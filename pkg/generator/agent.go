package generator

import (
	"github.com/dshills/dunegen/pkg/rng"
	"github.com/dshills/dunegen/pkg/tile"
)

// diggerAgent is one independent digger in GenerateAgent's swarm.
type diggerAgent struct {
	pos      tile.Point
	lifespan int
}

// AgentOptions configures GenerateAgent (spec §4.4): a swarm of independent
// diggers, each carving a short corridor from its own position before
// expiring, occasionally spawning a child digger at its current position.
type AgentOptions struct {
	AgentCount     int     // default 6
	Lifespan       int     // steps per agent before it expires, default size
	SpawnChance    float64 // probability per step of spawning a child agent, default 0.02
	MaxAgents      int     // hard cap on concurrently active agents, default 4*AgentCount
	FillPercentage float64 // stop condition, default 0.35
	Seed           *uint64
}

func defaultAgentOptions(opts AgentOptions, size int) AgentOptions {
	if opts.AgentCount <= 0 {
		opts.AgentCount = 6
	}
	if opts.Lifespan <= 0 {
		opts.Lifespan = size
	}
	if opts.SpawnChance <= 0 {
		opts.SpawnChance = 0.02
	}
	if opts.MaxAgents <= 0 {
		opts.MaxAgents = 4 * opts.AgentCount
	}
	if opts.FillPercentage <= 0 {
		opts.FillPercentage = 0.35
	}
	return opts
}

// GenerateAgent builds a cave by running a swarm of short-lived digger
// agents concurrently (in simulation, not goroutines — determinism requires
// a single RNG stream): each step every live agent carves its tile, moves to
// a random cardinal neighbor, decrements its lifespan, and may spawn a child.
func GenerateAgent(size int, opts AgentOptions) (*tile.Grid, error) {
	if err := ValidateSize("agent", size); err != nil {
		return nil, err
	}
	opts = defaultAgentOptions(opts, size)

	return rng.WithSeed(opts.Seed, func(r *rng.RNG) *tile.Grid {
		g := tile.NewGrid(size, size, tile.Wall)
		center := tile.Point{X: size / 2, Y: size / 2}

		agents := make([]*diggerAgent, 0, opts.AgentCount)
		for i := 0; i < opts.AgentCount; i++ {
			agents = append(agents, &diggerAgent{pos: center, lifespan: opts.Lifespan})
		}

		target := int(opts.FillPercentage * float64((size-2)*(size-2)))
		maxTicks := opts.Lifespan * opts.MaxAgents
		for tick := 0; tick < maxTicks && len(agents) > 0 && g.Count(tile.Floor) < target; tick++ {
			var alive []*diggerAgent
			for _, a := range agents {
				g.SetPoint(a.pos, tile.Floor)
				d := tile.Cardinals[r.Intn(4)]
				np := a.pos.Add(d)
				if g.InBounds(np.X, np.Y) {
					a.pos = np
				}
				a.lifespan--

				if a.lifespan > 0 {
					alive = append(alive, a)
				}
				if len(agents)+len(alive) < opts.MaxAgents && r.Chance(opts.SpawnChance) {
					alive = append(alive, &diggerAgent{pos: a.pos, lifespan: opts.Lifespan})
				}
			}
			agents = alive
		}
		g.FillBorder(tile.Wall)
		return g
	}), nil
}
