package runner_test

import (
	"math/rand/v2"

	"github.com/plus3/cityrun/ecs"
	"github.com/plus3/cityrun/internal/runner"
)

// cycleRand returns its values in a loop.
type cycleRand struct {
	values []float64
	next   int
}

func (r *cycleRand) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

// forcedSpawn makes every spawn roll succeed and takes lateral offsets from
// offsets.
type forcedSpawn struct {
	offsets runner.Rand
	roll    bool
}

func (r *forcedSpawn) Float64() float64 {
	r.roll = !r.roll
	if r.roll {
		return 0
	}
	return r.offsets.Float64()
}

// quietSession never spawns coins on its own: every draw is 0.99.
func quietSession(opts runner.Options) *runner.Session {
	opts.Rand = &cycleRand{values: []float64{0.99}}
	return runner.NewSession(opts)
}

func forceSpawns(s *runner.Session, offsets runner.Rand) {
	ecs.NewSingleton[runner.Spawner](s.Storage()).Get().Rand = &forcedSpawn{offsets: offsets}
}

func seeded(seed uint64) runner.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

type scrollableView = struct {
	ecs.EntityId
	*runner.Transform
	*runner.Scrollable
	Coin *runner.Coin `ecs:"optional"`
}
