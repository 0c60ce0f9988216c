package runner_test

import (
	"bytes"
	"testing"

	"github.com/plus3/cityrun/ecs"
	"github.com/plus3/cityrun/internal/runner"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s := quietSession(runner.Options{})

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, "0", s.Label(runner.ScoreLabel))
	assert.Empty(t, s.Coins())
	require.NotNil(t, s.Actor(runner.RolePlayer))
	require.NotNil(t, s.Actor(runner.RoleRival))

	stats := s.Storage().CollectStats()
	assert.Equal(t, 45, stats.TotalEntityCount)
	assert.Contains(t, stats.SingletonTypes, "runner.CoinList")

	sched := s.Scheduler().GetStats()
	assert.Equal(t, 6, sched.SystemCount)
	assert.Equal(t, "InputSystem", sched.Systems[0].Name)
	assert.Equal(t, "CoinSystem", sched.Systems[5].Name)
}

func TestSessionSeedIsDeterministic(t *testing.T) {
	run := func() []float64 {
		s := runner.NewSession(runner.Options{Seed: 42})
		for range 600 {
			s.Tick()
		}
		var xs []float64
		for _, c := range s.Coins() {
			xs = append(xs, c.Position.X())
		}
		return xs
	}

	first := run()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, run())
}

func TestSessionLogs(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	s := quietSession(runner.Options{Logger: &log, CompactEvery: 2})
	s.SpawnCoinAt(0, 0.75, 1.4)
	s.Tick()
	s.Tick()

	out := buf.String()
	assert.Contains(t, out, `"message":"world built"`)
	assert.Contains(t, out, `"entities":45`)
	assert.Contains(t, out, `"message":"coin collected"`)
	assert.Contains(t, out, `"score":1`)
	assert.Contains(t, out, `"message":"storage compacted"`)

	buf.Reset()
	s.LogStats()
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"tick":2`)
	assert.Contains(t, buf.String(), `"coins":0`)
}

// scoreWatcher runs after the frame systems and records the score they left.
type scoreWatcher struct {
	Score ecs.Singleton[runner.Score]
	seen  []int
}

func (w *scoreWatcher) Execute(frame *ecs.UpdateFrame) {
	w.seen = append(w.seen, w.Score.Get().Value)
}

func TestSessionRegisterRunsAfterFrameSystems(t *testing.T) {
	s := quietSession(runner.Options{})
	w := &scoreWatcher{}
	s.Register(w)

	s.SpawnCoinAt(0, 0.75, 1.4)
	s.Tick()
	s.Tick()

	assert.Equal(t, []int{1, 1}, w.seen)
}
