package runner_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/cityrun/ecs"
	"github.com/plus3/cityrun/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStateFollowsEvents(t *testing.T) {
	s := quietSession(runner.Options{})

	assert.False(t, s.Held(runner.KeyLeft))

	s.Press(runner.KeyLeft)
	assert.False(t, s.Held(runner.KeyLeft), "events apply on the next tick")
	s.Tick()
	assert.True(t, s.Held(runner.KeyLeft))

	s.Press("KeyQ")
	s.Release(runner.KeyLeft)
	s.Tick()
	assert.False(t, s.Held(runner.KeyLeft))
	assert.True(t, s.Held("KeyQ"))
	assert.False(t, s.Held("KeyZ"))

	// a tap shorter than a tick leaves the key up
	s.Press(runner.KeyRight)
	s.Release(runner.KeyRight)
	s.Tick()
	assert.False(t, s.Held(runner.KeyRight))
	assert.InDelta(t, -0.08, s.Actor(runner.RolePlayer).Position.X(), 1e-12, "only the first tick moved the player")
}

func TestPlayerStaysInLane(t *testing.T) {
	s := quietSession(runner.Options{})
	player := func() float64 { return s.Actor(runner.RolePlayer).Position.X() }

	s.Press(runner.KeyRight)
	s.Tick()
	assert.InDelta(t, 0.08, player(), 1e-12)

	for range 100 {
		s.Tick()
		require.LessOrEqual(t, player(), 3.0)
	}
	assert.Equal(t, 3.0, player())

	s.Release(runner.KeyRight)
	s.Press(runner.KeyLeft)
	for range 200 {
		s.Tick()
		require.GreaterOrEqual(t, player(), -3.0)
	}
	assert.Equal(t, -3.0, player())
}

func TestBothKeysCancel(t *testing.T) {
	s := quietSession(runner.Options{})
	s.Press(runner.KeyLeft)
	s.Press(runner.KeyRight)

	for range 10 {
		s.Tick()
	}
	assert.InDelta(t, 0.0, s.Actor(runner.RolePlayer).Position.X(), 1e-12)
}

func TestRivalPursuit(t *testing.T) {
	s := quietSession(runner.Options{})

	prev := s.Actor(runner.RoleRival).Position.X()
	for range 500 {
		s.Tick()
		player := s.Actor(runner.RolePlayer).Position
		rival := s.Actor(runner.RoleRival).Position

		require.Equal(t, player.Z()+2, rival.Z())
		require.Less(t, rival.X(), prev, "rival closes in")
		require.Greater(t, rival.X(), player.X(), "rival never overshoots")
		prev = rival.X()
	}
}

func TestRivalPursuitStep(t *testing.T) {
	s := quietSession(runner.Options{})
	s.Press(runner.KeyLeft)
	s.Tick()

	// player moved first, the rival chases the new position
	assert.InDelta(t, 1.2+(-0.08-1.2)*0.02, s.Actor(runner.RoleRival).Position.X(), 1e-12)
	assert.Equal(t, 4.0, s.Actor(runner.RoleRival).Position.Z())
}

func TestScrollAndRecycle(t *testing.T) {
	s := quietSession(runner.Options{CompactEvery: -1})
	view := ecs.NewView[scrollableView](s.Storage())

	initial := map[ecs.EntityId]float64{}
	for item := range view.Values() {
		initial[item.EntityId] = item.Position.Z()
	}
	require.Len(t, initial, 43, "road, two lights, forty buildings")

	// an odd count keeps every final position clear of the wrap boundary
	const ticks = 1001
	for range ticks {
		s.Tick()
	}

	for item := range view.Values() {
		want := initial[item.EntityId] + 0.3*ticks
		for want > 10 {
			want -= 200
		}
		assert.InDelta(t, want, item.Position.Z(), 1e-6)
		assert.LessOrEqual(t, item.Position.Z(), 10.0)
	}

	assert.Equal(t, 2.0, s.Actor(runner.RolePlayer).Position.Z(), "actors never scroll")
	assert.Greater(t, s.Counters().Recycled, uint64(0))
}

func TestCoinMovesTwiceAsFastAsScenery(t *testing.T) {
	s := quietSession(runner.Options{})
	s.SpawnCoinAt(-3, 1, -100)

	view := ecs.NewView[scrollableView](s.Storage())
	building := func() (ecs.EntityId, float64) {
		for item := range view.Values() {
			if item.Coin == nil && item.Position.Z() == -100 {
				return item.EntityId, item.Position.Z()
			}
		}
		t.Fatal("no building at z=-100")
		return 0, 0
	}
	buildingId, _ := building()

	for n := 1; n <= 50; n++ {
		s.Tick()
		coins := s.Coins()
		require.Len(t, coins, 1)
		assert.InDelta(t, -100+0.6*float64(n), coins[0].Position.Z(), 1e-9)
		assert.InDelta(t, -100+0.3*float64(n), view.Get(buildingId).Position.Z(), 1e-9)
		assert.InDelta(t, 0.1*float64(n), coins[0].Rotation.Y(), 1e-9)
	}
}

func TestCoinCollectionBoundary(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		collected bool
	}{
		{"inside", 0.999, true},
		{"on the radius", 1.0, false},
		{"outside", 1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quietSession(runner.Options{})
			// the coin closes 0.6 in z during the tick and ends level with the player
			id := s.SpawnCoinAt(tt.offset, 0.75, 2-0.6)

			s.Tick()

			if tt.collected {
				assert.Equal(t, 1, s.Score())
				assert.Equal(t, "1", s.Label(runner.ScoreLabel))
				assert.Empty(t, s.Coins())
				assert.False(t, s.Storage().Alive(id))
			} else {
				assert.Equal(t, 0, s.Score())
				assert.Equal(t, "0", s.Label(runner.ScoreLabel))
				assert.Len(t, s.Coins(), 1)
				assert.True(t, s.Storage().Alive(id))
			}
		})
	}
}

func TestCollects(t *testing.T) {
	player := runner.PlayerStart
	assert.True(t, runner.Collects(player.Add(mgl64.Vec3{0.999, 0, 0}), player))
	assert.True(t, runner.Collects(player.Add(mgl64.Vec3{0, 0, -0.999}), player))
	assert.False(t, runner.Collects(player.Add(mgl64.Vec3{1, 0, 0}), player))
	assert.False(t, runner.Collects(player.Add(mgl64.Vec3{0, 1, 0}), player))
}

func TestCollectingNeighboursSkipsNothing(t *testing.T) {
	s := quietSession(runner.Options{})
	s.SpawnCoinAt(0, 0.75, 1.4)
	s.SpawnCoinAt(0.5, 0.75, 1.4)
	far := s.SpawnCoinAt(-3, 1, -40)
	s.SpawnCoinAt(-0.5, 0.75, 1.4)

	s.Tick()

	assert.Equal(t, 3, s.Score())
	coins := s.Coins()
	require.Len(t, coins, 1)
	assert.InDelta(t, -40+0.6, coins[0].Position.Z(), 1e-9, "the surviving coin moved exactly once")
	assert.True(t, s.Storage().Alive(far))
}

func TestScoreNeverDecreases(t *testing.T) {
	s := runner.NewSession(runner.Options{Seed: 11})
	forceSpawns(s, seeded(3))

	last := 0
	keys := []string{runner.KeyLeft, runner.KeyRight}
	for i := range 3000 {
		if i%90 == 0 {
			s.Release(keys[(i/90+1)%2])
			s.Press(keys[(i/90)%2])
		}
		s.Tick()
		require.GreaterOrEqual(t, s.Score(), last)
		last = s.Score()
	}
	assert.Greater(t, last, 0)
	assert.Equal(t, uint64(last), s.Counters().Collected)
}

func TestForcedSpawnAddsOneCoinPerTick(t *testing.T) {
	s := quietSession(runner.Options{})
	forceSpawns(s, seeded(5))

	for n := 1; n <= 30; n++ {
		s.Tick()
		coins := s.Coins()
		require.Len(t, coins, n)

		newest := coins[n-1]
		assert.GreaterOrEqual(t, newest.Position.X(), -3.0)
		assert.LessOrEqual(t, newest.Position.X(), 3.0)
		assert.Equal(t, 1.0, newest.Position.Y())
		// spawned at -60 and moved by the coin pass of the same tick only
		assert.InDelta(t, -60+0.3, newest.Position.Z(), 1e-9)
	}
	assert.Equal(t, uint64(30), s.Spawner().Spawned)
}

func TestSpawnCoinPlacement(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	runner.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	coins := &runner.CoinList{}

	spawner := &runner.Spawner{Rand: &cycleRand{values: []float64{0.02, 0.0, 0.029, 1 - 1e-12}}}
	id, ok := runner.SpawnCoin(storage, spawner, coins)
	require.True(t, ok)
	tr := ecs.ReadComponent[runner.Transform](storage, id)
	assert.Equal(t, [3]float64{-3, 1, -60}, [3]float64(tr.Position))

	id, ok = runner.SpawnCoin(storage, spawner, coins)
	require.True(t, ok)
	assert.InDelta(t, 3.0, ecs.ReadComponent[runner.Transform](storage, id).Position.X(), 1e-9)

	spawner.Rand = &cycleRand{values: []float64{0.03}}
	_, ok = runner.SpawnCoin(storage, spawner, coins)
	assert.False(t, ok, "the roll must be strictly below the chance")
	assert.Len(t, coins.Refs, 2)
}

func TestUncollectedCoinsAccumulate(t *testing.T) {
	s := quietSession(runner.Options{})
	// all coins land at x=-3, out of reach of the idle player
	forceSpawns(s, &cycleRand{values: []float64{0}})

	for range 800 {
		s.Tick()
	}

	coins := s.Coins()
	assert.Len(t, coins, 800)
	assert.Equal(t, 0, s.Score())
	for _, c := range coins {
		// the coin step runs after the wrap check
		assert.LessOrEqual(t, c.Position.Z(), 10.3+1e-9)
		assert.Greater(t, c.Position.Z(), -190.0)
	}
	assert.Equal(t, 800, s.Counters().PeakCoins)
}

func TestMaxCoinsBoundsTheList(t *testing.T) {
	s := quietSession(runner.Options{MaxCoins: 25})
	forceSpawns(s, &cycleRand{values: []float64{0}})

	for range 100 {
		s.Tick()
	}

	assert.Len(t, s.Coins(), 25)
	assert.Equal(t, uint64(25), s.Spawner().Spawned)
	assert.Equal(t, uint64(75), s.Spawner().Skipped)
}

func TestCompactionKeepsCoinOrder(t *testing.T) {
	s := quietSession(runner.Options{CompactEvery: 7})
	// collected on the first tick, leaving a hole for compaction to close
	s.SpawnCoinAt(0, 0.75, 1.4)
	forceSpawns(s, seeded(9))

	// the oldest coin is still short of the wrap after this many ticks
	for range 110 {
		s.Tick()
	}

	assert.GreaterOrEqual(t, s.Counters().Collected, uint64(1))
	coins := s.Coins()
	require.Len(t, coins, 110-int(s.Counters().Collected)+1)
	for i := 1; i < len(coins); i++ {
		assert.Less(t, coins[i].Position.Z(), coins[i-1].Position.Z(), "older coins are closer")
	}
}

func TestCoinWrapsByFullRecycleSpan(t *testing.T) {
	s := quietSession(runner.Options{})
	s.SpawnCoinAt(2.5, 1, 9.9)
	s.SpawnCoinAt(-2.5, 1, 9.6)

	s.Tick()

	coins := s.Coins()
	require.Len(t, coins, 2)
	// 9.9 + 0.3 passes the threshold, wraps by 200, then takes its own step
	assert.InDelta(t, 9.9+0.3-200+0.3, coins[0].Position.Z(), 1e-9)
	assert.InDelta(t, -189.5, coins[0].Position.Z(), 1e-9)
	// 9.6 + 0.3 stays on this side of the threshold
	assert.InDelta(t, 10.2, coins[1].Position.Z(), 1e-9)
}
