package runner

import (
	"math/rand/v2"

	"github.com/plus3/cityrun/ecs"
)

// KeyState maps key names to whether the key is currently held. Keys never
// seen are absent and read as not held.
type KeyState struct {
	Pressed map[string]bool
}

// Held reports whether key is down. Unknown keys read as released.
func (k *KeyState) Held(key string) bool {
	return k.Pressed[key]
}

// KeyEvent is a single press or release reported by the host.
type KeyEvent struct {
	Key  string
	Down bool
}

// InputQueue collects key events between two ticks, in arrival order.
type InputQueue struct {
	Events []KeyEvent
}

// Score counts collected coins. It only ever grows.
type Score struct {
	Value int
}

// Hud holds the text of on-screen labels by identifier.
type Hud struct {
	Labels map[string]string
}

// CoinList indexes live coins in spawn order. It does not own them: the
// storage does, and a collected coin must be removed from both.
type CoinList struct {
	Refs []*ecs.EntityRef
}

// Rand is the random source used by the world builder and the coin spawner.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded PCG source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Spawner drives the coin spawn roll.
type Spawner struct {
	Rand Rand
	// MaxCoins caps the live coin list. Zero means unbounded.
	MaxCoins int
	Spawned  uint64
	Skipped  uint64
}

// Counters are session totals used by the HUD, the debug overlay and the
// soak report.
type Counters struct {
	Collected uint64
	Recycled  uint64
	PeakCoins int
}

func addSingletons(storage *ecs.Storage, rng Rand, maxCoins int) {
	ecs.NewSingleton(storage, KeyState{Pressed: map[string]bool{}})
	ecs.NewSingleton(storage, InputQueue{})
	ecs.NewSingleton(storage, Score{})
	ecs.NewSingleton(storage, Hud{Labels: map[string]string{ScoreLabel: "0"}})
	ecs.NewSingleton(storage, CoinList{})
	ecs.NewSingleton(storage, Spawner{Rand: rng, MaxCoins: maxCoins})
	ecs.NewSingleton(storage, Counters{})
}
