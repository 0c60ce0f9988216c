package runner

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/cityrun/ecs"
	"github.com/rs/zerolog"
)

const defaultCompactEvery = 3600

// Options configure a Session. The zero value is a valid configuration.
type Options struct {
	Seed uint64
	// Rand overrides Seed when set.
	Rand Rand
	// MaxCoins caps the live coin list; zero keeps it unbounded.
	MaxCoins int
	// CompactEvery packs the storage every that many ticks. Zero uses the
	// default, a negative value disables compaction.
	CompactEvery int
	Logger       *zerolog.Logger
}

// Session owns one run of the game: the storage holding every scene entity
// and singleton, and the scheduler that advances it one tick at a time.
type Session struct {
	registry  *ecs.ComponentRegistry
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	log       zerolog.Logger

	compactEvery uint64

	queue    *ecs.Singleton[InputQueue]
	keys     *ecs.Singleton[KeyState]
	score    *ecs.Singleton[Score]
	hud      *ecs.Singleton[Hud]
	coins    *ecs.Singleton[CoinList]
	spawner  *ecs.Singleton[Spawner]
	counters *ecs.Singleton[Counters]
	actors   *ecs.View[actorView]
}

// NewSession builds the world and registers the frame systems in tick order.
func NewSession(opts Options) *Session {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(opts.Seed)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	addSingletons(storage, rng, opts.MaxCoins)
	BuildWorld(storage, rng)

	s := &Session{
		registry:  registry,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		log:       log,
		queue:     ecs.NewSingleton[InputQueue](storage),
		keys:      ecs.NewSingleton[KeyState](storage),
		score:     ecs.NewSingleton[Score](storage),
		hud:       ecs.NewSingleton[Hud](storage),
		coins:     ecs.NewSingleton[CoinList](storage),
		spawner:   ecs.NewSingleton[Spawner](storage),
		counters:  ecs.NewSingleton[Counters](storage),
	}
	s.actors = ecs.NewView[actorView](storage)

	switch {
	case opts.CompactEvery == 0:
		s.compactEvery = defaultCompactEvery
	case opts.CompactEvery > 0:
		s.compactEvery = uint64(opts.CompactEvery)
	}

	s.scheduler.Register(&InputSystem{})
	s.scheduler.Register(&PlayerMoveSystem{})
	s.scheduler.Register(&RivalPursuitSystem{})
	s.scheduler.Register(&ScrollSystem{})
	s.scheduler.Register(&CoinSpawnSystem{})
	s.scheduler.Register(&CoinSystem{log: log})

	stats := storage.CollectStats()
	log.Debug().
		Int("entities", stats.TotalEntityCount).
		Int("archetypes", stats.ArchetypeCount).
		Int("max_coins", opts.MaxCoins).
		Msg("world built")

	return s
}

// Register appends a system after the frame systems, e.g. an overlay.
func (s *Session) Register(system ecs.System) {
	s.scheduler.Register(system)
}

// Tick advances the game by one fixed step.
func (s *Session) Tick() {
	s.scheduler.Once(FixedStep)

	if s.compactEvery > 0 && s.scheduler.Tick()%s.compactEvery == 0 {
		s.storage.Compact()
		s.log.Debug().Uint64("tick", s.scheduler.Tick()).Msg("storage compacted")
	}
}

// Press records a key press. It takes effect on the next tick.
func (s *Session) Press(key string) {
	s.pushKey(key, true)
}

// Release records a key release. It takes effect on the next tick.
func (s *Session) Release(key string) {
	s.pushKey(key, false)
}

func (s *Session) pushKey(key string, down bool) {
	q := s.queue.Get()
	q.Events = append(q.Events, KeyEvent{Key: key, Down: down})
}

// Held reports whether the session currently considers key pressed.
func (s *Session) Held(key string) bool {
	return s.keys.Get().Held(key)
}

// Score returns the number of coins collected so far.
func (s *Session) Score() int {
	return s.score.Get().Value
}

// Label returns the HUD text for id.
func (s *Session) Label(id string) string {
	return s.hud.Get().Labels[id]
}

// Actor returns the transform of the first actor with the given role.
func (s *Session) Actor(role ActorRole) *Transform {
	for actor := range s.actors.Values() {
		if actor.Role == role {
			return actor.Transform
		}
	}
	return nil
}

// Coins returns the transforms of live coins in spawn order.
func (s *Session) Coins() []*Transform {
	refs := s.coins.Get().Refs
	out := make([]*Transform, 0, len(refs))
	for _, ref := range refs {
		if id, ok := s.storage.ResolveEntityRef(ref); ok {
			out = append(out, ecs.ReadComponent[Transform](s.storage, id))
		}
	}
	return out
}

// SpawnCoinAt places a coin at the given transform position, bypassing the
// spawn roll.
func (s *Session) SpawnCoinAt(x, y, z float64) ecs.EntityId {
	return PlaceCoin(s.storage, s.coins.Get(), mgl64.Vec3{x, y, z})
}

// LogStats writes one info line summarising the session so far.
func (s *Session) LogStats() {
	counters := s.counters.Get()
	spawner := s.spawner.Get()
	stats := s.storage.CollectStats()
	s.log.Info().
		Uint64("tick", s.scheduler.Tick()).
		Int("score", s.Score()).
		Int("coins", len(s.coins.Get().Refs)).
		Int("peak_coins", counters.PeakCoins).
		Uint64("spawned", spawner.Spawned).
		Uint64("skipped", spawner.Skipped).
		Uint64("recycled", counters.Recycled).
		Int("entities", stats.TotalEntityCount).
		Msg("session stats")
}

// Counters returns a copy of the session counters.
func (s *Session) Counters() Counters {
	return *s.counters.Get()
}

// Spawner returns a copy of the coin spawner state.
func (s *Session) Spawner() Spawner {
	return *s.spawner.Get()
}

// Storage returns the storage holding the world and its singletons.
func (s *Session) Storage() *ecs.Storage {
	return s.storage
}

// Registry returns the component registry used by Storage.
func (s *Session) Registry() *ecs.ComponentRegistry {
	return s.registry
}

// Scheduler returns the scheduler that runs the frame systems.
func (s *Session) Scheduler() *ecs.Scheduler {
	return s.scheduler
}
