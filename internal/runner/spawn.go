package runner

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/cityrun/ecs"
)

// SpawnCoin rolls the spawn chance once. On success it places a coin at the
// spawn depth with a random lateral offset, appends it to the coin list and
// returns its id.
func SpawnCoin(storage *ecs.Storage, spawner *Spawner, coins *CoinList) (ecs.EntityId, bool) {
	if spawner.Rand.Float64() >= CoinSpawnChance {
		return 0, false
	}
	if spawner.MaxCoins > 0 && len(coins.Refs) >= spawner.MaxCoins {
		spawner.Skipped++
		return 0, false
	}

	x := (spawner.Rand.Float64() - 0.5) * 2 * LaneHalfWidth
	id := PlaceCoin(storage, coins, mgl64.Vec3{x, CoinHeight, CoinSpawnZ})
	spawner.Spawned++
	return id, true
}

// PlaceCoin adds a coin at pos without rolling the spawn chance.
func PlaceCoin(storage *ecs.Storage, coins *CoinList, pos mgl64.Vec3) ecs.EntityId {
	id := storage.Spawn(
		Transform{Position: pos, Rotation: mgl64.Vec3{quarterTurn, 0, 0}},
		Shape{Kind: ShapeTorus, Size: mgl64.Vec3{CoinRadius, CoinTube, 0}, Color: coinColor},
		Coin{},
		Scrollable{},
	)
	coins.Refs = append(coins.Refs, storage.CreateEntityRef(id))
	return id
}

// CoinSpawnSystem attempts one spawn per tick. The coin goes straight into the
// storage, so the coin pass later in the same tick already moves it.
type CoinSpawnSystem struct {
	Spawner  ecs.Singleton[Spawner]
	Coins    ecs.Singleton[CoinList]
	Counters ecs.Singleton[Counters]
}

func (s *CoinSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	coins := s.Coins.Get()
	if _, ok := SpawnCoin(frame.Storage, s.Spawner.Get(), coins); ok {
		counters := s.Counters.Get()
		counters.PeakCoins = max(counters.PeakCoins, len(coins.Refs))
	}
}
