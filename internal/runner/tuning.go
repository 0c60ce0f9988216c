package runner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// KeyLeft and KeyRight are the ebiten key names that steer the player.
	KeyLeft  = "ArrowLeft"
	KeyRight = "ArrowRight"

	// ScoreLabel identifies the HUD text that shows the score.
	ScoreLabel = "score"

	// FixedStep is the nominal frame time handed to systems as DeltaTime.
	// Motion is per tick and never scaled by it.
	FixedStep = 1.0 / 60.0

	PlayerStep      = 0.08
	LaneHalfWidth   = 3.0
	PursuitFactor   = 0.02
	RivalTrailDepth = 2.0

	ScrollPerTick   = 0.3
	RecycleAfterZ   = 10.0
	RecycleSpan     = 200.0
	CoinStepPerTick = 0.3 // on top of ScrollPerTick
	CoinSpinPerTick = 0.1
	CollectRadius   = 1.0

	CoinSpawnChance = 0.03
	CoinSpawnZ      = -60.0
	CoinHeight      = 1.0
	CoinRadius      = 0.3
	CoinTube        = 0.12

	BuildingCount   = 40
	BuildingSpacing = 10.0
	BuildingOffsetX = 6.0

	RoadWidth  = 10.0
	RoadLength = 200.0
	RoadZ      = -80.0

	ActorWidth  = 0.8
	ActorHeight = 1.5
	ActorDepth  = 0.8

	LightIntensity = 0.6
)

var (
	PlayerStart = mgl64.Vec3{0, 0.75, 2}
	RivalStart  = mgl64.Vec3{1.2, 0.75, 4}
	SunPosition = mgl64.Vec3{5, 10, 5}
)

// quarterTurn lays a shape authored in the XY plane flat on the ground.
const quarterTurn = math.Pi / 2

var (
	roadColor     = rgb(0x333333)
	playerColor   = rgb(0xff69b4)
	rivalColor    = rgb(0x00ffff)
	buildingColor = rgb(0x555555)
	coinColor     = rgb(0xffd700)
	lightColor    = rgb(0xffffff)
)
