package runner

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/cityrun/ecs"
)

// BuildWorld populates storage with the static scene: two lights, the road,
// the two actors and a row of buildings on either side of the road. It draws
// four numbers from rng per building.
func BuildWorld(storage *ecs.Storage, rng Rand) {
	storage.Spawn(
		Transform{},
		Light{Kind: LightAmbient, Color: lightColor, Intensity: LightIntensity},
		Scrollable{},
	)
	storage.Spawn(
		Transform{Position: SunPosition},
		Light{Kind: LightDirectional, Color: lightColor, Intensity: LightIntensity},
		Scrollable{},
	)

	storage.Spawn(
		Transform{
			Position: mgl64.Vec3{0, 0, RoadZ},
			Rotation: mgl64.Vec3{-quarterTurn, 0, 0},
		},
		Shape{Kind: ShapePlane, Size: mgl64.Vec3{RoadWidth, RoadLength, 0}, Color: roadColor},
		Scrollable{},
	)

	spawnActor(storage, RolePlayer, PlayerStart, playerColor)
	spawnActor(storage, RoleRival, RivalStart, rivalColor)

	for i := 0; i < BuildingCount; i++ {
		width := rng.Float64() + 1
		height := rng.Float64()*6 + 2
		depth := rng.Float64() + 1

		x := -BuildingOffsetX
		if rng.Float64() > 0.5 {
			x = BuildingOffsetX
		}

		storage.Spawn(
			Transform{Position: mgl64.Vec3{x, height / 2, -float64(i) * BuildingSpacing}},
			Shape{Kind: ShapeBox, Size: mgl64.Vec3{width, height, depth}, Color: buildingColor},
			Scrollable{},
		)
	}
}

func spawnActor(storage *ecs.Storage, role ActorRole, at mgl64.Vec3, c color.RGBA) ecs.EntityId {
	return storage.Spawn(
		Transform{Position: at},
		Shape{Kind: ShapeBox, Size: mgl64.Vec3{ActorWidth, ActorHeight, ActorDepth}, Color: c},
		Actor{Role: role},
	)
}
