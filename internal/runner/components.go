package runner

//go:generate go tool stringer -type=ShapeKind,ActorRole,LightKind -output=kind_string.go

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/cityrun/ecs"
)

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapePlane
	ShapeTorus
)

type ActorRole int

const (
	RolePlayer ActorRole = iota
	RoleRival
)

type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
)

// Transform places an entity in the world. Rotation holds Euler angles in
// radians, applied in X, Y, Z order.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

// Shape is the visible geometry of an entity.
//
//	ShapeBox:   Size is width, height, depth
//	ShapePlane: Size.X is width, Size.Y is length, authored in the XY plane
//	ShapeTorus: Size.X is ring radius, Size.Y is tube radius
type Shape struct {
	Kind  ShapeKind
	Size  mgl64.Vec3
	Color color.RGBA
}

// Actor tags the player and the rival. Actors are never scrolled.
type Actor struct {
	Role ActorRole
}

// Scrollable tags everything that moves towards the camera and is recycled
// once it passes it.
type Scrollable struct{}

// Coin tags a pickup.
type Coin struct{}

// Light is a scene light. Directional lights shine from their position
// towards the origin.
type Light struct {
	Kind      LightKind
	Color     color.RGBA
	Intensity float64
}

// RegisterComponents adds every runner component type to registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Shape](registry)
	ecs.RegisterComponent[Actor](registry)
	ecs.RegisterComponent[Scrollable](registry)
	ecs.RegisterComponent[Coin](registry)
	ecs.RegisterComponent[Light](registry)
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}
