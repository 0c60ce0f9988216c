package scene3d_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/cityrun/internal/scene3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.RGBA{0xff, 0xff, 0xff, 0xff}

func TestCameraCentresTarget(t *testing.T) {
	cam := scene3d.NewCamera(mgl64.Vec3{0, 5, 8}, mgl64.Vec3{0, 0, -20}, 75, 0.1, 200)
	cam.Resize(800, 600)
	assert.InDelta(t, 4.0/3.0, cam.Aspect(), 1e-12)

	target := cam.View().Mul4x1(cam.Target.Vec4(1)).Vec3()
	screen := cam.ToScreen(cam.Projection(), target)
	assert.InDelta(t, 400, screen.X(), 1e-6)
	assert.InDelta(t, 300, screen.Y(), 1e-6)

	cam.Resize(0, 10)
	w, h := cam.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestBoxFacesPointOutwards(t *testing.T) {
	mesh := scene3d.Box(2, 4, 6)
	require.Len(t, mesh, 6)

	half := mgl64.Vec3{1, 2, 3}
	for _, face := range mesh {
		require.Len(t, face.Points, 4)
		extent := math.Abs(face.Normal.Dot(half))
		for _, p := range face.Points {
			assert.InDelta(t, extent, p.Dot(face.Normal), 1e-12)
		}
	}
}

func TestRoadPlaneFacesUp(t *testing.T) {
	mesh := scene3d.Plane(10, 200, 20)
	require.Len(t, mesh, 20)

	rot := scene3d.Rotation(mgl64.Vec3{-math.Pi / 2, 0, 0}).Mat3()
	up := rot.Mul3x1(mesh[0].Normal)
	assert.InDelta(t, 0, up.X(), 1e-12)
	assert.InDelta(t, 1, up.Y(), 1e-12)
	assert.InDelta(t, 0, up.Z(), 1e-12)

	// the far end of the strip list lies down the -Z axis
	far := rot.Mul3x1(mesh[19].Points[2])
	assert.InDelta(t, -100, far.Z(), 1e-9)
}

func TestTorusSurface(t *testing.T) {
	mesh := scene3d.Torus(0.3, 0.12, 16, 32)
	require.Len(t, mesh, 16*32)

	for _, face := range mesh {
		assert.InDelta(t, 1, face.Normal.Len(), 1e-9)
		for _, p := range face.Points {
			ring := math.Hypot(p.X(), p.Y())
			assert.InDelta(t, 0.12, math.Hypot(ring-0.3, p.Z()), 1e-9)
		}
	}
}

func TestClipNear(t *testing.T) {
	square := []mgl64.Vec3{{-1, -1, -5}, {1, -1, -5}, {1, 1, -5}, {-1, 1, -5}}
	assert.Equal(t, square, scene3d.ClipNear(nil, square, 0.1))

	behind := []mgl64.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}}
	assert.Nil(t, scene3d.ClipNear(nil, behind, 0.1))

	straddle := []mgl64.Vec3{{0, 0, -1}, {1, 0, 1}, {-1, 0, 1}}
	clipped := scene3d.ClipNear(nil, straddle, 0.1)
	require.Len(t, clipped, 3)
	for _, p := range clipped {
		assert.LessOrEqual(t, p.Z(), -0.1+1e-12)
	}
	assert.InDelta(t, -0.45, clipped[0].X(), 1e-12)
	assert.InDelta(t, 0.45, clipped[2].X(), 1e-12)
}

func TestFog(t *testing.T) {
	fog := scene3d.Fog{Color: color.RGBA{A: 0xff}, Near: 10, Far: 80}

	assert.Equal(t, 0.0, fog.Factor(5))
	assert.Equal(t, 0.0, fog.Factor(10))
	assert.InDelta(t, 0.5, fog.Factor(45), 1e-12)
	assert.Equal(t, 1.0, fog.Factor(80))
	assert.Equal(t, 1.0, fog.Factor(500))

	assert.Equal(t, color.RGBA{A: 0xff}, fog.Apply(mgl64.Vec3{1, 1, 1}, 90))
	assert.Equal(t, white, fog.Apply(mgl64.Vec3{1, 1, 1}, 3))
}

func TestLambert(t *testing.T) {
	var lights scene3d.Lights
	lights.AddAmbient(white, 0.6)
	lights.AddDirectional(white, 0.6, mgl64.Vec3{0, 10, 0})

	lit := lights.Shade(white, mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 1.2, lit.X(), 1e-12)

	away := lights.Shade(white, mgl64.Vec3{0, -1, 0})
	assert.InDelta(t, 0.6, away.X(), 1e-12)

	side := lights.Shade(color.RGBA{R: 0xff, A: 0xff}, mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 0.6, side.X(), 1e-12)
	assert.Equal(t, 0.0, side.Y())

	lights.Reset()
	lights.AddDirectional(white, 1, mgl64.Vec3{})
	assert.Equal(t, mgl64.Vec3{}, lights.Shade(white, mgl64.Vec3{0, 1, 0}))
}

func newTestScene() *scene3d.Scene {
	cam := scene3d.NewCamera(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, 90, 0.1, 200)
	cam.Resize(100, 100)
	s := scene3d.NewScene(cam, scene3d.Fog{Color: color.RGBA{A: 0xff}, Near: 100, Far: 200})
	s.Lights.AddAmbient(white, 1)
	return s
}

func TestScenePolygons(t *testing.T) {
	s := newTestScene()
	s.Add(scene3d.Object{Mesh: scene3d.Box(1, 1, 1), Color: white})

	polys := s.Polygons()
	require.Len(t, polys, 1, "only the face towards the camera")

	poly := polys[0]
	assert.InDelta(t, 4.5, poly.Depth, 1e-9)
	assert.Equal(t, white, poly.Color)
	require.Len(t, poly.Points, 4)

	var centre mgl64.Vec2
	for _, p := range poly.Points {
		centre = centre.Add(p)
	}
	centre = centre.Mul(0.25)
	assert.InDelta(t, 50, centre.X(), 1e-9)
	assert.InDelta(t, 50, centre.Y(), 1e-9)
}

func TestScenePaintersOrder(t *testing.T) {
	s := newTestScene()
	s.Add(scene3d.Object{Mesh: scene3d.Box(1, 1, 1), Color: white})
	s.Add(scene3d.Object{Mesh: scene3d.Box(1, 1, 1), Position: mgl64.Vec3{0, 0, -10}, Color: white})
	s.Add(scene3d.Object{Mesh: scene3d.Box(1, 1, 1), Position: mgl64.Vec3{0, 0, 10}, Color: white})
	s.Add(scene3d.Object{Mesh: scene3d.Box(1, 1, 1), Position: mgl64.Vec3{0, 0, -300}, Color: white})

	polys := s.Polygons()
	require.Len(t, polys, 2, "objects behind the camera or past the far plane are dropped")
	assert.InDelta(t, 14.5, polys[0].Depth, 1e-9)
	assert.InDelta(t, 4.5, polys[1].Depth, 1e-9)

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Polygons())
}
