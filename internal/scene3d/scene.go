package scene3d

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Object places a mesh in the world. Rotation holds Euler angles in radians.
type Object struct {
	Mesh     Mesh
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Color    color.RGBA
}

// Polygon is a shaded, projected face. Points are in pixels and Depth is the
// mean view distance of the clipped face.
type Polygon struct {
	Points []mgl64.Vec2
	Color  color.RGBA
	Depth  float64
}

// Scene collects objects for one frame and produces their polygons.
type Scene struct {
	Camera *Camera
	Lights Lights
	Fog    Fog

	objects  []Object
	polygons []Polygon
	world    []mgl64.Vec3
	view     []mgl64.Vec3
	clipped  []mgl64.Vec3
}

func NewScene(camera *Camera, fog Fog) *Scene {
	return &Scene{Camera: camera, Fog: fog}
}

// Reset drops the objects and lights of the previous frame.
func (s *Scene) Reset() {
	s.objects = s.objects[:0]
	s.Lights.Reset()
}

func (s *Scene) Add(obj Object) {
	s.objects = append(s.objects, obj)
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Polygons projects every front-facing face, clipped to the near plane and
// dropped past the far plane, and returns them sorted farthest first. The
// returned slice is reused by the next call.
func (s *Scene) Polygons() []Polygon {
	s.polygons = s.polygons[:0]

	cam := s.Camera
	view := cam.View()
	proj := cam.Projection()

	for _, obj := range s.objects {
		rot := Rotation(obj.Rotation)
		model := mgl64.Translate3D(obj.Position.Elem()).Mul4(rot)
		normals := rot.Mat3()

		for _, face := range obj.Mesh {
			s.world = s.world[:0]
			for _, p := range face.Points {
				s.world = append(s.world, model.Mul4x1(p.Vec4(1)).Vec3())
			}
			normal := normals.Mul3x1(face.Normal)
			if normal.Dot(s.world[0].Sub(cam.Eye)) >= 0 {
				continue
			}

			s.view = s.view[:0]
			beyond := true
			for _, p := range s.world {
				v := view.Mul4x1(p.Vec4(1)).Vec3()
				beyond = beyond && -v.Z() > cam.Far
				s.view = append(s.view, v)
			}
			if beyond {
				continue
			}

			clipped := ClipNear(s.clipped, s.view, cam.Near)
			if clipped == nil {
				continue
			}
			s.clipped = clipped

			poly := Polygon{Points: make([]mgl64.Vec2, 0, len(clipped))}
			for _, v := range clipped {
				poly.Depth += -v.Z()
				poly.Points = append(poly.Points, cam.ToScreen(proj, v))
			}
			poly.Depth /= float64(len(clipped))
			poly.Color = s.Fog.Apply(s.Lights.Shade(obj.Color, normal), poly.Depth)
			s.polygons = append(s.polygons, poly)
		}
	}

	slices.SortStableFunc(s.polygons, func(a, b Polygon) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return s.polygons
}
