package scene3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a flat convex polygon with an outward unit normal, in model space.
type Face struct {
	Points []mgl64.Vec3
	Normal mgl64.Vec3
}

type Mesh []Face

// Box returns an axis-aligned box centred on the origin.
func Box(width, height, depth float64) Mesh {
	x, y, z := width/2, height/2, depth/2
	corners := [8]mgl64.Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	quads := [6]struct {
		idx    [4]int
		normal mgl64.Vec3
	}{
		{[4]int{4, 5, 6, 7}, mgl64.Vec3{0, 0, 1}},
		{[4]int{1, 0, 3, 2}, mgl64.Vec3{0, 0, -1}},
		{[4]int{5, 1, 2, 6}, mgl64.Vec3{1, 0, 0}},
		{[4]int{0, 4, 7, 3}, mgl64.Vec3{-1, 0, 0}},
		{[4]int{7, 6, 2, 3}, mgl64.Vec3{0, 1, 0}},
		{[4]int{0, 1, 5, 4}, mgl64.Vec3{0, -1, 0}},
	}

	mesh := make(Mesh, 0, len(quads))
	for _, q := range quads {
		mesh = append(mesh, Face{
			Points: []mgl64.Vec3{corners[q.idx[0]], corners[q.idx[1]], corners[q.idx[2]], corners[q.idx[3]]},
			Normal: q.normal,
		})
	}
	return mesh
}

// Plane returns a width x height rectangle in the XY plane facing +Z, cut
// into strips along Y so distant parts fog and sort independently.
func Plane(width, height float64, strips int) Mesh {
	strips = max(strips, 1)
	x := width / 2
	step := height / float64(strips)

	mesh := make(Mesh, 0, strips)
	for i := range strips {
		y0 := -height/2 + float64(i)*step
		y1 := y0 + step
		mesh = append(mesh, Face{
			Points: []mgl64.Vec3{{-x, y0, 0}, {x, y0, 0}, {x, y1, 0}, {-x, y1, 0}},
			Normal: mgl64.Vec3{0, 0, 1},
		})
	}
	return mesh
}

// Torus returns a ring of the given radius around the Z axis, with a tube of
// the given radius. Each face is one quad of the surface grid.
func Torus(radius, tube float64, radial, tubular int) Mesh {
	radial = max(radial, 3)
	tubular = max(tubular, 3)

	point := func(i, j int) (mgl64.Vec3, mgl64.Vec3) {
		u := float64(j) / float64(tubular) * 2 * math.Pi
		v := float64(i) / float64(radial) * 2 * math.Pi
		centre := mgl64.Vec3{radius * math.Cos(u), radius * math.Sin(u), 0}
		p := mgl64.Vec3{
			(radius + tube*math.Cos(v)) * math.Cos(u),
			(radius + tube*math.Cos(v)) * math.Sin(u),
			tube * math.Sin(v),
		}
		return p, p.Sub(centre)
	}

	mesh := make(Mesh, 0, radial*tubular)
	for i := range radial {
		for j := range tubular {
			a, na := point(i, j)
			b, nb := point(i, j+1)
			c, nc := point(i+1, j+1)
			d, nd := point(i+1, j)
			mesh = append(mesh, Face{
				Points: []mgl64.Vec3{a, b, c, d},
				Normal: na.Add(nb).Add(nc).Add(nd).Normalize(),
			})
		}
	}
	return mesh
}

// Rotation returns the rotation for Euler angles applied in X, Y, Z order.
func Rotation(angles mgl64.Vec3) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(angles.X()).
		Mul4(mgl64.HomogRotate3DY(angles.Y())).
		Mul4(mgl64.HomogRotate3DZ(angles.Z()))
}
