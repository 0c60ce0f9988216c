package scene3d

import "github.com/go-gl/mathgl/mgl64"

// ClipNear clips a convex view-space polygon against the near plane
// z = -near, keeping the part in front of the camera. It appends to dst and
// returns nil when nothing is left.
func ClipNear(dst, poly []mgl64.Vec3, near float64) []mgl64.Vec3 {
	dst = dst[:0]
	inside := func(p mgl64.Vec3) bool { return p.Z() <= -near }

	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn, prevIn := inside(cur), inside(prev)

		if curIn != prevIn {
			t := (-near - prev.Z()) / (cur.Z() - prev.Z())
			dst = append(dst, prev.Add(cur.Sub(prev).Mul(t)))
		}
		if curIn {
			dst = append(dst, cur)
		}
	}

	if len(dst) < 3 {
		return nil
	}
	return dst
}
