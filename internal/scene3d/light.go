package scene3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type directional struct {
	radiance mgl64.Vec3
	toLight  mgl64.Vec3
}

// Lights accumulates ambient and directional contributions for lambert
// shading. Colours are treated as linear in [0, 1].
type Lights struct {
	ambient     mgl64.Vec3
	directional []directional
}

func (l *Lights) Reset() {
	l.ambient = mgl64.Vec3{}
	l.directional = l.directional[:0]
}

func (l *Lights) AddAmbient(c color.RGBA, intensity float64) {
	l.ambient = l.ambient.Add(vec(c).Mul(intensity))
}

// AddDirectional adds a light shining from position towards the origin. A
// light at the origin has no direction and is ignored.
func (l *Lights) AddDirectional(c color.RGBA, intensity float64, position mgl64.Vec3) {
	if position.Len() == 0 {
		return
	}
	l.directional = append(l.directional, directional{
		radiance: vec(c).Mul(intensity),
		toLight:  position.Normalize(),
	})
}

// Shade returns the lit colour of a surface with world normal n.
func (l *Lights) Shade(base color.RGBA, n mgl64.Vec3) mgl64.Vec3 {
	light := l.ambient
	for _, d := range l.directional {
		if k := n.Dot(d.toLight); k > 0 {
			light = light.Add(d.radiance.Mul(k))
		}
	}
	b := vec(base)
	return mgl64.Vec3{b[0] * light[0], b[1] * light[1], b[2] * light[2]}
}

// Fog blends linearly into Color between Near and Far view distance.
type Fog struct {
	Color     color.RGBA
	Near, Far float64
}

func (f Fog) Factor(distance float64) float64 {
	if f.Far <= f.Near {
		return 0
	}
	return mgl64.Clamp((distance-f.Near)/(f.Far-f.Near), 0, 1)
}

func (f Fog) Apply(c mgl64.Vec3, distance float64) color.RGBA {
	k := f.Factor(distance)
	fog := vec(f.Color)
	return rgba(c.Mul(1 - k).Add(fog.Mul(k)))
}

func vec(c color.RGBA) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func rgba(v mgl64.Vec3) color.RGBA {
	ch := func(x float64) uint8 {
		return uint8(math.Round(mgl64.Clamp(x, 0, 1) * 255))
	}
	return color.RGBA{R: ch(v[0]), G: ch(v[1]), B: ch(v[2]), A: 0xff}
}
