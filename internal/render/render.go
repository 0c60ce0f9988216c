// Package render draws a runner session onto an ebiten image.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/cityrun/ecs"
	"github.com/plus3/cityrun/internal/runner"
	"github.com/plus3/cityrun/internal/scene3d"
)

const (
	cameraFov  = 75
	cameraNear = 0.1
	cameraFar  = 200

	fogNear = 10
	fogFar  = 80

	roadStrips    = 40
	torusRadial   = 8
	torusTubular  = 16
	labelX        = 10
	labelY        = 10
	maxBatchIndex = math.MaxUint16
)

var (
	cameraEye    = mgl64.Vec3{0, 5, 8}
	cameraTarget = mgl64.Vec3{0, 0, -20}
	background   = color.RGBA{A: 0xff}
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

type shapeView = struct {
	*runner.Transform
	*runner.Shape
}

type lightView = struct {
	*runner.Transform
	*runner.Light
}

type meshKey struct {
	kind runner.ShapeKind
	size mgl64.Vec3
}

// Renderer keeps the camera and the per-frame buffers for one window.
type Renderer struct {
	scene  *scene3d.Scene
	shapes *ecs.View[shapeView]
	lights *ecs.View[lightView]
	meshes map[meshKey]scene3d.Mesh

	vertices []ebiten.Vertex
	indices  []uint16
}

func New(storage *ecs.Storage) *Renderer {
	cam := scene3d.NewCamera(cameraEye, cameraTarget, cameraFov, cameraNear, cameraFar)
	return &Renderer{
		scene:  scene3d.NewScene(cam, scene3d.Fog{Color: background, Near: fogNear, Far: fogFar}),
		shapes: ecs.NewView[shapeView](storage),
		lights: ecs.NewView[lightView](storage),
		meshes: map[meshKey]scene3d.Mesh{},
	}
}

// Resize follows the window size. The projection picks up the new aspect
// ratio on the next Draw.
func (r *Renderer) Resize(width, height int) {
	r.scene.Camera.Resize(width, height)
}

// Draw renders the scene and the score label.
func (r *Renderer) Draw(screen *ebiten.Image, score string) {
	screen.Fill(background)

	r.scene.Reset()
	for l := range r.lights.Values() {
		switch l.Kind {
		case runner.LightAmbient:
			r.scene.Lights.AddAmbient(l.Color, l.Intensity)
		case runner.LightDirectional:
			r.scene.Lights.AddDirectional(l.Color, l.Intensity, l.Position)
		}
	}
	for s := range r.shapes.Values() {
		r.scene.Add(scene3d.Object{
			Mesh:     r.mesh(s.Shape),
			Position: s.Position,
			Rotation: s.Rotation,
			Color:    s.Color,
		})
	}

	r.fill(screen, r.scene.Polygons())
	ebitenutil.DebugPrintAt(screen, "Score: "+score, labelX, labelY)
}

// Objects returns the number of objects queued by the last Draw.
func (r *Renderer) Objects() int {
	return r.scene.Len()
}

func (r *Renderer) mesh(shape *runner.Shape) scene3d.Mesh {
	key := meshKey{shape.Kind, shape.Size}
	if m, ok := r.meshes[key]; ok {
		return m
	}

	var m scene3d.Mesh
	switch shape.Kind {
	case runner.ShapeBox:
		m = scene3d.Box(shape.Size.Elem())
	case runner.ShapePlane:
		m = scene3d.Plane(shape.Size.X(), shape.Size.Y(), roadStrips)
	case runner.ShapeTorus:
		m = scene3d.Torus(shape.Size.X(), shape.Size.Y(), torusRadial, torusTubular)
	}
	r.meshes[key] = m
	return m
}

// fill draws the polygons in order as triangle fans, batching as many as fit
// in one index range.
func (r *Renderer) fill(screen *ebiten.Image, polys []scene3d.Polygon) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	for _, poly := range polys {
		if len(r.vertices)+len(poly.Points) > maxBatchIndex {
			r.flush(screen)
		}

		base := uint16(len(r.vertices))
		cr := float32(poly.Color.R) / 0xff
		cg := float32(poly.Color.G) / 0xff
		cb := float32(poly.Color.B) / 0xff
		for _, p := range poly.Points {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   float32(p.X()),
				DstY:   float32(p.Y()),
				SrcX:   1,
				SrcY:   1,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: 1,
			})
		}
		for i := 2; i < len(poly.Points); i++ {
			r.indices = append(r.indices, base, base+uint16(i-1), base+uint16(i))
		}
	}
	r.flush(screen)
}

func (r *Renderer) flush(screen *ebiten.Image) {
	if len(r.indices) > 0 {
		screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	}
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}
