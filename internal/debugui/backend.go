package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// Backend wraps the ebiten ImGui backend so it can be stored as a singleton.
type Backend struct {
	*ebitenbackend.EbitenBackend
}

// NewBackend creates the ImGui context for an ebiten window. It must be
// called before ebiten.RunGame.
func NewBackend(title string, width, height int) Backend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return Backend{EbitenBackend: b}
}
