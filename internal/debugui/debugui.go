// Package debugui draws an optional Dear ImGui overlay over a running
// session. Windows are ImguiItem entities in the session storage; ImguiSystem
// queues their render functions as deferred commands so they run after the
// frame systems, between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cityrun/ecs"
)

// ImguiItem holds a render function called once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui is consuming mouse or keyboard input.
// The host checks it before forwarding key events to the session.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and queues every window's render
// function.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range s.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents adds ImguiItem to registry. ImguiInputState and Backend
// are singletons and need no registration.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
