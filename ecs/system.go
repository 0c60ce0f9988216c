package ecs

// System is one step of a frame. Systems are plain structs; Query and
// Singleton fields are bound by Scheduler.Register, any other field is
// private state kept between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system of one Scheduler.Once call.
type UpdateFrame struct {
	// DeltaTime is the wall time since the previous frame in seconds, or the
	// fixed step passed to Once.
	DeltaTime float64
	// Tick counts frames, starting at 1 for the first frame.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}
