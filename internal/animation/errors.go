package animation

import "errors"

var (
	// ErrRunning is returned when Run is called on a driver that is already running.
	ErrRunning = errors.New("animation: driver already running")

	// ErrWrite wraps a failure writing a frame to the output.
	ErrWrite = errors.New("animation: frame write failed")

	// ErrProcessPanic wraps a panic recovered from the process goroutine.
	ErrProcessPanic = errors.New("animation: process panicked")
)
