package animation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/san-kum/termreel/internal/element"
)

const (
	// FPS is the target frame rate of the render loop.
	FPS = 30

	// FrameDuration is the target time budget of one frame.
	FrameDuration = time.Second / FPS
)

// Animation supplies the two halves of a driver run. Process is called once
// on its own goroutine and is the only code allowed to mutate the model.
// View is called once per frame on the goroutine running Run.
type Animation[M any] interface {
	Process(ctx context.Context, model *Shared[M]) error
	View(model *Accessor[M]) element.Element
}

type Option func(*options)

type options struct {
	out    io.Writer
	clock  Clock
	logger *slog.Logger
}

// WithOutput sets where frames are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithClock sets the time source used for pacing.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger for run lifecycle events. Defaults to a
// discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Driver renders an Animation over a model at FPS until its process ends.
type Driver[M any] struct {
	anim   Animation[M]
	shared *Shared[M]
	out    io.Writer
	clock  Clock
	logger *slog.Logger

	running atomic.Bool
	done    atomic.Bool
	frames  atomic.Int64
}

// New binds anim to model. The driver keeps the pointer and never copies
// the model, so the caller can inspect it after Run returns.
func New[M any](model *M, anim Animation[M], opts ...Option) *Driver[M] {
	o := options{
		out:    os.Stdout,
		clock:  realClock{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Driver[M]{
		anim:   anim,
		shared: newShared(model),
		out:    o.out,
		clock:  o.clock,
		logger: o.logger,
	}
}

// Frames reports how many frames the current or most recent Run has written.
func (d *Driver[M]) Frames() int {
	return int(d.frames.Load())
}

// Run starts the process, renders frames until the process has finished,
// draws one final frame and then returns the process's error.
//
// ctx is passed to the process only. The driver never stops on its own; the
// run ends when the process returns. If a frame cannot be written the loop
// stops at once and the write error is returned without waiting for the
// process.
func (d *Driver[M]) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer d.running.Store(false)

	d.done.Store(false)
	d.frames.Store(0)

	result := make(chan error, 1)
	go d.process(ctx, result)

	accessor := &Accessor[M]{shared: d.shared}
	start := d.clock.Now()
	d.logger.Debug("animation started", "fps", FPS)

	for {
		isLast := d.done.Load()
		if err := d.renderFrame(accessor, isLast); err != nil {
			d.logger.Error("animation aborted", "frames", d.Frames(), "error", err)
			return err
		}
		if isLast {
			break
		}
	}

	err := <-result
	d.logger.Debug("animation finished",
		"frames", d.Frames(),
		"elapsed", d.clock.Now().Sub(start),
		"error", err)
	return err
}

// process runs the animation's Process and flags completion as its last
// action, whether Process returned or panicked.
func (d *Driver[M]) process(ctx context.Context, result chan<- error) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrProcessPanic, r)
		}
		result <- err
		d.done.Store(true)
	}()
	err = d.anim.Process(ctx, d.shared)
}

func (d *Driver[M]) renderFrame(accessor *Accessor[M], isLast bool) error {
	begin := d.clock.Now()

	var text string
	if e := d.anim.View(accessor); e != nil {
		text = e.Draw()
	}
	if _, err := io.WriteString(d.out, encodeFrame(text, isLast)); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	d.frames.Add(1)

	if elapsed := d.clock.Now().Sub(begin); elapsed < FrameDuration {
		d.clock.Sleep(FrameDuration - elapsed)
	}
	return nil
}
