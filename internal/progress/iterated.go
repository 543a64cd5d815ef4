package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/termreel/internal/animation"
)

const (
	DefaultBarLength  = 40
	DefaultSweepSpeed = 1.0
	DefaultTitle      = "Logs:"
)

// LogFunc appends a line to the log list shown above the progress bar.
type LogFunc func(line string)

// Handler processes one item. index is the item's position in the list.
type Handler[T any] func(ctx context.Context, index int, item T, log LogFunc) error

// ItemError reports which item stopped the run.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

type Option func(*settings)

type settings struct {
	barLength   int
	sweepSpeed  float64
	graphHeight int
	maxWidth    int
	title       string
}

// WithBarLength sets the number of cells in the progress bar.
func WithBarLength(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.barLength = n
		}
	}
}

// WithSweepSpeed sets how many cells the highlight moves per frame.
func WithSweepSpeed(speed float64) Option {
	return func(s *settings) {
		if speed >= 0 {
			s.sweepSpeed = speed
		}
	}
}

// WithTimingGraph adds a plot of per-item durations, height rows tall.
// Zero disables it.
func WithTimingGraph(height int) Option {
	return func(s *settings) {
		if height >= 0 {
			s.graphHeight = height
		}
	}
}

// WithMaxWidth truncates log lines to n terminal cells so they never wrap.
// Zero disables truncation.
func WithMaxWidth(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxWidth = n
		}
	}
}

// WithTitle sets the header line drawn above the logs.
func WithTitle(title string) Option {
	return func(s *settings) { s.title = title }
}

var _ animation.Animation[Stats] = (*Iterated[struct{}])(nil)

// Iterated is an animation that runs a handler over items and shows its
// progress. It implements animation.Animation[Stats].
type Iterated[T any] struct {
	items   []T
	handler Handler[T]
	cfg     settings
	sweep   sweep
}

// New returns an Iterated animation over items. A nil handler does nothing
// for each item.
func New[T any](items []T, handler Handler[T], opts ...Option) *Iterated[T] {
	cfg := settings{
		barLength:  DefaultBarLength,
		sweepSpeed: DefaultSweepSpeed,
		title:      DefaultTitle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if handler == nil {
		handler = func(context.Context, int, T, LogFunc) error { return nil }
	}
	return &Iterated[T]{
		items:   items,
		handler: handler,
		cfg:     cfg,
		sweep:   sweep{speed: cfg.sweepSpeed},
	}
}

// Run animates the handler over all items and returns the final statistics.
// If a frame write fails, Run returns before the handler has finished and
// the returned Stats may still be changing.
func (it *Iterated[T]) Run(ctx context.Context, opts ...animation.Option) (*Stats, error) {
	stats := &Stats{}
	it.sweep.pos = 0
	err := animation.New(stats, it, opts...).Run(ctx)
	return stats, err
}

// Process calls the handler for every item in order, timing each call. The
// first handler error stops the run.
func (it *Iterated[T]) Process(ctx context.Context, model *animation.Shared[Stats]) error {
	log := func(line string) {
		model.Update(func(s *Stats) { s.Logs = append(s.Logs, line) })
	}

	total := len(it.items)
	model.Update(func(s *Stats) { s.Total = total })

	for i, item := range it.items {
		start := time.Now()
		if err := it.handler(ctx, i, item, log); err != nil {
			return &ItemError{Index: i, Err: err}
		}
		taken := time.Since(start)
		model.Update(func(s *Stats) { s.record(i, taken) })
	}
	return nil
}
