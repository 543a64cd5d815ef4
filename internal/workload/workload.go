// Package workload provides a synthetic per-item task for demonstrating the
// progress animation.
package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/termreel/internal/progress"
)

// ErrInjected is returned by the item selected with Spec.FailAt.
var ErrInjected = errors.New("workload: injected failure")

// Spec describes a synthetic run.
type Spec struct {
	Items    int
	MinDelay time.Duration
	MaxDelay time.Duration
	// LogEvery emits a log line for every n-th item. Zero disables logging.
	LogEvery int
	// FailAt is the 1-based position of the item that fails. Zero disables
	// failure.
	FailAt int
	Seed   int64
}

func (s Spec) Validate() error {
	if s.Items < 0 {
		return fmt.Errorf("items must not be negative, got %d", s.Items)
	}
	if s.MinDelay < 0 {
		return fmt.Errorf("min delay must not be negative, got %v", s.MinDelay)
	}
	if s.MaxDelay < s.MinDelay {
		return fmt.Errorf("max delay %v is below min delay %v", s.MaxDelay, s.MinDelay)
	}
	if s.LogEvery < 0 {
		return fmt.Errorf("log interval must not be negative, got %d", s.LogEvery)
	}
	if s.FailAt < 0 {
		return fmt.Errorf("fail position must not be negative, got %d", s.FailAt)
	}
	return nil
}

// IDs returns the item list for the run: 0..Items-1.
func (s Spec) IDs() []int {
	ids := make([]int, s.Items)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Task simulates work on one item per call. It is safe for use from a
// single goroutine at a time, which is how the progress animation calls it.
type Task struct {
	spec Spec

	mu  sync.Mutex
	rng *rand.Rand
}

func NewTask(spec Spec) *Task {
	return &Task{
		spec: spec,
		rng:  rand.New(rand.NewSource(spec.Seed)),
	}
}

// Delay returns the next simulated duration in [MinDelay, MaxDelay).
func (t *Task) Delay() time.Duration {
	span := t.spec.MaxDelay - t.spec.MinDelay
	if span <= 0 {
		return t.spec.MinDelay
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spec.MinDelay + time.Duration(t.rng.Int63n(int64(span)))
}

// Handle is a progress.Handler for the item list returned by Spec.IDs.
func (t *Task) Handle(ctx context.Context, index int, id int, log progress.LogFunc) error {
	timer := time.NewTimer(t.Delay())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if t.spec.FailAt > 0 && index+1 == t.spec.FailAt {
		log(fmt.Sprintf("item %d failed", id))
		return ErrInjected
	}
	if t.spec.LogEvery > 0 && index%t.spec.LogEvery == 0 {
		log(fmt.Sprintf("checkpoint at item %d", id))
	}
	return nil
}
