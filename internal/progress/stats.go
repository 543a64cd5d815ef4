package progress

import (
	"slices"
	"time"

	"github.com/san-kum/termreel/internal/animation"
)

// Stats is the model mutated by an iterated process and drawn each frame.
type Stats struct {
	Total int
	Index int

	// Elapsed is the sum of all item durations so far.
	Elapsed   time.Duration
	Taken     time.Duration
	Avg       time.Duration
	Estimated time.Duration

	Durations []time.Duration
	Logs      []string
}

// record folds one finished item into the running statistics.
func (s *Stats) record(index int, taken time.Duration) {
	s.Taken = taken
	s.Index = index + 1
	s.Elapsed += taken
	s.Avg = s.Elapsed / time.Duration(s.Index)
	s.Estimated = time.Duration(s.Total-s.Index) * s.Avg
	s.Durations = append(s.Durations, taken)
}

func (s *Stats) clone() Stats {
	c := *s
	c.Durations = slices.Clone(s.Durations)
	c.Logs = slices.Clone(s.Logs)
	return c
}

// snapshot copies the whole model under one read lock so a frame never mixes
// values from before and after an update.
var snapshot = animation.Field[Stats, Stats](func(s *Stats) Stats { return s.clone() })
