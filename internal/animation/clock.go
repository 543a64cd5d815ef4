package animation

import "time"

// Clock is the time source used for frame pacing. Tests inject a fake to
// observe the sleeps the driver asks for.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
