package animation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/termreel/internal/element"
)

var _ = Describe("Driver", func() {
	var (
		out   *bytes.Buffer
		clock *fakeClock
		model *counter
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		clock = newFakeClock()
		model = &counter{}
	})

	showCount := func(a *Accessor[counter]) element.Element {
		return element.Text(fmt.Sprintf("n=%d", count.Get(a)))
	}

	Context("when the process finishes immediately", func() {
		It("still renders one final frame", func() {
			anim := &scripted{
				process: func(ctx context.Context, m *Shared[counter]) error { return nil },
				view:    showCount,
			}
			d := New(model, anim, WithOutput(out), WithClock(clock))

			Expect(d.Run(context.Background())).To(Succeed())
			Expect(d.Frames()).To(BeNumerically(">=", 1))

			frames := splitFrames(out.String())
			Expect(frames).To(HaveLen(d.Frames()))
			Expect(frames[len(frames)-1]).To(Equal("\x1b[2Kn=0\n"))
		})
	})

	Context("when the process runs for several frames", func() {
		It("moves the cursor up after every frame except the last", func() {
			release := make(chan struct{})
			views := 0
			anim := &scripted{
				process: func(ctx context.Context, m *Shared[counter]) error {
					<-release
					return nil
				},
				view: func(a *Accessor[counter]) element.Element {
					views++
					if views == 4 {
						close(release)
					}
					return element.Lines("first", "second")
				},
			}
			d := New(model, anim, WithOutput(out), WithClock(clock))

			Expect(d.Run(context.Background())).To(Succeed())
			Expect(d.Frames()).To(BeNumerically(">=", 5))
			Expect(d.Frames()).To(Equal(views))

			raw := out.String()
			Expect(strings.Count(raw, "\x1b[2A")).To(Equal(d.Frames() - 1))
			Expect(raw).To(HaveSuffix("\x1b[2Kfirst\n\x1b[2Ksecond\n"))
			for _, frame := range splitFrames(raw) {
				Expect(frame).To(Equal("\x1b[2Kfirst\n\x1b[2Ksecond\n"))
			}
		})

		It("draws the final frame from the model as it was after completion", func() {
			release := make(chan struct{})
			views := 0
			anim := &scripted{
				process: func(ctx context.Context, m *Shared[counter]) error {
					m.Update(func(c *counter) { c.N = 1 })
					<-release
					m.Update(func(c *counter) { c.N = 99 })
					return nil
				},
				view: func(a *Accessor[counter]) element.Element {
					views++
					if views == 3 {
						close(release)
					}
					return showCount(a)
				},
			}
			d := New(model, anim, WithOutput(out), WithClock(clock))

			Expect(d.Run(context.Background())).To(Succeed())

			frames := splitFrames(out.String())
			Expect(frames[len(frames)-1]).To(Equal("\x1b[2Kn=99\n"))
			Expect(model.N).To(Equal(99))
		})

		It("operates on the caller's model instance", func() {
			anim := &scripted{
				process: func(ctx context.Context, m *Shared[counter]) error {
					m.Update(func(c *counter) { c.N = 7 })
					return nil
				},
				view: showCount,
			}
			d := New(model, anim, WithOutput(out), WithClock(clock))

			Expect(d.Run(context.Background())).To(Succeed())
			Expect(model.N).To(Equal(7))
		})
	})

	Context("when the process fails", func() {
		It("returns the error after the final frame is drawn", func() {
			boom := errors.New("boom")
			anim := &scripted{
				process: func(ctx context.Context, m *Shared[counter]) error { return boom },
				view:    showCount,
			}
			d := New(model, anim, WithOutput(out), WithClock(clock))

			err := d.Run(context.Background())
			Expect(err).To(MatchError(boom))
			Expect(d.Frames()).To(BeNumerically(">=", 1))
			Expect(out.String()).To(HaveSuffix("\x1b[2Kn=0\n"))
		})

		It("renders every frame before a late failure surfaces", func() {
			boom := errors.New("late boom")
			release := make(chan struct{})
			views := 0
			anim := &scripted{
				process: func(ctx context.Context, m *Shared[counter]) error {
					<-release
					return boom
				},
				view: func(a *Accessor[counter]) element.Element {
					views++
					if views == 3 {
						close(release)
					}
					return showCount(a)
				},
			}
			d := New(model, anim, WithOutput(out), WithClock(clock))

			Expect(d.Run(context.Background())).To(MatchError(boom))
			Expect(d.Frames()).To(BeNumerically(">=", 4))
			frames := splitFrames(out.String())
			Expect(frames[len(frames)-1]).To(Equal("\x1b[2Kn=0\n"))
		})

		It("converts a panic into ErrProcessPanic", func() {
			anim := &scripted{
				process: func(ctx context.Context, m *Shared[counter]) error { panic("kaput") },
				view:    showCount,
			}
			d := New(model, anim, WithOutput(out), WithClock(clock))

			err := d.Run(context.Background())
			Expect(errors.Is(err, ErrProcessPanic)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("kaput"))
			Expect(d.Frames()).To(BeNumerically(">=", 1))
		})
	})

	Context("when a frame cannot be written", func() {
		It("stops the loop and returns ErrWrite", func() {
			anim := &scripted{
				process: func(ctx context.Context, m *Shared[counter]) error { return nil },
				view:    showCount,
			}
			d := New(model, anim, WithOutput(failingWriter{io.ErrClosedPipe}), WithClock(clock))

			err := d.Run(context.Background())
			Expect(errors.Is(err, ErrWrite)).To(BeTrue())
			Expect(errors.Is(err, io.ErrClosedPipe)).To(BeTrue())
			Expect(d.Frames()).To(Equal(0))
		})
	})

	It("rejects a second Run while one is active", func() {
		started := make(chan struct{})
		release := make(chan struct{})
		anim := &scripted{
			process: func(ctx context.Context, m *Shared[counter]) error {
				close(started)
				<-release
				return nil
			},
			view: showCount,
		}
		d := New(model, anim, WithOutput(io.Discard))

		errs := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			errs <- d.Run(context.Background())
		}()

		Eventually(started).Should(BeClosed())
		Expect(d.Run(context.Background())).To(MatchError(ErrRunning))
		close(release)
		Eventually(errs).WithTimeout(2 * time.Second).Should(Receive(BeNil()))
	})

	It("passes the run context to the process", func() {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "marker")
		var seen any
		anim := &scripted{
			process: func(ctx context.Context, m *Shared[counter]) error {
				seen = ctx.Value(key{})
				return nil
			},
			view: showCount,
		}
		d := New(model, anim, WithOutput(out), WithClock(clock))

		Expect(d.Run(ctx)).To(Succeed())
		Expect(seen).To(Equal("marker"))
	})

	It("can run again after a completed run", func() {
		runs := 0
		anim := &scripted{
			process: func(ctx context.Context, m *Shared[counter]) error {
				runs++
				m.Update(func(c *counter) { c.N = runs })
				return nil
			},
			view: showCount,
		}
		d := New(model, anim, WithOutput(out), WithClock(clock))

		Expect(d.Run(context.Background())).To(Succeed())
		Expect(d.Run(context.Background())).To(Succeed())
		Expect(model.N).To(Equal(2))
		Expect(out.String()).To(HaveSuffix("\x1b[2Kn=2\n"))
	})

	It("treats a nil element as an empty frame", func() {
		anim := &scripted{
			process: func(ctx context.Context, m *Shared[counter]) error { return nil },
			view:    func(a *Accessor[counter]) element.Element { return nil },
		}
		d := New(model, anim, WithOutput(out), WithClock(clock))

		Expect(d.Run(context.Background())).To(Succeed())
		Expect(out.String()).To(HaveSuffix("\x1b[2K\n"))
	})
})

var _ = Describe("Frame pacing", func() {
	var clock *fakeClock

	BeforeEach(func() {
		clock = newFakeClock()
	})

	// run drives frames until at least minFrames have been drawn, charging
	// viewCost of clock time to every View call.
	run := func(minFrames int, viewCost time.Duration) *Driver[counter] {
		release := make(chan struct{})
		views := 0
		anim := &scripted{
			process: func(ctx context.Context, m *Shared[counter]) error {
				<-release
				return nil
			},
			view: func(a *Accessor[counter]) element.Element {
				clock.Advance(viewCost)
				views++
				if views == minFrames {
					close(release)
				}
				return element.Text("frame")
			},
		}
		d := New(&counter{}, anim, WithOutput(io.Discard), WithClock(clock))
		Expect(d.Run(context.Background())).To(Succeed())
		return d
	}

	It("sleeps the full frame duration when drawing is instant", func() {
		d := run(5, 0)

		sleeps := clock.Sleeps()
		Expect(sleeps).To(HaveLen(d.Frames()))
		for _, s := range sleeps {
			Expect(s).To(Equal(FrameDuration))
		}
	})

	It("sleeps only the remainder of the frame budget", func() {
		d := run(5, 10*time.Millisecond)

		sleeps := clock.Sleeps()
		Expect(sleeps).To(HaveLen(d.Frames()))
		for _, s := range sleeps {
			Expect(s).To(Equal(FrameDuration - 10*time.Millisecond))
		}
	})

	It("does not sleep when drawing exceeds the frame duration", func() {
		d := run(5, 2*FrameDuration)

		Expect(d.Frames()).To(BeNumerically(">=", 5))
		Expect(clock.Sleeps()).To(BeEmpty())
	})

	It("does not sleep when drawing takes exactly the frame duration", func() {
		run(3, FrameDuration)

		Expect(clock.Sleeps()).To(BeEmpty())
	})

	It("keeps each real frame at least one frame duration long", func() {
		anim := &scripted{
			process: func(ctx context.Context, m *Shared[counter]) error {
				time.Sleep(150 * time.Millisecond)
				return nil
			},
			view: func(a *Accessor[counter]) element.Element { return element.Text("tick") },
		}
		d := New(&counter{}, anim, WithOutput(io.Discard))

		start := time.Now()
		Expect(d.Run(context.Background())).To(Succeed())
		elapsed := time.Since(start)

		Expect(d.Frames()).To(BeNumerically(">=", 2))
		Expect(elapsed).To(BeNumerically(">=", time.Duration(d.Frames())*FrameDuration))
		Expect(d.Frames()).To(BeNumerically("<=", int(elapsed/FrameDuration)+1))
	})
})
