// Package animation drives an in-place terminal animation.
//
// A [Driver] runs two units of work over one shared model:
//
//   - the process, started once on its own goroutine, which mutates the
//     model through [Shared.Update]
//   - the render loop, run on the goroutine that calls [Driver.Run], which
//     reads the model through an [Accessor], draws the [element.Element]
//     returned by View, and rewrites the same terminal region at [FPS]
//
// The loop samples the completion flag before each frame. Once the process
// has finished, exactly one more frame is drawn and the cursor is left below
// it. A process error is returned by Run only after that final frame.
//
// # Example
//
//	type counter struct{ N int }
//
//	type ticker struct{}
//
//	func (ticker) Process(ctx context.Context, m *animation.Shared[counter]) error {
//		for i := 0; i < 100; i++ {
//			time.Sleep(10 * time.Millisecond)
//			m.Update(func(c *counter) { c.N++ })
//		}
//		return nil
//	}
//
//	var count = animation.Field[counter, int](func(c *counter) int { return c.N })
//
//	func (ticker) View(a *animation.Accessor[counter]) element.Element {
//		return element.Text(fmt.Sprintf("count %d", count.Get(a)))
//	}
//
//	err := animation.New(&counter{}, ticker{}).Run(ctx)
//
// # Thread Safety
//
// The model is guarded by a read/write mutex held by [Shared]. Single field
// reads never tear; [Accessor.Read] holds the lock across several reads when
// a frame needs a coherent view of more than one field.
package animation
