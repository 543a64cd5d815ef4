// Package element provides the text tree that animations draw each frame.
//
// Trees are built from plain values and folded into a single string by
// [Element.Draw]:
//
//   - [Text]: a literal string
//   - [Texts]: strings concatenated with no separator
//   - [Elements]: child elements concatenated with no separator
//   - [LineStack]: child elements joined by [LineSeparator]
//
// # Example
//
//	frame := element.Stack(
//		element.Text("Logs:"),
//		element.Lines(logs...),
//		element.Texts{"[", bar, "]"},
//	)
//	out := frame.Draw()
//
// A LineStack may be mutated while a frame is being assembled. Once drawn
// it should be treated as frozen.
package element
