package element

import (
	"iter"
	"slices"
	"strings"
)

// LineStack is an ordered list of elements drawn one per line. The zero
// value is an empty stack ready to use.
type LineStack struct {
	items []Element
}

// Stack returns a LineStack holding items in order.
func Stack(items ...Element) *LineStack {
	s := &LineStack{}
	s.Append(items...)
	return s
}

// Lines returns a LineStack with one Text per string.
func Lines(lines ...string) *LineStack {
	s := &LineStack{}
	s.AppendText(lines...)
	return s
}

func (s *LineStack) Append(items ...Element) {
	s.items = append(s.items, items...)
}

// AppendText appends each string as a Text element.
func (s *LineStack) AppendText(lines ...string) {
	s.items = slices.Grow(s.items, len(lines))
	for _, l := range lines {
		s.items = append(s.items, Text(l))
	}
}

// Insert places e at index i, shifting later elements down. It panics if
// i is outside [0, Len()].
func (s *LineStack) Insert(i int, e Element) {
	s.items = slices.Insert(s.items, i, e)
}

// RemoveAt deletes the element at index i.
func (s *LineStack) RemoveAt(i int) {
	s.items = slices.Delete(s.items, i, i+1)
}

func (s *LineStack) At(i int) Element { return s.items[i] }

func (s *LineStack) Set(i int, e Element) { s.items[i] = e }

// IndexFunc returns the index of the first element satisfying match, or -1.
func (s *LineStack) IndexFunc(match func(Element) bool) int {
	return slices.IndexFunc(s.items, match)
}

func (s *LineStack) Len() int { return len(s.items) }

func (s *LineStack) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// All iterates over the stack in order.
func (s *LineStack) All() iter.Seq2[int, Element] {
	return slices.All(s.items)
}

// Draw joins the children's draws with LineSeparator. An empty stack draws
// to the empty string.
func (s *LineStack) Draw() string {
	if s == nil || len(s.items) == 0 {
		return ""
	}
	parts := make([]string, len(s.items))
	for i, item := range s.items {
		if item != nil {
			parts[i] = item.Draw()
		}
	}
	return strings.Join(parts, LineSeparator)
}
