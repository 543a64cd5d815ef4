package element

import (
	"fmt"
	"strings"
)

// LineSeparator joins the children of a LineStack.
const LineSeparator = "\n"

// Element is a node in a frame tree.
type Element interface {
	Draw() string
}

// Text draws to its literal value.
type Text string

func (t Text) Draw() string { return string(t) }

// Texts draws to the concatenation of its strings.
type Texts []string

func (t Texts) Draw() string { return strings.Join(t, "") }

// Elements draws to the concatenation of its children's draws.
type Elements []Element

func (e Elements) Draw() string {
	var b strings.Builder
	for _, child := range e {
		if child == nil {
			continue
		}
		b.WriteString(child.Draw())
	}
	return b.String()
}

// Of converts a plain value into the matching element so callers can pass
// strings and slices directly.
func Of(v any) Element {
	switch x := v.(type) {
	case nil:
		return Text("")
	case Element:
		return x
	case string:
		return Text(x)
	case []string:
		return Texts(x)
	case []Element:
		return Elements(x)
	case fmt.Stringer:
		return Text(x.String())
	default:
		return Text(fmt.Sprint(x))
	}
}
