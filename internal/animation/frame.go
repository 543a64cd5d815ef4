package animation

import (
	"strconv"
	"strings"

	"github.com/san-kum/termreel/internal/element"
)

const (
	clearLine = "\033[2K"
)

func cursorUp(n int) string {
	return "\033[" + strconv.Itoa(n) + "A"
}

// lineCount is the number of terminal lines text occupies.
func lineCount(text string) int {
	return strings.Count(text, element.LineSeparator) + 1
}

// encodeFrame wraps text with the control codes for an in-place redraw.
// Every line is cleared before it is written. Unless this is the last frame,
// the cursor is moved back to the first line so the next frame overwrites
// this one.
func encodeFrame(text string, isLast bool) string {
	var b strings.Builder
	b.Grow(len(text) + 16)
	b.WriteString(clearLine)
	b.WriteString(strings.ReplaceAll(text, element.LineSeparator, element.LineSeparator+clearLine))
	b.WriteString(element.LineSeparator)
	if !isLast {
		b.WriteString(cursorUp(lineCount(text)))
	}
	return b.String()
}
