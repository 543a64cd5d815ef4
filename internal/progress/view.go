package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/termreel/internal/animation"
	"github.com/san-kum/termreel/internal/element"
)

const graphCaption = "ms per item"

// View lays out the title, the log list, the timing block, the optional
// timing graph and the progress bar, one below the other.
func (it *Iterated[T]) View(model *animation.Accessor[Stats]) element.Element {
	s := snapshot.Get(model)

	frame := element.Stack(
		element.Text(titleStyle.Render(it.cfg.title)),
		it.logList(s.Logs),
		timingStats(s),
	)
	if it.cfg.graphHeight > 0 {
		if g := timingGraph(s.Durations, it.cfg.barLength, it.cfg.graphHeight, it.cfg.maxWidth); g != nil {
			frame.Append(g)
		}
	}

	frac := fraction(s.Index, s.Total)
	highlight := it.sweep.advance(filledLength(frac, it.cfg.barLength))
	frame.Append(renderBar(frac, it.cfg.barLength, highlight))
	return frame
}

func (it *Iterated[T]) logList(logs []string) *element.LineStack {
	list := &element.LineStack{}
	for _, line := range logs {
		if it.cfg.maxWidth > 0 {
			line = ansi.Truncate(line, it.cfg.maxWidth, "…")
		}
		list.Append(element.Text(logStyle.Render(line)))
	}
	return list
}

func timingStats(s Stats) *element.LineStack {
	return element.Lines(
		fmt.Sprintf("(%d/%d)", s.Index, s.Total),
		"- Taken "+metricValue.Render(fmt.Sprintf("%.2fms", millis(s.Taken))),
		"- Avg "+metricValue.Render(fmt.Sprintf("%.2fms", millis(s.Avg))),
		"- Estimated "+metricValue.Render(fmt.Sprintf("%.2fmin", s.Estimated.Minutes()))+" left",
	)
}

// timingGraph plots item durations. It needs at least two points. Lines
// wider than maxWidth are cut, including the axis labels.
func timingGraph(durations []time.Duration, width, height, maxWidth int) *element.LineStack {
	if len(durations) < 2 {
		return nil
	}
	series := make([]float64, len(durations))
	for i, d := range durations {
		series[i] = millis(d)
	}
	plot := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(graphCaption),
	)
	lines := strings.Split(plot, "\n")
	if maxWidth > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, maxWidth, "")
		}
	}
	return element.Lines(lines...)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
