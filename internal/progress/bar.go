package progress

import (
	"fmt"
	"math"

	"github.com/san-kum/termreel/internal/element"
)

const (
	fullCell  = "█"
	emptyCell = " "
)

// sweep is the moving highlight inside the filled part of the bar. It only
// lives on the render side.
type sweep struct {
	pos   float64
	speed float64
}

// advance moves the highlight by speed and wraps it to the start once it
// reaches the filled length. It returns the highlighted cell.
func (s *sweep) advance(filled int) int {
	s.pos += s.speed
	if s.pos >= float64(filled) {
		s.pos = 0
	}
	return int(math.Round(s.pos))
}

// fraction is the completed share of the work. No items counts as done.
func fraction(index, total int) float64 {
	if total <= 0 {
		return 1
	}
	return float64(index) / float64(total)
}

func filledLength(frac float64, barLength int) int {
	return int(math.RoundToEven(float64(barLength) * frac))
}

func percentLabel(frac float64) string {
	return fmt.Sprintf("%.2f%%", frac*100)
}

// renderBar draws "[" + barLength cells + "]" with the percentage label
// centered over the cells.
func renderBar(frac float64, barLength, highlight int) element.Element {
	filled := filledLength(frac, barLength)
	label := percentLabel(frac)
	labelStart := barLength/2 - len(label)/2

	cells := make(element.Texts, 0, barLength+2)
	cells = append(cells, "[")
	for i := 0; i < barLength; i++ {
		inFill := i < filled
		lit := i == highlight

		if i >= labelStart && i < labelStart+len(label) {
			ch := string(label[i-labelStart])
			switch {
			case inFill && lit:
				ch = labelOnSweep.Render(ch)
			case inFill:
				ch = labelOnFilled.Render(ch)
			default:
				ch = labelText.Render(ch)
			}
			cells = append(cells, ch)
			continue
		}

		switch {
		case inFill && lit:
			cells = append(cells, sweepCell.Render(fullCell))
		case inFill:
			cells = append(cells, filledCell.Render(fullCell))
		default:
			cells = append(cells, emptyCell)
		}
	}
	cells = append(cells, "]")
	return cells
}
