// Package overlay paints modal layers on top of the month grid without
// erasing the background outside the overlay bounds.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Placement controls overlay alignment and sizing.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int
}

// Centered is the placement used by detail panes and forms.
var Centered = Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}

// Compose overlays the foreground view atop the background. Layer order is
// bottom-up: each successive foreground is painted over the result of the
// previous composition.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalize(background, width, height)
	if foreground == "" {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")

	fgWidth := placement.Width
	if fgWidth <= 0 {
		for _, line := range fgLines {
			if w := lipgloss.Width(line); w > fgWidth {
				fgWidth = w
			}
		}
	}
	if fgWidth <= 0 {
		return strings.Join(bgLines, "\n")
	}
	if fgWidth > width {
		fgWidth = width
	}

	fgHeight := placement.Height
	if fgHeight <= 0 {
		fgHeight = len(fgLines)
	}
	if fgHeight > height {
		fgHeight = height
	}

	offsetX := alignOffset(placement.Horizontal, placement.MarginX, width, fgWidth)
	offsetY := alignOffset(placement.Vertical, placement.MarginY, height, fgHeight)

	for row := 0; row < fgHeight; row++ {
		destY := offsetY + row
		if destY < 0 || destY >= len(bgLines) {
			continue
		}
		fgLine := ""
		if row < len(fgLines) {
			fgLine = fgLines[row]
		}
		fgLine = pad(fgLine, fgWidth)

		base := bgLines[destY]
		prefix := sliceWidth(base, 0, offsetX)
		suffix := sliceWidth(base, offsetX+fgWidth, width)
		bgLines[destY] = prefix + fgLine + suffix
	}

	return strings.Join(bgLines, "\n")
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(lines[i], width)
	}
	return lines
}

func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	curr := lipgloss.Width(s)
	if curr >= width {
		return lipgloss.NewStyle().Width(width).Render(s)
	}
	return s + strings.Repeat(" ", width-curr)
}

func sliceWidth(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > lipgloss.Width(s) {
		end = lipgloss.Width(s)
	}
	if start >= end {
		return ""
	}

	var out strings.Builder
	seen := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		next := seen + rw
		if next <= start {
			seen = next
			continue
		}
		if seen >= end || next > end {
			break
		}
		out.WriteRune(r)
		seen = next
	}
	return out.String()
}

func alignOffset(pos lipgloss.Position, margin, total, size int) int {
	offset := margin
	switch pos {
	case lipgloss.Right:
		offset = total - size - margin
	case lipgloss.Center:
		offset = (total - size) / 2
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total-size {
		offset = total - size
	}
	return offset
}
