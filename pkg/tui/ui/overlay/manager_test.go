package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
)

func TestComposeCenteredPreservesBackground(t *testing.T) {
	bg := strings.Join([]string{
		"aaaaaaaaaa",
		"aaaaaaaaaa",
		"aaaaaaaaaa",
		"aaaaaaaaaa",
	}, "\n")

	out := Compose(bg, 10, 4, "XX\nXX", Centered)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[1] != "aaaaXXaaaa" || lines[2] != "aaaaXXaaaa" {
		t.Fatalf("overlay not centered:\n%s", out)
	}
	if lines[0] != "aaaaaaaaaa" || lines[3] != "aaaaaaaaaa" {
		t.Fatalf("background rows damaged:\n%s", out)
	}
}

func TestComposeEmptyForeground(t *testing.T) {
	out := Compose("ab", 4, 2, "", Centered)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || lines[0] != "ab  " {
		t.Fatalf("expected padded background, got %q", out)
	}
}

func TestComposeClampsOversizedOverlay(t *testing.T) {
	fg := strings.Repeat("Z", 20)
	out := Compose("aaaa\naaaa", 4, 2, fg, Centered)
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 4 {
			t.Fatalf("line width %d, want 4: %q", w, line)
		}
	}
}

func TestComposeCornerPlacement(t *testing.T) {
	bg := "....\n....\n...."
	out := Compose(bg, 4, 3, "X", Placement{Horizontal: lipgloss.Right, Vertical: lipgloss.Bottom})
	lines := strings.Split(out, "\n")
	if lines[2] != "...X" {
		t.Fatalf("expected bottom-right placement:\n%s", out)
	}
}
