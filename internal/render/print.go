package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// PrintOpts configures terminal pretty-printing of a DisplayTree,
// mirroring the shape of the teacher compiler's diagfmt.PrettyOpts
// (Color/Width toggles) adapted to a roll tree instead of a diagnostic
// list.
type PrintOpts struct {
	Color bool
	Width int // 0 = unlimited; used only to pad each node's value column
}

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	droppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Print writes an indented, optionally-colored rendering of t to w.
func Print(w io.Writer, t *DisplayTree, opts PrintOpts) {
	printNode(w, t.Root, 0, opts)
	footer := color.New(color.Faint)
	footer.DisableColor()
	if opts.Color {
		footer.EnableColor()
	}
	footer.Fprintf(w, "%d round(s)\n", t.Rounds)
}

func printNode(w io.Writer, n *DisplayNode, depth int, opts PrintOpts) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	label := n.Label
	if label == "" {
		label = "node"
	}
	if opts.Color {
		label = labelStyle.Render(label)
	}
	valueText := fmt.Sprintf("%d", n.Value)
	if opts.Color {
		valueText = valueStyle.Render(valueText)
	}
	fmt.Fprintf(w, "%s%s = %s\n", indent, label, pad(valueText, opts.Width))

	for _, r := range n.Rolls {
		fmt.Fprintf(w, "%s  %s\n", indent, formatRoll(r, opts))
	}
	for _, m := range n.Modifiers {
		fmt.Fprintf(w, "%s  [%s]\n", indent, m)
	}
	for _, c := range n.Children {
		printNode(w, c, depth+1, opts)
	}
}

func formatRoll(r DisplayRoll, opts PrintOpts) string {
	text := fmt.Sprintf("d%d: %d", r.RollIndex, r.Value)
	if r.ChainKind != "" {
		text += " (" + r.ChainKind + ")"
	}
	if !opts.Color {
		if r.Dropped || r.Removed {
			text += " [dropped]"
		}
		return text
	}
	switch {
	case r.Dropped || r.Removed:
		return droppedStyle.Render(text)
	case r.Value > 0:
		return successStyle.Render(text)
	default:
		return failureStyle.Render(text)
	}
}

// pad right-pads s to width columns, measured with go-runewidth so
// wide/zero-width glyphs still line up as a single monospaced grid
// column, unlike a plain rune or byte count.
func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
