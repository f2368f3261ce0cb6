package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xuyisen-x/oxidice"
	"github.com/xuyisen-x/oxidice/internal/render"
	"github.com/xuyisen-x/oxidice/internal/rng"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively evaluate dice expressions",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	runOpts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	m := newReplModel(runOpts)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

var (
	replPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	replErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	replHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// replModel is a one-line-at-a-time Bubble Tea REPL, grounded on the
// teacher compiler's ui.progressModel struct-with-View shape (adapted
// from a passive progress display to a driven input loop). Each entry
// keeps its own rendered lines so scrollback survives new prompts.
type replModel struct {
	input    textinput.Model
	opts     runOptions
	src      rng.Source
	history  []string
	quitting bool
}

func newReplModel(opts runOptions) *replModel {
	ti := textinput.New()
	ti.Placeholder = "2d6+3"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	return &replModel{
		input: ti,
		opts:  opts,
		src:   newSource(opts.seed),
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.history = append(m.history, m.evalLine(line))
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evalLine evaluates one expression and renders its outcome (or error)
// as the scrollback entry for line.
func (m *replModel) evalLine(line string) string {
	result, err := oxidice.Evaluate(line, m.opts.opts, m.src)
	if err != nil {
		return replPromptStyle.Render("> "+line) + "\n" + replErrStyle.Render(wrapError(err).Error())
	}
	tree := oxidice.Render(result)
	var b strings.Builder
	render.Print(&b, tree, render.PrintOpts{Color: m.opts.color})
	return replPromptStyle.Render("> "+line) + "\n" + strings.TrimRight(b.String(), "\n")
}

func (m *replModel) View() string {
	var b strings.Builder
	for _, entry := range m.history {
		b.WriteString(entry)
		b.WriteString("\n")
	}
	if m.quitting {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%s\n", m.input.View()))
	b.WriteString(replHintStyle.Render("enter to roll, esc or 'quit' to exit"))
	return b.String()
}
