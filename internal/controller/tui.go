package controller

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/curl/urler/internal/engine"
	m "github.com/curl/urler/internal/model"
)

var (
	inspectTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	inspectNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Width(10)
	inspectValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	inspectAbsentStyle = lipgloss.NewStyle().Faint(true)
	inspectErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inspectHelpStyle   = lipgloss.NewStyle().Faint(true)
)

// InspectorModel is the Bubble Tea model behind the inspect command. The
// typed URL is re-parsed on every keystroke and broken into components.
type InspectorModel struct {
	eng      engine.Engine
	input    textinput.Model
	width    int
	height   int
	quitting bool
}

// NewInspectorModel creates an inspector pre-filled with initial.
func NewInspectorModel(eng engine.Engine, initial string) InspectorModel {
	input := textinput.New()
	input.Placeholder = "https://example.com/path?q=1"
	input.Prompt = "url> "
	input.SetValue(initial)
	input.Focus()

	return InspectorModel{
		eng:   eng,
		input: input,
	}
}

func (im InspectorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (im InspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		im.width = msg.Width
		im.height = msg.Height

		return im, nil

	case tea.KeyMsg:
		// Plain letters belong to the text input, so only control keys quit.
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			im.quitting = true
			return im, tea.Quit
		default:
		}
	}

	var cmd tea.Cmd
	im.input, cmd = im.input.Update(msg)

	return im, cmd
}

func (im InspectorModel) View() string {
	if im.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(inspectTitleStyle.Render("urler inspector"))
	b.WriteString("\n\n")
	b.WriteString(im.input.View())
	b.WriteString("\n\n")
	b.WriteString(im.renderComponents())
	b.WriteString("\n")
	b.WriteString(inspectHelpStyle.Render("esc: quit"))
	b.WriteString("\n")

	return b.String()
}

// renderComponents parses the current input and lists every component with
// its value, or the parse error when the input is not a URL yet.
func (im InspectorModel) renderComponents() string {
	raw := strings.TrimSpace(im.input.Value())
	if raw == "" {
		return inspectAbsentStyle.Render("type a URL to inspect it") + "\n"
	}

	h := im.eng.New()
	if err := h.Set(m.ComponentURL, raw, engine.GuessScheme|engine.NonSupportScheme); err != nil {
		return inspectErrorStyle.Render(fmt.Sprintf("not a URL: %v", err)) + "\n"
	}

	var b strings.Builder

	for _, c := range m.Components() {
		b.WriteString(inspectNameStyle.Render(c.String()))

		v, err := h.Get(c, engine.DefaultPort)
		switch {
		case err == nil:
			b.WriteString(inspectValueStyle.Render(v))
		case errors.Is(err, engine.ErrAbsent):
			b.WriteString(inspectAbsentStyle.Render("-"))
		default:
			b.WriteString(inspectErrorStyle.Render(err.Error()))
		}

		b.WriteByte('\n')
	}

	return b.String()
}

// RunInspector runs the interactive inspector until the user quits.
func RunInspector(eng engine.Engine, output io.Writer, initial string) error {
	model := NewInspectorModel(eng, initial)

	// Seed the size so the first frame renders before any WindowSizeMsg.
	if f, ok := output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(output))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run inspector: %w", err)
	}

	return nil
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
