// Package picker lets the user choose an input file in the terminal.
package picker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures a picker run.
type Options struct {
	Title        string
	Dir          string
	AllowedTypes []string
	NoColor      bool
	Input        io.Reader
	Output       io.Writer
}

// Model wraps a Bubble Tea file picker. The chosen path is empty when the
// user cancels.
type Model struct {
	title     string
	picker    filepicker.Model
	selected  string
	cancelled bool
	warning   string
	noColor   bool
}

// NewModel builds a picker model starting in opts.Dir.
func NewModel(opts Options) Model {
	fp := filepicker.New()
	fp.AllowedTypes = opts.AllowedTypes
	fp.CurrentDirectory = opts.Dir
	if fp.CurrentDirectory == "" {
		fp.CurrentDirectory = "."
	}
	fp.AutoHeight = false
	fp.Height = 15
	return Model{title: opts.Title, picker: fp, noColor: opts.NoColor}
}

// Init reads the starting directory.
func (m Model) Init() tea.Cmd {
	return m.picker.Init()
}

// Update routes keys to the file picker and stops on selection or cancel.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.picker.Height = max(typed.Height-4, 1)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.selected = path
		return m, tea.Quit
	}
	if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
		m.warning = fmt.Sprintf("%s is not a supported file", filepath.Base(path))
		return m, cmd
	}
	return m, cmd
}

// View renders the title, the listing and the last warning.
func (m Model) View() string {
	title := m.title
	if !m.noColor {
		title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(title)
	}
	view := title + "\n\n" + m.picker.View() + "\n"
	if m.warning != "" {
		view += stylize("⚠ "+m.warning, m.noColor, lipgloss.Color("214")) + "\n"
	}
	return view + stylize("enter: select  q: cancel", m.noColor, lipgloss.Color("244")) + "\n"
}

// Selected returns the chosen path, empty when cancelled.
func (m Model) Selected() string {
	if m.cancelled {
		return ""
	}
	return m.selected
}

// Cancelled reports whether the user quit without choosing.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Run shows the picker until a file is chosen or the user cancels.
func Run(ctx context.Context, opts Options) (string, error) {
	options := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		options = append(options, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		options = append(options, tea.WithOutput(opts.Output))
	} else {
		options = append(options, tea.WithOutput(os.Stderr))
	}
	final, err := tea.NewProgram(NewModel(opts), options...).Run()
	if err != nil {
		return "", fmt.Errorf("file picker: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return "", fmt.Errorf("file picker: unexpected model %T", final)
	}
	return model.Selected(), nil
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
