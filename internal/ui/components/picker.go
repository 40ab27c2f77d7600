package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/ui/theme"
)

// Picker is a horizontal single-choice selector, used for question counts
// and difficulty levels. Left/right move the selection.
type Picker struct {
	Label    string
	Options  []string
	Selected int
}

// NewPicker creates a picker over the given options.
func NewPicker(label string, options []string) Picker {
	return Picker{Label: label, Options: options}
}

// Init returns nil.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update handles left/right navigation.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if p.Selected > 0 {
			p.Selected--
		}
	case "right", "l":
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
	}
	return p, nil
}

// Value returns the selected option, or "" for an empty picker.
func (p Picker) Value() string {
	if p.Selected < 0 || p.Selected >= len(p.Options) {
		return ""
	}
	return p.Options[p.Selected]
}

// Select moves the selection to the option equal to v, if present.
func (p *Picker) Select(v string) {
	for i, o := range p.Options {
		if o == v {
			p.Selected = i
			return
		}
	}
}

// SetOptions replaces the options, keeping the current value when it is
// still present and clamping the cursor otherwise.
func (p *Picker) SetOptions(options []string) {
	current := p.Value()
	p.Options = options
	p.Selected = 0
	p.Select(current)
}

// View renders the picker as a row of options.
func (p Picker) View(focused bool) string {
	parts := make([]string, 0, len(p.Options))
	for i, o := range p.Options {
		if i == p.Selected {
			style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			if !focused {
				style = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
			}
			parts = append(parts, style.Render("["+o+"]"))
		} else {
			parts = append(parts, theme.Hint.Render(" "+o+" "))
		}
	}

	label := theme.Body.Render(p.Label)
	if focused {
		label = theme.Selected.Render(p.Label)
	}
	return label + "  " + strings.Join(parts, " ")
}
