package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/ui/theme"
)

// CheckList is a multi-select list. Space toggles the item under the
// cursor; "a" toggles all.
type CheckList struct {
	Items   []string
	Checked []bool
	Cursor  int
}

// NewCheckList creates a list with every item checked.
func NewCheckList(items []string) CheckList {
	checked := make([]bool, len(items))
	for i := range checked {
		checked[i] = true
	}
	return CheckList{Items: items, Checked: checked}
}

// Init returns nil.
func (c CheckList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and toggling.
func (c CheckList) Update(msg tea.Msg) (CheckList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case " ", "space":
		if c.Cursor >= 0 && c.Cursor < len(c.Checked) {
			c.Checked[c.Cursor] = !c.Checked[c.Cursor]
		}
	case "a":
		all := true
		for _, v := range c.Checked {
			if !v {
				all = false
				break
			}
		}
		for i := range c.Checked {
			c.Checked[i] = !all
		}
	}

	return c, nil
}

// Selected returns the checked items in list order.
func (c CheckList) Selected() []string {
	var out []string
	for i, item := range c.Items {
		if c.Checked[i] {
			out = append(out, item)
		}
	}
	return out
}

// View renders the list.
func (c CheckList) View() string {
	var s string
	for i, item := range c.Items {
		mark := "[ ]"
		if c.Checked[i] {
			mark = "[x]"
		}
		line := mark + " " + item
		if i == c.Cursor {
			s += lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("  > "+line) + "\n"
		} else {
			s += theme.Unselected.Render("    "+line) + "\n"
		}
	}
	return s
}
