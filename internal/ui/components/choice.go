package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/ui/theme"
)

// Choice is one selectable answer. Key is the token handed to the scorer
// and doubles as the hotkey.
type Choice struct {
	Key   string
	Label string
}

// ChoiceList is a single-answer selector.
type ChoiceList struct {
	Prompt   string
	Choices  []Choice
	Selected int
	Chosen   int // -1 until submitted
}

// NewChoiceList creates a selector with the first choice highlighted.
func NewChoiceList(prompt string, choices []Choice) ChoiceList {
	return ChoiceList{
		Prompt:  prompt,
		Choices: choices,
		Chosen:  -1,
	}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles arrow navigation, Enter, and direct hotkeys. A hotkey
// selects and submits in one step.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Submitted() {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, nil
	case "down", "j":
		if c.Selected < len(c.Choices)-1 {
			c.Selected++
		}
		return c, nil
	case "enter":
		if len(c.Choices) > 0 {
			c.Chosen = c.Selected
		}
		return c, nil
	}

	for i, ch := range c.Choices {
		if strings.EqualFold(ch.Key, key) {
			c.Selected = i
			c.Chosen = i
			break
		}
	}
	return c, nil
}

// Submitted reports whether an answer was picked.
func (c ChoiceList) Submitted() bool {
	return c.Chosen >= 0 && c.Chosen < len(c.Choices)
}

// Answer returns the picked choice.
func (c ChoiceList) Answer() (Choice, bool) {
	if !c.Submitted() {
		return Choice{}, false
	}
	return c.Choices[c.Chosen], true
}

// View renders the prompt and the choices.
func (c ChoiceList) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	b.WriteString("\n\n")

	for i, ch := range c.Choices {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, ch.Key, ch.Label)

		switch {
		case i == c.Chosen:
			b.WriteString(theme.Correct.Render(line))
		case i == c.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
