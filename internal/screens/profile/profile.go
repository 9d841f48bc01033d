// Package profile edits the student's name, class and school.
package profile

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/router"
	"github.com/abhisek/laban/internal/screen"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/ui/components"
	"github.com/abhisek/laban/internal/ui/layout"
	"github.com/abhisek/laban/internal/ui/theme"
)

const (
	fieldName = iota
	fieldClass
	fieldSchool
	fieldCount
)

type savedMsg struct {
	err error
}

// ProfileScreen is a three-field form. The name is required.
type ProfileScreen struct {
	repo    store.ProfileRepo
	inputs  [fieldCount]components.TextInput
	focused int
	saving  bool
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates the form prefilled from current, which may be nil.
func New(repo store.ProfileRepo, current *assessment.Student) *ProfileScreen {
	p := &ProfileScreen{repo: repo}
	p.inputs[fieldName] = components.NewTextInput("Họ tên", "Nguyễn Văn An", 80)
	p.inputs[fieldClass] = components.NewTextInput("Lớp", "10A1", 20)
	p.inputs[fieldSchool] = components.NewTextInput("Trường", "THPT Chu Văn An", 120)
	if current != nil {
		p.inputs[fieldName].SetValue(current.Name)
		p.inputs[fieldClass].SetValue(current.Class)
		p.inputs[fieldSchool].SetValue(current.School)
	}
	return p
}

func (p *ProfileScreen) Init() tea.Cmd {
	return p.inputs[p.focused].Focus()
}

func (p *ProfileScreen) Title() string {
	return "Hồ sơ"
}

func (p *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Ô tiếp"},
		{Key: "Enter", Description: "Lưu"},
		{Key: "Esc", Description: "Huỷ"},
	}
}

// Student returns the form's current values.
func (p *ProfileScreen) Student() assessment.Student {
	return assessment.Student{
		Name:   p.inputs[fieldName].Value(),
		Class:  p.inputs[fieldClass].Value(),
		School: p.inputs[fieldSchool].Value(),
	}
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		p.saving = false
		if msg.err != nil {
			p.errMsg = "Không lưu được hồ sơ: " + msg.err.Error()
			return p, nil
		}
		return p, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if p.saving {
			return p, nil
		}
		switch msg.String() {
		case "tab", "down":
			return p, p.focus((p.focused + 1) % fieldCount)
		case "shift+tab", "up":
			return p, p.focus((p.focused + fieldCount - 1) % fieldCount)
		case "enter":
			return p, p.save()
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focused], cmd = p.inputs[p.focused].Update(msg)
	return p, cmd
}

func (p *ProfileScreen) focus(i int) tea.Cmd {
	p.inputs[p.focused].Blur()
	p.focused = i
	return p.inputs[i].Focus()
}

func (p *ProfileScreen) save() tea.Cmd {
	st := p.Student()
	if st.Name == "" {
		p.errMsg = "Vui lòng nhập họ tên."
		return p.focus(fieldName)
	}
	p.errMsg = ""
	p.saving = true
	repo := p.repo
	return func() tea.Msg {
		if repo == nil {
			return savedMsg{}
		}
		return savedMsg{err: repo.Save(context.Background(), st)}
	}
}

func (p *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var fields []string
	for _, in := range p.inputs {
		fields = append(fields, in.View())
	}
	body := strings.Join(fields, "\n\n")
	if p.errMsg != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(p.errMsg)
	}
	if p.saving {
		body += "\n\n" + theme.Hint.Render("Đang lưu...")
	}

	content := theme.Title.Render("Thông tin học sinh") + "\n\n" +
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Left).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(content, cw))
}
