package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/studyboard/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Dashboard, Action: "switch to Dashboard"},
		{Key: m.Keys.Planner, Action: "switch to Planer"},
		{Key: m.Keys.Exams, Action: "switch to Prüfungen"},
		{Key: m.Keys.Study, Action: "switch to Lernen"},
		{Key: "tab", Action: "next view"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Theme, Action: "cycle theme"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewDashboard:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle task done"},
		}
	case ViewPlanner:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "J/K", Action: "move task down/up"},
			{Key: "space", Action: "toggle task done"},
			{Key: "x", Action: "delete task"},
			{Key: "f/s", Action: "cycle subject / status filter"},
			{Key: "o", Action: "sort by date / priority"},
		}
	case ViewExams:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "x", Action: "delete exam"},
		}
	case ViewStudy:
		return []KeyBinding{
			{Key: "space", Action: "start/stop focus timer"},
			{Key: "c", Action: "discard running timer"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
