package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/content"
)

// MenuSelectedMsg is emitted when a section is picked from the menu.
type MenuSelectedMsg struct {
	ID string
}

// MenuCancelledMsg is emitted when the menu is closed without a choice.
type MenuCancelledMsg struct{}

type sectionItem struct {
	id    string
	label string
	index int
}

func (i sectionItem) Title() string       { return i.label }
func (i sectionItem) Description() string { return fmt.Sprintf("#%s  ·  key %d", i.id, i.index+1) }
func (i sectionItem) FilterValue() string { return i.label }

type cardItem struct {
	exp content.Experience
}

func (i cardItem) Title() string       { return i.exp.Company }
func (i cardItem) Description() string { return i.exp.Role + "  ·  " + i.exp.Period }
func (i cardItem) FilterValue() string { return i.exp.Company + " " + i.exp.Role }

// MenuModel is a filterable jump list of page sections and experience
// cards.
type MenuModel struct {
	list list.Model
}

// NewMenu builds the menu for p.
func NewMenu(p *content.Portfolio) MenuModel {
	items := make([]list.Item, 0, len(p.Nav)+len(p.Experience))
	for i, n := range p.Nav {
		items = append(items, sectionItem{id: n.ID, label: n.Label, index: i})
	}
	for _, e := range p.Experience {
		items = append(items, cardItem{exp: e})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "Jump to"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	return MenuModel{list: l}
}

// SetSize fits the menu to the terminal.
func (m *MenuModel) SetSize(w, h int) {
	m.list.SetWidth(w)
	m.list.SetHeight(h)
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case sectionItem:
				return m, func() tea.Msg { return MenuSelectedMsg{ID: item.id} }
			case cardItem:
				id := item.exp.ID()
				return m, func() tea.Msg { return MenuSelectedMsg{ID: id} }
			}
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, func() tea.Msg { return MenuCancelledMsg{} }
		case "q":
			return m, func() tea.Msg { return MenuCancelledMsg{} }
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	return m.list.View()
}
