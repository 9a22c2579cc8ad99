package cli

import (
	"fmt"

	"github.com/alexanderramin/ironplan/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type pagerKeyMap struct {
	Down   key.Binding
	Up     key.Binding
	PgDown key.Binding
	PgUp   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

var pagerKeys = pagerKeyMap{
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	PgDown: key.NewBinding(key.WithKeys("pgdown", " ", "f")),
	PgUp:   key.NewBinding(key.WithKeys("pgup", "b")),
	Top:    key.NewBinding(key.WithKeys("home", "g")),
	Bottom: key.NewBinding(key.WithKeys("end", "G")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// pagerModel scrolls rendered whiteboard text. The viewport is created on
// the first WindowSizeMsg.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-2, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		if !m.ready {
			if key.Matches(msg, pagerKeys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, pagerKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, pagerKeys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, pagerKeys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, pagerKeys.PgDown):
			m.viewport.ViewDown()
		case key.Matches(msg, pagerKeys.PgUp):
			m.viewport.ViewUp()
		case key.Matches(msg, pagerKeys.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, pagerKeys.Bottom):
			m.viewport.GotoBottom()
		}
		return m, nil
	}
	return m, nil
}

func (m pagerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	status := formatter.Dim(fmt.Sprintf("%s · %3.0f%% · j/k scroll · q quit", m.title, m.viewport.ScrollPercent()*100))
	return m.viewport.View() + "\n" + status
}

func runPager(title, content string) error {
	_, err := tea.NewProgram(newPagerModel(title, content), tea.WithAltScreen()).Run()
	return err
}
