package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deptsite/internal/game"
	"deptsite/internal/ui"
)

type phase int

const (
	phaseLoading phase = iota
	phaseEmpty
	phasePlaying
)

// view is the terminal renderer for a game.Controller.
type view struct {
	snap    game.Snapshot
	ranking *game.Ranking
}

func (v *view) OnStateChange(s game.Snapshot) {
	v.snap = s
	if s.State != game.Finished {
		v.ranking = nil
	}
}

func (v *view) OnFinished(r game.Ranking) {
	v.ranking = &r
}

type model struct {
	ctx    context.Context
	loader game.Loader

	phase      phase
	controller *game.Controller
	view       *view
	cursor     int

	viewport viewport.Model
	width    int
	height   int
}

type catalogLoadedMsg struct {
	catalog game.Catalog
}

var (
	sceneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
	optionStyle = lipgloss.NewStyle().PaddingLeft(2)
)

func newModel(ctx context.Context, loader game.Loader) model {
	return model{
		ctx:      ctx,
		loader:   loader,
		view:     &view{},
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{catalog: game.LoadCatalog(m.ctx, m.loader)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		if m.finished() {
			m.viewport.SetContent(m.renderResults())
		}
		return m, nil

	case catalogLoadedMsg:
		if !msg.catalog.Available() {
			m.phase = phaseEmpty
			return m, nil
		}
		m.controller = game.NewController(msg.catalog, m.view)
		m.phase = phasePlaying
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		if m.phase != phasePlaying {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finished() {
		switch msg.String() {
		case "r":
			m.controller.Restart()
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	n := m.choiceCount()
	switch key := msg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "r":
		m.controller.Restart()
		m.cursor = 0
	case "enter", " ":
		m.activate(m.cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < n {
				m.activate(i)
			}
		}
	}
	return m, nil
}

// activate picks the i-th scenario before a playthrough, or the i-th option
// during one.
func (m *model) activate(i int) {
	snap := m.view.snap
	switch snap.State {
	case game.NotStarted:
		scenarios := m.controller.Catalog().Scenarios
		if i < 0 || i >= len(scenarios) {
			return
		}
		m.controller.SelectScenario(scenarios[i].ID)
		m.controller.Start()
	case game.InMission:
		if snap.Mission == nil || i < 0 || i >= len(snap.Mission.Options) {
			return
		}
		m.controller.Choose(snap.Mission.ID, i)
	}
	m.cursor = 0
	if m.finished() {
		m.viewport.SetContent(m.renderResults())
		m.viewport.GotoTop()
	}
}

func (m model) finished() bool {
	return m.phase == phasePlaying && m.view.snap.State == game.Finished
}

func (m model) choiceCount() int {
	switch m.view.snap.State {
	case game.NotStarted:
		return len(m.controller.Catalog().Scenarios)
	case game.InMission:
		if m.view.snap.Mission != nil {
			return len(m.view.snap.Mission.Options)
		}
	}
	return 0
}

func (m model) View() string {
	header := ui.Heading(ui.IconCompass, "Careers game")
	var body, help string

	switch m.phase {
	case phaseLoading:
		body = ui.Muted.Render("Loading missions…")
	case phaseEmpty:
		body = ui.Warn.Render(ui.IconWarn + " The careers game is not available right now.")
		help = "q quit"
	case phasePlaying:
		switch m.view.snap.State {
		case game.NotStarted:
			body = m.renderScenarios()
			help = "↑/↓ move • enter start • q quit"
		case game.InMission:
			body = m.renderMission()
			help = "↑/↓ move • enter or 1-9 choose • r restart • q quit"
		case game.Finished:
			body = m.viewport.View()
			help = "↑/↓ scroll • r play again • q quit"
		}
	}

	parts := []string{header, "", body}
	if help != "" {
		parts = append(parts, "", ui.Muted.Render(help))
	}
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m model) renderList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		line := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.cursor {
			line = ui.SelectedRow.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(optionStyle.Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) renderScenarios() string {
	scenarios := m.controller.Catalog().Scenarios
	items := make([]string, len(scenarios))
	for i, sc := range scenarios {
		items[i] = fmt.Sprintf("%s %s", sc.DisplayTitle(), ui.Muted.Render(fmt.Sprintf("(%d missions)", len(sc.Missions))))
	}
	return ui.H2.Render("Pick a storyline") + "\n\n" + m.renderList(items)
}

func (m model) renderMission() string {
	snap := m.view.snap
	if snap.Mission == nil {
		return ""
	}
	mission := snap.Mission
	items := make([]string, len(mission.Options))
	for i, o := range mission.Options {
		items[i] = o.Label
		if o.Description != "" {
			items[i] += ui.Muted.Render(" · " + o.Description)
		}
	}
	width := max(m.width-4, 20)
	return strings.Join([]string{
		ui.Muted.Render(snap.ScenarioTitle + " • " + snap.Progress()),
		ui.H2.Render(mission.Title),
		sceneStyle.Width(width).Render(mission.Scene),
		"",
		m.renderList(items),
	}, "\n")
}

func (m model) renderResults() string {
	r := m.view.ranking
	if r == nil {
		return ""
	}
	width := max(m.width-4, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(wrap.Render(r.Intro) + "\n\n")
	for _, c := range r.Presented {
		if !c.Known {
			continue
		}
		line := ui.RankBadge(c.BadgeClass(), c.Badge()) + "  " + ui.H2.Render(c.Name)
		if !r.Fallback {
			line += "  " + ui.Muted.Render("Story score: "+c.ScoreText())
		}
		b.WriteString(line + "\n")
		if c.Description != "" {
			b.WriteString(wrap.Render(c.Description) + "\n")
		}
		b.WriteString("\n")
	}

	if len(r.TopFields) > 0 {
		b.WriteString(ui.Title.Render("Your top fields") + "\n")
		for _, bar := range r.TopFields {
			b.WriteString(fmt.Sprintf("%-24s %s\n", bar.Label(), ui.Bar(bar.Percent, 24)))
			b.WriteString(ui.Muted.Render("   "+bar.Meta()) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.Title.Render("Your story") + "\n")
	for i, step := range m.view.snap.History {
		b.WriteString(ui.Key.Render(game.SummaryLine(i, step)) + "\n")
		b.WriteString("   You chose: " + step.OptionLabel + "\n")
	}
	return b.String()
}

// Run plays the careers game in the terminal until the player quits.
func Run(ctx context.Context, loader game.Loader, out io.Writer) error {
	p := tea.NewProgram(newModel(ctx, loader), tea.WithAltScreen(), tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
