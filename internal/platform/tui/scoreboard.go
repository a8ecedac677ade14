package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
	"github.com/vovakirdan/cloudhop/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 44  // Rank + player + score + date at minimum widths
	maxScores     = 100 // Max scores to load
	topScores     = 10  // Entries shown in the compact view
)

// Leaderboard is the score source for the scoreboard screen.
type Leaderboard interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	PlayerBest(gameID, nickname string) (int, error)
	PlayerRank(gameID, nickname string) (int, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Expand key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Expand, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Expand: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "top 10 / all"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
type ScoreboardModel struct {
	source    Leaderboard
	nickname  string // Highlighted player; may be empty
	scores    []storage.ScoreEntry
	best      int
	rank      int
	showAll   bool
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	lg        *lipgloss.Renderer
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(source Leaderboard, nickname string, width, height int, r *lipgloss.Renderer) ScoreboardModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source:   source,
		nickname: nickname,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		lg:       r,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadScores()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: MaxNicknameLen + 2},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	// Give spare width to the date column.
	tableWidth := m.width - 6
	if tableWidth > tableMinWidth {
		columns[3].Width = min(20, columns[3].Width+tableWidth-tableMinWidth)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores reloads entries and the highlighted player's standing.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr, m.best, m.rank = nil, nil, 0, 0
	if m.source == nil {
		m.updateTableRows()
		return
	}

	limit := topScores
	if m.showAll {
		limit = maxScores
	}
	m.scores, m.loadErr = m.source.TopScores(cloudhop.GameID, limit)

	if m.nickname != "" {
		if best, err := m.source.PlayerBest(cloudhop.GameID, m.nickname); err == nil {
			m.best = best
		}
		if rank, err := m.source.PlayerRank(cloudhop.GameID, m.nickname); err == nil {
			m.rank = rank
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		nick := s.Nickname
		if strings.EqualFold(nick, m.nickname) {
			nick = "* " + nick
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			nick,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Expand):
			m.showAll = !m.showAll
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := m.lg.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "HIGH SCORES - TOP 10"
	if m.showAll {
		title = "HIGH SCORES - ALL"
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.nickname != "" {
		standing := fmt.Sprintf("%s  |  Best: %d  |  Rank: -", m.nickname, m.best)
		if m.rank > 0 {
			standing = fmt.Sprintf("%s  |  Best: %d  |  Rank: #%d", m.nickname, m.best, m.rank)
		}
		b.WriteString(centerText(m.lg.NewStyle().Foreground(lipgloss.Color("14")).Render(standing), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := m.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerBlock(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := m.lg.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := m.lg.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Leaderboard unavailable:\n" + m.loadErr.Error())
	}
	if len(m.scores) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// centerBlock centers every line of a multi-line block.
func centerBlock(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
