package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/core"
	"github.com/vovakirdan/cloudhop/internal/dispatch"
	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
	"github.com/vovakirdan/cloudhop/internal/skins"
	"github.com/vovakirdan/cloudhop/internal/storage"
)

// SessionOptions configures a menu, game and leaderboard session.
type SessionOptions struct {
	Store        *storage.Store // nil plays without persistence
	Tuning       config.Config
	Nickname     string
	LockNickname bool
	// PlayerBest reads the best score from the player's leaderboard entries
	// instead of the device-wide setting. Used for shared SSH servers.
	PlayerBest bool
	Audio      dispatch.AudioSink
	Updates    <-chan config.Config
	Lipgloss   *lipgloss.Renderer
	Logger     *log.Logger
	Context    context.Context
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	renderer *ScreenRenderer
	screen   sessionScreen
	nickname string
	best     int
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := SessionModel{
		opts:     opts,
		config:   cfg,
		renderer: NewScreenRenderer(opts.Lipgloss),
		nickname: opts.Nickname,
	}

	if m.nickname == "" && opts.Store != nil && !opts.LockNickname {
		if nick, err := opts.Store.Nickname(); err == nil {
			m.nickname = nick
		}
	}
	m.best = m.loadBest()
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) loadBest() int {
	store := m.opts.Store
	if store == nil {
		return 0
	}
	if m.opts.PlayerBest {
		best, err := store.PlayerBest(cloudhop.GameID, m.nickname)
		if err != nil {
			return 0
		}
		return best
	}
	best, err := store.BestScore()
	if err != nil {
		m.opts.Logger.Warn("could not read best score", "err", err)
		return 0
	}
	return best
}

func (m SessionModel) newMenu() MenuModel {
	opts := MenuOptions{
		Nickname:     m.nickname,
		LockNickname: m.opts.LockNickname,
		Best:         m.best,
	}
	if m.opts.Store != nil {
		opts.Skins = m.opts.Store
	}
	return NewMenuModel(m.config, opts, m.opts.Lipgloss)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceLeaderboard:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.leaderboard(), m.menu.Nickname(), m.config.ScreenW, m.config.ScreenH, m.opts.Lipgloss)
		return m, m.scores.Init()
	case ChoicePlay:
		return m.startGame()
	}
	return m, cmd
}

func (m SessionModel) leaderboard() Leaderboard {
	if m.opts.Store == nil {
		return nil
	}
	return m.opts.Store
}

// startGame builds a fresh game from the menu selection.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	nick := m.menu.Nickname()
	if nick != m.nickname {
		m.nickname = nick
		if m.opts.PlayerBest {
			m.best = m.loadBest()
		}
	}
	store := m.opts.Store
	if store != nil && !m.opts.LockNickname {
		if err := store.SetNickname(nick); err != nil {
			m.opts.Logger.Warn("could not remember nickname", "err", err)
		}
	}

	game := cloudhop.New(m.opts.Tuning)
	game.SetAppearance(skins.AppearanceOf(m.menu.SelectedSkin().ID))
	game.SetBest(m.best)

	gopts := GameOptions{
		Nickname:  nick,
		Audio:     m.opts.Audio,
		Updates:   m.opts.Updates,
		Renderer:  m.renderer,
		Logger:    m.opts.Logger.With("nickname", nick),
		AllowBack: true,
		Context:   m.opts.Context,
	}
	if store != nil {
		gopts.Scores = store
		if !m.opts.PlayerBest {
			gopts.BestSaver = store
		}
	}

	gm := NewGameModel(game, m.config, gopts)
	m.game = &gm
	m.screen = screenGame
	m.opts.Logger.Info("round started", "nickname", nick, "skin", m.menu.SelectedSkin().ID)
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.best = max(m.best, m.game.State().BestScore)
		m.game.Close()
		m.game = nil
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when showing the leaderboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.nickname = m.menu.Nickname()
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Close releases the running game, if any.
func (m SessionModel) Close() {
	if m.game != nil {
		m.game.Close()
	}
}

// RunSession runs the menu flow in the local terminal.
func RunSession(cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(NewSessionModel(cfg, opts), tea.WithAltScreen())
	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Close()
	}
	return err
}
