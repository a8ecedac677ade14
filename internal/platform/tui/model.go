package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cloudhop/internal/config"
	"github.com/vovakirdan/cloudhop/internal/core"
	"github.com/vovakirdan/cloudhop/internal/dispatch"
	"github.com/vovakirdan/cloudhop/internal/games/cloudhop"
)

// ScoreRecorder saves finished rounds to the leaderboard.
type ScoreRecorder interface {
	SaveScore(gameID, nickname string, score int) (int64, error)
}

// GameOptions wires a game screen to its collaborators. All fields are optional.
type GameOptions struct {
	Nickname  string
	Scores    ScoreRecorder
	Audio     dispatch.AudioSink
	BestSaver dispatch.BestScoreSaver
	Updates   <-chan config.Config // Tuning reloads, applied at the next round
	Renderer  *ScreenRenderer
	Logger    *log.Logger
	AllowBack bool            // B/Esc returns to the menu when not mid-round
	Context   context.Context // Ends background work, e.g. with an SSH session
}

// roundRecorder stores each finished round exactly once. The write runs
// through async when set, so the tick loop never waits on the database.
type roundRecorder struct {
	scores   ScoreRecorder
	nickname string
	logger   *log.Logger
	async    func(job func()) bool
	saved    bool
}

func (r *roundRecorder) gameOver(score int) {
	if r.saved {
		return
	}
	r.saved = true
	if r.scores == nil || score <= 0 {
		return
	}
	if r.async == nil {
		r.save(score)
		return
	}
	if !r.async(func() { r.save(score) }) {
		r.logger.Warn("could not queue score", "nickname", r.nickname, "score", score)
	}
}

func (r *roundRecorder) save(score int) {
	if _, err := r.scores.SaveScore(cloudhop.GameID, r.nickname, score); err != nil {
		r.logger.Warn("could not save score", "nickname", r.nickname, "score", score, "err", err)
		return
	}
	r.logger.Info("round recorded", "nickname", r.nickname, "score", score)
}

func (r *roundRecorder) rearm() {
	r.saved = false
}

// configMsg carries reloaded tuning.
type configMsg config.Config

func waitForConfig(updates <-chan config.Config) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return configMsg(cfg)
	}
}

// GameModel is the Bubble Tea model that runs one cloudhop game.
type GameModel struct {
	game       *cloudhop.Game
	stepper    *core.Stepper
	screen     *core.Screen
	config     core.RuntimeConfig
	randomSeed bool
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	dispatcher *dispatch.Dispatcher
	recorder   *roundRecorder
	renderer   *ScreenRenderer
	updates    <-chan config.Config
	logger     *log.Logger
	allowBack  bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model around game. Seed 0 picks a fresh seed per round.
func NewGameModel(game *cloudhop.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	randomSeed := cfg.Seed == 0
	if randomSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = defaultScreenRenderer
	}

	recorder := &roundRecorder{scores: opts.Scores, nickname: opts.Nickname, logger: logger}
	dispatcher := dispatch.New(dispatch.Options{
		Audio:      opts.Audio,
		Saver:      opts.BestSaver,
		OnGameOver: recorder.gameOver,
		OnScoreChange: func(score int) {
			logger.Debug("level reached", "score", score)
		},
		Logger:  logger,
		Context: opts.Context,
	})
	recorder.async = dispatcher.Go

	return GameModel{
		game:       game,
		stepper:    core.NewStepper(game.Config().Timing.TickRate),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		randomSeed: randomSeed,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		dispatcher: dispatcher,
		recorder:   recorder,
		renderer:   renderer,
		updates:    opts.Updates,
		logger:     logger,
		allowBack:  opts.AllowBack,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.stepper.Reset()
	return tea.Batch(tickCmd(m.config.TickRate), waitForConfig(m.updates))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// World coordinates are screen independent; only the view changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case configMsg:
		m.game.SetConfig(config.Config(msg))
		m.logger.Info("tuning reloaded, applies next round")
		return m, waitForConfig(m.updates)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.dispatcher.Close()
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.allowBack && (m.gameState.Phase != cloudhop.PhasePlaying.String() || m.gameState.Paused) {
			m.backToMenu = true
			m.dispatcher.Close()
		}
		return m, nil
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleTick runs every simulation tick that is due.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	for range m.stepper.Advance(now) {
		m.step()
	}
	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) step() {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver && m.randomSeed {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	} else {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.dispatcher.Dispatch(result.Events)
	}
	if !m.gameState.GameOver {
		m.recorder.rearm()
	}
	m.inputFrame.Clear()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".cloudhop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Close flushes pending persistence. Safe to call more than once.
func (m GameModel) Close() {
	m.dispatcher.Close()
}

// Run starts a standalone game program and blocks until it exits.
func Run(game *cloudhop.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	model := NewGameModel(game, cfg, opts)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
