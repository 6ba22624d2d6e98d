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

	"github.com/vovakirdan/cube-arcade/internal/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/registry"
	"github.com/vovakirdan/cube-arcade/internal/storage"
)

// PlayOptions configures a play session.
type PlayOptions struct {
	// Player names who plays, stored with each run.
	Player string
	// WatchDir is a level directory watched for changes while playing.
	// Empty disables hot reload.
	WatchDir string
	Logger   *log.Logger
}

// LevelReloadMsg carries a level file that changed on disk.
type LevelReloadMsg struct {
	Level levels.Level
	Err   error
}

// levelGame is implemented by games that play levels loaded from files.
type levelGame interface {
	Level() (levels.Level, bool)
	Reload(lvl levels.Level) bool
}

// Model is the Bubble Tea model for playing a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       PlayOptions
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts PlayOptions) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case LevelReloadMsg:
		m.handleReload(msg)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.saveAttempt()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		// Back leaves a paused or finished level and pauses a running one.
		if m.gameState.Paused || m.gameState.Solved || m.gameState.GameOver {
			m.saveAttempt()
			m.backToMenu = true
			return m, tea.Quit
		}
		m.inputFrame.Set(core.ActionPause)

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleReload hands a changed level to the game.
func (m *Model) handleReload(msg LevelReloadMsg) {
	if msg.Err != nil {
		m.opts.Logger.Warn("cannot reload level", "err", msg.Err)
		return
	}

	lg, ok := m.game.(levelGame)
	if !ok {
		return
	}
	if cur, ok := lg.Level(); ok && cur.ID == msg.Level.ID {
		m.saveAttempt()
	}
	if !lg.Reload(msg.Level) {
		m.opts.Logger.Debug("ignoring change of unknown level", "id", msg.Level.ID)
	}
}

// handleTick processes one simulation frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.saveAttempt()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Has(core.EventLevelSolved) {
		m.saveRun(true)
	}
	if result.Has(core.EventLevelReloaded) {
		m.opts.Logger.Info("level reloaded", "id", m.gameState.Level)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveAttempt stores the current level as an unsolved run when the player
// has made progress on it.
func (m *Model) saveAttempt() {
	st := m.gameState
	if st.Solved || st.GameOver || st.Moves == 0 {
		return
	}
	m.saveRun(false)
	m.gameState.Moves = 0
}

func (m *Model) saveRun(solved bool) {
	if m.store == nil || m.gameState.Level == "" {
		return
	}

	var title string
	if lg, ok := m.game.(levelGame); ok {
		if lvl, ok := lg.Level(); ok {
			title = lvl.Title
		}
	}

	run := storage.Run{
		LevelID: m.gameState.Level,
		Title:   title,
		Ticks:   m.gameState.Ticks,
		Moves:   m.gameState.Moves,
		Solved:  solved,
		Player:  m.opts.Player,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.opts.Logger.Error("cannot save run", "level", run.LevelID, "err", err)
		return
	}
	m.opts.Logger.Debug("run saved", "level", run.LevelID, "moves", run.Moves, "solved", solved)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".cubes", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.gameState.Level, timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the player quits or goes back to the
// level picker. It reports whether the player asked to go back.
func Run(ctx context.Context, game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts PlayOptions) (back bool, err error) {
	model := NewModel(game, store, cfg, opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if opts.WatchDir != "" {
		go func() {
			err := levels.Watch(ctx, opts.WatchDir, levels.DefaultDebounce, func(lvl levels.Level, err error) {
				p.Send(LevelReloadMsg{Level: lvl, Err: err})
			})
			if err != nil {
				model.opts.Logger.Error("level watcher stopped", "dir", opts.WatchDir, "err", err)
			}
		}()
	}

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
