package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cube-arcade/internal/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/storage"
)

// MenuItem is a selectable entry of the level picker.
// An empty LevelID starts from the first level.
type MenuItem struct {
	LevelID string
	Title   string
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	solved         map[string]bool
	cursor         int
	scrollOffset   int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	theme          Theme
	quitting       bool
	back           bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a level picker over the given levels. Levels with a
// solved run in store are marked.
func NewMenuModel(store *storage.Store, list []levels.Level, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(list)+1)
	items = append(items, MenuItem{Title: "Start from Beginning"})
	for _, lvl := range list {
		items = append(items, MenuItem{LevelID: lvl.ID, Title: lvl.Title})
	}

	solved := make(map[string]bool)
	if store != nil {
		if stats, err := store.LevelStats(); err == nil {
			for _, st := range stats {
				solved[st.LevelID] = st.Solves > 0
			}
		}
	}

	return MenuModel{
		items:     items,
		solved:    solved,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     CurrentTheme(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) > 1 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionBack:
		m.back = true
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// visibleItems is the number of list rows that fit between header and footer.
func (m MenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("C U B E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 1 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.items))
	if len(m.items) == 1 {
		end = 0
	}
	for i := m.scrollOffset; i < end; i++ {
		item := m.items[i]

		cursor := "  "
		style := m.theme.MenuItemNormal
		if m.solved[item.LevelID] {
			style = m.theme.MenuItemSolved
		}
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		line := cursor + item.Title
		if item.LevelID != "" {
			mark := " "
			if m.solved[item.LevelID] {
				mark = "*"
			}
			line = fmt.Sprintf("%s%2d. %s %s", cursor, i, item.Title, mark)
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting || m.back
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Item            MenuItem
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(store *storage.Store, list []levels.Level, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, list, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Item = *m.Selected()
	default:
		result.Quit = true
	}

	return result, nil
}
