package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dots/internal/core"
	"github.com/vovakirdan/tui-dots/internal/games/dots/levels"
	"github.com/vovakirdan/tui-dots/internal/storage"
)

// Game IDs offered by the menu.
const (
	GameCampaign = "dots"
	GameEndless  = "dots_endless"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryEndless
	entrySelectLevel
	entryScores
	entryQuit
)

var mainEntries = []string{
	"Campaign",
	"Endless",
	"Select Level...",
	"High Scores",
	"Quit",
}

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	levels        []levels.Level
	bests         map[string]int
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper

	quitting       bool
	gameID         string
	levelID        string
	openScoreboard bool
}

// NewMenuModel creates a new menu model. store may be nil, in which
// case no best scores are shown.
func NewMenuModel(store *storage.Store, list []levels.Level, cfg core.RuntimeConfig) MenuModel {
	var bests map[string]int
	if store != nil {
		bests, _ = store.LevelBests(GameCampaign)
	}
	return MenuModel{
		levels:    list,
		bests:     bests,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
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
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleMainKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(mainEntries)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch menuEntry(m.cursor) {
		case entryCampaign:
			m.gameID = GameCampaign
			return m, tea.Quit
		case entryEndless:
			m.gameID = GameEndless
			return m, tea.Quit
		case entrySelectLevel:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		case entryScores:
			m.openScoreboard = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.gameID = GameCampaign
		m.levelID = m.levels[m.levelCursor].ID
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevels()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("●  D O T S  ●"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Connect dots of one color. Close a loop to clear them all.", m.width))
	b.WriteString("\n\n")

	for i, entry := range mainEntries {
		if menuEntry(i) == entryCampaign {
			entry = fmt.Sprintf("%s (%d levels)", entry, len(m.levels))
		}
		b.WriteString(centerText(m.line(i == m.cursor, entry), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) viewLevels() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		line := fmt.Sprintf("%2d. %-12s %dx%d  %d colors  Target: %d", i+1, lvl.Name, lvl.Width, lvl.Height, len(lvl.Colors), lvl.Target)
		if best, ok := m.bests[lvl.ID]; ok {
			line += fmt.Sprintf("  Best: %d", best)
		}
		b.WriteString(centerText(m.line(i == m.levelCursor, line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

func (m MenuModel) line(selected bool, text string) string {
	if selected {
		return menuCursor.Render("> " + text)
	}
	return "  " + text
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	LevelID         string // campaign start level, empty for the first
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result converts the final menu state into a MenuResult.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}
	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.quitting || m.gameID == "":
		result.Quit = true
	default:
		result.GameID = m.gameID
		result.LevelID = m.levelID
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, list []levels.Level, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, list, cfg),
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
	return m.Result(), nil
}
