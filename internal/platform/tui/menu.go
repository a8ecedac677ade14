package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cloudhop/internal/core"
	"github.com/vovakirdan/cloudhop/internal/skins"
)

// Nickname length bounds, in characters.
const (
	MinNicknameLen = 3
	MaxNicknameLen = 12
)

// Nickname validation errors.
var (
	ErrNicknameShort = fmt.Errorf("nickname must contain at least %d characters", MinNicknameLen)
	ErrNicknameLong  = fmt.Errorf("nickname must not exceed %d characters", MaxNicknameLen)
)

// ValidateNickname checks the trimmed nickname length.
func ValidateNickname(nick string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(nick))
	switch {
	case n < MinNicknameLen:
		return ErrNicknameShort
	case n > MaxNicknameLen:
		return ErrNicknameLong
	}
	return nil
}

// MenuChoice is what the player picked in the menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceLeaderboard
	ChoiceQuit
)

// Menu rows, top to bottom.
const (
	rowNickname = iota
	rowSkin
	rowPlay
	rowLeaderboard
	rowQuit
	rowCount
)

// MenuOptions configures the menu.
type MenuOptions struct {
	Nickname     string
	LockNickname bool // SSH sessions use the account name
	Skins        skins.Selector
	Best         int
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	nickname  textinput.Model
	locked    bool
	catalog   []skins.Skin
	skinIdx   int
	selector  skins.Selector
	best      int
	keyMapper *KeyMapper
	err       error
	choice    MenuChoice
	styles    menuStyles
}

type menuStyles struct {
	title    lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	locked   lipgloss.Style
	err      lipgloss.Style
	hint     lipgloss.Style
}

func newMenuStyles(r *lipgloss.Renderer) menuStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return menuStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		active:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		inactive: r.NewStyle().Foreground(lipgloss.Color("252")),
		locked:   r.NewStyle().Foreground(lipgloss.Color("241")),
		err:      r.NewStyle().Foreground(lipgloss.Color("9")),
		hint:     r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, opts MenuOptions, r *lipgloss.Renderer) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "nickname"
	ti.CharLimit = MaxNicknameLen
	ti.Width = MaxNicknameLen + 1
	ti.Prompt = ""
	ti.SetValue(opts.Nickname)

	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		nickname:  ti,
		locked:    opts.LockNickname,
		catalog:   skins.List(),
		selector:  opts.Skins,
		best:      opts.Best,
		keyMapper: NewKeyMapper(),
		styles:    newMenuStyles(r),
	}

	current := skins.DefaultID
	if m.selector != nil {
		current = skins.Current(m.selector, m.best).SkinID
	}
	for i, s := range m.catalog {
		if s.ID == current {
			m.skinIdx = i
		}
	}

	if m.locked || ValidateNickname(opts.Nickname) == nil {
		m.cursor = rowPlay
	} else {
		m.nickname.Focus()
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	if m.nickname.Focused() {
		return textinput.Blink
	}
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
		return m, nil
	}

	var cmd tea.Cmd
	m.nickname, cmd = m.nickname.Update(msg)
	return m, cmd
}

func (m MenuModel) typing() bool {
	return m.cursor == rowNickname && !m.locked
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg, m.typing()) {
	case MenuActionQuit:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionBack:
		if m.typing() {
			m.moveTo(rowPlay)
			return m, nil
		}
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		return m, m.moveTo((m.cursor + rowCount - 1) % rowCount)

	case MenuActionDown:
		return m, m.moveTo((m.cursor + 1) % rowCount)

	case MenuActionLeft:
		if m.cursor == rowSkin {
			m.cycleSkin(-1)
		}
		return m, nil

	case MenuActionRight:
		if m.cursor == rowSkin {
			m.cycleSkin(1)
		}
		return m, nil

	case MenuActionSelect:
		return m.selectRow()
	}

	if m.typing() {
		var cmd tea.Cmd
		m.nickname, cmd = m.nickname.Update(msg)
		m.err = nil
		return m, cmd
	}
	return m, nil
}

func (m *MenuModel) moveTo(row int) tea.Cmd {
	m.cursor = row
	if m.typing() {
		return m.nickname.Focus()
	}
	m.nickname.Blur()
	return nil
}

// cycleSkin moves through the catalog, persisting unlocked choices.
func (m *MenuModel) cycleSkin(delta int) {
	if len(m.catalog) == 0 {
		return
	}
	m.skinIdx = (m.skinIdx + delta + len(m.catalog)) % len(m.catalog)
	m.err = nil

	skin := m.catalog[m.skinIdx]
	if !skin.Unlocked(m.best) || m.selector == nil {
		return
	}
	if err := skins.Select(m.selector, skin.ID, m.best); err != nil {
		m.err = err
	}
}

func (m MenuModel) selectRow() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case rowNickname:
		return m, m.moveTo(rowSkin)
	case rowSkin:
		m.cycleSkin(1)
		return m, nil
	case rowPlay:
		if err := ValidateNickname(m.nickname.Value()); err != nil {
			m.err = err
			return m, m.moveTo(rowNickname)
		}
		if !m.SelectedSkin().Unlocked(m.best) {
			m.err = fmt.Errorf("%w: reach %d to unlock", skins.ErrLocked, m.SelectedSkin().UnlockScore)
			return m, nil
		}
		m.choice = ChoicePlay
		return m, tea.Quit
	case rowLeaderboard:
		m.choice = ChoiceLeaderboard
		return m, tea.Quit
	case rowQuit:
		m.choice = ChoiceQuit
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.styles.title.Render("C L O U D H O P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.styles.hint.Render(fmt.Sprintf("Best: %d", m.best)), m.width))
	b.WriteString("\n\n")

	for row := range rowCount {
		b.WriteString(centerText(m.renderRow(row), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(centerText(m.styles.err.Render(m.err.Error()), m.width))
	}
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Left/Right: Skin  |  Enter: Select  |  Esc: Quit"
	b.WriteString(centerText(m.styles.hint.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderRow(row int) string {
	cursor := "  "
	style := m.styles.inactive
	if row == m.cursor {
		cursor = "> "
		style = m.styles.active
	}

	switch row {
	case rowNickname:
		if m.locked {
			return style.Render(cursor + "Player: " + m.nickname.Value())
		}
		return style.Render(cursor+"Player: ") + m.nickname.View()
	case rowSkin:
		skin := m.SelectedSkin()
		label := fmt.Sprintf("%sSkin: < %s %s >", cursor, skin.Glyph, skin.Name)
		if !skin.Unlocked(m.best) {
			return m.styles.locked.Render(fmt.Sprintf("%s  (unlocks at %d)", label, skin.UnlockScore))
		}
		return style.Render(label)
	case rowPlay:
		return style.Render(cursor + "Play")
	case rowLeaderboard:
		return style.Render(cursor + "Leaderboard")
	case rowQuit:
		return style.Render(cursor + "Quit")
	}
	return ""
}

// Choice returns what the player picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Nickname returns the entered nickname, trimmed.
func (m MenuModel) Nickname() string {
	return strings.TrimSpace(m.nickname.Value())
}

// SelectedSkin returns the skin under the skin cursor.
func (m MenuModel) SelectedSkin() skins.Skin {
	if len(m.catalog) == 0 {
		s, _ := skins.Get(skins.DefaultID)
		return s
	}
	return m.catalog[m.skinIdx]
}

// Err returns the last validation error shown to the player.
func (m MenuModel) Err() error {
	return m.err
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
