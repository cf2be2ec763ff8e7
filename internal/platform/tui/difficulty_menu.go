package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris-pwa/internal/config"
)

// difficultyChoice is one row of the difficulty picker.
type difficultyChoice struct {
	Preset config.DifficultyPreset
	Label  string
	Hint   string
}

var difficultyChoices = []difficultyChoice{
	{config.DifficultyNormal, "Normal", "guideline speed curve"},
	{config.DifficultyEasy, "Easy", "slower gravity"},
	{config.DifficultyHard, "Hard", "start at level 5"},
	{config.DifficultyFixed, "Fixed", "level never changes"},
}

// DifficultyModel lets the player pick a preset before a game starts.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a picker for the given mode title.
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyChoices)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.chosen = true
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Difficulty", m.width))
	b.WriteString("\n\n")

	for i, c := range difficultyChoices {
		line := "  " + c.Label + " - " + c.Hint
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + c.Label + " - " + c.Hint)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Play  |  B: Back  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Chosen reports whether a preset was selected.
func (m DifficultyModel) Chosen() bool { return m.chosen }

// Preset returns the highlighted preset.
func (m DifficultyModel) Preset() config.DifficultyPreset {
	return difficultyChoices[m.cursor].Preset
}

// IsBack returns true if the user backed out to the mode menu.
func (m DifficultyModel) IsBack() bool { return m.back }

// IsQuitting returns true if the user quit.
func (m DifficultyModel) IsQuitting() bool { return m.quitting }
