package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proxypress/proxypress/pkg/project"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// cardEditModel is the bubbletea model for the interactive count editor.
// Up/down selects a card, left/right (or -/+) adjusts its count, enter
// saves, q or esc quits without saving.
type cardEditModel struct {
	cards  project.CardList
	cursor int
	height int
	offset int
	saved  bool
}

// newCardEditModel copies the card list so quitting without saving
// leaves the project untouched.
func newCardEditModel(cards project.CardList) cardEditModel {
	copied := make(project.CardList, len(cards))
	copy(copied, cards)
	return cardEditModel{
		cards:  copied,
		height: 15,
	}
}

func (m cardEditModel) Init() tea.Cmd {
	return nil
}

func (m cardEditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			m.saved = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case "down", "j":
			if m.cursor < len(m.cards)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}

		case "right", "l", "+", "=":
			m.cards[m.cursor].Count++

		case "left", "h", "-", "_":
			if m.cards[m.cursor].Count > 0 {
				m.cards[m.cursor].Count--
			}

		case "0":
			m.cards[m.cursor].Count = 0
		}
	}
	return m, nil
}

func (m cardEditModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Card counts"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.cards) {
		end = len(m.cards)
	}
	for i := m.offset; i < end; i++ {
		card := m.cards[i]
		line := fmt.Sprintf("%-40s %3d", card.Name, card.Count)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if end < len(m.cards) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(m.cards)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select · ←/→ adjust · 0 zero · enter save · q quit"))
	b.WriteString("\n")
	return b.String()
}
