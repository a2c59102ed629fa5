// Package tui provides the Bubble Tea reading interface.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/bheadmaster/fastread/internal/pace"
)

var (
	chunkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	wordStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	focusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

const defaultFocusColumn = 40

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return renderFocusLine(m.win.Current(), defaultFocusColumn)
	}

	focusLine := renderFocusLine(m.win.Current(), m.width/2)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	if m.height < 4 {
		return focusLine + "\n" + footer
	}

	chunkHeight := m.height - 3
	chunk := lipgloss.Place(m.width, chunkHeight, lipgloss.Center, lipgloss.Center, m.renderChunk())
	return chunk + "\n" + focusLine + "\n\n" + footer
}

// renderFocusLine lays out the current word so its midpoint rune sits at the
// given terminal column, keeping the eye anchored while words change.
func renderFocusLine(word string, col int) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	mid := len(runes) / 2
	before := string(runes[:mid])
	focus := string(runes[mid])
	after := string(runes[mid+1:])
	pad := col - runewidth.StringWidth(before)
	if pad < 0 {
		pad = 0
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", pad))
	if before != "" {
		b.WriteString(wordStyle.Render(before))
	}
	b.WriteString(focusStyle.Render(focus))
	if after != "" {
		b.WriteString(wordStyle.Render(after))
	}
	return b.String()
}

type styledWord struct {
	s     string
	width int
}

func (m *Model) renderChunk() string {
	words, offset := m.win.WindowAround(m.cfg.ChunkSize)
	styled := buildStyledWords(words, offset)
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledWords(styled, contentWidth)
	return lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
}

func buildStyledWords(words []string, offset int) []styledWord {
	out := make([]styledWord, 0, len(words))
	for i, word := range words {
		style := chunkStyle
		if i == offset {
			style = currentWordStyle
		}
		out = append(out, styledWord{
			s:     style.Render(word),
			width: runewidth.StringWidth(word),
		})
	}
	return out
}

// wrapStyledWords greedily packs words into lines of at most width cells,
// one space between words. A word wider than the line gets a line to itself.
func wrapStyledWords(words []styledWord, width int) string {
	var out strings.Builder
	lineWidth := 0
	for _, word := range words {
		if lineWidth == 0 {
			out.WriteString(word.s)
			lineWidth = word.width
			continue
		}
		if lineWidth+1+word.width > width {
			out.WriteRune('\n')
			out.WriteString(word.s)
			lineWidth = word.width
			continue
		}
		out.WriteRune(' ')
		out.WriteString(word.s)
		lineWidth += 1 + word.width
	}
	return out.String()
}

func (m *Model) renderFooter() string {
	cursor, total := m.win.Progress()
	segments := []string{
		stateText(m.engine.State()),
		fmt.Sprintf("%d wpm", m.engine.Speed()),
		formatProgress(cursor, total),
		"space pause · h/l step · j/k speed · q quit",
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func stateText(s pace.State) string {
	switch s {
	case pace.Paused:
		return "paused"
	case pace.Backward:
		return "reversing"
	case pace.Frozen:
		return "frozen"
	default:
		return "reading"
	}
}

// formatProgress renders the consumed-word count and the percentage truncated
// to five decimal digits.
func formatProgress(cursor, total int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(cursor) / float64(total) * 100
	}
	pct = math.Trunc(pct*1e5) / 1e5
	return fmt.Sprintf("%d/%d · %.5f%%", cursor, total, pct)
}
