package ui

import (
	"strings"
	"unicode/utf8"

	"hoshipad/internal/width"

	"github.com/charmbracelet/lipgloss"
)

// View renders the viewport, the mode line and the command line.
func (m EditorModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	rows := m.textRows()
	out := make([]string, 0, rows+2)
	for y := 0; y < rows; y++ {
		n := m.top + y
		// Line returns "" past the end, which leaves the rest blank.
		text := width.Truncate(m.buf.Line(n), m.width)
		if n == m.line && m.mode != ModeCommand {
			text = renderCursor(text, m.col, m.width)
		}
		out = append(out, text)
	}
	out = append(out, m.renderModeLine(), m.renderCommandLine())
	return strings.Join(out, "\n")
}

func (m EditorModel) renderModeLine() string {
	indicator := m.mode.String()
	fill := m.width - lipgloss.Width(indicator)
	if fill < 0 {
		fill = 0
	}
	return modeLineStyle.Render(indicator + strings.Repeat("-", fill))
}

func (m EditorModel) renderCommandLine() string {
	switch {
	case m.errMsg != "":
		return errorMessageStyle.Render(width.Truncate(m.errMsg, m.width))
	case m.status != "":
		return messageStyle.Render(width.Truncate(m.status, m.width))
	case m.mode == ModeCommand:
		text := width.Truncate(m.cmdHeader+m.cmdEntry, m.width)
		return renderCursor(text, m.cmdCol, m.width)
	}
	return ""
}

// renderCursor highlights the cell at visual column col. A column past the
// end of the text gets a highlighted blank.
func renderCursor(text string, col, maxWidth int) string {
	var sb strings.Builder
	pos := 0
	for i, r := range text {
		w := width.Rune(r)
		if w > 0 && col >= pos && col < pos+w {
			sb.WriteString(text[:i])
			sb.WriteString(cursorStyle.Render(string(r)))
			sb.WriteString(text[i+utf8.RuneLen(r):])
			return sb.String()
		}
		pos += w
	}
	if col >= maxWidth {
		return text
	}
	return text + strings.Repeat(" ", max(col-pos, 0)) + cursorStyle.Render(" ")
}

// Styles for the editor.
var (
	modeLineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF5555")).
				Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FFFFFF")).
			Foreground(lipgloss.Color("#000000"))
)
