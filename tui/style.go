package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleSpinner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("69"))

	stylePlain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeader = lipgloss.NewStyle().
			Bold(true)

	styleSlot = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleValid = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleQueryInput = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleProgress = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindHeader
	kindSlot
	kindValid
	kindSystem
	kindError
	kindProgress
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasSuffix(line, "out of reach."),
		strings.HasPrefix(line, "No "),
		strings.HasPrefix(line, "Unknown "),
		strings.HasPrefix(line, "Check failed"):
		return kindError
	case strings.HasSuffix(line, "is reachable."):
		return kindValid
	case strings.Contains(line, "→"), strings.Contains(line, "←"):
		return kindSlot
	case strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " "):
		return kindHeader
	default:
		return kindPlain
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeader:
		return styleHeader.Render(line)
	case kindSlot:
		return styledSlot(line)
	case kindValid:
		return styleValid.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindProgress:
		return styleProgress.Render(line)
	default:
		return stylePlain.Render(line)
	}
}

// styledSlot renders "A → B" or "A ← B" with the placed side highlighted.
func styledSlot(line string) string {
	for _, arrow := range []string{" → ", " ← "} {
		if i := strings.Index(line, arrow); i >= 0 {
			return stylePlain.Render(line[:i+len(arrow)]) + styleSlot.Render(line[i+len(arrow):])
		}
	}
	return stylePlain.Render(line)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
