package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/doorshuffle/settings"
)

// modeSummary lists the shuffled categories, e.g. "regions dungeons:full".
func modeSummary(cfg settings.Settings) string {
	var parts []string
	if cfg.ERRegions {
		parts = append(parts, "regions")
	}
	if cfg.ERDungeons != settings.ERNone {
		parts = append(parts, "dungeons:"+string(cfg.ERDungeons))
	}
	if cfg.ERBoss != settings.ERNone {
		parts = append(parts, "boss:"+string(cfg.ERBoss))
	}
	if len(parts) == 0 {
		return "vanilla"
	}
	return strings.Join(parts, " ")
}

// renderStatusBar produces a full-width inverted status line showing the
// seed, the shuffled categories, and the attempt count.
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" Seed %d | %s", m.opts.Seed, modeSummary(m.opts.Settings))

	var right string
	switch {
	case m.generating:
		right = fmt.Sprintf("Attempt %d ", m.attempt())
	case m.session != nil:
		n := len(m.session.Result.Output.Entrances.Overrides)
		right = fmt.Sprintf("Overrides: %d | Attempts: %d ", n, m.session.Result.Attempts)
		if lipgloss.Width(left)+lipgloss.Width(right)+2 >= m.width {
			right = fmt.Sprintf("A:%d ", m.session.Result.Attempts)
		}
	default:
		right = "failed "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// attempt counts the attempts started so far from the progress lines.
func (m Model) attempt() int {
	n := 0
	for _, line := range m.progress {
		if strings.Contains(line, "(attempt ") {
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}
