// Package cli provides the plain-text report and query loop for a finished
// shuffle.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/doorshuffle/inspect"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/spoiler"
)

// CLI handles terminal interaction after generation.
type CLI struct {
	Session    *inspect.Session
	Settings   settings.Settings
	In         io.Reader
	Out        io.Writer
	SpoilerDir string
	EchoInput  bool   // echo each input line after the prompt (for script playback)
	lastCmd    string // for "again"/"g" repeat
}

// New creates a CLI over a finished shuffle.
func New(sess *inspect.Session, cfg settings.Settings) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Session:    sess,
		Settings:   cfg,
		In:         os.Stdin,
		Out:        os.Stdout,
		SpoilerDir: filepath.Join(home, ".doorshuffle", "spoilers"),
	}
}

// Run prints the report, then loops: prompt → input → query → output.
func (c *CLI) Run() {
	c.printReport()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.printResult(c.Session.Step(input))
	}
}

// handleMeta dispatches meta-commands. Returns true if the loop should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true
	case "/save":
		c.cmdSave(arg)
	case "/report":
		c.printReport()
	case "/help":
		c.cmdHelp()
	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
	return false
}

// SpoilerLog builds the spoiler log of the session's shuffle.
func SpoilerLog(sess *inspect.Session, cfg settings.Settings) *spoiler.Log {
	r := sess.Result
	return spoiler.New(r.Seed, r.Position, r.Attempts, cfg, r.Output.Entrances)
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = fmt.Sprintf("seed-%d", c.Session.Result.Seed)
	}
	if err := os.MkdirAll(c.SpoilerDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	path := filepath.Join(c.SpoilerDir, name+".json")
	if err := spoiler.Save(path, SpoilerLog(c.Session, c.Settings)); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Spoiler saved to %s.", path))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Write the spoiler log (default: seed-<seed>)",
		"  /report       — Show the summary again",
		"  /quit         — Exit",
		"  /help         — Show this help",
		"",
	}
	for _, line := range help {
		c.printLine(line)
	}
	c.printResult(c.Session.Step("help"))
	c.printLine("  again (g)           repeat the last query")
}

// ReportLines summarizes a finished shuffle.
func ReportLines(sess *inspect.Session, cfg settings.Settings) []string {
	r := sess.Result
	changed := func(slots []int) int {
		n := 0
		for i, v := range slots {
			if i != v {
				n++
			}
		}
		return n
	}

	label := lipgloss.NewStyle().Width(22)
	row := func(k string, v any) string {
		return label.Render(k) + fmt.Sprint(v)
	}
	return []string{
		row("Seed", r.Seed),
		row("Attempts", r.Attempts),
		row("Stream position", r.Position),
		row("Logic", cfg.Logic),
		row("Regions shuffled", cfg.ERRegions),
		row("Dungeon shuffle", cfg.ERDungeons),
		row("Boss shuffle", cfg.ERBoss),
		row("Entrances overridden", len(r.Output.Entrances.Overrides)),
		row("Dungeons moved", changed(r.Output.Entrances.Dungeons)),
		row("Bosses moved", changed(r.Output.Entrances.Boss)),
	}
}

func (c *CLI) printReport() {
	for _, line := range ReportLines(c.Session, c.Settings) {
		c.printLine(line)
	}
	c.printLine("")
	c.printLine("Type help for queries, /help for commands.")
}

func (c *CLI) printResult(result inspect.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
