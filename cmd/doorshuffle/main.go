// Doorshuffle shuffles the entrances of a combined Ocarina of Time and
// Majora's Mask world and checks that every placement keeps the required
// locations reachable.
// Usage: doorshuffle [--version] [--plain] [--seed <n>] [--attempts <n>] [--spoiler <file>] [--replay <file>] [--script <file>] <world_directory>
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/nathoo/doorshuffle/cli"
	"github.com/nathoo/doorshuffle/generator"
	"github.com/nathoo/doorshuffle/inspect"
	"github.com/nathoo/doorshuffle/loader"
	"github.com/nathoo/doorshuffle/monitor"
	"github.com/nathoo/doorshuffle/random"
	"github.com/nathoo/doorshuffle/settings"
	"github.com/nathoo/doorshuffle/spoiler"
	"github.com/nathoo/doorshuffle/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: doorshuffle [--version] [--plain] [--seed <n>] [--attempts <n>] [--spoiler <file>] [--replay <file>] [--script <file>] <world_directory>\n"

func main() {
	plain := false
	var worldDir, scriptFile, spoilerFile, replayFile string
	var seed int64
	seedSet := false
	attempts := 0

	args := os.Args[1:]
	value := func(i int, flag string) string {
		if i+1 >= len(args) {
			fmt.Fprintf(os.Stderr, "%s requires a value\n", flag)
			os.Exit(1)
		}
		return args[i+1]
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("doorshuffle %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--seed":
			n, err := strconv.ParseInt(value(i, "--seed"), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			i++
			seed, seedSet = n, true
		case "--attempts":
			n, err := strconv.Atoi(value(i, "--attempts"))
			if err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "--attempts requires a positive number\n")
				os.Exit(1)
			}
			i++
			attempts = n
		case "--spoiler":
			spoilerFile = value(i, "--spoiler")
			i++
		case "--replay":
			replayFile = value(i, "--replay")
			i++
		case "--script":
			scriptFile = value(i, "--script")
			i++
		default:
			if worldDir == "" {
				worldDir = args[i]
			}
		}
	}

	if worldDir == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := settings.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading settings: %v\n", err)
		os.Exit(1)
	}

	// Load and compile the Lua world description.
	defs, err := loader.Load(worldDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}
	for _, w := range defs.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	// Replay mode: seed, stream position and settings come from a spoiler log.
	var position int64
	if replayFile != "" {
		l, err := spoiler.Load(replayFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading replay: %v\n", err)
			os.Exit(1)
		}
		cfg, seed, position, seedSet = l.Settings, l.Seed, l.Position, true
	}

	if !seedSet {
		if seed, err = random.NewSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating seed: %v\n", err)
			os.Exit(1)
		}
	}

	opts := generator.Options{
		World:       defs.World,
		Parsers:     defs.Parsers,
		Settings:    cfg,
		Seed:        seed,
		Position:    position,
		MaxAttempts: attempts,
	}

	interactive := scriptFile == "" && !plain && isTerminal()
	var res *generator.Result
	if interactive {
		res, err = tui.Run(opts)
	} else {
		opts.Monitor = monitor.NewWriter(os.Stderr)
		res, err = generator.Run(context.Background(), opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if res == nil {
		return // quit before generation finished
	}

	sess := inspect.New(defs.World, res)
	if spoilerFile != "" {
		if err := spoiler.Save(spoilerFile, cli.SpoilerLog(sess, cfg)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing spoiler: %v\n", err)
			os.Exit(1)
		}
	}
	if interactive {
		return
	}

	c := cli.New(sess, cfg)
	// Script mode: read queries from the file and echo them.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c.In = f
		c.EchoInput = true
	}
	c.Run()
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
