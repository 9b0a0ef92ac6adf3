// Package monitor carries human-readable progress text out of the generator.
package monitor

import (
	"fmt"
	"io"
)

// Monitor receives progress lines. It never affects the outcome.
type Monitor interface {
	Log(msg string)
}

// Discard drops every line.
var Discard Monitor = discard{}

type discard struct{}

func (discard) Log(string) {}

// Writer prints each line to an io.Writer.
type Writer struct {
	Out io.Writer
}

// NewWriter creates a monitor printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{Out: out}
}

// Log prints msg followed by a newline.
func (w *Writer) Log(msg string) {
	fmt.Fprintln(w.Out, msg)
}

// Func adapts a plain function to Monitor.
type Func func(msg string)

// Log calls f(msg).
func (f Func) Log(msg string) { f(msg) }
