// Package progress renders a self-erasing textual progress bar.
//
// A Bar redraws only when the integer percentage changes, so driving it
// from a timed loop costs at most a hundred writes per run. Bars attached
// to anything other than an interactive console never write at all,
// keeping bar characters out of logs and redirected output.
package progress

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// DefaultWidth is the number of cells between the brackets.
const DefaultWidth = 70

// decorationWidth covers "[", "] ", up to three percentage digits and " %".
const decorationWidth = 8

// Console reports whether a destination is an interactive console.
type Console func(w io.Writer) bool

// DefaultConsole accepts only the process's standard output and standard
// error streams, and only while they are attached to a terminal.
func DefaultConsole(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Option configures a Bar.
type Option func(*Bar)

// WithWidth sets the number of cells between the brackets.
func WithWidth(width int) Option {
	return func(b *Bar) {
		if width > 0 {
			b.width = width
		}
	}
}

// WithConsole replaces the descriptor used to decide whether the bar
// renders.
func WithConsole(console Console) Option {
	return func(b *Bar) {
		b.console = console
	}
}

// Bar tracks progress toward a known maximum.
type Bar struct {
	out     io.Writer
	label   string
	max     uint64
	pos     uint64
	last    int
	width   int
	console Console
	enabled bool
}

// New creates a bar for max steps labelled with label. Whether it renders
// is decided here, once, from the console descriptor.
func New(out io.Writer, max uint64, label string, opts ...Option) *Bar {
	b := &Bar{
		out:     out,
		label:   label,
		max:     max,
		last:    -1,
		width:   DefaultWidth,
		console: DefaultConsole,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.enabled = b.console != nil && b.console(out)

	return b
}

// Enabled reports whether the bar writes to its destination.
func (b *Bar) Enabled() bool { return b.enabled }

// Step advances the bar by one step.
func (b *Bar) Step() { b.AdvanceBy(1) }

// AdvanceBy advances the bar by delta steps.
func (b *Bar) AdvanceBy(delta uint64) {
	b.pos += delta
	b.draw()
}

// SetPosition moves the bar to pos steps.
func (b *Bar) SetPosition(pos uint64) {
	b.pos = pos
	b.draw()
}

// Percent returns the completed percentage, capped at 100.
func (b *Bar) Percent() int {
	if b.max == 0 || b.pos >= b.max {
		return 100
	}

	return int(b.pos * 100 / b.max)
}

// Undraw erases the bar, leaving the cursor at the start of the line.
func (b *Bar) Undraw() {
	if !b.enabled {
		return
	}

	width := b.width + decorationWidth + len(b.label)

	var sb strings.Builder
	sb.Grow(width + 2)
	sb.WriteByte('\r')
	sb.WriteString(strings.Repeat(" ", width))
	sb.WriteByte('\r')

	b.write(sb.String())
	b.last = -1
}

// SetLabel erases the bar and redraws it with a new label.
func (b *Bar) SetLabel(label string) {
	b.Undraw()
	b.label = label
	b.draw()
}

func (b *Bar) draw() {
	if !b.enabled {
		return
	}

	progress := b.Percent()
	if progress == b.last {
		return
	}

	fill := b.width * progress / 100

	var sb strings.Builder
	sb.Grow(b.width + decorationWidth + len(b.label) + 2)
	sb.WriteByte('\r')
	sb.WriteString(b.label)
	sb.WriteByte('[')

	for i := range b.width {
		switch {
		case i < fill:
			sb.WriteByte('=')
		case i == fill:
			sb.WriteByte('>')
		default:
			sb.WriteByte(' ')
		}
	}

	sb.WriteString("] ")
	sb.WriteString(strconv.Itoa(progress))
	sb.WriteString(" %\r")

	b.write(sb.String())
	b.last = progress
}

// write sends s in one call and flushes destinations that buffer.
func (b *Bar) write(s string) {
	// Progress output is best effort.
	_, _ = io.WriteString(b.out, s)

	if f, ok := b.out.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}
