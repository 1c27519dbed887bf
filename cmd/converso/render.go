package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"converso/internal/protocol"
)

// progressRenderer prints streamed worker progress. On a terminal it rewrites
// a single status line; otherwise it emits one plain line per update.
type progressRenderer struct {
	out      io.Writer
	rich     bool
	caser    cases.Caser
	rendered bool
	width    int
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	rich := false
	if f, ok := out.(*os.File); ok {
		rich = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &progressRenderer{
		out:   out,
		rich:  rich,
		caser: cases.Title(language.English),
	}
}

// Update renders one progress event.
func (r *progressRenderer) Update(event protocol.ProgressEvent) {
	line := fmt.Sprintf("%s: %5.1f%%", r.stageLabel(event.Stage), event.Percentage)
	if event.Message != "" {
		line += " " + event.Message
	}
	if !r.rich {
		fmt.Fprintln(r.out, line)
		return
	}
	padded := padToWidth(line, r.width)
	r.width = text.StringWidth(line)
	r.rendered = true
	fmt.Fprintf(r.out, "\r%s", padded)
}

// Finish terminates the rewritten status line when one was drawn.
func (r *progressRenderer) Finish() {
	if r.rich && r.rendered {
		fmt.Fprintln(r.out)
	}
}

// padToWidth appends spaces until line covers width terminal cells, so a
// rewritten status line fully clears its longer predecessor. Widths are
// measured in display cells, not bytes; titles routinely carry multibyte
// runes.
func padToWidth(line string, width int) string {
	if pad := width - text.StringWidth(line); pad > 0 {
		return line + strings.Repeat(" ", pad)
	}
	return line
}

func (r *progressRenderer) stageLabel(stage string) string {
	if stage == "" {
		return "Working"
	}
	return r.caser.String(strings.ReplaceAll(stage, "_", " "))
}
