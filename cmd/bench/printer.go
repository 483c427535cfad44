package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/JaimeStill/promptbench/internal/history"
)

const defaultWrap = 100

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	dimColor  = color.New(color.FgHiBlack)
	keyColor  = color.New(color.FgCyan)
)

// printer writes command output. Responses are rendered as markdown code
// blocks through glamour when stdout is a terminal.
type printer struct {
	w      io.Writer
	asJSON bool
	tty    bool
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	return &printer{w: w, asJSON: asJSON, tty: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) wrapWidth() int {
	if f, ok := p.w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 20 {
			return width - 4
		}
	}
	return defaultWrap
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) success(format string, args ...any) {
	okColor.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) warn(format string, args ...any) {
	warnColor.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) field(key string, value any) {
	fmt.Fprintf(p.w, "%s %v\n", keyColor.Sprint(key+":"), value)
}

func (p *printer) status(s string) string {
	if s == history.StatusOK {
		return okColor.Sprint(s)
	}
	return failColor.Sprint(s)
}

func (p *printer) dim(s string) string {
	return dimColor.Sprint(s)
}

// value prints v as indented JSON. It returns true when --json was given so
// callers can skip their formatted output.
func (p *printer) value(v any) (bool, error) {
	if !p.asJSON {
		return false, nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return true, err
	}
	fmt.Fprintln(p.w, string(data))
	return true, nil
}

// document prints a raw JSON document, highlighted when attached to a terminal.
func (p *printer) document(raw json.RawMessage) error {
	if len(raw) == 0 {
		p.line("%s", p.dim("(empty)"))
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}

	if !p.tty {
		fmt.Fprintln(p.w, buf.String())
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(p.wrapWidth()),
	)
	if err != nil {
		return err
	}
	out, err := r.Render("```json\n" + buf.String() + "\n```\n")
	if err != nil {
		return err
	}
	fmt.Fprint(p.w, out)
	return nil
}

// markdown renders prose such as prompt content.
func (p *printer) markdown(s string) error {
	if !p.tty {
		fmt.Fprintln(p.w, s)
		return nil
	}
	out, err := glamour.Render(s, "dark")
	if err != nil {
		return err
	}
	fmt.Fprint(p.w, out)
	return nil
}
