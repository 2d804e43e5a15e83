package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\033[31m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// Reporter writes diagnostics for humans, one error per line.
type Reporter struct {
	out   io.Writer
	color bool
}

// NewReporter enables color when out is a terminal.
func NewReporter(out io.Writer) *Reporter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{out: out, color: color}
}

// Report prints err. Locations are resolved against source when the
// token only carries a position index.
func (r *Reporter) Report(err error, source string) error {
	de, ok := err.(*DiagnosticError)
	if !ok {
		_, werr := fmt.Fprintln(r.out, err.Error())
		return werr
	}
	located := *de
	located.Token = de.Token.WithLocation(source)
	line := located.Error()
	if r.color {
		line = ansiBold + ansiRed + line + ansiReset
	}
	_, werr := fmt.Fprintln(r.out, line)
	return werr
}
