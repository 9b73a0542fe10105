package evaluator

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\033[31m"
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

// WriteError renders an evaluation failure for humans: the message
// with its source position, the call trace innermost-first, and the
// evaluation id. Output is colorized only when w is a terminal.
func (i *Interp) WriteError(w io.Writer, err error) {
	color := isTerminal(w)
	red, dim, reset := "", "", ""
	if color {
		red, dim, reset = ansiRed, ansiDim, ansiReset
	}
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		fmt.Fprintf(w, "%serror:%s %v\n", red, reset, err)
		return
	}
	if evalErr.At.IsSet() {
		fmt.Fprintf(w, "%serror:%s %s %s(%s)%s\n", red, reset, evalErr.Message, dim, evalErr.At, reset)
	} else {
		fmt.Fprintf(w, "%serror:%s %s\n", red, reset, evalErr.Message)
	}
	for idx := len(evalErr.StackTrace) - 1; idx >= 0; idx-- {
		frame := evalErr.StackTrace[idx]
		fmt.Fprintf(w, "  at %s %s(%s)%s\n", frame.Name, dim, frame.At, reset)
	}
	fmt.Fprintf(w, "%sevaluation %s%s\n", dim, i.ID, reset)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
