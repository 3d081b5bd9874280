package falsch

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Program is a lexed program, ready to run. Build it once with FromString,
// FromBytes or FromFile and execute it as often as needed; every run gets
// a fresh operand stack and variable table. The token stream is immutable
// and outlives every value that refers into it.
type Program struct {
	// Input
	name string
	src  string

	// Calculation
	tokens []*Token
}

func newProgram(name, src string) *Program {
	return &Program{
		name:   name,
		src:    src,
		tokens: lex(name, src),
	}
}

// Name returns the program's name (its file path, or "<string>").
func (p *Program) Name() string {
	return p.name
}

// Tokens returns the program's token stream, end sentinel included. The
// slice must not be modified.
func (p *Program) Tokens() []*Token {
	return p.tokens
}

// lineAt returns the source line starting at the given byte offset,
// without its trailing newline.
func (p *Program) lineAt(lineStart int) string {
	if lineStart < 0 || lineStart > len(p.src) {
		return ""
	}
	rest := p.src[lineStart:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i]
	}
	return rest
}

// Execute runs the program with the given stdin (nil for no input) and
// returns everything it wrote to stdout. Output produced before a failure
// is returned alongside the error.
func (p *Program) Execute(stdin io.Reader) (string, error) {
	var out strings.Builder
	err := p.ExecuteWriter(stdin, &out)
	return out.String(), err
}

// ExecuteWriter runs the program, streaming its output to stdout. On
// success the operand stack must be empty; leftovers are reported through
// ErrNonEmptyStack, drained and named in the diagnostic. On failure every
// remaining stack value is drained the same way and named in the returned
// error.
func (p *Program) ExecuteWriter(stdin io.Reader, stdout io.Writer) error {
	return p.executeBounded(stdin, stdout, 0)
}

// executeBounded is ExecuteWriter with a step budget (0 for no limit),
// letting tests keep otherwise-unbounded programs finite.
func (p *Program) executeBounded(stdin io.Reader, stdout io.Writer, limit int) error {
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	ctx := newExecutionContext(p, stdin, stdout)
	ctx.stepLimit = limit

	err := ctx.evaluate(0, len(p.tokens)-1) // the end sentinel is not evaluated
	if ferr := ctx.out.Flush(); err == nil && ferr != nil {
		err = &Error{Filename: p.name, Sender: "execution", OrigError: ferr}
	}
	if err != nil {
		// A failed run accounts for what it drains, like the empty-stack
		// check below.
		var left []string
		ctx.stack.Drain(func(v Value) {
			left = append(left, v.kindName())
		})
		var ferr *Error
		if len(left) > 0 && errors.As(err, &ferr) {
			ferr.OrigError = fmt.Errorf("%w; drained %d value(s) left behind (%s)",
				ferr.OrigError, len(left), strings.Join(left, ", "))
		}
		return err
	}

	if !ctx.stack.Empty() {
		var left []string
		ctx.stack.Drain(func(v Value) {
			left = append(left, v.kindName())
		})
		sentinel := p.tokens[len(p.tokens)-1]
		return ctx.Error(
			fmt.Errorf("%w: %d value(s) left behind (%s)",
				ErrNonEmptyStack, len(left), strings.Join(left, ", ")),
			sentinel)
	}
	return nil
}
