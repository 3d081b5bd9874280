package falsch

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	origErr := errors.New("original error")
	ferr := &Error{
		Sender:    "test",
		OrigError: origErr,
	}

	if ferr.Unwrap() != origErr {
		t.Errorf("Unwrap() = %v, want %v", ferr.Unwrap(), origErr)
	}
	if !errors.Is(ferr, origErr) {
		t.Error("errors.Is should return true for the original error")
	}
}

func TestErrorString(t *testing.T) {
	ferr := &Error{
		Filename:  "prog.fls",
		Line:      2,
		Column:    5,
		Token:     &Token{Val: "."},
		Sender:    "evaluator",
		OrigError: ErrStackUnderflow,
	}
	s := ferr.Error()
	for _, part := range []string{"evaluator", "prog.fls", "Line 2 Col 5", "near '.'", "stack underflow"} {
		if !strings.Contains(s, part) {
			t.Errorf("Error() = %q, missing %q", s, part)
		}
	}
}

func TestErrorPretty(t *testing.T) {
	t.Run("caret under the offending column", func(t *testing.T) {
		_, err := run(t, `  .`, "")
		var ferr *Error
		if !errors.As(err, &ferr) {
			t.Fatalf("err = %v, want *Error", err)
		}
		want := "1:3: stack underflow\n" +
			"1:3:   .\n" +
			"1:3:   ^"
		if got := ferr.Pretty(false); got != want {
			t.Errorf("Pretty() = %q, want %q", got, want)
		}
	})

	t.Run("second line", func(t *testing.T) {
		_, err := run(t, "1 .\n  [", "")
		var ferr *Error
		if !errors.As(err, &ferr) {
			t.Fatalf("err = %v, want *Error", err)
		}
		want := "2:3: missing ']' to match '['\n" +
			"2:3:   [\n" +
			"2:3:   ^"
		if got := ferr.Pretty(false); got != want {
			t.Errorf("Pretty() = %q, want %q", got, want)
		}
	})

	t.Run("tabs before the caret are preserved", func(t *testing.T) {
		_, err := run(t, "\t.", "")
		var ferr *Error
		if !errors.As(err, &ferr) {
			t.Fatalf("err = %v, want *Error", err)
		}
		lines := strings.Split(ferr.Pretty(false), "\n")
		if len(lines) != 3 {
			t.Fatalf("Pretty() has %d lines, want 3", len(lines))
		}
		if !strings.HasSuffix(lines[2], "\t^") {
			t.Errorf("caret line = %q, want tab kept before the caret", lines[2])
		}
	})

	t.Run("colour wraps every line", func(t *testing.T) {
		_, err := run(t, `.`, "")
		var ferr *Error
		if !errors.As(err, &ferr) {
			t.Fatalf("err = %v, want *Error", err)
		}
		for _, line := range strings.Split(ferr.Pretty(true), "\n") {
			if !strings.HasPrefix(line, "\x1b[31m") || !strings.HasSuffix(line, "\x1b[0m") {
				t.Errorf("line %q not wrapped in colour escapes", line)
			}
		}
	})

	t.Run("no location", func(t *testing.T) {
		ferr := &Error{Sender: "fromfile", OrigError: errors.New("boom")}
		if got := ferr.Pretty(false); got != "boom" {
			t.Errorf("Pretty() = %q, want %q", got, "boom")
		}
	})
}

func TestTypeMismatchErrorMessage(t *testing.T) {
	e := &TypeMismatchError{Expected: "integer", Actual: "code"}
	if e.Error() != "expected integer, not code" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestUnmatchedBracketErrorMessage(t *testing.T) {
	e := &UnmatchedBracketError{Found: '[', Missing: ']'}
	if e.Error() != `missing ']' to match '['` {
		t.Errorf("Error() = %q", e.Error())
	}
}
