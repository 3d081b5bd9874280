package falsch

import (
	"errors"
	"testing"
)

func TestVariablesInitialState(t *testing.T) {
	vs := newVariables()

	// Slot a starts as integer 0.
	v, ok := vs.Get(0)
	if !ok {
		t.Fatal("slot a must be initialised")
	}
	if !v.IsInteger() || v.Integer() != 0 {
		t.Errorf("slot a = %s, want integer 0", v)
	}

	// Every other slot starts uninitialised.
	for slot := 1; slot < variableCount; slot++ {
		if _, ok := vs.Get(slot); ok {
			t.Errorf("slot %c must start uninitialised", 'a'+slot)
		}
	}
}

func TestVariablesSetGet(t *testing.T) {
	vs := newVariables()
	vs.Set(1, CodeValue(3, 8))

	v, ok := vs.Get(1)
	if !ok {
		t.Fatal("slot b must be initialised after Set")
	}
	first, last := v.Code()
	if !v.IsCode() || first != 3 || last != 8 {
		t.Errorf("slot b = %s, want [3,8)", v)
	}
}

func TestVariablesReadsAndWritesCopy(t *testing.T) {
	vs := newVariables()
	orig := IntValue(7)
	vs.Set(2, orig)

	got, _ := vs.Get(2)
	got = IntValue(got.Integer() + 1)
	again, _ := vs.Get(2)
	if again.Integer() != 7 {
		t.Errorf("slot c = %s after mutating a fetched copy, want 7", again)
	}
}

func TestContextErrorCapturesLocation(t *testing.T) {
	prog := Must(FromString("12 +\n."))
	ctx := newExecutionContext(prog, nil, nil)

	tok := prog.tokens[2] // the '+'
	err := ctx.Error(ErrStackUnderflow, tok)
	if err.Line != 1 || err.Column != 4 {
		t.Errorf("location = %d:%d, want 1:4", err.Line, err.Column)
	}
	if err.RawLine != "12 +" {
		t.Errorf("RawLine = %q, want %q", err.RawLine, "12 +")
	}
	if !errors.Is(err, ErrStackUnderflow) {
		t.Error("wrapped cause must be reachable via errors.Is")
	}
}
