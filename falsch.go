package falsch

import (
	"os"

	"github.com/juju/errors"
)

// Version string
const Version = "1.0.0"

// Must panics if the program could not be loaded. Use it for programs
// embedded in the host:
//
//	var boot = falsch.Must(falsch.FromString(`"ready"`))
func Must(p *Program, err error) *Program {
	if err != nil {
		panic(err)
	}
	return p
}

// FromString lexes a program from a source string. Structural problems
// (unmatched brackets, unknown bytes) surface at execution, not here.
func FromString(src string) (*Program, error) {
	return newProgram("<string>", src), nil
}

// FromBytes lexes a program from a source byte buffer.
func FromBytes(src []byte) (*Program, error) {
	return newProgram("<string>", string(src)), nil
}

// FromFile reads and lexes a program from the given path.
func FromFile(path string) (*Program, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			Filename:  path,
			Sender:    "fromfile",
			OrigError: errors.Annotate(err, "reading program"),
		}
	}
	return newProgram(path, string(buf)), nil
}
