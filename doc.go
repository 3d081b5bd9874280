// Package falsch implements an interpreter for a minimalist stack-oriented
// concatenative language in the tradition of FALSE.
//
// A program is a linear sequence of single-character tokens, numeric
// literals and quoted strings. Execution maintains an operand stack, 26
// named variables a..z, and first-class quoted code blocks [ ... ] that
// can be applied (!), conditionally executed (?) or iterated (#).
//
// A tiny example:
//
//	prog, err := falsch.FromString(`3 a: [a; 0 >] [a; . a; 1 - a:] #`)
//	if err != nil {
//	    panic(err)
//	}
//	out, err := prog.Execute(nil)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(out) // Output: 321
//
// Booleans are integers: true is -1 (all bits set), false is 0. The
// comparison operators = and > push that encoding, and & and | accept
// only -1 as true, while ? and # treat any non-zero integer as true.
package falsch
