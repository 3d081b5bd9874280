package falsch

import (
	"io"
	"strconv"
)

// The evaluator walks tokens in [first, last), performing one action per
// token. There are no explicit modes: each token either completes
// immediately or triggers a sub-parse that consumes a bracketed or quoted
// range atomically. Control operators re-enter evaluate over a code
// range, sharing the context's stack and variable table; nesting depth is
// bounded only by the host call stack.
func (ctx *ExecutionContext) evaluate(first, last int) error {
	toks := ctx.program.tokens
	it := first
	for it < last {
		tok := toks[it]
		if ctx.stepLimit > 0 {
			ctx.stepsUsed++
			if ctx.stepsUsed > ctx.stepLimit {
				return ctx.Error(errStepLimit, tok)
			}
		}
		switch tok.Typ {
		case TokenWhitespace:
			it++

		case TokenLComment:
			end, err := ctx.skipMatched(it, last, TokenLComment, TokenRComment)
			if err != nil {
				return err
			}
			it = end + 1

		case TokenRComment:
			return ctx.Error(&UnmatchedBracketError{Found: '}', Missing: '{'}, tok)

		case TokenLCode:
			end, err := ctx.skipMatched(it, last, TokenLCode, TokenRCode)
			if err != nil {
				return err
			}
			ctx.stack.Push(CodeValue(it+1, end))
			it = end + 1

		case TokenRCode:
			return ctx.Error(&UnmatchedBracketError{Found: ']', Missing: '['}, tok)

		case TokenVaradr:
			ctx.stack.Push(VariableValue(int(tok.Val[0] - 'a')))
			it++

		case TokenValue:
			// Decimal digits accumulated with two's-complement wrap-around;
			// overflow is silent.
			n := 0
			for i := 0; i < len(tok.Val); i++ {
				n = n*10 + int(tok.Val[i]-'0')
			}
			ctx.stack.Push(IntValue(n))
			it++

		case TokenChar:
			// An apostrophe at end of input has an empty span and pushes 0.
			n := 0
			if len(tok.Val) > 0 {
				n = int(tok.Val[0])
			}
			ctx.stack.Push(IntValue(n))
			it++

		case TokenQuote:
			end, err := ctx.emitQuoted(it, last)
			if err != nil {
				return err
			}
			it = end + 1

		case TokenAssign:
			if err := ctx.doAssign(tok); err != nil {
				return err
			}
			it++

		case TokenFetch:
			if err := ctx.doFetch(tok); err != nil {
				return err
			}
			it++

		case TokenApply:
			bodyFirst, bodyLast, err := ctx.popCode(tok)
			if err != nil {
				return err
			}
			if err := ctx.evaluate(bodyFirst, bodyLast); err != nil {
				return err
			}
			it++

		case TokenPlus, TokenMinus, TokenMultiply, TokenDivide,
			TokenEqual, TokenGreater, TokenAnd, TokenOr:
			if err := ctx.doBinary(tok); err != nil {
				return err
			}
			it++

		case TokenNegate, TokenNot:
			if err := ctx.doUnary(tok); err != nil {
				return err
			}
			it++

		case TokenDup:
			if err := ctx.doDup(tok); err != nil {
				return err
			}
			it++

		case TokenDrop:
			if _, err := ctx.popAny(tok); err != nil {
				return err
			}
			it++

		case TokenSwap:
			if err := ctx.doSwap(tok); err != nil {
				return err
			}
			it++

		case TokenRot:
			if err := ctx.doRot(tok); err != nil {
				return err
			}
			it++

		case TokenIf:
			if err := ctx.doIf(tok); err != nil {
				return err
			}
			it++

		case TokenWhile:
			if err := ctx.doWhile(tok); err != nil {
				return err
			}
			it++

		case TokenPrintInt:
			n, err := ctx.popInteger(tok)
			if err != nil {
				return err
			}
			if _, err := ctx.out.WriteString(strconv.Itoa(n)); err != nil {
				return ctx.Error(err, tok)
			}
			it++

		case TokenPrintChar:
			n, err := ctx.popInteger(tok)
			if err != nil {
				return err
			}
			if err := ctx.out.WriteByte(byte(n)); err != nil {
				return ctx.Error(err, tok)
			}
			it++

		case TokenReadChar:
			b, err := ctx.in.ReadByte()
			if err == io.EOF {
				ctx.stack.Push(IntValue(-1))
			} else if err != nil {
				return ctx.Error(err, tok)
			} else {
				ctx.stack.Push(IntValue(int(b)))
			}
			it++

		default:
			return ctx.Error(ErrUnknownToken, tok)
		}
	}
	return nil
}

// skipMatched finds the matching closer for the opener at index open,
// honouring arbitrary nesting of down/up pairs, and returns the closer's
// index. The search stops at the enclosing range's endpoint; running out
// of tokens reports an unmatched opener at the opener's location.
func (ctx *ExecutionContext) skipMatched(open, last int, down, up TokenType) (int, error) {
	toks := ctx.program.tokens
	it := open + 1
	for it < last {
		switch toks[it].Typ {
		case down:
			end, err := ctx.skipMatched(it, last, down, up)
			if err != nil {
				return 0, err
			}
			it = end + 1
		case up:
			return it, nil
		default:
			it++
		}
	}
	return 0, ctx.Error(&UnmatchedBracketError{Found: byte(down), Missing: byte(up)}, toks[open])
}

// emitQuoted handles a string literal: every token between the quote at
// index open and its closing quote contributes its first source byte,
// whitespace included, so the output reproduces the source spacing. The
// closing quote must lie within the enclosing range.
func (ctx *ExecutionContext) emitQuoted(open, last int) (int, error) {
	toks := ctx.program.tokens
	end := open + 1
	for end < last && toks[end].Typ != TokenQuote {
		end++
	}
	if end == last {
		return 0, ctx.Error(ErrUnmatchedQuote, toks[open])
	}
	for it := open + 1; it < end; it++ {
		if len(toks[it].Val) == 0 {
			continue
		}
		if err := ctx.out.WriteByte(toks[it].Val[0]); err != nil {
			return 0, ctx.Error(err, toks[it])
		}
	}
	return end, nil
}

// popAny pops the top value, reporting underflow at tok.
func (ctx *ExecutionContext) popAny(tok *Token) (Value, error) {
	v, err := ctx.stack.Pop()
	if err != nil {
		return Value{}, ctx.Error(err, tok)
	}
	return v, nil
}

// popInteger pops the top value and checks it is an integer.
func (ctx *ExecutionContext) popInteger(tok *Token) (int, error) {
	v, err := ctx.popAny(tok)
	if err != nil {
		return 0, err
	}
	if !v.IsInteger() {
		return 0, ctx.Error(&TypeMismatchError{Expected: "integer", Actual: v.kindName()}, tok)
	}
	return v.Integer(), nil
}

// popVariable pops the top value and checks it is a variable address.
func (ctx *ExecutionContext) popVariable(tok *Token) (int, error) {
	v, err := ctx.popAny(tok)
	if err != nil {
		return 0, err
	}
	if !v.IsVariable() {
		return 0, ctx.Error(&TypeMismatchError{Expected: "variable", Actual: v.kindName()}, tok)
	}
	return v.Slot(), nil
}

// popCode pops the top value and checks it is a quotation.
func (ctx *ExecutionContext) popCode(tok *Token) (first, last int, err error) {
	v, err := ctx.popAny(tok)
	if err != nil {
		return 0, 0, err
	}
	if !v.IsCode() {
		return 0, 0, ctx.Error(&TypeMismatchError{Expected: "code", Actual: v.kindName()}, tok)
	}
	first, last = v.Code()
	return first, last, nil
}

// doAssign pops the address, then the value, and stores a copy of the
// value in the addressed slot.
func (ctx *ExecutionContext) doAssign(tok *Token) error {
	slot, err := ctx.popVariable(tok)
	if err != nil {
		return err
	}
	v, err := ctx.popAny(tok)
	if err != nil {
		return err
	}
	ctx.vars.Set(slot, v)
	return nil
}

// doFetch pops the address and pushes a copy of the slot's contents.
// Fetching a slot that was never assigned is an error.
func (ctx *ExecutionContext) doFetch(tok *Token) error {
	slot, err := ctx.popVariable(tok)
	if err != nil {
		return err
	}
	v, ok := ctx.vars.Get(slot)
	if !ok {
		return ctx.Error(ErrUninitialisedVariable, tok)
	}
	ctx.stack.Push(v)
	return nil
}

// doBinary pops the right operand, then the left, and pushes the result.
// Arithmetic wraps at the host integer width; division truncates toward
// zero. Comparisons push -1 or 0. And/or treat only -1 as true.
func (ctx *ExecutionContext) doBinary(tok *Token) error {
	rhs, err := ctx.popInteger(tok)
	if err != nil {
		return err
	}
	lhs, err := ctx.popInteger(tok)
	if err != nil {
		return err
	}

	var out int
	switch tok.Typ {
	case TokenPlus:
		out = lhs + rhs
	case TokenMinus:
		out = lhs - rhs
	case TokenMultiply:
		out = lhs * rhs
	case TokenDivide:
		if rhs == 0 {
			return ctx.Error(ErrDivideByZero, tok)
		}
		out = lhs / rhs
	case TokenEqual:
		if lhs == rhs {
			out = boolTrue
		}
	case TokenGreater:
		if lhs > rhs {
			out = boolTrue
		}
	case TokenAnd:
		if lhs == boolTrue && rhs == boolTrue {
			out = boolTrue
		}
	case TokenOr:
		if lhs == boolTrue || rhs == boolTrue {
			out = boolTrue
		}
	}
	ctx.stack.Push(IntValue(out))
	return nil
}

// doUnary pops one integer and pushes the result. Negate flips the sign;
// not maps 0 to -1 and everything else to 0.
func (ctx *ExecutionContext) doUnary(tok *Token) error {
	n, err := ctx.popInteger(tok)
	if err != nil {
		return err
	}
	switch tok.Typ {
	case TokenNegate:
		n = -n
	case TokenNot:
		if n == boolFalse {
			n = boolTrue
		} else {
			n = boolFalse
		}
	}
	ctx.stack.Push(IntValue(n))
	return nil
}

func (ctx *ExecutionContext) doDup(tok *Token) error {
	v, err := ctx.popAny(tok)
	if err != nil {
		return err
	}
	ctx.stack.Push(v)
	ctx.stack.Push(v)
	return nil
}

func (ctx *ExecutionContext) doSwap(tok *Token) error {
	rhs, err := ctx.popAny(tok)
	if err != nil {
		return err
	}
	lhs, err := ctx.popAny(tok)
	if err != nil {
		return err
	}
	ctx.stack.Push(rhs)
	ctx.stack.Push(lhs)
	return nil
}

// doRot rotates the third value from the top onto the top: a b c -> b c a.
func (ctx *ExecutionContext) doRot(tok *Token) error {
	rhs, err := ctx.popAny(tok)
	if err != nil {
		return err
	}
	mhs, err := ctx.popAny(tok)
	if err != nil {
		return err
	}
	lhs, err := ctx.popAny(tok)
	if err != nil {
		return err
	}
	ctx.stack.Push(mhs)
	ctx.stack.Push(rhs)
	ctx.stack.Push(lhs)
	return nil
}

// doIf pops the body, then the condition; any non-zero condition runs the
// body. Note the asymmetry with and/or, which accept only -1 as true.
func (ctx *ExecutionContext) doIf(tok *Token) error {
	bodyFirst, bodyLast, err := ctx.popCode(tok)
	if err != nil {
		return err
	}
	cond, err := ctx.popInteger(tok)
	if err != nil {
		return err
	}
	if cond != boolFalse {
		return ctx.evaluate(bodyFirst, bodyLast)
	}
	return nil
}

// doWhile pops the body, then the guard, both quotations. Each round runs
// the guard, pops the integer it left, stops on 0 and otherwise runs the
// body. A pre-computed integer guard must be wrapped in a quotation.
func (ctx *ExecutionContext) doWhile(tok *Token) error {
	bodyFirst, bodyLast, err := ctx.popCode(tok)
	if err != nil {
		return err
	}
	guardFirst, guardLast, err := ctx.popCode(tok)
	if err != nil {
		return err
	}
	for {
		if err := ctx.evaluate(guardFirst, guardLast); err != nil {
			return err
		}
		r, err := ctx.popInteger(tok)
		if err != nil {
			return err
		}
		if r == boolFalse {
			return nil
		}
		if err := ctx.evaluate(bodyFirst, bodyLast); err != nil {
			return err
		}
	}
}
