package expr

import (
	"fmt"

	"github.com/hocevar-remez/goremez/breal"
)

type funcInfo struct {
	unary  bool
	uop    UnaryOp
	bop    BinaryOp
	arity  int
}

// functions maps the grammar's keyword-lookup table (preferred over a
// longest-match-first alternative, per the solver's lexer/parser split).
var functions = map[string]funcInfo{
	"sqrt":       {unary: true, uop: Sqrt, arity: 1},
	"cbrt":       {unary: true, uop: Cbrt, arity: 1},
	"exp":        {unary: true, uop: ExpOp, arity: 1},
	"exp2":       {unary: true, uop: Exp2Op, arity: 1},
	"erf":        {unary: true, uop: ErfOp, arity: 1},
	"log":        {unary: true, uop: LogOp, arity: 1},
	"log2":       {unary: true, uop: Log2Op, arity: 1},
	"log10":      {unary: true, uop: Log10Op, arity: 1},
	"sin":        {unary: true, uop: SinOp, arity: 1},
	"cos":        {unary: true, uop: CosOp, arity: 1},
	"tan":        {unary: true, uop: TanOp, arity: 1},
	"asin":       {unary: true, uop: AsinOp, arity: 1},
	"acos":       {unary: true, uop: AcosOp, arity: 1},
	"atan":       {unary: true, uop: AtanOp, arity: 1},
	"sinh":       {unary: true, uop: SinhOp, arity: 1},
	"cosh":       {unary: true, uop: CoshOp, arity: 1},
	"tanh":       {unary: true, uop: TanhOp, arity: 1},
	"abs":        {unary: true, uop: Abs, arity: 1},
	"float":      {unary: true, uop: CastFloat, arity: 1},
	"double":     {unary: true, uop: CastDouble, arity: 1},
	"longdouble": {unary: true, uop: CastLongDouble, arity: 1},
	"atan2":      {unary: false, bop: Atan2Op, arity: 2},
	"pow":        {unary: false, bop: PowOp, arity: 2},
	"min":        {unary: false, bop: MinOp, arity: 2},
	"max":        {unary: false, bop: MaxOp, arity: 2},
	"fmod":       {unary: false, bop: FmodOp, arity: 2},
}

var constants = map[string]string{
	"pi":  "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798",
	"π":   "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798",
	"tau": "6.28318530717958647692528676655900576839433879875021164194988918461563281257241799725606965068423413596",
	"τ":   "6.28318530717958647692528676655900576839433879875021164194988918461563281257241799725606965068423413596",
	"e":   "2.71828182845904523536028747135266249775724709369995957496696762772407663035354759457138217852516642743",
}

type compiler struct {
	prec   uint
	toks   []token
	pos    int

	ops    []Op
	consts []breal.Real

	constant bool
	usesY    bool
}

// Compile parses src and produces a Program. prec is the working precision
// at which numeric literals and named constants (pi, tau, e) are rounded.
func Compile(src string, prec uint) (*Program, error) {
	lx := newLexer(src)
	toks, err := lx.tokenize()
	if err != nil {
		return nil, err
	}

	c := &compiler{prec: prec, toks: toks, constant: true}
	if err := c.parseExpr(); err != nil {
		return nil, err
	}
	if c.cur().kind != tokEOF {
		return nil, fmt.Errorf("%w: trailing input at offset %d", ErrParse, c.cur().pos)
	}

	return &Program{
		Ops:       c.ops,
		Constants: c.consts,
		constant:  c.constant,
		usesY:     c.usesY,
	}, nil
}

func (c *compiler) cur() token  { return c.toks[c.pos] }
func (c *compiler) advance() token {
	t := c.toks[c.pos]
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return t
}

func (c *compiler) expect(k tokenKind, what string) (token, error) {
	if c.cur().kind != k {
		return token{}, fmt.Errorf("%w: expected %s at offset %d, got %q", ErrParse, what, c.cur().pos, c.cur().text)
	}
	return c.advance(), nil
}

func (c *compiler) addConst(r breal.Real) int {
	c.consts = append(c.consts, r)
	return len(c.consts) - 1
}

func (c *compiler) emitUnary(op UnaryOp) { c.ops = append(c.ops, Op{Kind: OpUnary, Unary: op}) }
func (c *compiler) emitBinary(op BinaryOp) {
	c.ops = append(c.ops, Op{Kind: OpBinary, Binary: op})
}

// parseExpr -> parseTerm (('+'|'-') parseTerm)*
func (c *compiler) parseExpr() error {
	if err := c.parseTerm(); err != nil {
		return err
	}
	for {
		switch c.cur().kind {
		case tokPlus:
			c.advance()
			if err := c.parseTerm(); err != nil {
				return err
			}
			c.emitBinary(Add)
		case tokMinus:
			c.advance()
			if err := c.parseTerm(); err != nil {
				return err
			}
			c.emitBinary(Sub)
		default:
			return nil
		}
	}
}

// parseTerm -> parseUnary (('*'|'/'|'%') parseUnary)*
func (c *compiler) parseTerm() error {
	if err := c.parseUnary(); err != nil {
		return err
	}
	for {
		switch c.cur().kind {
		case tokStar:
			c.advance()
			if err := c.parseUnary(); err != nil {
				return err
			}
			c.emitBinary(Mul)
		case tokSlash:
			c.advance()
			if err := c.parseUnary(); err != nil {
				return err
			}
			c.emitBinary(Div)
		case tokPercent:
			c.advance()
			if err := c.parseUnary(); err != nil {
				return err
			}
			c.emitBinary(FmodOp)
		default:
			return nil
		}
	}
}

// parseUnary -> ('+'|'-')? parsePow
func (c *compiler) parseUnary() error {
	switch c.cur().kind {
	case tokMinus:
		c.advance()
		if err := c.parseUnary(); err != nil {
			return err
		}
		c.emitUnary(Neg)
		return nil
	case tokPlus:
		c.advance()
		return c.parseUnary()
	default:
		return c.parsePow()
	}
}

// parsePow -> parsePostfix ('^' parseExponent)*  (left-associative: a^b^c is
// (a^b)^c, so each exponent is folded into the running result immediately.
// The exponent operand is a signed terminal only (grammar's `signed`), not
// a full parseUnary/parsePow recursion, or a^b^c would parse as a^(b^c).
func (c *compiler) parsePow() error {
	if err := c.parsePostfix(); err != nil {
		return err
	}
	for c.cur().kind == tokCaret {
		c.advance()
		if err := c.parseExponent(); err != nil {
			return err
		}
		c.emitBinary(PowOp)
	}
	return nil
}

// parseExponent -> ('-'|'+')? parsePostfix  (the grammar's `signed` rule,
// used only for a '^' operand so repeated exponents stay left-associative).
func (c *compiler) parseExponent() error {
	switch c.cur().kind {
	case tokMinus:
		c.advance()
		if err := c.parseExponent(); err != nil {
			return err
		}
		c.emitUnary(Neg)
		return nil
	case tokPlus:
		c.advance()
		return c.parseExponent()
	default:
		return c.parsePostfix()
	}
}

// parsePostfix -> parsePrimary (superscript-exponent)*
func (c *compiler) parsePostfix() error {
	if err := c.parsePrimary(); err != nil {
		return err
	}
	for c.cur().kind == tokSuperscript {
		tok := c.advance()
		idx := c.addConst(breal.NewFloat(parseDecimalInt(tok.text), c.prec))
		c.ops = append(c.ops, Op{Kind: OpConst, Const: idx})
		c.emitBinary(PowOp)
	}
	return nil
}

func parseDecimalInt(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func (c *compiler) parsePrimary() error {
	tok := c.cur()
	switch tok.kind {
	case tokNumber:
		c.advance()
		r := breal.NewFloat(tok.text, c.prec)
		idx := c.addConst(r)
		c.ops = append(c.ops, Op{Kind: OpConst, Const: idx})
		return nil

	case tokLParen:
		c.advance()
		if err := c.parseExpr(); err != nil {
			return err
		}
		_, err := c.expect(tokRParen, "')'")
		return err

	case tokIdent:
		return c.parseIdent()

	default:
		return fmt.Errorf("%w: unexpected token %q at offset %d", ErrParse, tok.text, tok.pos)
	}
}

func (c *compiler) parseIdent() error {
	tok := c.advance()
	name := tok.text

	switch name {
	case "x":
		c.ops = append(c.ops, Op{Kind: OpVar})
		c.constant = false
		return nil
	case "y":
		c.usesY = true
		idx := c.addConst(breal.NewFloat(0, c.prec))
		c.ops = append(c.ops, Op{Kind: OpConst, Const: idx})
		return nil
	}

	if lit, ok := constants[name]; ok {
		idx := c.addConst(breal.NewFloat(lit, c.prec))
		c.ops = append(c.ops, Op{Kind: OpConst, Const: idx})
		return nil
	}

	fi, ok := functions[name]
	if !ok {
		return fmt.Errorf("%w: unknown identifier %q at offset %d", ErrParse, name, tok.pos)
	}

	if _, err := c.expect(tokLParen, "'('"); err != nil {
		return err
	}

	if err := c.parseExpr(); err != nil {
		return err
	}
	if fi.arity == 2 {
		if _, err := c.expect(tokComma, "','"); err != nil {
			return err
		}
		if err := c.parseExpr(); err != nil {
			return err
		}
	}
	if _, err := c.expect(tokRParen, "')'"); err != nil {
		return err
	}

	if fi.unary {
		c.emitUnary(fi.uop)
	} else {
		c.emitBinary(fi.bop)
	}
	return nil
}
