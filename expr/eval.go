package expr

import "github.com/hocevar-remez/goremez/breal"

// Eval runs the program at x, using a fresh stack local to the call so the
// same *Program can be evaluated concurrently by multiple workers.
func (p *Program) Eval(x breal.Real) breal.Real {
	stack := make([]breal.Real, 0, 8)
	push := func(r breal.Real) { stack = append(stack, r) }
	pop := func() breal.Real {
		n := len(stack) - 1
		v := stack[n]
		stack = stack[:n]
		return v
	}

	for _, op := range p.Ops {
		switch op.Kind {
		case OpVar:
			push(x)
		case OpConst:
			push(p.Constants[op.Const])
		case OpUnary:
			push(evalUnary(op.Unary, pop()))
		case OpBinary:
			head := pop()
			base := pop()
			push(evalBinary(op.Binary, base, head))
		}
	}
	return pop()
}

func evalUnary(op UnaryOp, v breal.Real) breal.Real {
	switch op {
	case Neg:
		return v.Neg()
	case Pos:
		return v
	case Abs:
		return v.Abs()
	case Sqrt:
		return v.Sqrt()
	case Cbrt:
		return v.Cbrt()
	case ExpOp:
		return breal.Exp(v)
	case Exp2Op:
		return breal.Exp2(v)
	case ErfOp:
		return breal.Erf(v)
	case LogOp:
		return breal.Log(v)
	case Log2Op:
		return breal.Log2(v)
	case Log10Op:
		return breal.Log10(v)
	case SinOp:
		return breal.Sin(v)
	case CosOp:
		return breal.Cos(v)
	case TanOp:
		return breal.Tan(v)
	case AsinOp:
		return breal.Asin(v)
	case AcosOp:
		return breal.Acos(v)
	case AtanOp:
		return breal.Atan(v)
	case SinhOp:
		return breal.SinH(v)
	case CoshOp:
		return breal.CosH(v)
	case TanhOp:
		return breal.TanH(v)
	case CastFloat:
		return roundMantissa(v, 24)
	case CastDouble:
		return roundMantissa(v, 53)
	case CastLongDouble:
		return roundMantissa(v, 64)
	default:
		panic("expr: unknown unary opcode")
	}
}

func evalBinary(op BinaryOp, a, b breal.Real) breal.Real {
	switch op {
	case Add:
		return a.Add(b)
	case Sub:
		return a.Sub(b)
	case Mul:
		return a.Mul(b)
	case Div:
		return a.Quo(b)
	case FmodOp:
		return a.Mod(b)
	case Atan2Op:
		return breal.Atan2(a, b)
	case PowOp:
		return breal.Pow(a, b)
	case MinOp:
		return a.Min(b)
	case MaxOp:
		return a.Max(b)
	default:
		panic("expr: unknown binary opcode")
	}
}

// roundMantissa rounds v through a narrower mantissa width and back, to
// model the source language's (float)/(double)/(long double) casts.
func roundMantissa(v breal.Real, bits uint) breal.Real {
	return v.SetPrec(bits).SetPrec(v.Prec())
}
