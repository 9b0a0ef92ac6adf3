package logic

// Context answers the leaf questions an expression can ask.
type Context interface {
	HasItem(item string, count int) bool
	HasEvent(name string) bool
}

// Eval evaluates an expression against the context.
func Eval(e Expr, ctx Context) bool {
	switch e.Op {
	case OpTrue:
		return true

	case OpFalse:
		return false

	case OpHas:
		return ctx.HasItem(e.Name, e.Count)

	case OpEvent:
		return ctx.HasEvent(e.Name)

	case OpNot:
		if len(e.Args) == 0 {
			return true
		}
		return !Eval(e.Args[0], ctx)

	case OpAnd:
		for _, a := range e.Args {
			if !Eval(a, ctx) {
				return false
			}
		}
		return true

	case OpOr:
		for _, a := range e.Args {
			if Eval(a, ctx) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// Events returns the names of every event referenced by the expression.
func Events(e Expr) []string {
	var out []string
	var walk func(Expr)
	walk = func(e Expr) {
		if e.Op == OpEvent {
			out = append(out, e.Name)
		}
		for _, a := range e.Args {
			walk(a)
		}
	}
	walk(e)
	return out
}
