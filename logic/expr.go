// Package logic implements the boolean expressions that guard exits, events
// and location checks.
package logic

import (
	"fmt"
	"strings"
)

// Op identifies an expression node kind.
type Op int

const (
	OpTrue Op = iota
	OpFalse
	OpAnd
	OpOr
	OpNot
	OpHas
	OpEvent
)

// Expr is an immutable expression tree. The zero value is always true.
type Expr struct {
	Op    Op
	Name  string // item or event name for OpHas / OpEvent
	Count int    // required item count for OpHas
	Args  []Expr // operands for OpAnd / OpOr / OpNot
}

// True returns the constant true expression.
func True() Expr { return Expr{Op: OpTrue} }

// False returns the constant false expression.
func False() Expr { return Expr{Op: OpFalse} }

// Has requires count copies of an item.
func Has(item string, count int) Expr {
	if count < 1 {
		count = 1
	}
	return Expr{Op: OpHas, Name: item, Count: count}
}

// Event requires an event to have been triggered.
func Event(name string) Expr {
	return Expr{Op: OpEvent, Name: name}
}

// Not negates an expression.
func Not(e Expr) Expr {
	switch e.Op {
	case OpTrue:
		return False()
	case OpFalse:
		return True()
	}
	return Expr{Op: OpNot, Args: []Expr{e}}
}

// And combines expressions so that all must hold. Constant-true operands are
// dropped, nested conjunctions are flattened, and an empty list is true.
func And(list []Expr) Expr {
	var args []Expr
	for _, e := range list {
		switch e.Op {
		case OpTrue:
			continue
		case OpFalse:
			return False()
		case OpAnd:
			args = append(args, e.Args...)
		default:
			args = append(args, e)
		}
	}
	switch len(args) {
	case 0:
		return True()
	case 1:
		return args[0]
	}
	return Expr{Op: OpAnd, Args: args}
}

// Or combines expressions so that any may hold. An empty list is false.
func Or(list []Expr) Expr {
	var args []Expr
	for _, e := range list {
		switch e.Op {
		case OpTrue:
			return True()
		case OpFalse:
			continue
		case OpOr:
			args = append(args, e.Args...)
		default:
			args = append(args, e)
		}
	}
	switch len(args) {
	case 0:
		return False()
	case 1:
		return args[0]
	}
	return Expr{Op: OpOr, Args: args}
}

// String renders the expression in the same syntax Parse accepts.
func (e Expr) String() string {
	switch e.Op {
	case OpTrue:
		return "true"
	case OpFalse:
		return "false"
	case OpHas:
		if e.Count > 1 {
			return fmt.Sprintf("has(%q, %d)", e.Name, e.Count)
		}
		return fmt.Sprintf("has(%q)", e.Name)
	case OpEvent:
		return fmt.Sprintf("event(%q)", e.Name)
	case OpNot:
		return "not " + e.Args[0].group()
	case OpAnd, OpOr:
		sep := " and "
		if e.Op == OpOr {
			sep = " or "
		}
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = a.group()
		}
		return strings.Join(parts, sep)
	default:
		return fmt.Sprintf("<op %d>", e.Op)
	}
}

func (e Expr) group() string {
	if e.Op == OpAnd || e.Op == OpOr {
		return "(" + e.String() + ")"
	}
	return e.String()
}
