package logic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"
)

// Parser turns expression text into an Expr. The grammar is the subset of
// Lua expressions made of true, false, and, or, not, parentheses,
// has("ITEM"[, n]), event("NAME") and bare macro identifiers.
type Parser struct {
	macros map[string]Expr
}

// Parsers holds one parser per game tag.
type Parsers map[string]*Parser

// NewParser creates a parser with no macros.
func NewParser() *Parser {
	return &Parser{macros: map[string]Expr{}}
}

// Define parses text and registers it as a macro usable by later
// expressions. Macros are expanded at parse time.
func (p *Parser) Define(name, text string) error {
	e, err := p.Parse(text)
	if err != nil {
		return fmt.Errorf("macro %s: %w", name, err)
	}
	p.macros[name] = e
	return nil
}

// HasMacro reports whether a macro with the given name exists.
func (p *Parser) HasMacro(name string) bool {
	_, ok := p.macros[name]
	return ok
}

// Parse parses a single expression.
func (p *Parser) Parse(text string) (Expr, error) {
	chunk, err := parse.Parse(strings.NewReader("return "+text), "<expr>")
	if err != nil {
		return Expr{}, fmt.Errorf("parsing %q: %w", text, err)
	}
	if len(chunk) != 1 {
		return Expr{}, fmt.Errorf("parsing %q: expected a single expression", text)
	}
	ret, ok := chunk[0].(*ast.ReturnStmt)
	if !ok || len(ret.Exprs) != 1 {
		return Expr{}, fmt.Errorf("parsing %q: expected a single expression", text)
	}
	e, err := p.convert(ret.Exprs[0])
	if err != nil {
		return Expr{}, fmt.Errorf("parsing %q: %w", text, err)
	}
	return e, nil
}

// MustParse is Parse for static expressions; it panics on error.
func (p *Parser) MustParse(text string) Expr {
	e, err := p.Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *Parser) convert(node ast.Expr) (Expr, error) {
	switch n := node.(type) {
	case *ast.TrueExpr:
		return True(), nil

	case *ast.FalseExpr:
		return False(), nil

	case *ast.LogicalOpExpr:
		lhs, err := p.convert(n.Lhs)
		if err != nil {
			return Expr{}, err
		}
		rhs, err := p.convert(n.Rhs)
		if err != nil {
			return Expr{}, err
		}
		if n.Operator == "and" {
			return And([]Expr{lhs, rhs}), nil
		}
		return Or([]Expr{lhs, rhs}), nil

	case *ast.UnaryNotOpExpr:
		inner, err := p.convert(n.Expr)
		if err != nil {
			return Expr{}, err
		}
		return Not(inner), nil

	case *ast.IdentExpr:
		e, ok := p.macros[n.Value]
		if !ok {
			return Expr{}, fmt.Errorf("line %d: unknown identifier %q", n.Line(), n.Value)
		}
		return e, nil

	case *ast.FuncCallExpr:
		return p.convertCall(n)

	default:
		return Expr{}, fmt.Errorf("line %d: unsupported construct %T", node.Line(), node)
	}
}

func (p *Parser) convertCall(n *ast.FuncCallExpr) (Expr, error) {
	fn, ok := n.Func.(*ast.IdentExpr)
	if !ok || n.Receiver != nil {
		return Expr{}, fmt.Errorf("line %d: only plain function calls are allowed", n.Line())
	}

	switch fn.Value {
	case "has":
		if len(n.Args) < 1 || len(n.Args) > 2 {
			return Expr{}, fmt.Errorf("line %d: has() takes 1 or 2 arguments", n.Line())
		}
		item, err := stringArg(n.Args[0])
		if err != nil {
			return Expr{}, fmt.Errorf("line %d: has(): %w", n.Line(), err)
		}
		count := 1
		if len(n.Args) == 2 {
			num, ok := n.Args[1].(*ast.NumberExpr)
			if !ok {
				return Expr{}, fmt.Errorf("line %d: has(): count must be a number", n.Line())
			}
			count, err = strconv.Atoi(num.Value)
			if err != nil {
				return Expr{}, fmt.Errorf("line %d: has(): count %q: %w", n.Line(), num.Value, err)
			}
		}
		return Has(item, count), nil

	case "event":
		if len(n.Args) != 1 {
			return Expr{}, fmt.Errorf("line %d: event() takes 1 argument", n.Line())
		}
		name, err := stringArg(n.Args[0])
		if err != nil {
			return Expr{}, fmt.Errorf("line %d: event(): %w", n.Line(), err)
		}
		return Event(name), nil

	default:
		return Expr{}, fmt.Errorf("line %d: unknown function %q", n.Line(), fn.Value)
	}
}

func stringArg(node ast.Expr) (string, error) {
	s, ok := node.(*ast.StringExpr)
	if !ok {
		return "", fmt.Errorf("expected a string argument")
	}
	return s.Value, nil
}
