package logic

import (
	"reflect"
	"strings"
	"testing"
)

type testCtx struct {
	items  map[string]int
	events map[string]bool
}

func (c testCtx) HasItem(item string, count int) bool { return c.items[item] >= count }
func (c testCtx) HasEvent(name string) bool           { return c.events[name] }

func TestParse_Leaves(t *testing.T) {
	p := NewParser()
	tests := []struct {
		text string
		want Expr
	}{
		{"true", True()},
		{"false", False()},
		{`has("BOW")`, Has("BOW", 1)},
		{`has("HEART_PIECE", 4)`, Has("HEART_PIECE", 4)},
		{`event("OOT_GANON")`, Event("OOT_GANON")},
		{`not has("BOW")`, Expr{Op: OpNot, Args: []Expr{Has("BOW", 1)}}},
	}
	for _, tt := range tests {
		got, err := p.Parse(tt.text)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.text, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParse_Operators(t *testing.T) {
	p := NewParser()
	got, err := p.Parse(`has("A") and (has("B") or event("C")) and true`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := Expr{Op: OpAnd, Args: []Expr{
		Has("A", 1),
		{Op: OpOr, Args: []Expr{Has("B", 1), Event("C")}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParse_Macros(t *testing.T) {
	p := NewParser()
	if err := p.Define("can_reset_time", `has("OCARINA") and has("SONG_TIME")`); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if !p.HasMacro("can_reset_time") {
		t.Fatal("macro not registered")
	}
	got, err := p.Parse(`can_reset_time or event("X")`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ctx := testCtx{items: map[string]int{"OCARINA": 1, "SONG_TIME": 1}}
	if !Eval(got, ctx) {
		t.Errorf("expected macro expansion to evaluate true, got %v", got)
	}
}

func TestParse_Errors(t *testing.T) {
	p := NewParser()
	tests := []struct {
		text string
		want string
	}{
		{"unknown_macro", "unknown identifier"},
		{`has()`, "takes 1 or 2"},
		{`has(1)`, "string argument"},
		{`event("A", "B")`, "takes 1 argument"},
		{`teleport("x")`, "unknown function"},
		{`1 + 2`, "unsupported construct"},
		{`has("A") and`, "parsing"},
		{`x:y()`, "plain function calls"},
	}
	for _, tt := range tests {
		_, err := p.Parse(tt.text)
		if err == nil {
			t.Errorf("Parse(%q): expected error", tt.text)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Parse(%q) error = %q, want substring %q", tt.text, err, tt.want)
		}
	}
}

func TestAnd_Simplifies(t *testing.T) {
	if got := And(nil); got.Op != OpTrue {
		t.Errorf("And(nil) = %v, want true", got)
	}
	if got := And([]Expr{True(), Has("A", 1)}); !reflect.DeepEqual(got, Has("A", 1)) {
		t.Errorf("And(true, A) = %v, want A", got)
	}
	if got := And([]Expr{Has("A", 1), False()}); got.Op != OpFalse {
		t.Errorf("And(A, false) = %v, want false", got)
	}
	nested := And([]Expr{And([]Expr{Has("A", 1), Has("B", 1)}), Has("C", 1)})
	if len(nested.Args) != 3 {
		t.Errorf("expected flattened conjunction with 3 args, got %v", nested)
	}
}

func TestOr_Simplifies(t *testing.T) {
	if got := Or(nil); got.Op != OpFalse {
		t.Errorf("Or(nil) = %v, want false", got)
	}
	if got := Or([]Expr{Has("A", 1), True()}); got.Op != OpTrue {
		t.Errorf("Or(A, true) = %v, want true", got)
	}
}

func TestEval(t *testing.T) {
	ctx := testCtx{
		items:  map[string]int{"BOW": 1, "HEART_PIECE": 3},
		events: map[string]bool{"OOT_GANON": true},
	}
	tests := []struct {
		expr Expr
		want bool
	}{
		{Expr{}, true},
		{True(), true},
		{False(), false},
		{Has("BOW", 1), true},
		{Has("HOOKSHOT", 1), false},
		{Has("HEART_PIECE", 4), false},
		{Event("OOT_GANON"), true},
		{Event("MM_MAJORA"), false},
		{Not(Has("BOW", 1)), false},
		{And([]Expr{Has("BOW", 1), Event("OOT_GANON")}), true},
		{Or([]Expr{Has("HOOKSHOT", 1), Event("OOT_GANON")}), true},
	}
	for _, tt := range tests {
		if got := Eval(tt.expr, ctx); got != tt.want {
			t.Errorf("Eval(%v) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestString_RoundTrips(t *testing.T) {
	p := NewParser()
	texts := []string{
		`has("A") and (has("B", 2) or not event("C"))`,
		`event("X") or has("Y")`,
		"true",
	}
	for _, text := range texts {
		e, err := p.Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		again, err := p.Parse(e.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", e.String(), err)
		}
		if !reflect.DeepEqual(e, again) {
			t.Errorf("round trip of %q: %v != %v", text, e, again)
		}
	}
}

func TestEvents(t *testing.T) {
	e := And([]Expr{Event("A"), Or([]Expr{Has("X", 1), Event("B")})})
	got := Events(e)
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Events = %v, want [A B]", got)
	}
}
