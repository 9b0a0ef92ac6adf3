package logic

// MacroResetTime is the capability needed to return to the first game from
// the second one.
const MacroResetTime = "can_reset_time"

// DefaultParsers returns one parser per game tag with the builtin macros.
// World data may redefine any of them.
func DefaultParsers() Parsers {
	mm := NewParser()
	mm.macros[MacroResetTime] = And([]Expr{Has("OCARINA", 1), Has("SONG_TIME", 1)})
	return Parsers{
		"oot": NewParser(),
		"mm":  mm,
	}
}
