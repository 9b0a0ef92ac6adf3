package shuffle

// BossIndex is the boss slot of every boss-bearing dungeon group.
var BossIndex = map[string]int{
	"DT":     0,
	"DC":     1,
	"JJ":     2,
	"Forest": 3,
	"Fire":   4,
	"Water":  5,
	"Shadow": 6,
	"Spirit": 7,
	"WF":     8,
	"SH":     9,
	"GB":     10,
	"IST":    11,
}

// DungeonIndex is the dungeon slot of every shuffleable dungeon group.
var DungeonIndex = map[string]int{
	"DT":     0,
	"DC":     1,
	"JJ":     2,
	"Forest": 3,
	"Fire":   4,
	"Water":  5,
	"Shadow": 6,
	"Spirit": 7,
	"WF":     8,
	"SH":     9,
	"GB":     10,
	"IST":    11,
	"ST":     12,
	"SSH":    13,
	"OSH":    14,
	"BotW":   15,
	"IC":     16,
	"GTG":    17,
	"BtW":    18,
	"ACoI":   19,
	"SS":     20,
	"BtWE":   21,
	"PF":     22,
	"Ganon":  23,
	"Tower":  24,
}

// identity returns [0, 1, ..., n-1]; every slot initially holds itself.
func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// SlotName returns the group occupying slot i of table, or "" if unknown.
func SlotName(table map[string]int, i int) string {
	for name, idx := range table {
		if idx == i {
			return name
		}
	}
	return ""
}
