package world

// NoRegion is the region of locations outside any dungeon group.
const NoRegion = "NONE"

// DungeonRegions maps each dungeon group to the region its locations are
// displayed under. Relocated boss rooms take the region of their new host.
var DungeonRegions = map[string]string{
	"DT":     "OOT_DEKU_TREE",
	"DC":     "OOT_DODONGO_CAVERN",
	"JJ":     "OOT_JABU_JABU",
	"Forest": "OOT_TEMPLE_FOREST",
	"Fire":   "OOT_TEMPLE_FIRE",
	"Water":  "OOT_TEMPLE_WATER",
	"Shadow": "OOT_TEMPLE_SHADOW",
	"Spirit": "OOT_TEMPLE_SPIRIT",
	"WF":     "MM_TEMPLE_WOODFALL",
	"SH":     "MM_TEMPLE_SNOWHEAD",
	"GB":     "MM_TEMPLE_GREAT_BAY",
	"ST":     "MM_TEMPLE_STONE_TOWER",
	"IST":    "MM_TEMPLE_STONE_TOWER_INVERTED",
	"SSH":    "MM_SPIDER_HOUSE_SWAMP",
	"OSH":    "MM_SPIDER_HOUSE_OCEAN",
	"BotW":   "OOT_BOTTOM_OF_THE_WELL",
	"IC":     "OOT_ICE_CAVERN",
	"GTG":    "OOT_GERUDO_TRAINING_GROUNDS",
	"BtW":    "MM_BENEATH_THE_WELL",
	"ACoI":   "MM_ANCIENT_CASTLE_OF_IKANA",
	"SS":     "MM_SECRET_SHRINE",
	"BtWE":   "MM_BENEATH_THE_WELL",
	"PF":     "MM_PIRATE_FORTRESS",
	"Ganon":  "OOT_GANON_CASTLE",
	"Tower":  "OOT_GANON_TOWER",
}

// RegionOf returns the display region for a dungeon group.
func RegionOf(group string) string {
	if r, ok := DungeonRegions[group]; ok {
		return r
	}
	return NoRegion
}
