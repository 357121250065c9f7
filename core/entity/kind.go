package entity

// Kind identifies a collection of entities in a source set.
type Kind string

const (
	KindBuilding    Kind = "building"
	KindImprovement Kind = "improvement"
	KindUnit        Kind = "unit"
	KindNation      Kind = "nation"
)

// Kinds lists the merged kinds in the order source sets are processed.
var Kinds = []Kind{KindBuilding, KindNation, KindImprovement, KindUnit}

var kindFiles = map[Kind]string{
	KindBuilding:    "Buildings.json",
	KindImprovement: "TileImprovements.json",
	KindUnit:        "Units.json",
	KindNation:      "Nations.json",
}

// FileName returns the ruleset file holding entities of this kind.
func (k Kind) FileName() string {
	return kindFiles[k]
}

// KindForFile returns the kind stored in the given ruleset file.
func KindForFile(name string) (Kind, bool) {
	for k, f := range kindFiles {
		if f == name {
			return k, true
		}
	}
	return "", false
}

// ParseKind accepts both the kind name and its plural file stem ("units", "Units").
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "building", "buildings", "Buildings":
		return KindBuilding, true
	case "improvement", "improvements", "TileImprovements", "tileimprovements":
		return KindImprovement, true
	case "unit", "units", "Units":
		return KindUnit, true
	case "nation", "nations", "Nations":
		return KindNation, true
	default:
		return "", false
	}
}
