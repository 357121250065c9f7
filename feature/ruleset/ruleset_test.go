package ruleset

import (
	"context"
	"testing"

	"ruleset-combiner/core/uniques"

	"go.uber.org/zap"
)

const (
	baseSet  = "Civ V - Gods & Kings"
	techTree = `[
	{"columnNumber": 0, "era": "Ancient era", "techs": [{"name": "Agriculture"}, {"name": "Bronze Working"}]},
	{"columnNumber": 1, "era": "Ancient era", "techs": [{"name": "Iron Working"}]},
]`
)

func testConfig() Config {
	return Config{
		TechSet:        baseSet,
		TechFile:       "Techs.json",
		Nation:         "Upside-Down",
		IncludeSources: true,
	}
}

// testSets returns the base game plus two mods replacing its Warrior and Monument.
func testSets() []SourceSet {
	return []SourceSet{
		NewSourceSet("Mod B", map[string][]byte{
			"Units.json": []byte(`[{"name": "Pathfinder", "replaces": "Warrior", "unitType": "Scout", "strength": 3}]`),
		}),
		NewSourceSet(baseSet, map[string][]byte{
			"Techs.json": []byte(techTree),
			"Units.json": []byte(`[
				// the base unit
				{"name": "Warrior", "unitType": "Melee", "requiredTech": "Bronze Working", "attackSound": "nonmetalhit", "strength": 6},
			]`),
			"Buildings.json":     []byte(`[{"name": "Monument", "culture": 2}]`),
			"GlobalUniques.json": []byte(`{"name": "Global uniques", "uniques": ["[+1] Sight", "Homebrew ability"]}`),
		}),
		NewSourceSet("Mod A", map[string][]byte{
			"Units.json": []byte(`[{"name": "Brute", "replaces": "Warrior", "unitType": "Melee", "upgradesTo": "Spearman", "strength": 8}]`),
			"Buildings.json": []byte(`[
				{"name": "Ger", "replaces": "Monument", "culture": 3, "uniques": ["[+1] Sight"]},
			]`),
			"GlobalUniques.json": []byte(`{"name": "Global uniques", "uniques": ["[+1] Sight", "[+1] Movement"]}`),
		}),
	}
}

func testOptions() AssemblerOptions {
	return AssemblerOptions{
		Known: uniques.NewList([]string{"[+1] Sight", "[+1] Movement"}),
	}
}

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	return NewAssembler(testConfig(), testOptions(), zap.NewNop())
}

// staticReader serves fixed source sets.
type staticReader struct {
	sets  []SourceSet
	err   error
	calls int
}

func (r *staticReader) Read(_ context.Context) ([]SourceSet, error) {
	r.calls++
	return r.sets, r.err
}
