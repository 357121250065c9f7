package accumulator

import "ruleset-combiner/core/entity"

// Fields that are not merged by category but handled explicitly.
const (
	FieldRequiredResource = "requiredResource"
	FieldAttackSound      = "attackSound"
	FieldCityStateType    = "cityStateType"
	FieldCities           = "cities"
	FieldSpyNames         = "spyNames"
)

// FieldTable lists which fields of a kind belong to which merge category.
type FieldTable struct {
	Gain      []string
	Cost      []string
	MultiGain []string
	ListUnion []string
	// Earliest is the required-tech field, merged with EarliestOrdinal.
	Earliest string
	// Latest is the obsoleting-tech field, merged with LatestOrdinal.
	Latest string
	// RequiredResource is dropped whenever an override does not require it.
	RequiredResource string
	// Variants marks kinds that carry (unitType, upgradesTo) pairs.
	Variants bool
}

var tables = map[entity.Kind]FieldTable{
	entity.KindBuilding: {
		Gain:             []string{"food", "production", "gold", "happiness", "culture", "science", "faith", "xpForNewUnits", "cityStrength"},
		Cost:             []string{"cost", "maintenance", "hurryCostModifier"},
		MultiGain:        []string{"percentStatBonus", "greatPersonPoints", "specialistSlots"},
		Earliest:         "requiredTech",
		RequiredResource: FieldRequiredResource,
	},
	entity.KindImprovement: {
		Gain:      []string{"food", "production", "gold", "happiness", "culture", "science", "faith"},
		Cost:      []string{"turnsToBuild"},
		ListUnion: []string{"terrainsCanBeBuiltOn"},
		Earliest:  "techRequired",
	},
	entity.KindUnit: {
		Gain:             []string{"movement", "strength", "rangedStrength", "range", "interceptRange", "faith"},
		Cost:             []string{"cost", "maintenance", "hurryCostModifier"},
		ListUnion:        []string{"promotions"},
		Earliest:         "requiredTech",
		Latest:           "obsoleteTech",
		RequiredResource: FieldRequiredResource,
		Variants:         true,
	},
}

// TableFor returns the field table of a kind. Nations have none.
func TableFor(kind entity.Kind) (FieldTable, bool) {
	t, ok := tables[kind]
	return t, ok
}
