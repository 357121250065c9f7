package entity

// Unit fields that make up a type variant.
const (
	FieldUnitType   = "unitType"
	FieldUpgradesTo = "upgradesTo"
)

// Variant is one (unit type, upgrade target) combination carried by a consolidated unit.
// Upgrade is empty when the variant does not upgrade.
type Variant struct {
	Type    string `json:"type"`
	Upgrade string `json:"upgrade,omitempty"`
}

// VariantOf reads the (unitType, upgradesTo) pair of a unit entity.
// unitType is required; upgradesTo is optional.
func VariantOf(e Entity) (Variant, error) {
	t, ok, err := e.String(FieldUnitType)
	if err != nil {
		return Variant{}, err
	}
	if !ok {
		return Variant{}, &FieldError{Entity: e.Name(), Field: FieldUnitType, Want: "string", Got: nil}
	}
	up, _, err := e.String(FieldUpgradesTo)
	if err != nil {
		return Variant{}, err
	}
	return Variant{Type: t, Upgrade: up}, nil
}

// AddVariant appends v unless an identical pair is already present.
// The input slice is not modified.
func AddVariant(set []Variant, v Variant) []Variant {
	for _, existing := range set {
		if existing == v {
			out := make([]Variant, len(set))
			copy(out, set)
			return out
		}
	}
	out := make([]Variant, len(set), len(set)+1)
	copy(out, set)
	return append(out, v)
}
