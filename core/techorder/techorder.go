package techorder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

// ErrUnknownTier is returned when an ordinal is requested for a name that was never registered.
var ErrUnknownTier = errors.New("unknown tier")

// Tier is one level of the tier list; every item in it unlocks at the same ordinal.
type Tier struct {
	Name  string
	Items []string
}

// Ordering maps item names to the position of the tier that contains them.
type Ordering struct {
	ordinals map[string]int
}

// Build creates an Ordering from an ordered tier list.
// An item listed in more than one tier keeps its earliest tier.
func Build(tiers []Tier) *Ordering {
	o := &Ordering{ordinals: make(map[string]int)}
	for i, tier := range tiers {
		for _, item := range tier.Items {
			if _, exists := o.ordinals[item]; exists {
				continue
			}
			o.ordinals[item] = i
		}
	}
	return o
}

// Ordinal returns the ordinal of the named item.
func (o *Ordering) Ordinal(name string) (int, error) {
	if o != nil {
		if ord, ok := o.ordinals[name]; ok {
			return ord, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, name)
}

// Len returns the number of registered items.
func (o *Ordering) Len() int {
	if o == nil {
		return 0
	}
	return len(o.ordinals)
}

// FromTechTree reads an Unciv Techs.json document: an array of columns, each with a
// columnNumber and a techs array of named techs. Columns are ordered by columnNumber.
func FromTechTree(data []byte) ([]Tier, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing tech tree: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("parsing tech tree: expected an array of columns")
	}

	type column struct {
		number int64
		tier   Tier
	}
	var columns []column

	var parseErr error
	root.ForEach(func(_, col gjson.Result) bool {
		number := col.Get("columnNumber")
		if number.Type != gjson.Number {
			parseErr = fmt.Errorf("parsing tech tree: column %d has no columnNumber", len(columns))
			return false
		}
		c := column{number: number.Int(), tier: Tier{Name: fmt.Sprintf("column %d", number.Int())}}
		col.Get("techs.#.name").ForEach(func(_, name gjson.Result) bool {
			c.tier.Items = append(c.tier.Items, name.String())
			return true
		})
		columns = append(columns, c)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].number < columns[j].number
	})

	tiers := make([]Tier, len(columns))
	for i, c := range columns {
		tiers[i] = c.tier
	}
	return tiers, nil
}
