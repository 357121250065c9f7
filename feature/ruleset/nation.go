package ruleset

import (
	"fmt"
	"os"

	"ruleset-combiner/core/entity"

	"gopkg.in/yaml.v3"
)

// DefaultNation returns the built-in template of the combined nation, renamed to name.
func DefaultNation(name string) entity.Entity {
	n := entity.Entity{
		"name":            "Upside-Down",
		"leaderName":      "Rotatceps",
		"adjective":       []any{"Upside-Down"},
		"style":           "Upside Down",
		"startIntroPart1": "History in best the among generals and soldiers its, other the to world the of end one from battle into triumphantly marched have armies its.nation great a as endured has Down-Upside - enemies often and - competitors by surrounded although. Letters and arts, culture of center world the been Down-Upside has long. Rotatceps, you to triumph and life long.",
		"startIntroPart2": "Time of test the stand will that civilization a build you can? World the of center again once Down-Upside make you will? All to order and peace bringing, again rises empire your that it to see you will? Down-Upside of glory the reclaim more once to you to turn people your, Rotatceps mighty O?",
		"declaringWar":    "Time payback it's, now. It know you, badly very yourself behaved you've.",
		"attacked":        "It swear I! Dearly regret soon will you! Fool!",
		"defeated":        "Triumph your in merciful be will you hope I. Yours is...day the.",
		"introduction":    "Bravery military for renowned are who, you with relationship just and fair a for hope we.",
		"neutralHello":    "Peace you wish I.",
		"hateHello":       "Want you do what?",
		"tradeRequest":    "Me with deal this make to - existing for reason a have do you that appears it.",
		"outerColor":      []any{255, 255, 255},
		"innerColor":      []any{0, 0, 0},
		"uniqueName":      "The World Turned Upside-Down",
		"uniqueText":      "All the special advantages that other nations have, combined into one, with none of the special disadvantages. Are you ready to turn the world upside down?",
		"uniques":         []any{},
		"cities":          []any{},
		"spyNames":        []any{},
	}
	if name != "" {
		n[entity.FieldName] = name
	}
	return n
}

// LoadNationTemplate reads a nation template from a YAML (or JSON) file.
// An empty path yields DefaultNation. A non-empty name overrides the template's name.
func LoadNationTemplate(path, name string) (entity.Entity, error) {
	if path == "" {
		return DefaultNation(name), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading nation template: %w", err)
	}
	var tmpl map[string]any
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing nation template %s: %w", path, err)
	}
	if tmpl == nil {
		return nil, fmt.Errorf("parsing nation template %s: empty document", path)
	}
	n := entity.Entity(tmpl)
	if name != "" {
		n[entity.FieldName] = name
	}
	if n.Name() == "" {
		return nil, fmt.Errorf("nation template %s has no name", path)
	}
	return n, nil
}
