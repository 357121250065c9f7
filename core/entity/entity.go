package entity

import (
	"ruleset-combiner/core/utils"
)

// Well-known field names shared by every kind.
const (
	FieldName     = "name"
	FieldReplaces = "replaces"
	FieldUniqueTo = "uniqueTo"
	FieldUniques  = "uniques"
)

// Entity is an open, partially-populated record decoded from a source set.
// Values are whatever encoding/json produced (float64, string, bool, []any,
// map[string]any) plus the concrete slice and map types produced by merging.
//
// An Entity is treated as immutable: With, Without and Clone return new values
// and never touch the receiver.
type Entity map[string]any

// Name returns the entity name, or "" when it is missing or not a string.
func (e Entity) Name() string {
	s, _ := utils.ToString(e[FieldName])
	return s
}

// Replaces returns the name of the base entity this entity overrides.
func (e Entity) Replaces() (string, bool) {
	s, ok := utils.ToString(e[FieldReplaces])
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Has reports whether the field is present.
func (e Entity) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	if e == nil {
		return nil
	}
	out := make(Entity, len(e))
	for k, v := range e {
		out[k] = cloneValue(v)
	}
	return out
}

// With returns a copy of the entity with field set to value.
func (e Entity) With(field string, value any) Entity {
	out := e.Clone()
	if out == nil {
		out = Entity{}
	}
	out[field] = cloneValue(value)
	return out
}

// Without returns a copy of the entity with field removed.
func (e Entity) Without(field string) Entity {
	out := e.Clone()
	delete(out, field)
	return out
}

// Number returns a numeric field. A present value that is not a number fails
// with ErrMalformedFieldShape.
func (e Entity) Number(field string) (float64, bool, error) {
	v, ok := e[field]
	if !ok {
		return 0, false, nil
	}
	n, ok := utils.ToFloat(v)
	if !ok {
		return 0, false, e.shapeError(field, "number", v)
	}
	return n, true, nil
}

// String returns a string field.
func (e Entity) String(field string) (string, bool, error) {
	v, ok := e[field]
	if !ok {
		return "", false, nil
	}
	s, ok := utils.ToString(v)
	if !ok {
		return "", false, e.shapeError(field, "string", v)
	}
	return s, true, nil
}

// Strings returns a list-of-strings field.
func (e Entity) Strings(field string) ([]string, bool, error) {
	v, ok := e[field]
	if !ok {
		return nil, false, nil
	}
	s, ok := utils.ToStringSlice(v)
	if !ok {
		return nil, false, e.shapeError(field, "list of strings", v)
	}
	return s, true, nil
}

// NumberMap returns an object-of-numbers field.
func (e Entity) NumberMap(field string) (map[string]float64, bool, error) {
	v, ok := e[field]
	if !ok {
		return nil, false, nil
	}
	m, ok := utils.ToFloatMap(v)
	if !ok {
		return nil, false, e.shapeError(field, "object of numbers", v)
	}
	return m, true, nil
}

func (e Entity) shapeError(field, want string, got any) error {
	return &FieldError{Entity: e.Name(), Field: field, Want: want, Got: got}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case Entity:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case map[string]float64:
		out := make(map[string]float64, len(t))
		for k, n := range t {
			out[k] = n
		}
		return out
	default:
		return v
	}
}
