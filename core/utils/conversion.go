package utils

import (
	"encoding/json"
)

// ToFloat converts JSON-decoded and Go numeric values to float64 using explicit type switching.
// Strings and other types are rejected rather than parsed, so callers can report
// a malformed value instead of silently coercing it.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint8:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// ToString returns the value when it is a string.
func ToString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// ToStringSlice converts []string and []any (as produced by encoding/json) to []string.
// Every element must be a string.
func ToStringSlice(val any) ([]string, bool) {
	switch v := val.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// ToFloatMap converts a JSON object of numbers to map[string]float64.
func ToFloatMap(val any) (map[string]float64, bool) {
	switch v := val.(type) {
	case map[string]float64:
		out := make(map[string]float64, len(v))
		for k, n := range v {
			out[k] = n
		}
		return out, true
	case map[string]any:
		out := make(map[string]float64, len(v))
		for k, item := range v {
			n, ok := ToFloat(item)
			if !ok {
				return nil, false
			}
			out[k] = n
		}
		return out, true
	case map[string]int:
		out := make(map[string]float64, len(v))
		for k, n := range v {
			out[k] = float64(n)
		}
		return out, true
	default:
		return nil, false
	}
}
