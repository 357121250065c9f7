// Package utils provides common utility functions for the ruleset-combiner application.
// It includes strict shape conversions for values decoded from JSON, used by the
// entity accessors to tell a number, a list or an object apart without coercion.
package utils
