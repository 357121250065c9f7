// Package variant explodes a consolidated unit into one concrete record per
// (unitType, upgradesTo) pair it accumulated.
package variant
