package merge

import (
	"testing"

	"ruleset-combiner/core/entity"
	"ruleset-combiner/core/techorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrdering() *techorder.Ordering {
	return techorder.Build([]techorder.Tier{
		{Items: []string{"Agriculture"}},
		{Items: []string{"Bronze Working"}},
		{Items: []string{"Iron Working"}},
	})
}

func tech(field, name string) entity.Entity {
	e := entity.Entity{"name": "Spearman"}
	if name != "" {
		e[field] = name
	}
	return e
}

func TestEarliestOrdinal(t *testing.T) {
	policy := EarliestOrdinal(testOrdering())

	tests := []struct {
		name     string
		base     string
		override string
		want     string
	}{
		{"OverrideEarlier", "Iron Working", "Bronze Working", "Bronze Working"},
		{"BaseEarlier", "Agriculture", "Iron Working", "Agriculture"},
		{"Equal", "Bronze Working", "Bronze Working", "Bronze Working"},
		{"OnlyBaseDropped", "Iron Working", "", ""},
		{"OnlyOverrideKept", "", "Iron Working", "Iron Working"},
		{"Neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy(tech("requiredTech", tt.base), tech("requiredTech", tt.override), "requiredTech")
			require.NoError(t, err)
			s, ok, err := got.String("requiredTech")
			require.NoError(t, err)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestLatestOrdinal(t *testing.T) {
	policy := LatestOrdinal(testOrdering())

	tests := []struct {
		name     string
		base     string
		override string
		want     string
	}{
		{"OverrideLater", "Bronze Working", "Iron Working", "Iron Working"},
		{"BaseLater", "Iron Working", "Agriculture", "Iron Working"},
		{"OnlyOverrideAdopted", "", "Bronze Working", "Bronze Working"},
		{"OnlyBaseDropped", "Bronze Working", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy(tech("obsoleteTech", tt.base), tech("obsoleteTech", tt.override), "obsoleteTech")
			require.NoError(t, err)
			s, _, err := got.String("obsoleteTech")
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestOrdinal_UnknownTier(t *testing.T) {
	policy := EarliestOrdinal(testOrdering())
	_, err := policy(tech("requiredTech", "Bronze Working"), tech("requiredTech", "Future Tech"), "requiredTech")
	require.Error(t, err)
	assert.ErrorIs(t, err, techorder.ErrUnknownTier)
	assert.Contains(t, err.Error(), "requiredTech")
}

func TestOrdinal_Malformed(t *testing.T) {
	policy := LatestOrdinal(testOrdering())
	_, err := policy(tech("obsoleteTech", "Bronze Working"), entity.Entity{"name": "Bad", "obsoleteTech": 3.0}, "obsoleteTech")
	assert.ErrorIs(t, err, entity.ErrMalformedFieldShape)
}
