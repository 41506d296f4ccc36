package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRegions(t *testing.T) {
	t.Run("exact matches", func(t *testing.T) {
		r := MatchRegions([]string{testLaPaz, testOruro, testLaPaz}, []string{testLaPaz, testOruro})

		assert.Equal(t, 2, r.Matched)
		assert.True(t, r.Clean())
		assert.Empty(t, r.Suggestions)
	})

	t.Run("both sides unmatched", func(t *testing.T) {
		r := MatchRegions([]string{testLaPaz, "TARIJA"}, []string{testLaPaz, testOruro, "BENI"})

		assert.Equal(t, 1, r.Matched)
		assert.False(t, r.Clean())
		assert.Equal(t, []string{"TARIJA"}, r.MissingBoundary)
		assert.Equal(t, []string{"BENI", testOruro}, r.MissingData)
	})

	t.Run("accent and case suggestions", func(t *testing.T) {
		r := MatchRegions(
			[]string{"POTOSI", "cochabamba", "SUCRE "},
			[]string{"POTOSÍ", testCochabamba, "SUCRE"},
		)

		assert.Equal(t, 0, r.Matched)
		assert.Equal(t, map[string]string{
			"POTOSI":     "POTOSÍ",
			"cochabamba": testCochabamba,
			"SUCRE ":     "SUCRE",
		}, r.Suggestions)
	})
}
