package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odontosys/odontosys/internal/catalog"
	"github.com/odontosys/odontosys/internal/odontogram"
)

func TestSymbolForCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code string
		want Symbol
	}{
		{"EXO", SymbolCross},
		{"AUS", SymbolCross},
		{"CAR", SymbolCaries},
		{"CC", SymbolCrown},
		{"CMC", SymbolCrown},
		{"IMP", SymbolImplant},
		{"AM", SymbolRestoration},
		{"RC", SymbolRestoration},
		{"IV", SymbolRestoration},
		{"SEL", SymbolRestoration},
		{"TC", SymbolRootCanal},
		{"PC", SymbolRootCanal},
		{"PP", SymbolRootCanal},
		{"FC", SymbolFracture},
		{"FR", SymbolFracture},
		{"RR", SymbolResidualRoot},
		{"PR", SymbolProsthesis},
		{"PT", SymbolProsthesis},
		{"PUL", SymbolFallback},
		{"DIA", SymbolFallback},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SymbolForCode(tc.code), "code %s", tc.code)
	}
}

func TestSymbolForCodeUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SymbolFallback, SymbolForCode("ZZ9"))
	assert.Equal(t, SymbolFallback, SymbolForCode(""))
}

func TestClassifyPriorityOrder(t *testing.T) {
	t.Parallel()

	// code rules beat the category rule: a crown coded entry in the
	// restoration category still draws a crown
	assert.Equal(t, SymbolCrown, classify("CC", catalog.CategoryRestoration))
	assert.Equal(t, SymbolCross, classify("EXO", catalog.CategoryRestoration))
	assert.Equal(t, SymbolCaries, classify("CAR", catalog.CategoryRestoration))

	// the category rule beats every later code rule
	assert.Equal(t, SymbolRestoration, classify("TC", catalog.CategoryRestoration))
	assert.Equal(t, SymbolRestoration, classify("RR", catalog.CategoryRestoration))
}

func TestClassifyIgnoresNames(t *testing.T) {
	t.Parallel()

	// classification is keyed off code and category only; an entry whose
	// display name mentions another treatment is unaffected
	assert.Equal(t, SymbolFallback, classify("ABS", catalog.CategoryPathology))
}

func TestIntentColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, intentColor(odontogram.IntentPlanned))
	assert.Equal(t, color.RGBA{B: 0xFF, A: 0xFF}, intentColor(odontogram.IntentExisting))
}
