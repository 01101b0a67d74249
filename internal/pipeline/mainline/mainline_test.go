package mainline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"canonpipe/internal/refdata"
	ct "canonpipe/internal/types"
)

func testSnapshot() *refdata.Snapshot {
	constants := refdata.DefaultConstants()
	raw := refdata.RawRefData{
		Ingredients: []ct.Ingredient{
			{ID: "ing_flour", PrimaryName: "flour", Category: "grain", DefaultFormID: "FORM_WHOLE"},
			{ID: "ing_cinnamon", PrimaryName: "cinnamon", Category: "spice", DefaultFormID: "FORM_POWDER"},
		},
		Forms: []ct.Form{
			{ID: "FORM_WHOLE", Name: "whole", Group: "solid", TargetDimension: ct.TargetDimAuto},
			{ID: "FORM_POWDER", Name: "powder", Group: "solid", TargetDimension: ct.TargetDimMass},
		},
		Densities: []ct.Density{
			{ID: "den_cinnamon_powder", IngredientID: "ing_cinnamon", FormID: "FORM_POWDER", GPerML: 0.56, SourcePriority: 1, IsActive: true},
		},
		Constants: constants,
	}
	return refdata.NewSnapshot(raw, 64)
}

func testConfig() Config {
	return Config{Today: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestRunCountRowSkipsBridgeAndDensity(t *testing.T) {
	snap := testSnapshot()
	row := ct.InputRow{RecipeID: "r1", IngredientLineNo: 1, OriginalText: "2 flour", QtyValueOriginal: "2"}
	rec := ct.CanonicalRecord{RecipeID: "r1", LineNumber: 1, OriginalText: row.OriginalText}

	out := Run(rec, row, snap, testConfig())
	assert.True(t, out.Succeeded())
	assert.Equal(t, ct.LinkExact, out.Link.Method)
	assert.Equal(t, ct.CanonicalEA, out.Canonical.Unit)
	assert.Equal(t, ct.ConversionCount, out.Converted.Path)
}

func TestRunVolumeToMassBridgeSucceeds(t *testing.T) {
	snap := testSnapshot()
	row := ct.InputRow{
		RecipeID: "r2", IngredientLineNo: 1,
		OriginalText: "1 tsp cinnamon", QtyValueOriginal: "1", UnitOriginal: "tsp",
	}
	rec := ct.CanonicalRecord{RecipeID: "r2", LineNumber: 1, OriginalText: row.OriginalText}

	out := Run(rec, row, snap, testConfig())
	assert.True(t, out.Succeeded())
	assert.Equal(t, ct.CanonicalG, out.Canonical.Unit)
	assert.Equal(t, ct.BridgeVolToMass, out.Canonical.BridgeRequired)
	assert.Equal(t, ct.ConversionVolToMassDens, out.Converted.Path)
	assert.InDelta(t, 4.92892159375*0.56, *out.Converted.QtyMin, 1e-9)
}

func TestRunUnresolvedLinkFailsWithoutCanonicalNumbers(t *testing.T) {
	snap := testSnapshot()
	row := ct.InputRow{RecipeID: "r3", IngredientLineNo: 1, OriginalText: "2 cups unobtainium dust", QtyValueOriginal: "2", UnitOriginal: "cup"}
	rec := ct.CanonicalRecord{RecipeID: "r3", LineNumber: 1, OriginalText: row.OriginalText}

	out := Run(rec, row, snap, testConfig())
	assert.False(t, out.Succeeded())
	assert.Equal(t, ct.CodeNoMatch, out.FailureCode)
	assert.Nil(t, out.Converted.QtyMin)
}

func TestRunSpecialDimensionTerminatesWithoutFailureCode(t *testing.T) {
	snap := testSnapshot()
	row := ct.InputRow{RecipeID: "r4", IngredientLineNo: 1, OriginalText: "flour to taste", UnitOriginal: "to taste"}
	rec := ct.CanonicalRecord{RecipeID: "r4", LineNumber: 1, OriginalText: row.OriginalText}

	out := Run(rec, row, snap, testConfig())
	assert.True(t, out.Succeeded())
	assert.Equal(t, ct.DimSpecial, out.Canonical.DimensionSelected)
	assert.Nil(t, out.Converted.QtyMin)
}
