package refdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ct "canonpipe/internal/types"
)

func TestSnapshotByPrimaryAndAliasLookup(t *testing.T) {
	raw := RawRefData{
		Ingredients: []ct.Ingredient{
			{ID: "ing_sugar", PrimaryName: "Granulated Sugar", Aliases: []string{"sugar", "white sugar"}},
		},
		Constants: DefaultConstants(),
	}
	snap := NewSnapshot(raw, 16)

	ing, ok := snap.ByPrimary("granulated sugar")
	assert.True(t, ok)
	assert.Equal(t, "ing_sugar", ing.ID)

	alias, ok := snap.ByAlias("white sugar")
	assert.True(t, ok)
	assert.Equal(t, "ing_sugar", alias.ID)

	_, ok = snap.ByAlias("brown sugar")
	assert.False(t, ok)
}

func TestSnapshotFirstIngredientWinsOnDuplicatePrimary(t *testing.T) {
	raw := RawRefData{
		Ingredients: []ct.Ingredient{
			{ID: "ing_first", PrimaryName: "flour"},
			{ID: "ing_second", PrimaryName: "flour"},
		},
		Constants: DefaultConstants(),
	}
	snap := NewSnapshot(raw, 16)
	ing, ok := snap.ByPrimary("flour")
	assert.True(t, ok)
	assert.Equal(t, "ing_first", ing.ID)
}

func TestSnapshotFuzzyTopKOrdersByScoreThenAliasWeightThenID(t *testing.T) {
	raw := RawRefData{
		Ingredients: []ct.Ingredient{
			{ID: "ing_a", PrimaryName: "cinnamon", Aliases: []string{"a1", "a2"}},
			{ID: "ing_b", PrimaryName: "cinnamon stick"},
		},
		Constants: DefaultConstants(),
	}
	snap := NewSnapshot(raw, 16)
	top := snap.FuzzyTopK(map[string]struct{}{"cinnamon": {}}, 5)
	assert.True(t, len(top) >= 2)
	assert.Equal(t, "ing_a", top[0].Ingredient.ID)
}

func TestSnapshotFormGroupAndDefaultFor(t *testing.T) {
	raw := RawRefData{
		Ingredients: []ct.Ingredient{{ID: "ing_x", DefaultFormID: "FORM_WHOLE"}},
		Forms: []ct.Form{
			{ID: "FORM_WHOLE", Group: "solid"},
			{ID: "FORM_CHOPPED", Group: "solid"},
			{ID: "FORM_LIQUID", Group: "liquid"},
		},
		Constants: DefaultConstants(),
	}
	snap := NewSnapshot(raw, 16)

	group, ok := snap.FormGroup("FORM_WHOLE")
	assert.True(t, ok)
	assert.True(t, group["FORM_CHOPPED"])
	assert.False(t, group["FORM_LIQUID"])

	formID, ok := snap.FormDefaultFor("ing_x")
	assert.True(t, ok)
	assert.Equal(t, "FORM_WHOLE", formID)

	_, ok = snap.FormDefaultFor("ing_missing")
	assert.False(t, ok)
}

func TestSnapshotDensitiesFindFiltersByEffectiveWindowAndPredicate(t *testing.T) {
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	raw := RawRefData{
		Densities: []ct.Density{
			{ID: "d_active", IngredientID: "ing_x", GPerML: 0.5, IsActive: true, EffectiveFrom: &past, EffectiveTo: &future},
			{ID: "d_expired", IngredientID: "ing_x", GPerML: 0.6, IsActive: true, EffectiveTo: &past},
			{ID: "d_inactive", IngredientID: "ing_x", GPerML: 0.7, IsActive: false},
		},
		Constants: DefaultConstants(),
	}
	snap := NewSnapshot(raw, 16)
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	found := snap.DensitiesFind(today, func(d ct.Density) bool { return d.IngredientID == "ing_x" })
	assert.Len(t, found, 1)
	assert.Equal(t, "d_active", found[0].ID)
}

func TestSnapshotDensitiesAreSortedByIDRegardlessOfLoadOrder(t *testing.T) {
	raw := RawRefData{
		Densities: []ct.Density{
			{ID: "d_zebra", IngredientID: "ing_x", GPerML: 0.5, IsActive: true},
			{ID: "d_apple", IngredientID: "ing_x", GPerML: 0.6, IsActive: true},
		},
		Constants: DefaultConstants(),
	}
	snap := NewSnapshot(raw, 16)
	today := time.Now().UTC()
	found := snap.DensitiesFind(today, nil)
	assert.Equal(t, "d_apple", found[0].ID)
	assert.Equal(t, "d_zebra", found[1].ID)
}
