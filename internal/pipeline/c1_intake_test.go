package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ct "canonpipe/internal/types"
)

func TestIntakeAcceptsWellFormedRow(t *testing.T) {
	seen := make(map[string]bool)
	row := ct.InputRow{RecipeID: "r1", IngredientLineNo: 1, OriginalText: "2 cups flour"}
	result := Intake(row, seen)
	assert.True(t, result.Accepted)
	assert.Equal(t, "r1", result.Record.RecipeID)
	assert.NotEmpty(t, result.Record.IdempotencyKey)
}

func TestIntakeRejectsMissingRequiredField(t *testing.T) {
	seen := make(map[string]bool)
	cases := []ct.InputRow{
		{RecipeID: "", IngredientLineNo: 1, OriginalText: "2 cups flour"},
		{RecipeID: "r1", IngredientLineNo: 1, OriginalText: "   "},
	}
	for _, row := range cases {
		result := Intake(row, seen)
		assert.False(t, result.Accepted)
		assert.Equal(t, ct.CodeMissingRequiredField, result.Reject)
	}
}

func TestIntakeRejectsBadLineNumber(t *testing.T) {
	seen := make(map[string]bool)
	row := ct.InputRow{RecipeID: "r1", IngredientLineNo: 0, OriginalText: "2 cups flour"}
	result := Intake(row, seen)
	assert.False(t, result.Accepted)
	assert.Equal(t, ct.CodeTypeMismatch, result.Reject)
}

func TestIntakeRejectsSectionHeaderRow(t *testing.T) {
	seen := make(map[string]bool)
	cases := []string{"FOR THE SAUCE", "Toppings:", "For the dressing:"}
	for _, text := range cases {
		row := ct.InputRow{RecipeID: "r1", IngredientLineNo: 1, OriginalText: text}
		result := Intake(row, seen)
		assert.False(t, result.Accepted)
		assert.Equal(t, ct.CodeSectionHeaderRow, result.Reject)
	}
}

func TestIntakeDoesNotFlagOrdinaryLineAsHeader(t *testing.T) {
	seen := make(map[string]bool)
	row := ct.InputRow{RecipeID: "r1", IngredientLineNo: 1, OriginalText: "1 cup sugar"}
	result := Intake(row, seen)
	assert.True(t, result.Accepted)
}

func TestIntakeRejectsMalformedUnit(t *testing.T) {
	seen := make(map[string]bool)
	row := ct.InputRow{RecipeID: "r1", IngredientLineNo: 1, OriginalText: "2 of flour", UnitOriginal: "g2x"}
	result := Intake(row, seen)
	assert.False(t, result.Accepted)
	assert.Equal(t, ct.CodeUnitInvalidFormat, result.Reject)
}

func TestIntakeDedupesByIdempotencyKey(t *testing.T) {
	seen := make(map[string]bool)
	row := ct.InputRow{RecipeID: "r1", IngredientLineNo: 1, OriginalText: "2 cups flour"}
	first := Intake(row, seen)
	assert.True(t, first.Accepted)
	seen[first.Record.IdempotencyKey] = true

	second := Intake(row, seen)
	assert.False(t, second.Accepted)
	assert.Empty(t, second.Reject, "a dedup skip carries no reject code, unlike a structural rejection")
}

func TestIntakeIsIdempotentAcrossReruns(t *testing.T) {
	row := ct.InputRow{RecipeID: "r1", IngredientLineNo: 3, OriginalText: "1/2 tsp cinnamon"}
	first := Intake(row, map[string]bool{})
	second := Intake(row, map[string]bool{})
	assert.Equal(t, first.Record.IdempotencyKey, second.Record.IdempotencyKey)
}

func TestIntakeKeyChangesWithLineHash(t *testing.T) {
	row1 := ct.InputRow{RecipeID: "r1", IngredientLineNo: 3, OriginalText: "1/2 tsp cinnamon", LineHash: "abc"}
	row2 := ct.InputRow{RecipeID: "r1", IngredientLineNo: 3, OriginalText: "1/2 tsp cinnamon", LineHash: "def"}
	k1 := Intake(row1, map[string]bool{}).Record.IdempotencyKey
	k2 := Intake(row2, map[string]bool{}).Record.IdempotencyKey
	assert.NotEqual(t, k1, k2)
}

func TestSequenceGapsDetectsHoles(t *testing.T) {
	assert.True(t, SequenceGaps([]int{1, 2, 4}))
	assert.False(t, SequenceGaps([]int{1, 2, 3}))
	assert.False(t, SequenceGaps(nil))
}
