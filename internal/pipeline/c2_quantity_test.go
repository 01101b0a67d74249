package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ct "canonpipe/internal/types"
)

func TestQuantityEmptyYieldsAllNulls(t *testing.T) {
	q := Quantity("")
	assert.Nil(t, q.Min)
	assert.Nil(t, q.Max)
	assert.False(t, q.IsRange)
}

func TestQuantityInteger(t *testing.T) {
	q := Quantity("2")
	assert.Equal(t, 2.0, *q.Min)
	assert.Equal(t, 2.0, *q.Max)
	assert.Equal(t, ct.PrecisionInteger, q.PrecisionCode)
}

func TestQuantityDecimal(t *testing.T) {
	q := Quantity("1.5")
	assert.Equal(t, 1.5, *q.Min)
	assert.Equal(t, ct.PrecisionDecimal, q.PrecisionCode)
}

func TestQuantityAsciiFraction(t *testing.T) {
	q := Quantity("1/2")
	assert.Equal(t, 0.5, *q.Min)
	assert.Equal(t, ct.PrecisionFraction, q.PrecisionCode)
}

func TestQuantityUnicodeFraction(t *testing.T) {
	q := Quantity("½")
	assert.Equal(t, 0.5, *q.Min)
	assert.Equal(t, ct.PrecisionFraction, q.PrecisionCode)
}

func TestQuantityEighthFraction(t *testing.T) {
	q := Quantity("⅛")
	assert.InDelta(t, 0.125, *q.Min, 1e-12)
}

func TestQuantityMixedNumberNotMisreadAsRange(t *testing.T) {
	// "1-1/2" is a mixed number (1 + 1/2), not a 1..1/2 range, even though
	// "-" is also the range separator.
	q := Quantity("1-1/2")
	assert.False(t, q.IsRange)
	assert.Equal(t, 1.5, *q.Min)
	assert.Equal(t, 1.5, *q.Max)
	assert.Equal(t, ct.PrecisionMixed, q.PrecisionCode)
}

func TestQuantityMixedNumberWithSpace(t *testing.T) {
	q := Quantity("2 3/4")
	assert.Equal(t, 2.75, *q.Min)
	assert.Equal(t, ct.PrecisionMixed, q.PrecisionCode)
}

func TestQuantityRangeWithDash(t *testing.T) {
	q := Quantity("2-3")
	assert.True(t, q.IsRange)
	assert.Equal(t, 2.0, *q.Min)
	assert.Equal(t, 3.0, *q.Max)
	assert.Equal(t, ct.PrecisionRange, q.PrecisionCode)
}

func TestQuantityRangeWithTo(t *testing.T) {
	q := Quantity("2 to 3")
	assert.True(t, q.IsRange)
	assert.Equal(t, 2.0, *q.Min)
	assert.Equal(t, 3.0, *q.Max)
}

func TestQuantityRangeReordersInvertedEndpoints(t *testing.T) {
	q := Quantity("5-2")
	assert.Equal(t, 2.0, *q.Min)
	assert.Equal(t, 5.0, *q.Max)
}

func TestQuantityRangeWithIdenticalEndpoints(t *testing.T) {
	q := Quantity("3-3")
	assert.Equal(t, 3.0, *q.Min)
	assert.Equal(t, 3.0, *q.Max)
	assert.True(t, q.IsRange)
}

func TestQuantityApproxMarker(t *testing.T) {
	q := Quantity("~2 cups")
	assert.True(t, q.ApproxFlag)
	cases := []string{"about 2", "approx 2", "2+"}
	for _, raw := range cases {
		q := Quantity(raw)
		assert.True(t, q.ApproxFlag, raw)
	}
}

func TestQuantityThousandsSeparatorStripped(t *testing.T) {
	q := Quantity("1,000")
	assert.Equal(t, 1000.0, *q.Min)
}

func TestQuantityTextNumeral(t *testing.T) {
	q := Quantity("dozen")
	assert.Equal(t, 12.0, *q.Min)
	assert.Equal(t, ct.PrecisionText, q.PrecisionCode)
}

func TestQuantityNoNumericQuantityWarns(t *testing.T) {
	q := Quantity("some")
	assert.Nil(t, q.Min)
	assert.Contains(t, q.ParseWarnings, ct.CodeNoNumericQuantity)
}

func TestQuantityMultipleRangeSeparatorsWarns(t *testing.T) {
	q := Quantity("1-2-3")
	assert.Contains(t, q.ParseWarnings, ct.CodeMultipleRangeSeparators)
	assert.Nil(t, q.Min)
}

func TestQuantityRangeSideInvalidWarns(t *testing.T) {
	q := Quantity("2-banana")
	assert.Contains(t, q.ParseWarnings, ct.CodeQtyRangeSideInvalid)
}
