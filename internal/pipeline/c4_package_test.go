package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ct "canonpipe/internal/types"
)

func TestPackageNoSizeFound(t *testing.T) {
	pkg := Package("", "2 cups flour")
	assert.Nil(t, pkg.SizeValue)
	assert.Equal(t, 1.0, pkg.Multiplier)
	assert.Contains(t, pkg.ParseWarnings, ct.CodeNoPackageSizeFound)
}

func TestPackageParsesParenSize(t *testing.T) {
	pkg := Package("", "1 can (14 oz) diced tomatoes")
	assert.NotNil(t, pkg.SizeValue)
	assert.Equal(t, 14.0, *pkg.SizeValue)
	assert.Equal(t, ct.UnitOZ, pkg.SizeUnit)
	assert.InDelta(t, 14*28.349523125, *pkg.SizeSIValue, 1e-9)
	assert.Equal(t, "G", pkg.SizeSIUnit)
}

func TestPackageParsesMultiplier(t *testing.T) {
	pkg := Package("", "2 x 400g cans chickpeas")
	assert.Equal(t, 2.0, pkg.Multiplier)
	assert.Equal(t, 400.0, *pkg.SizeValue)
	assert.Equal(t, ct.UnitG, pkg.SizeUnit)
	assert.Contains(t, pkg.ParseWarnings, ct.CodeMultiplierFound)
}

func TestPackageSIMirrorKilogramsAndLiters(t *testing.T) {
	pkg := Package("", "1 bag (1.5 kg) rice")
	assert.InDelta(t, 1500.0, *pkg.SizeSIValue, 1e-9)
	assert.Equal(t, "G", pkg.SizeSIUnit)

	pkg2 := Package("", "1 bottle (2 l) soda")
	assert.InDelta(t, 2000.0, *pkg2.SizeSIValue, 1e-9)
	assert.Equal(t, "ML", pkg2.SizeSIUnit)
}

func TestPackageAmbiguousOzLiquidFlag(t *testing.T) {
	pkg := Package("", "1 can (8 oz) milk")
	assert.Contains(t, pkg.ParseWarnings, ct.CodeAmbiguousOzLiquid)
}

func TestPackageOzSolidIsNotAmbiguous(t *testing.T) {
	pkg := Package("", "1 can (8 oz) diced tomatoes")
	assert.NotContains(t, pkg.ParseWarnings, ct.CodeAmbiguousOzLiquid)
}

func TestPackageFluidOzDetected(t *testing.T) {
	pkg := Package("", "1 bottle (12 fl oz) cream")
	assert.Equal(t, ct.UnitFLOZ, pkg.SizeUnit)
}
