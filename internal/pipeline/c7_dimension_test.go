package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ct "canonpipe/internal/types"
)

func TestDimensionCountAlwaysEach(t *testing.T) {
	c := Dimension(ct.DimCount, ct.TargetDimAuto)
	assert.Equal(t, ct.CanonicalEA, c.Unit)
	assert.Equal(t, ct.BridgeNone, c.BridgeRequired)
}

func TestDimensionSpecialTerminatesWithNoUnit(t *testing.T) {
	c := Dimension(ct.DimSpecial, ct.TargetDimAuto)
	assert.Equal(t, ct.DimSpecial, c.DimensionSelected)
	assert.Equal(t, ct.CanonicalNone, c.Unit)
	assert.Equal(t, ct.BridgeNone, c.BridgeRequired)
}

func TestDimensionMassAutoStaysMass(t *testing.T) {
	c := Dimension(ct.DimMass, ct.TargetDimAuto)
	assert.Equal(t, ct.CanonicalG, c.Unit)
	assert.Equal(t, ct.BridgeNone, c.BridgeRequired)
}

func TestDimensionMassTargetedToVolumeBridges(t *testing.T) {
	c := Dimension(ct.DimMass, ct.TargetDimVolume)
	assert.Equal(t, ct.CanonicalML, c.Unit)
	assert.Equal(t, ct.BridgeMassToVol, c.BridgeRequired)
}

func TestDimensionVolumeAutoStaysVolume(t *testing.T) {
	c := Dimension(ct.DimVolume, ct.TargetDimAuto)
	assert.Equal(t, ct.CanonicalML, c.Unit)
	assert.Equal(t, ct.BridgeNone, c.BridgeRequired)
}

func TestDimensionVolumeTargetedToMassBridges(t *testing.T) {
	c := Dimension(ct.DimVolume, ct.TargetDimMass)
	assert.Equal(t, ct.CanonicalG, c.Unit)
	assert.Equal(t, ct.BridgeVolToMass, c.BridgeRequired)
}

func TestDimensionUnknownOriginalYieldsEmptyCanonical(t *testing.T) {
	c := Dimension(ct.DimNone, ct.TargetDimAuto)
	assert.Equal(t, ct.Canonical{}, c)
}
