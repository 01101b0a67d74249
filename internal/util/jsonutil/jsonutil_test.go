package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Path string   `json:"path"`
	Tags []string `json:"tags,omitempty"`
}

func TestMarshalNoEscapePreservesArrowAndAngleBrackets(t *testing.T) {
	v := sample{Path: "cup -> mL <canonical>"}
	out, err := MarshalNoEscape(v)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "cup -> mL <canonical>")
}

func TestMarshalNoEscapeRoundTripsThroughUnmarshalFlex(t *testing.T) {
	v := sample{Path: "vol_to_mass_dens", Tags: []string{"a", "b"}}
	out, err := MarshalNoEscape(v)
	assert.NoError(t, err)

	var got sample
	assert.NoError(t, UnmarshalFlex(out, &got))
	assert.Equal(t, v, got)
}

func TestUnmarshalFlexDirectUnmarshalWhenAlreadyValid(t *testing.T) {
	raw := []byte(`{"path": "cup -> mL"}`)
	var got sample
	assert.NoError(t, UnmarshalFlex(raw, &got))
	assert.Equal(t, "cup -> mL", got.Path)
}

func TestUnmarshalFlexRejectsUnparseableBytes(t *testing.T) {
	var got sample
	err := UnmarshalFlex([]byte(`not json at all`), &got)
	assert.Error(t, err)
}

func TestUnescapeUnicodeStringRoundTripsOrdinaryText(t *testing.T) {
	out, err := UnescapeUnicodeString("cup to mL")
	assert.NoError(t, err)
	assert.Equal(t, "cup to mL", out)
}

func TestUnmarshalIsCompatibilityWrapperAroundFlex(t *testing.T) {
	var got sample
	assert.NoError(t, Unmarshal([]byte(`{"path":"x"}`), &got))
	assert.Equal(t, "x", got.Path)
}

func TestUnmarshalRawAcceptsJSONRawMessage(t *testing.T) {
	var got sample
	assert.NoError(t, UnmarshalRaw([]byte(`{"path":"y"}`), &got))
	assert.Equal(t, "y", got.Path)
}
