package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDropdownSelect(t *testing.T) {
	d := NewDropdown([]string{"10m", "30m", "1h", "1d"}, "1h")
	assert.Equal(t, "1h", d.Selected())

	assert.NoError(t, d.Select("30m"))
	assert.Equal(t, "30m", d.Selected())
	assert.Equal(t, []string{"10m", "30m", "1h", "1d"}, d.Options())
}

func TestDropdownRejectsUnknownOption(t *testing.T) {
	d := NewDropdown([]string{"BV1", "BV2"}, "nope")
	assert.Equal(t, "BV1", d.Selected())
	assert.ErrorIs(t, d.Select("BV3"), ErrUnknownOption)
	assert.Equal(t, "BV1", d.Selected())
}

func TestDropdownsAreIndependent(t *testing.T) {
	a := NewDropdown([]string{"x", "y"}, "x")
	b := NewDropdown([]string{"x", "y"}, "x")
	assert.NoError(t, a.Select("y"))
	assert.Equal(t, "y", a.Selected())
	assert.Equal(t, "x", b.Selected())

	opts := a.Options()
	opts[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, a.Options())
}
