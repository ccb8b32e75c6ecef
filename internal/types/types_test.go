package types

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, true},
		{"", true},
		{"   ", true},
		{false, true},
		{0, true},
		{0.0, true},
		{"NYC", false},
		{true, false},
		{2, false},
		{349.99, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBlank(tt.in), "IsBlank(%#v)", tt.in)
	}
}

func TestValues_Accessors(t *testing.T) {
	v := Values{
		"guests":   "3",
		"price":    "$1,299.50",
		"adults":   2.0,
		"non_stop": "true",
		"name":     "  Marriott  ",
	}
	assert.Equal(t, 3, v.Int("guests"))
	assert.InDelta(t, 1299.50, v.Float("price"), 1e-9)
	assert.Equal(t, 2, v.Int("adults"))
	assert.True(t, v.Bool("non_stop"))
	assert.Equal(t, "Marriott", v.String("name"))
	assert.Equal(t, "2", v.String("adults"))
	assert.False(t, v.Present("missing"))
	assert.Equal(t, 0, v.Int("missing"))
}

func TestMoney(t *testing.T) {
	m := MoneyFromFloat(12.34, "USD")
	assert.Equal(t, int64(1234), m.Amount)
	assert.InDelta(t, 12.34, m.Float(), 1e-9)
}

func TestNewConfirmationID(t *testing.T) {
	re := regexp.MustCompile(`^HTL-[A-Z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, NewConfirmationID("HTL"))
	}
}
