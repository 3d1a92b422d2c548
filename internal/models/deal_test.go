package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentOff_RoundsToNearestInteger(t *testing.T) {
	assert.Equal(t, 5, PercentOff(100, 95))
	assert.Equal(t, 20, PercentOff(100, 80))
	assert.Equal(t, 33, PercentOff(149.99, 99.99))
	assert.Equal(t, 50, PercentOff(59.98, 29.99))
}

func TestPercentOff_ZeroForFullPrice(t *testing.T) {
	assert.Equal(t, 0, PercentOff(100, 100))
}

func TestPercentOff_NonPositiveBaseline(t *testing.T) {
	assert.Equal(t, 0, PercentOff(0, 10))
	assert.Equal(t, 0, PercentOff(-5, 10))
}

func TestSavings_RoundedToCents(t *testing.T) {
	assert.Equal(t, 20.0, Savings(100, 80))
	assert.Equal(t, 50.0, Savings(149.99, 99.99))
	assert.Equal(t, 0.01, Savings(10.005, 9.999))
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 89.99, RoundCents(89.99))
	assert.Equal(t, 63.0, RoundCents(90.0*(1-0.30)))
	assert.Equal(t, 33.33, RoundCents(33.333333))
}
