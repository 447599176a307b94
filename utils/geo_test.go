package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDistance(t *testing.T) {
	// Tel Aviv to Jerusalem, roughly 54 km.
	d := CalculateDistance(32.0853, 34.7818, 31.7683, 35.2137)
	assert.InDelta(t, 54, d, 3)

	// Same point.
	assert.Equal(t, 0.0, CalculateDistance(32.0853, 34.7818, 32.0853, 34.7818))

	// Symmetric.
	reverse := CalculateDistance(31.7683, 35.2137, 32.0853, 34.7818)
	assert.InDelta(t, d, reverse, 0.001)
}

func TestCalculateAgeAt(t *testing.T) {
	birth := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)

	// Day before the birthday.
	assert.Equal(t, 29, CalculateAgeAt(birth, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)))
	// On the birthday.
	assert.Equal(t, 30, CalculateAgeAt(birth, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	// Day after.
	assert.Equal(t, 30, CalculateAgeAt(birth, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)))
	// Earlier month in the year.
	assert.Equal(t, 29, CalculateAgeAt(birth, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCalculateAge(t *testing.T) {
	_, ok := CalculateAge("")
	assert.False(t, ok)

	_, ok = CalculateAge("15/06/1995")
	assert.False(t, ok)

	age, ok := CalculateAge("1995-06-15")
	assert.True(t, ok)
	assert.Greater(t, age, 29)
}
