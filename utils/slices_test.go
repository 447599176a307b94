package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersection(t *testing.T) {
	assert.Equal(t, []string{"b", "c"},
		Intersection([]string{"a", "b", "c"}, []string{"c", "b", "d"}))

	// First slice's order wins.
	assert.Equal(t, []string{"yoga", "food"},
		Intersection([]string{"yoga", "music", "food"}, []string{"food", "yoga"}))

	// Empty, never nil.
	assert.Equal(t, []string{}, Intersection([]string{"a"}, []string{"b"}))
	assert.Equal(t, []string{}, Intersection(nil, []string{"b"}))
	assert.Equal(t, []string{}, Intersection([]string{"a"}, nil))
}
