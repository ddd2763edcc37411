package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFirstMatchWins(t *testing.T) {
	accepted := []Category{{"welcome", "wel"}, {"settings", "set"}}
	label, ok := Classify("I want settings please", accepted)
	assert.True(t, ok)
	assert.Equal(t, "settings", label)
}

func TestClassifyOrderDependence(t *testing.T) {
	// Both substrings occur; the declared order decides.
	accepted := []Category{{"settings", "set"}, {"welcome", "wel"}}
	label, ok := Classify("wel set", accepted)
	assert.True(t, ok)
	assert.Equal(t, "settings", label)

	accepted = []Category{{"welcome", "wel"}, {"settings", "set"}}
	label, ok = Classify("wel set", accepted)
	assert.True(t, ok)
	assert.Equal(t, "welcome", label)
}

func TestClassifyCaseFolds(t *testing.T) {
	label, ok := Classify("SETTINGS", []Category{{"settings", "set"}})
	assert.True(t, ok)
	assert.Equal(t, "settings", label)
}

func TestClassifyUnrecognized(t *testing.T) {
	_, ok := Classify("moderator", []Category{{"settings", "set"}, {"welcome", "wel"}})
	assert.False(t, ok)
}

func TestClassifyNoTrimming(t *testing.T) {
	// Permissive on purpose: unrelated text around the keyword still matches.
	label, ok := Classify("  can you set it up?? ", []Category{{"set", "set"}})
	assert.True(t, ok)
	assert.Equal(t, "set", label)
}
