package id

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validPattern = regexp.MustCompile(`^(slide|shape|table|image|line|group)_[23456789ABCDEFGHJKMNPQRSTUVWXYZ]{5}$`)

func TestNew_Format(t *testing.T) {
	for _, p := range allPrefixes {
		id, err := New(p)
		require.NoError(t, err)
		assert.Regexp(t, validPattern, id)
		assert.NoError(t, Validate(id))
	}
}

func TestNew_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := New(Shape)
		require.NoError(t, err)
		assert.False(t, seen[id], "collision: %s", id)
		seen[id] = true
	}
}

func TestValidate_Valid(t *testing.T) {
	for _, id := range []string{"box_1", "_abcd", "slide-1:title", "ABCDE", "12345"} {
		assert.NoError(t, Validate(id), id)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []string{
		"",
		"abcd",      // too short
		"-abcde",    // leading hyphen
		":abcde",    // leading colon
		"has space", // space
		"café-01",   // non-ascii
		"a234567890123456789012345678901234567890123456789012", // too long
	}
	for _, id := range tests {
		assert.Error(t, Validate(id), "expected error for %q", id)
	}
}

func TestPrefixOf(t *testing.T) {
	id, err := New(Table)
	require.NoError(t, err)

	p, ok := PrefixOf(id)
	assert.True(t, ok)
	assert.Equal(t, Table, p)

	_, ok = PrefixOf("custom_id")
	assert.False(t, ok)
	_, ok = PrefixOf("nounderscore")
	assert.False(t, ok)
}

func TestParsePrefix(t *testing.T) {
	p, ok := ParsePrefix("Shape")
	assert.True(t, ok)
	assert.Equal(t, Shape, p)

	_, ok = ParsePrefix("video")
	assert.False(t, ok)
}
