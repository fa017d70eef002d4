package alphabets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8051enthusiast/regex2fat-go/alphabets"
)

func TestGetKnownPresets(t *testing.T) {
	for _, slug := range []string{"default", "lowercase", "uppercase", "digits", "alnum", "symbols"} {
		a, err := alphabets.Get(slug)
		require.NoErrorf(t, err, "slug %q", slug)
		assert.NotEmpty(t, a)
		assert.NoError(t, a.Validate())
	}
}

func TestGetUnknownPreset(t *testing.T) {
	_, err := alphabets.Get("nonexistent")
	require.Error(t, err)
}

func TestNamesNonEmpty(t *testing.T) {
	assert.NotEmpty(t, alphabets.Names())
}

func TestLowercaseIsExactlyAToZ(t *testing.T) {
	a, err := alphabets.Get("lowercase")
	require.NoError(t, err)
	assert.Equal(t, 26, len(a))
	for _, b := range a {
		assert.True(t, b >= 'a' && b <= 'z')
	}
}
