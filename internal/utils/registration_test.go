package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegistration(t *testing.T) {
	cases := map[string]string{
		"kba 123x":    "KBA123X",
		" KBA-123X ":  "KBA123X",
		"k b a-12-3x": "KBA123X",
		"gk.a 001":    "GKA001",
	}
	for in, want := range cases {
		got, err := ParseRegistration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRegistrationRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"  - . ",
		"KBA@123",
		"KBA_123",
		"КВА123",
		strings.Repeat("A", MaxRegistrationLength+1),
	} {
		_, err := ParseRegistration(in)
		assert.ErrorIs(t, err, ErrInvalidRegistration, in)
	}

	got, err := ParseRegistration(strings.Repeat("a", MaxRegistrationLength) + " ")
	require.NoError(t, err)
	assert.Len(t, got, MaxRegistrationLength)
}
