package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	t.Run("blank answers", func(t *testing.T) {
		p, err := parseProfile("", "", "", "")
		require.NoError(t, err)
		assert.Nil(t, p.heightCM)
		assert.Nil(t, p.dateOfBirth)
		assert.Nil(t, p.gender)
		assert.Equal(t, "moderate", p.activityLevel)
	})

	t.Run("full profile", func(t *testing.T) {
		p, err := parseProfile("175", "1996-03-14", "Male", "very_active")
		require.NoError(t, err)
		require.NotNil(t, p.heightCM)
		assert.Equal(t, 175.0, *p.heightCM)
		assert.Equal(t, "1996-03-14", *p.dateOfBirth)
		assert.Equal(t, "male", *p.gender)
		assert.Equal(t, "very_active", p.activityLevel)
	})

	for name, in := range map[string][4]string{
		"bad height":   {"tall", "", "", ""},
		"zero height":  {"0", "", "", ""},
		"bad dob":      {"", "14/03/1996", "", ""},
		"bad gender":   {"", "", "robot", ""},
		"bad activity": {"", "", "", "extreme"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseProfile(in[0], in[1], in[2], in[3])
			assert.Error(t, err)
		})
	}
}
