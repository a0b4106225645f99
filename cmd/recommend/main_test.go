package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/stride-goals-api/recommend"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCmd(buf)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRecommendJSON(t *testing.T) {
	out, err := run(t,
		"--weight", "75", "--target", "70", "--weekly", "-0.5", "--goal", "weight_loss",
		"--height", "175", "--age", "30", "--gender", "male", "--activity", "moderate", "--json")
	require.NoError(t, err)

	var r recommend.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 1699, r.BMR)
	assert.Equal(t, 2633, r.TDEE)
	assert.Equal(t, 934, r.DailyActivity)
	assert.Equal(t, 2083, r.DailyCalorieGoal)
	assert.Equal(t, 550, r.Deficit)
	assert.Equal(t, 0, r.ExerciseCaloriesNeeded)
}

func TestRecommendText(t *testing.T) {
	out, err := run(t, "--weight", "75", "--target", "70", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily calorie goal:")
	assert.Contains(t, out, "Ideal deficit:")
	// No biometrics given, so the explanation asks for a complete profile.
	assert.Contains(t, out, "Complete your profile")
}

func TestRecommendValidation(t *testing.T) {
	for name, args := range map[string][]string{
		"missing weight":      {"--target", "70"},
		"missing target":      {"--weight", "75"},
		"unknown goal":        {"--weight", "75", "--target", "70", "--goal", "bulk"},
		"loss with gain":      {"--weight", "75", "--target", "70", "--weekly", "0.5"},
		"gain with loss":      {"--weight", "75", "--target", "80", "--goal", "weight_gain", "--weekly", "-0.5"},
		"rate too steep":      {"--weight", "75", "--target", "70", "--weekly", "-2"},
		"rate not a number":   {"--weight", "75", "--target", "70", "--weekly", "NaN"},
		"weight out of range": {"--weight", "1200", "--target", "70"},
		"unknown gender":      {"--weight", "75", "--target", "70", "--gender", "robot"},
		"unknown activity":    {"--weight", "75", "--target", "70", "--activity", "extreme"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, args...)
			assert.Error(t, err)
		})
	}
}
