package recommend

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// completeProfile builds Biometrics with every field set.
func completeProfile(heightCM float64, age int, gender Gender, level ActivityLevel) Biometrics {
	return Biometrics{
		HeightCM:      &heightCM,
		AgeYears:      &age,
		Gender:        &gender,
		ActivityLevel: &level,
	}
}

/* ─── End-to-end scenarios ───────────────────────────────────────────── */

// TestCompute_CompleteProfileWeightLoss is the reference case: 75 kg male,
// 175 cm, 30 years, moderate, losing 0.5 kg/week.
func TestCompute_CompleteProfileWeightLoss(t *testing.T) {
	req := GoalRequest{
		CurrentWeightKg:          75,
		TargetWeightKg:           70,
		WeeklyWeightChangeGoalKg: ptr(-0.5),
		GoalType:                 GoalWeightLoss,
	}
	r := Compute(req, completeProfile(175, 30, GenderMale, ActivityModerate))

	assert.Equal(t, 1699, r.BMR)
	assert.Equal(t, 2633, r.TDEE)
	assert.Equal(t, 934, r.DailyActivity)
	assert.Equal(t, 2083, r.DailyCalorieGoal)
	assert.Equal(t, 0, r.ExerciseCaloriesNeeded)
	assert.Equal(t, 2633, r.CaloriesToBurn)
	assert.Equal(t, 550, r.Deficit)
	assert.Contains(t, r.Explanation, "without extra exercise")
	assert.Contains(t, r.Explanation, "gender (male), age (30) and height (175 cm)")
}

// TestCompute_DefaultWeeklyRate verifies a nil rate resolves to the goal-type
// default, producing the same result as passing it explicitly.
func TestCompute_DefaultWeeklyRate(t *testing.T) {
	bio := completeProfile(175, 30, GenderMale, ActivityModerate)
	cases := []struct {
		goal   GoalType
		weekly float64
	}{
		{GoalWeightLoss, -0.5},
		{GoalWeightGain, 0.5},
		{GoalMaintain, 0},
	}
	for _, tc := range cases {
		t.Run(string(tc.goal), func(t *testing.T) {
			implicit := Compute(GoalRequest{CurrentWeightKg: 75, TargetWeightKg: 70, GoalType: tc.goal}, bio)
			explicit := Compute(GoalRequest{CurrentWeightKg: 75, TargetWeightKg: 70, GoalType: tc.goal,
				WeeklyWeightChangeGoalKg: ptr(tc.weekly)}, bio)
			assert.Equal(t, explicit, implicit)
		})
	}
}

func TestCompute_NaNWeeklyRateUsesDefault(t *testing.T) {
	bio := completeProfile(175, 30, GenderMale, ActivityModerate)
	r := Compute(GoalRequest{CurrentWeightKg: 75, TargetWeightKg: 70, GoalType: GoalWeightLoss,
		WeeklyWeightChangeGoalKg: ptr(math.NaN())}, bio)
	assert.Equal(t, 2083, r.DailyCalorieGoal)
	assert.Equal(t, 550, r.Deficit)
}

/* ─── Degraded profile ───────────────────────────────────────────────── */

// TestCompute_DegradedProfile verifies bmr = round(22 × weight) when height,
// age and gender are all missing.
func TestCompute_DegradedProfile(t *testing.T) {
	for _, w := range []float64{45.3, 60, 75, 82.7, 120} {
		t.Run(strconv.FormatFloat(w, 'f', -1, 64), func(t *testing.T) {
			r := Compute(GoalRequest{CurrentWeightKg: w, TargetWeightKg: w, GoalType: GoalMaintain}, Biometrics{})
			assert.Equal(t, int(math.Round(22*w)), r.BMR)
			assert.Contains(t, r.Explanation, "Complete your profile")
		})
	}
}

// TestCompute_PartialProfileIsDegraded verifies that any single missing field
// drops to the flat estimate.
func TestCompute_PartialProfileIsDegraded(t *testing.T) {
	cases := []struct {
		name string
		mut  func(b *Biometrics)
	}{
		{"nil height", func(b *Biometrics) { b.HeightCM = nil }},
		{"zero height", func(b *Biometrics) { b.HeightCM = ptr(0.0) }},
		{"nil age", func(b *Biometrics) { b.AgeYears = nil }},
		{"zero age", func(b *Biometrics) { b.AgeYears = ptr(0) }},
		{"nil gender", func(b *Biometrics) { b.Gender = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := completeProfile(175, 30, GenderMale, ActivityModerate)
			tc.mut(&b)
			require.False(t, b.HasCompleteProfile())
			r := Compute(GoalRequest{CurrentWeightKg: 80, TargetWeightKg: 75, GoalType: GoalWeightLoss}, b)
			assert.Equal(t, 1760, r.BMR)
		})
	}
}

func TestCompute_ZeroWeightDegradesToZeros(t *testing.T) {
	r := Compute(GoalRequest{CurrentWeightKg: 0, TargetWeightKg: 70, GoalType: GoalWeightLoss}, Biometrics{})

	assert.Equal(t, 0, r.BMR)
	assert.Equal(t, 0, r.TDEE)
	assert.Equal(t, 0, r.DailyActivity)
	assert.Equal(t, MinDailyCalories, r.DailyCalorieGoal)
	assert.GreaterOrEqual(t, r.CaloriesToBurn, 0)
	assert.GreaterOrEqual(t, r.ExerciseCaloriesNeeded, 0)
	assert.NotEmpty(t, r.Explanation)
}

/* ─── Exercise augmentation ──────────────────────────────────────────── */

// TestCompute_ExerciseAugmentation uses a light, low-TDEE user asking for
// 1 kg/week: the 1200 kcal floor leaves part of the deficit to exercise.
//
// bmr = 22×60 = 1320, tdee = round(1320×1.2) = 1584, ideal deficit = 1100,
// raw goal 484 → 1200, actual deficit 384, exercise = 716.
func TestCompute_ExerciseAugmentation(t *testing.T) {
	level := ActivitySedentary
	r := Compute(GoalRequest{
		CurrentWeightKg:          60,
		TargetWeightKg:           50,
		WeeklyWeightChangeGoalKg: ptr(-1.0),
		GoalType:                 GoalWeightLoss,
	}, Biometrics{ActivityLevel: &level})

	assert.Equal(t, 1584, r.TDEE)
	assert.Equal(t, MinDailyCalories, r.DailyCalorieGoal)
	assert.Equal(t, 716, r.ExerciseCaloriesNeeded)
	assert.Equal(t, 2300, r.CaloriesToBurn)
	assert.Equal(t, 1100, r.Deficit)
	assert.Contains(t, r.Explanation, "burn an extra 716 kcal")
}

// TestCompute_ExerciseHitsIdealDeficit sweeps aggressive rates and checks diet
// plus exercise always land exactly on the ideal deficit once the floor binds.
func TestCompute_ExerciseHitsIdealDeficit(t *testing.T) {
	for _, weekly := range []float64{-0.7, -1.0, -1.4, -2.1} {
		t.Run(strconv.FormatFloat(weekly, 'f', -1, 64), func(t *testing.T) {
			r, p := ComputePlan(GoalRequest{
				CurrentWeightKg:          55,
				TargetWeightKg:           50,
				WeeklyWeightChangeGoalKg: &weekly,
				GoalType:                 GoalWeightLoss,
			}, completeProfile(160, 40, GenderFemale, ActivitySedentary))

			require.Greater(t, r.ExerciseCaloriesNeeded, 0)
			assert.Equal(t, int(math.Round(p.IdealDeficit)), r.Deficit)
			assert.Equal(t, r.TDEE+r.ExerciseCaloriesNeeded, r.CaloriesToBurn)
		})
	}
}

/* ─── Gain and maintain ──────────────────────────────────────────────── */

func TestCompute_WeightGainIsSurplus(t *testing.T) {
	r := Compute(GoalRequest{
		CurrentWeightKg:          75,
		TargetWeightKg:           80,
		WeeklyWeightChangeGoalKg: ptr(0.5),
		GoalType:                 GoalWeightGain,
	}, completeProfile(175, 30, GenderMale, ActivityModerate))

	assert.Less(t, r.Deficit, 0)
	assert.Greater(t, r.DailyCalorieGoal, r.TDEE)
	assert.Equal(t, 3183, r.DailyCalorieGoal)
	assert.Equal(t, -550, r.Deficit)
	assert.Equal(t, 0, r.ExerciseCaloriesNeeded)
	assert.Contains(t, r.Explanation, "surplus of 550 kcal")
}

// TestCompute_WeightGainNeverAddsExercise checks that a clamped gain goal
// still asks for no exercise.
func TestCompute_WeightGainNeverAddsExercise(t *testing.T) {
	level := ActivityVeryActive
	r := Compute(GoalRequest{
		CurrentWeightKg:          150,
		TargetWeightKg:           160,
		WeeklyWeightChangeGoalKg: ptr(1.0),
		GoalType:                 GoalWeightGain,
	}, Biometrics{ActivityLevel: &level})

	assert.Equal(t, MaxDailyCalories, r.DailyCalorieGoal)
	assert.Equal(t, 0, r.ExerciseCaloriesNeeded)
	assert.Equal(t, r.TDEE, r.CaloriesToBurn)

	// TDEE 6270 is above the cap, so the intake is still a deficit.
	assert.Equal(t, 6270, r.TDEE)
	assert.Equal(t, 2270, r.Deficit)
	assert.Contains(t, r.Explanation, "still 2270 kcal below what you burn")
	assert.NotContains(t, r.Explanation, "surplus of")
}

func TestExerciseShortfall(t *testing.T) {
	tests := []struct {
		name   string
		goal   GoalType
		ideal  float64
		tdee   int
		intake int
		want   int
	}{
		{"diet covers deficit", GoalWeightLoss, 550, 2633, 2083, 0},
		{"clamped intake", GoalWeightLoss, 1100, 1584, 1200, 716},
		{"stored goal after tdee drop", GoalWeightLoss, 1100, 2039, 1533, 594},
		{"intake above tdee", GoalWeightLoss, 550, 1800, 2000, 750},
		{"gain never exercises", GoalWeightGain, -550, 6270, 4000, 0},
		{"maintain never exercises", GoalMaintain, 0, 2000, 1200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExerciseShortfall(tt.goal, tt.ideal, tt.tdee, tt.intake))
		})
	}
}

func TestResolvedWeeklyChange_MaintainIsZero(t *testing.T) {
	req := GoalRequest{GoalType: GoalMaintain, WeeklyWeightChangeGoalKg: ptr(0.75)}
	assert.Zero(t, req.ResolvedWeeklyChange())

	req.GoalType = GoalWeightGain
	assert.Equal(t, 0.75, req.ResolvedWeeklyChange())
}

func TestCompute_MaintainIsNeutral(t *testing.T) {
	for _, weekly := range []float64{-1, 0, 0.75} {
		r, p := ComputePlan(GoalRequest{
			CurrentWeightKg:          75,
			TargetWeightKg:           75,
			WeeklyWeightChangeGoalKg: &weekly,
			GoalType:                 GoalMaintain,
		}, completeProfile(175, 30, GenderMale, ActivityModerate))

		assert.Zero(t, p.DailyAdjustment)
		assert.Zero(t, r.ExerciseCaloriesNeeded)
		assert.Equal(t, r.TDEE, r.DailyCalorieGoal)
		assert.Equal(t, 0, r.Deficit)
		assert.Contains(t, r.Explanation, "calorie equilibrium")
	}
}

/* ─── Properties ─────────────────────────────────────────────────────── */

// TestCompute_BoundsAndDeterminism sweeps a grid of inputs, including
// degenerate ones, and checks the output invariants hold for every point.
func TestCompute_BoundsAndDeterminism(t *testing.T) {
	weights := []float64{math.NaN(), math.Inf(1), -10, 0, 1, 40, 75, 150, 300}
	weeklies := []*float64{nil, ptr(-2.0), ptr(-1.0), ptr(-0.5), ptr(0.0), ptr(0.5), ptr(1.0), ptr(2.0), ptr(math.Inf(-1))}
	profiles := []Biometrics{
		{},
		completeProfile(150, 70, GenderFemale, ActivitySedentary),
		completeProfile(175, 30, GenderMale, ActivityModerate),
		completeProfile(200, 20, GenderOther, ActivityVeryActive),
		{ActivityLevel: ptr(ActivityLevel("unknown"))},
	}

	for _, w := range weights {
		for _, weekly := range weeklies {
			for _, goal := range GoalTypes {
				for _, bio := range profiles {
					req := GoalRequest{CurrentWeightKg: w, TargetWeightKg: 70, WeeklyWeightChangeGoalKg: weekly, GoalType: goal}
					r := Compute(req, bio)

					require.GreaterOrEqual(t, r.DailyCalorieGoal, MinDailyCalories, "%+v", req)
					require.LessOrEqual(t, r.DailyCalorieGoal, MaxDailyCalories, "%+v", req)
					require.GreaterOrEqual(t, r.BMR, 0)
					require.GreaterOrEqual(t, r.TDEE, 0)
					require.GreaterOrEqual(t, r.DailyActivity, 0)
					require.GreaterOrEqual(t, r.CaloriesToBurn, 0)
					require.GreaterOrEqual(t, r.ExerciseCaloriesNeeded, 0)
					if goal == GoalMaintain {
						require.Zero(t, r.ExerciseCaloriesNeeded)
					}
					require.Equal(t, r, Compute(req, bio))
				}
			}
		}
	}
}

// TestCompute_ExplanationMatchesNumbers checks the displayed numbers never
// drift from the computed ones.
func TestCompute_ExplanationMatchesNumbers(t *testing.T) {
	for _, goal := range GoalTypes {
		for _, bio := range []Biometrics{{}, completeProfile(168, 45, GenderFemale, ActivityLight)} {
			r := Compute(GoalRequest{CurrentWeightKg: 68.4, TargetWeightKg: 65, GoalType: goal}, bio)

			require.NotEmpty(t, r.Explanation)
			assert.Contains(t, r.Explanation, strconv.Itoa(r.DailyCalorieGoal))
			assert.Contains(t, r.Explanation, strconv.Itoa(r.BMR))
			assert.Contains(t, r.Explanation, strconv.Itoa(r.DailyActivity))
		}
	}
}
