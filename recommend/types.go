// Package recommend derives a daily calorie target and the diet/exercise split
// needed to hit a weekly weight-change rate from a user's biometrics.
//
// Everything here is a pure function of its inputs: no I/O, no shared state.
package recommend

import (
	"errors"
	"fmt"
	"strings"
)

// GoalType is the direction of a weight goal.
type GoalType string

const (
	GoalWeightLoss GoalType = "weight_loss"
	GoalWeightGain GoalType = "weight_gain"
	GoalMaintain   GoalType = "maintain"
)

// Gender as stored on the profile. Only GenderMale changes the BMR offset.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var (
	ErrUnknownGoalType      = errors.New("unknown goal type")
	ErrUnknownGender        = errors.New("unknown gender")
	ErrUnknownActivityLevel = errors.New("unknown activity level")
)

// GoalTypes lists valid goal types in display order.
var GoalTypes = []GoalType{GoalWeightLoss, GoalWeightGain, GoalMaintain}

// ActivityLevels lists valid activity levels in display order.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive,
}

// ParseGoalType validates a raw goal type string.
func ParseGoalType(s string) (GoalType, error) {
	switch g := GoalType(s); g {
	case GoalWeightLoss, GoalWeightGain, GoalMaintain:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGoalType, s)
}

// ParseGender validates a raw gender string. Empty input is not valid here;
// callers treat a missing gender as nil.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(s)); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGender, s)
}

// ParseActivityLevel validates a raw activity level against the multiplier table.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	a := ActivityLevel(s)
	if _, ok := activityMultipliers[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownActivityLevel, s)
	}
	return a, nil
}

// Biometrics is the optional profile data. Any subset may be nil.
type Biometrics struct {
	HeightCM      *float64
	AgeYears      *int
	Gender        *Gender
	ActivityLevel *ActivityLevel // nil means moderate
}

// HasCompleteProfile reports whether Mifflin-St Jeor can be used.
func (b Biometrics) HasCompleteProfile() bool {
	return b.HeightCM != nil && *b.HeightCM > 0 &&
		b.AgeYears != nil && *b.AgeYears > 0 &&
		b.Gender != nil
}

// Activity resolves the activity level, defaulting to moderate.
func (b Biometrics) Activity() ActivityLevel {
	if b.ActivityLevel == nil {
		return ActivityModerate
	}
	return *b.ActivityLevel
}

// GenderText is the gender as shown in explanations.
func (b Biometrics) GenderText() string {
	if b.Gender == nil {
		return "unspecified"
	}
	return string(*b.Gender)
}

// GoalRequest holds the goal parameters. WeeklyWeightChangeGoalKg is signed:
// negative for loss, positive for gain.
type GoalRequest struct {
	CurrentWeightKg          float64
	TargetWeightKg           float64
	WeeklyWeightChangeGoalKg *float64
	GoalType                 GoalType
}

// DefaultWeeklyChange is the rate used when the request omits one.
func DefaultWeeklyChange(g GoalType) float64 {
	switch g {
	case GoalWeightLoss:
		return -0.5
	case GoalWeightGain:
		return 0.5
	default:
		return 0
	}
}

// ResolvedWeeklyChange returns the requested weekly rate, or the goal-type
// default when it is absent or not a finite number. Maintain is always 0.
func (r GoalRequest) ResolvedWeeklyChange() float64 {
	if r.GoalType == GoalMaintain || r.WeeklyWeightChangeGoalKg == nil || !finite(*r.WeeklyWeightChangeGoalKg) {
		return DefaultWeeklyChange(r.GoalType)
	}
	return *r.WeeklyWeightChangeGoalKg
}

// Result is the recommendation returned to clients. Field names are part of
// the JSON API contract.
type Result struct {
	DailyCalorieGoal       int    `json:"dailyCalorieGoal"`
	BMR                    int    `json:"bmr"`
	TDEE                   int    `json:"tdee"`
	DailyActivity          int    `json:"dailyActivity"`
	CaloriesToBurn         int    `json:"caloriesToBurn"`
	Deficit                int    `json:"deficit"`
	ExerciseCaloriesNeeded int    `json:"exerciseCaloriesNeeded"`
	Explanation            string `json:"explanation"`
}
