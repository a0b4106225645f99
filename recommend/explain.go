package recommend

import (
	"fmt"
	"math"
	"strings"
)

const (
	intakeLine   = "Your daily calorie goal is %d kcal."
	energyLine   = "Your body burns %d kcal at rest (BMR) and about %d kcal more through daily activity, for a total of %d kcal per day."
	lossExercise = "Eating %d kcal alone cannot safely reach your target of losing %.2f kg per week, so burn an extra %d kcal through exercise. Diet and exercise together give a daily deficit of %d kcal."
	lossDiet     = "Eating %d kcal gives a daily deficit of %d kcal, enough on its own to lose %.2f kg per week without extra exercise."
	gainLine     = "Eating %d kcal gives a daily surplus of %d kcal to gain %.2f kg per week."
	gainCapped   = "Eating %d kcal, the highest recommended intake, is still %d kcal below what you burn, so no surplus is possible to gain %.2f kg per week at this activity level."
	maintainLine = "Eating %d kcal keeps you in calorie equilibrium, so your weight should stay stable."

	personalizedNote = "These numbers are personalized using your gender (%s), age (%d) and height (%.0f cm)."
	incompleteNote   = "Complete your profile with height, age and gender for a more accurate recommendation."
)

// Explain renders the plan as a short multi-line summary. It formats already
// derived numbers and never recomputes them.
func Explain(goal GoalType, weeklyChangeKg float64, r Result, p Plan, b Biometrics) string {
	rate := math.Abs(weeklyChangeKg)
	lines := []string{
		fmt.Sprintf(intakeLine, r.DailyCalorieGoal),
		fmt.Sprintf(energyLine, r.BMR, r.DailyActivity, r.TDEE),
	}

	switch {
	case goal == GoalWeightLoss && r.ExerciseCaloriesNeeded > 0:
		lines = append(lines, fmt.Sprintf(lossExercise,
			r.DailyCalorieGoal, rate, r.ExerciseCaloriesNeeded, r.Deficit))
	case goal == GoalWeightLoss:
		lines = append(lines, fmt.Sprintf(lossDiet, r.DailyCalorieGoal, p.ActualDeficit, rate))
	case goal == GoalWeightGain && p.ActualDeficit > 0:
		lines = append(lines, fmt.Sprintf(gainCapped, r.DailyCalorieGoal, p.ActualDeficit, rate))
	case goal == GoalWeightGain:
		lines = append(lines, fmt.Sprintf(gainLine, r.DailyCalorieGoal, absInt(p.ActualDeficit), rate))
	default:
		lines = append(lines, fmt.Sprintf(maintainLine, r.DailyCalorieGoal))
	}

	if b.HasCompleteProfile() {
		lines = append(lines, fmt.Sprintf(personalizedNote, b.GenderText(), *b.AgeYears, *b.HeightCM))
	} else {
		lines = append(lines, incompleteNote)
	}
	return strings.Join(lines, "\n")
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
