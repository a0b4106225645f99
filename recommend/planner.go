package recommend

import "math"

const (
	// KcalPerKg is the energy content of 1 kg of body-mass change.
	KcalPerKg = 7700

	MinDailyCalories = 1200
	MaxDailyCalories = 4000
)

// Plan is the planner output, including the intermediates the result hides.
type Plan struct {
	DailyAdjustment        float64 // kcal/day added to TDEE; negative shrinks intake
	IdealDeficit           float64 // positive = deficit, negative = surplus
	DailyCalorieGoal       int
	ActualDeficit          int // tdee - dailyCalorieGoal
	ExerciseCaloriesNeeded int
	CaloriesToBurn         int
	Deficit                int
}

// PlanDeficit turns a weekly weight-change rate into an intake target.
//
// The intake target is clamped to [MinDailyCalories, MaxDailyCalories]. For
// weight loss, whatever part of the ideal deficit the clamp prevents the diet
// from reaching becomes ExerciseCaloriesNeeded. Gain and maintain goals never
// ask for extra exercise.
func PlanDeficit(goal GoalType, weeklyChangeKg float64, tdee int) Plan {
	if !finite(weeklyChangeKg) {
		weeklyChangeKg = DefaultWeeklyChange(goal)
	}
	if tdee < 0 {
		tdee = 0
	}

	var p Plan
	p.DailyAdjustment = weeklyChangeKg * KcalPerKg / 7

	switch goal {
	case GoalWeightLoss:
		p.IdealDeficit = math.Abs(p.DailyAdjustment)
	case GoalWeightGain:
		p.IdealDeficit = -math.Abs(p.DailyAdjustment)
	default:
		p.DailyAdjustment = 0
		p.IdealDeficit = 0
	}

	p.DailyCalorieGoal = roundInt(clampCalories(float64(tdee) + p.DailyAdjustment))
	p.ActualDeficit = tdee - p.DailyCalorieGoal

	p.ExerciseCaloriesNeeded = ExerciseShortfall(goal, p.IdealDeficit, tdee, p.DailyCalorieGoal)

	if p.ExerciseCaloriesNeeded > 0 {
		p.CaloriesToBurn = tdee + p.ExerciseCaloriesNeeded
		p.Deficit = p.CaloriesToBurn - p.DailyCalorieGoal
	} else {
		p.ExerciseCaloriesNeeded = 0
		p.CaloriesToBurn = tdee
		p.Deficit = p.ActualDeficit
	}
	return p
}

// ExerciseShortfall is the exercise needed on top of eating intakeKcal to reach
// idealDeficit. Only weight loss asks for exercise; the result is never negative.
func ExerciseShortfall(goal GoalType, idealDeficit float64, tdee, intakeKcal int) int {
	actual := float64(tdee - intakeKcal)
	if goal != GoalWeightLoss || !finite(idealDeficit) || idealDeficit <= 0 || actual >= idealDeficit {
		return 0
	}
	return roundInt(idealDeficit - actual)
}

func clampCalories(kcal float64) float64 {
	return math.Min(math.Max(kcal, MinDailyCalories), MaxDailyCalories)
}
