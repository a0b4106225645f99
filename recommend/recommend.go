package recommend

// Compute runs the whole pipeline: BMR, expenditure, deficit plan, explanation.
// It never fails; degenerate numeric inputs produce zeros, and the intake goal
// always lands in [MinDailyCalories, MaxDailyCalories].
func Compute(req GoalRequest, b Biometrics) Result {
	r, _ := ComputePlan(req, b)
	return r
}

// ComputePlan is Compute that also returns the planner intermediates.
func ComputePlan(req GoalRequest, b Biometrics) (Result, Plan) {
	weekly := req.ResolvedWeeklyChange()

	bmr := EstimateBMR(req.CurrentWeightKg, b)
	tdee, dailyActivity := Expenditure(bmr, b.Activity())
	plan := PlanDeficit(req.GoalType, weekly, tdee)

	r := Result{
		DailyCalorieGoal:       plan.DailyCalorieGoal,
		BMR:                    roundInt(bmr),
		TDEE:                   tdee,
		DailyActivity:          dailyActivity,
		CaloriesToBurn:         max(plan.CaloriesToBurn, 0),
		Deficit:                plan.Deficit,
		ExerciseCaloriesNeeded: plan.ExerciseCaloriesNeeded,
	}
	r.Explanation = Explain(req.GoalType, weekly, r, plan, b)
	return r, plan
}
