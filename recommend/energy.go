package recommend

// activityMultipliers maps activity levels to their TDEE multiplier. This is
// the single source of truth for valid activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// activityOffsets is activityMultipliers minus 1.0, used when TDEE - BMR
// degenerates.
var activityOffsets = map[ActivityLevel]float64{
	ActivitySedentary:  0.2,
	ActivityLight:      0.375,
	ActivityModerate:   0.55,
	ActivityActive:     0.725,
	ActivityVeryActive: 0.9,
}

// Multiplier returns the TDEE multiplier for level; unknown levels use moderate.
func Multiplier(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[ActivityModerate]
}

func offset(level ActivityLevel) float64 {
	if o, ok := activityOffsets[level]; ok {
		return o
	}
	return activityOffsets[ActivityModerate]
}

// Expenditure derives TDEE and the daily activity calories from an unrounded BMR.
//
// dailyActivity is round(tdee - bmr) against the rounded TDEE. When that is not
// positive it is recomputed as round(bmr * offset), and it never goes below 0.
func Expenditure(bmr float64, level ActivityLevel) (tdee, dailyActivity int) {
	bmr = nonNegative(bmr)
	tdee = roundInt(bmr * Multiplier(level))

	dailyActivity = roundInt(float64(tdee) - bmr)
	if dailyActivity <= 0 {
		dailyActivity = roundInt(bmr * offset(level))
	}
	if dailyActivity < 0 {
		dailyActivity = 0
	}
	return tdee, dailyActivity
}
