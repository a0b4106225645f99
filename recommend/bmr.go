package recommend

import "math"

// kcalPerKgFallback is the flat BMR estimate used without height, age and gender.
const kcalPerKgFallback = 22

// EstimateBMR returns the unrounded basal metabolic rate in kcal/day.
//
// With a complete profile this is Mifflin-St Jeor; any gender other than male
// takes the -161 offset. Otherwise it falls back to 22 kcal per kg of body
// weight. Non-finite or negative results come back as 0.
func EstimateBMR(weightKg float64, b Biometrics) float64 {
	var bmr float64
	if b.HasCompleteProfile() {
		bmr = 10*weightKg + 6.25**b.HeightCM - 5*float64(*b.AgeYears)
		if *b.Gender == GenderMale {
			bmr += 5
		} else {
			bmr -= 161
		}
	} else {
		bmr = kcalPerKgFallback * weightKg
	}
	return nonNegative(bmr)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// nonNegative coerces NaN, Inf and negative values to 0.
func nonNegative(f float64) float64 {
	if !finite(f) || f < 0 {
		return 0
	}
	return f
}

func roundInt(f float64) int {
	if !finite(f) {
		return 0
	}
	return int(math.Round(f))
}
