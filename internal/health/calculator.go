package health

import (
	"fmt"
	"math"
)

// ActivityLevel classifies how physically active the user is.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// activityFactors maps each level to its ml-per-kg hydration multiplier.
// One entry per level; ParseActivityLevel guarantees nothing else gets in.
var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  30,
	ActivityLight:      35,
	ActivityModerate:   40,
	ActivityActive:     45,
	ActivityVeryActive: 50,
}

// ActivityLevels lists all valid levels in ascending order of activity.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{
		ActivitySedentary,
		ActivityLight,
		ActivityModerate,
		ActivityActive,
		ActivityVeryActive,
	}
}

// ParseActivityLevel validates a raw string against the known levels.
func ParseActivityLevel(raw string) (ActivityLevel, error) {
	level := ActivityLevel(raw)
	if _, ok := activityFactors[level]; !ok {
		return "", fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, raw)
	}
	return level, nil
}

// ComputeTarget returns the daily fluid target in ml for a body weight and
// activity level. Pure and deterministic.
func ComputeTarget(weightKg float64, level ActivityLevel) (int, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return 0, fmt.Errorf("%w: weight must be a positive finite number, got %v", ErrInvalidInput, weightKg)
	}
	factor, ok := activityFactors[level]
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, level)
	}
	return int(math.Round(weightKg * factor)), nil
}

// BMICategory buckets a body mass index value.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// BMI computes the body mass index and its category.
func BMI(weightKg, heightCm float64) (float64, BMICategory, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return 0, "", fmt.Errorf("%w: weight must be a positive finite number, got %v", ErrInvalidInput, weightKg)
	}
	if heightCm <= 0 || math.IsNaN(heightCm) || math.IsInf(heightCm, 0) {
		return 0, "", fmt.Errorf("%w: height must be a positive finite number, got %v", ErrInvalidInput, heightCm)
	}

	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	bmi = math.Round(bmi*100) / 100

	var category BMICategory
	switch {
	case bmi < 18.5:
		category = BMIUnderweight
	case bmi < 25:
		category = BMINormal
	case bmi < 30:
		category = BMIOverweight
	default:
		category = BMIObese
	}
	return bmi, category, nil
}
