// Package bodymetrics computes derived body metrics (BMI, BMR, TDEE, body fat,
// calorie targets, macronutrient splits and hydration) from a user profile.
//
// Every function in this package is pure. Invalid numeric input is rejected
// with ErrInvalidInput; lookups keyed by an unknown activity level fall back to
// the sedentary row.
package bodymetrics

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned for out-of-range numbers or unknown enum values.
var ErrInvalidInput = errors.New("invalid input")

// Gender is the biological sex used by the metabolic formulas.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Goal is the user's training goal.
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMaintenance Goal = "maintenance"
	GoalWeightGain  Goal = "weight_gain"
	GoalCutting     Goal = "cutting"
)

// ActivityLevel is the four-level activity scale used across the service.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goals lists every goal in display order.
var Goals = []Goal{GoalWeightLoss, GoalMaintenance, GoalWeightGain, GoalCutting}

// ActivityLevels lists every activity level from least to most active.
var ActivityLevels = []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityVeryActive}

// Genders lists both supported genders.
var Genders = []Gender{GenderMale, GenderFemale}

// Older clients sent abbreviated or camel-cased codes. They are folded into
// the canonical values here and nowhere else.
var (
	genderAliases = map[string]Gender{
		"male": GenderMale, "m": GenderMale,
		"female": GenderFemale, "f": GenderFemale,
	}

	goalAliases = map[string]Goal{
		"weight_loss": GoalWeightLoss, "loseweight": GoalWeightLoss, "1": GoalWeightLoss,
		"maintenance": GoalMaintenance, "maintain": GoalMaintenance, "2": GoalMaintenance,
		"weight_gain": GoalWeightGain, "gainweight": GoalWeightGain, "3": GoalWeightGain,
		"cutting": GoalCutting, "cuttin": GoalCutting, "4": GoalCutting,
	}

	activityAliases = map[string]ActivityLevel{
		"sedentary": ActivitySedentary, "1": ActivitySedentary,
		"light": ActivityLight, "light_activity": ActivityLight, "2": ActivityLight,
		"moderate": ActivityModerate, "moderate_activity": ActivityModerate, "3": ActivityModerate,
		"very_active": ActivityVeryActive, "active": ActivityVeryActive, "4": ActivityVeryActive,
	}
)

func normalizeCode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseGender converts a client-supplied gender code into a Gender.
func ParseGender(s string) (Gender, error) {
	if g, ok := genderAliases[normalizeCode(s)]; ok {
		return g, nil
	}
	return "", fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, s)
}

// ParseGoal converts a client-supplied goal code into a Goal.
func ParseGoal(s string) (Goal, error) {
	if g, ok := goalAliases[normalizeCode(s)]; ok {
		return g, nil
	}
	return "", fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, s)
}

// ParseActivityLevel converts a client-supplied activity code into an ActivityLevel.
// An empty string maps to sedentary.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	code := normalizeCode(s)
	if code == "" {
		return ActivitySedentary, nil
	}
	if a, ok := activityAliases[code]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, s)
}

// Valid reports whether g is a canonical gender.
func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// Valid reports whether g is a canonical goal.
func (g Goal) Valid() bool {
	_, ok := calorieAdjustments[g]
	return ok
}

// Valid reports whether a is a canonical activity level.
func (a ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[a]
	return ok
}

// BMICategory is the WHO weight class for a BMI value.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObesity1    BMICategory = "obesity_1"
	BMIObesity2    BMICategory = "obesity_2"
	BMIObesity3    BMICategory = "obesity_3"
)

var bmiCategoryLabels = map[BMICategory]string{
	BMIUnderweight: "underweight",
	BMINormal:      "normal weight",
	BMIOverweight:  "overweight",
	BMIObesity1:    "obesity class 1",
	BMIObesity2:    "obesity class 2",
	BMIObesity3:    "obesity class 3",
}

// Label returns the human readable name of the category.
func (c BMICategory) Label() string {
	if l, ok := bmiCategoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// CategoryForBMI buckets a BMI value.
func CategoryForBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	case bmi < 35:
		return BMIObesity1
	case bmi < 40:
		return BMIObesity2
	default:
		return BMIObesity3
	}
}

// AgeBracket groups ages for age-specific guidance.
type AgeBracket string

const (
	AgeUnder18 AgeBracket = "under_18"
	Age18To30  AgeBracket = "18_30"
	Age31To45  AgeBracket = "31_45"
	Age46To60  AgeBracket = "46_60"
	AgeOver60  AgeBracket = "over_60"
)

// AgeBrackets lists every bracket from youngest to oldest.
var AgeBrackets = []AgeBracket{AgeUnder18, Age18To30, Age31To45, Age46To60, AgeOver60}

var ageBracketLabels = map[AgeBracket]string{
	AgeUnder18: "under 18",
	Age18To30:  "18-30",
	Age31To45:  "31-45",
	Age46To60:  "46-60",
	AgeOver60:  "over 60",
}

// Label returns the human readable range of the bracket.
func (b AgeBracket) Label() string {
	if l, ok := ageBracketLabels[b]; ok {
		return l
	}
	return string(b)
}

// BracketForAge buckets an age in whole years.
func BracketForAge(age int) AgeBracket {
	switch {
	case age < 18:
		return AgeUnder18
	case age <= 30:
		return Age18To30
	case age <= 45:
		return Age31To45
	case age <= 60:
		return Age46To60
	default:
		return AgeOver60
	}
}
