package bodymetrics

import (
	"fmt"
	"math"
	"time"
)

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	hydrationMlPerKg = 33
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityVeryActive: 1.725,
}

var calorieAdjustments = map[Goal]float64{
	GoalWeightLoss:  -500,
	GoalMaintenance: 0,
	GoalWeightGain:  500,
	GoalCutting:     -350,
}

var hydrationAddOnMl = map[ActivityLevel]float64{
	ActivitySedentary:  0,
	ActivityLight:      300,
	ActivityModerate:   600,
	ActivityVeryActive: 1000,
}

type macroRatio struct {
	protein, carbs, fats float64
}

var macroRatios = map[Goal]macroRatio{
	GoalWeightLoss:  {0.40, 0.30, 0.30},
	GoalMaintenance: {0.30, 0.40, 0.30},
	GoalWeightGain:  {0.30, 0.45, 0.25},
	GoalCutting:     {0.45, 0.25, 0.30},
}

var defaultMacroRatio = macroRatio{0.30, 0.40, 0.30}

// CaloriePolicy holds the sex-specific minimum daily calorie targets.
// The floors are a policy choice and are configurable per deployment.
type CaloriePolicy struct {
	MinMale   int `json:"min_male"`
	MinFemale int `json:"min_female"`
}

// DefaultCaloriePolicy returns the 1500/1200 kcal floors.
func DefaultCaloriePolicy() CaloriePolicy {
	return CaloriePolicy{MinMale: 1500, MinFemale: 1200}
}

// MinCalories returns the floor for the given gender.
func (p CaloriePolicy) MinCalories(g Gender) int {
	if g == GenderFemale {
		return p.MinFemale
	}
	return p.MinMale
}

// Macros is a daily macronutrient allocation.
type Macros struct {
	ProteinG   int `json:"protein_g"`
	CarbsG     int `json:"carbs_g"`
	FatsG      int `json:"fats_g"`
	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatsPct    int `json:"fats_pct"`
}

// Kcal returns the energy content of the allocation.
func (m Macros) Kcal() int {
	return m.ProteinG*kcalPerGramProtein + m.CarbsG*kcalPerGramCarbs + m.FatsG*kcalPerGramFat
}

// BMI returns weight / height², with height given in centimetres.
func BMI(weightKg, heightCm float64) (float64, error) {
	if heightCm <= 0 {
		return 0, fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}
	if weightKg <= 0 {
		return 0, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	m := heightCm / 100
	return weightKg / (m * m), nil
}

// BMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(weightKg, heightCm float64, age int, gender Gender) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, fmt.Errorf("%w: height and weight must be positive", ErrInvalidInput)
	}
	if age <= 0 {
		return 0, fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	}

	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case GenderMale:
		return base + 5, nil
	case GenderFemale:
		return base - 161, nil
	default:
		return 0, fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, gender)
	}
}

// TDEE scales a BMR by the activity multiplier. Unknown levels use the
// sedentary multiplier.
func TDEE(bmr float64, activity ActivityLevel) (float64, error) {
	if bmr <= 0 {
		return 0, fmt.Errorf("%w: bmr must be positive", ErrInvalidInput)
	}
	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = activityMultipliers[ActivitySedentary]
	}
	return bmr * mult, nil
}

// DailyCalorieTarget applies the goal adjustment to a TDEE, rounds up and
// clamps to the policy floor for the given gender.
func DailyCalorieTarget(tdee float64, goal Goal, gender Gender, policy CaloriePolicy) int {
	target := int(math.Ceil(tdee + calorieAdjustments[goal]))
	if floor := policy.MinCalories(gender); target < floor {
		return floor
	}
	return target
}

// MacroSplit allocates daily calories across protein, carbs and fats.
func MacroSplit(dailyCalories int, goal Goal) (Macros, error) {
	if dailyCalories <= 0 {
		return Macros{}, fmt.Errorf("%w: daily calories must be positive", ErrInvalidInput)
	}
	r, ok := macroRatios[goal]
	if !ok {
		r = defaultMacroRatio
	}
	kcal := float64(dailyCalories)
	return Macros{
		ProteinG:   int(math.Ceil(kcal * r.protein / kcalPerGramProtein)),
		CarbsG:     int(math.Ceil(kcal * r.carbs / kcalPerGramCarbs)),
		FatsG:      int(math.Ceil(kcal * r.fats / kcalPerGramFat)),
		ProteinPct: int(math.Round(r.protein * 100)),
		CarbsPct:   int(math.Round(r.carbs * 100)),
		FatsPct:    int(math.Round(r.fats * 100)),
	}, nil
}

// HydrationLiters returns the daily water target in litres, one decimal.
func HydrationLiters(weightKg float64, activity ActivityLevel) (float64, error) {
	if weightKg <= 0 {
		return 0, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	addOn, ok := hydrationAddOnMl[activity]
	if !ok {
		addOn = hydrationAddOnMl[ActivitySedentary]
	}
	ml := weightKg*hydrationMlPerKg + addOn
	return Round(ml/1000, 1), nil
}

// HydrationAdvice renders HydrationLiters as a sentence.
func HydrationAdvice(weightKg float64, activity ActivityLevel) (string, error) {
	liters, err := HydrationLiters(weightKg, activity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Drink approximately %.1f liters of water daily. Increase intake during exercise and hot weather.",
		liters), nil
}

// BodyFatPercentage estimates body fat from BMI and age. It returns nil when
// either input is unknown (zero or negative).
func BodyFatPercentage(bmi float64, age int, gender Gender) *float64 {
	if bmi <= 0 || age <= 0 {
		return nil
	}
	offset := 5.4
	if gender == GenderMale {
		offset = 16.2
	}
	v := Round(1.20*bmi+0.23*float64(age)-offset, 1)
	return &v
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// AgeOn returns the age in whole years at the given date.
func AgeOn(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// Profile is the subset of a user record the calculators consume.
type Profile struct {
	Gender   Gender
	Age      int
	HeightCm float64
	WeightKg float64
	Goal     Goal
	Activity ActivityLevel
}

// Derived bundles every metric derived from a Profile.
type Derived struct {
	BMI            float64     `json:"bmi"`
	BMICategory    BMICategory `json:"bmi_category"`
	BMR            float64     `json:"bmr"`
	TDEE           float64     `json:"tdee"`
	BodyFatPercent *float64    `json:"body_fat_percent,omitempty"`
	AgeBracket     AgeBracket  `json:"age_bracket"`
	DailyCalories  int         `json:"daily_calories"`
}

// Derive computes the full derived metric set for p.
func Derive(p Profile, policy CaloriePolicy) (Derived, error) {
	bmi, err := BMI(p.WeightKg, p.HeightCm)
	if err != nil {
		return Derived{}, err
	}
	bmr, err := BMR(p.WeightKg, p.HeightCm, p.Age, p.Gender)
	if err != nil {
		return Derived{}, err
	}
	if !p.Goal.Valid() {
		return Derived{}, fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, p.Goal)
	}

	tdee, err := TDEE(bmr, p.Activity)
	if err != nil {
		return Derived{}, err
	}
	return Derived{
		BMI:            Round(bmi, 1),
		BMICategory:    CategoryForBMI(bmi),
		BMR:            Round(bmr, 1),
		TDEE:           Round(tdee, 1),
		BodyFatPercent: BodyFatPercentage(bmi, p.Age, p.Gender),
		AgeBracket:     BracketForAge(p.Age),
		DailyCalories:  DailyCalorieTarget(tdee, p.Goal, p.Gender, policy),
	}, nil
}
