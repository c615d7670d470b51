// Package nutrition builds daily calorie targets, macronutrient splits and
// seven-day meal plans.
package nutrition

import (
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
)

// Input is everything a nutrition plan is generated from.
type Input struct {
	Gender              bm.Gender        `json:"gender"`
	Age                 int              `json:"age"`
	HeightCm            float64          `json:"height_cm"`
	WeightKg            float64          `json:"weight_kg"`
	Goal                bm.Goal          `json:"goal"`
	Activity            bm.ActivityLevel `json:"activity_level"`
	DietaryRestrictions []string         `json:"dietary_restrictions,omitempty"`

	// Allergies and PreferredCuisine are recorded with the plan but do not
	// narrow the meal options.
	Allergies        []string `json:"allergies,omitempty"`
	PreferredCuisine string   `json:"preferred_cuisine,omitempty"`
}

// Plan is a generated nutrition plan.
type Plan struct {
	DailyCalories   int          `json:"daily_calories"`
	Macronutrients  bm.Macros    `json:"macronutrients"`
	MealPlan        WeekPlan     `json:"meal_plan"`
	Hydration       string       `json:"hydration"`
	HydrationLiters float64      `json:"hydration_liters"`
	Restrictions    Restrictions `json:"restrictions"`
}

// Generator turns an Input into a Plan.
type Generator struct {
	policy   bm.CaloriePolicy
	composer *MealPlanComposer
}

// NewGenerator creates a generator. A nil composer draws meals from the
// process-wide random source.
func NewGenerator(policy bm.CaloriePolicy, composer *MealPlanComposer) *Generator {
	if composer == nil {
		composer = NewMealPlanComposer(nil)
	}
	return &Generator{policy: policy, composer: composer}
}

// Generate computes the calorie target, macros, meal plan and hydration
// advice for in.
func (g *Generator) Generate(in Input) (Plan, error) {
	derived, err := bm.Derive(bm.Profile{
		Gender:   in.Gender,
		Age:      in.Age,
		HeightCm: in.HeightCm,
		WeightKg: in.WeightKg,
		Goal:     in.Goal,
		Activity: in.Activity,
	}, g.policy)
	if err != nil {
		return Plan{}, err
	}

	macros, err := bm.MacroSplit(derived.DailyCalories, in.Goal)
	if err != nil {
		return Plan{}, err
	}
	liters, err := bm.HydrationLiters(in.WeightKg, in.Activity)
	if err != nil {
		return Plan{}, err
	}
	advice, err := bm.HydrationAdvice(in.WeightKg, in.Activity)
	if err != nil {
		return Plan{}, err
	}

	restrictions, _ := ParseRestrictions(in.DietaryRestrictions)

	return Plan{
		DailyCalories:   derived.DailyCalories,
		Macronutrients:  macros,
		MealPlan:        g.composer.Compose(derived.DailyCalories, restrictions),
		Hydration:       advice,
		HydrationLiters: liters,
		Restrictions:    restrictions,
	}, nil
}
