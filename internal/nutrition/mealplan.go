package nutrition

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"
)

// Restrictions are the dietary flags that narrow meal options.
type Restrictions struct {
	Vegan      bool `json:"vegan"`
	Vegetarian bool `json:"vegetarian"`
	GlutenFree bool `json:"gluten_free"`
	DairyFree  bool `json:"dairy_free"`
}

// ParseRestrictions reads restriction codes such as "vegan" or "gluten-free".
// Unrecognised codes are returned separately and otherwise ignored.
func ParseRestrictions(codes []string) (Restrictions, []string) {
	var (
		r       Restrictions
		unknown []string
	)
	for _, code := range codes {
		switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), "_", "-") {
		case "vegan":
			r.Vegan = true
		case "vegetarian":
			r.Vegetarian = true
		case "gluten-free":
			r.GlutenFree = true
		case "dairy-free":
			r.DairyFree = true
		default:
			unknown = append(unknown, code)
		}
	}
	return r, unknown
}

// Meal is one selected option with its calorie allocation.
type Meal struct {
	Description string `json:"description"`
	Calories    int    `json:"calories"`
}

// DayPlan holds the four meals of one day.
type DayPlan struct {
	Day       string `json:"day"`
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
	Snacks    Meal   `json:"snacks"`
}

// Meal returns the meal in slot.
func (d DayPlan) Meal(slot Slot) Meal {
	switch slot {
	case SlotBreakfast:
		return d.Breakfast
	case SlotLunch:
		return d.Lunch
	case SlotDinner:
		return d.Dinner
	default:
		return d.Snacks
	}
}

func (d *DayPlan) set(slot Slot, m Meal) {
	switch slot {
	case SlotBreakfast:
		d.Breakfast = m
	case SlotLunch:
		d.Lunch = m
	case SlotDinner:
		d.Dinner = m
	case SlotSnacks:
		d.Snacks = m
	}
}

// WeekPlan is seven DayPlans, Monday first.
type WeekPlan []DayPlan

// MealPlanComposer picks one option per slot per day.
type MealPlanComposer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMealPlanComposer creates a composer drawing from src. A nil src uses the
// process-wide generator; pass a seeded source for reproducible plans.
func NewMealPlanComposer(src rand.Source) *MealPlanComposer {
	if src == nil {
		return &MealPlanComposer{}
	}
	return &MealPlanComposer{rng: rand.New(src)}
}

func (c *MealPlanComposer) pick(n int) int {
	if c.rng == nil {
		return rand.IntN(n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(n)
}

// Compose builds a week of meals for dailyCalories under r.
func (c *MealPlanComposer) Compose(dailyCalories int, r Restrictions) WeekPlan {
	split := distributionFor(dailyCalories)

	options := make(map[Slot][]string, len(Slots))
	for _, slot := range Slots {
		options[slot] = Options(slot, r)
	}

	plan := make(WeekPlan, 0, len(Days))
	for _, day := range Days {
		dp := DayPlan{Day: day}
		for _, slot := range Slots {
			opts := options[slot]
			dp.set(slot, Meal{
				Description: opts[c.pick(len(opts))],
				Calories:    int(math.Round(float64(dailyCalories) * split[slot])),
			})
		}
		plan = append(plan, dp)
	}
	return plan
}
