package nutrition

import "strings"

// Slot is one meal of the day.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
	SlotSnacks    Slot = "snacks"
)

// Slots lists the meal slots in serving order.
var Slots = []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnacks}

// Days lists the labels of a weekly plan.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// filterRule drops options containing any keyword (case-insensitive) and
// appends replacements.
type filterRule struct {
	keywords     []string
	replacements []string
}

func (f filterRule) apply(options []string) []string {
	out := make([]string, 0, len(options)+len(f.replacements))
	for _, opt := range options {
		lower := strings.ToLower(opt)
		drop := false
		for _, kw := range f.keywords {
			if strings.Contains(lower, kw) {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, opt)
		}
	}
	return append(out, f.replacements...)
}

type slotOptions struct {
	standard   []string
	vegan      []string
	vegetarian []string
	glutenFree filterRule
	dairyFree  filterRule
}

var mealOptions = map[Slot]slotOptions{
	SlotBreakfast: {
		standard: []string{
			"Oatmeal with berries and nuts",
			"Greek yogurt with granola and fruit",
			"Whole grain toast with avocado and eggs",
			"Protein smoothie with spinach and banana",
			"Quinoa breakfast bowl with vegetables",
		},
		vegan: []string{
			"Oatmeal with berries and nuts",
			"Vegan protein smoothie with spinach and banana",
			"Whole grain toast with avocado and tofu scramble",
			"Chia seed pudding with almond milk and fruit",
			"Quinoa breakfast bowl with vegetables",
		},
		vegetarian: []string{
			"Oatmeal with berries and nuts",
			"Greek yogurt with granola and fruit",
			"Whole grain toast with avocado and eggs",
			"Vegetarian protein smoothie with spinach and banana",
			"Quinoa breakfast bowl with vegetables",
		},
		glutenFree: filterRule{
			keywords:     []string{"toast", "granola"},
			replacements: []string{"Gluten-free oatmeal with berries and nuts", "Rice porridge with fruit and seeds"},
		},
		dairyFree: filterRule{
			keywords:     []string{"yogurt", "milk"},
			replacements: []string{"Coconut yogurt with fruit and seeds", "Almond milk smoothie with protein powder"},
		},
	},
	SlotLunch: {
		standard: []string{
			"Grilled chicken salad with mixed greens",
			"Turkey and avocado wrap with vegetables",
			"Quinoa bowl with roasted vegetables and feta",
			"Tuna salad with whole grain crackers",
			"Lentil soup with whole grain bread",
		},
		vegan: []string{
			"Chickpea salad with mixed greens and tahini dressing",
			"Hummus and vegetable wrap",
			"Quinoa bowl with roasted vegetables and tofu",
			"Lentil soup with whole grain bread",
			"Buddha bowl with brown rice and tempeh",
		},
		vegetarian: []string{
			"Greek salad with feta cheese",
			"Vegetable and cheese wrap",
			"Quinoa bowl with roasted vegetables and feta",
			"Lentil soup with whole grain bread",
			"Caprese sandwich with mozzarella and tomato",
		},
		glutenFree: filterRule{
			keywords:     []string{"wrap", "bread", "crackers"},
			replacements: []string{"Gluten-free wrap with protein and vegetables", "Rice bowl with protein and vegetables"},
		},
		dairyFree: filterRule{
			keywords:     []string{"cheese", "feta"},
			replacements: []string{"Avocado and vegetable salad with olive oil dressing", "Dairy-free pesto pasta with vegetables"},
		},
	},
	SlotDinner: {
		standard: []string{
			"Grilled salmon with roasted vegetables and quinoa",
			"Lean beef stir-fry with brown rice",
			"Baked chicken with sweet potato and broccoli",
			"Turkey meatballs with whole wheat pasta and marinara",
			"Shrimp and vegetable curry with brown rice",
		},
		vegan: []string{
			"Lentil and vegetable curry with brown rice",
			"Stir-fried tofu with vegetables and quinoa",
			"Chickpea and vegetable stew",
			"Vegan chili with mixed beans",
			"Stuffed bell peppers with quinoa and vegetables",
		},
		vegetarian: []string{
			"Vegetable curry with paneer and brown rice",
			"Eggplant parmesan with whole wheat pasta",
			"Black bean and vegetable enchiladas",
			"Vegetarian chili with mixed beans",
			"Stuffed bell peppers with quinoa and cheese",
		},
		glutenFree: filterRule{
			keywords:     []string{"pasta", "wheat"},
			replacements: []string{"Gluten-free pasta with protein and vegetables", "Stuffed acorn squash with protein and rice"},
		},
		dairyFree: filterRule{
			keywords:     []string{"cheese", "parmesan"},
			replacements: []string{"Coconut curry with protein and vegetables", "Olive oil and herb marinated protein with vegetables"},
		},
	},
	SlotSnacks: {
		standard: []string{
			"Apple with almond butter",
			"Greek yogurt with berries",
			"Protein bar",
			"Mixed nuts and dried fruit",
			"Hummus with vegetable sticks",
		},
		vegan: []string{
			"Apple with almond butter",
			"Vegan protein bar",
			"Mixed nuts and dried fruit",
			"Hummus with vegetable sticks",
			"Roasted chickpeas",
		},
		vegetarian: []string{
			"Apple with almond butter",
			"Greek yogurt with berries",
			"Vegetarian protein bar",
			"Mixed nuts and dried fruit",
			"Hummus with vegetable sticks",
		},
		glutenFree: filterRule{
			keywords:     []string{"bar"},
			replacements: []string{"Gluten-free protein bar", "Rice cakes with nut butter"},
		},
		dairyFree: filterRule{
			keywords:     []string{"yogurt"},
			replacements: []string{"Coconut yogurt with berries", "Dairy-free smoothie"},
		},
	},
}

// Options returns the candidate list for slot after applying r. The flags
// are applied in a fixed order: vegan, vegetarian, gluten-free, dairy-free.
// The returned slice is a fresh copy.
func Options(slot Slot, r Restrictions) []string {
	table, ok := mealOptions[slot]
	if !ok {
		return nil
	}

	var options []string
	switch {
	case r.Vegan:
		options = table.vegan
	case r.Vegetarian:
		options = table.vegetarian
	default:
		options = table.standard
	}
	options = append([]string(nil), options...)

	if r.GlutenFree {
		options = table.glutenFree.apply(options)
	}
	if r.DairyFree {
		options = table.dairyFree.apply(options)
	}
	return options
}

// distribution is the share of daily calories per slot.
type distribution map[Slot]float64

var (
	lowCalorieSplit  = distribution{SlotBreakfast: 0.25, SlotLunch: 0.35, SlotDinner: 0.30, SlotSnacks: 0.10}
	midCalorieSplit  = distribution{SlotBreakfast: 0.25, SlotLunch: 0.30, SlotDinner: 0.30, SlotSnacks: 0.15}
	highCalorieSplit = distribution{SlotBreakfast: 0.20, SlotLunch: 0.30, SlotDinner: 0.30, SlotSnacks: 0.20}
)

// distributionFor picks the calorie split for a daily target.
func distributionFor(dailyCalories int) distribution {
	switch {
	case dailyCalories < 1600:
		return lowCalorieSplit
	case dailyCalories < 2200:
		return midCalorieSplit
	default:
		return highCalorieSplit
	}
}
