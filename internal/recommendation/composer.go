// Package recommendation composes a personalised training report from a
// small set of profile features using fixed decision tables.
package recommendation

import (
	"fmt"
	"math"
	"strings"
	"time"

	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
)

// Facet names one section of a report.
type Facet string

const (
	FacetWeeklyStructure     Facet = "weekly_structure"
	FacetCardioTraining      Facet = "cardio_training"
	FacetStrengthTraining    Facet = "strength_training"
	FacetProgressionPlan     Facet = "progression_plan"
	FacetBMIGuidance         Facet = "bmi_guidance"
	FacetAgeGuidance         Facet = "age_guidance"
	FacetWeightChange        Facet = "weight_change"
	FacetCycleConsiderations Facet = "cycle_considerations"
)

// Input is the feature vector a report is built from.
type Input struct {
	Gender   bm.Gender        `json:"gender"`
	Age      int              `json:"age"`
	HeightCm float64          `json:"height_cm"`
	WeightKg float64          `json:"weight_kg"`
	Goal     bm.Goal          `json:"goal"`
	Activity bm.ActivityLevel `json:"activity_level"`

	// TargetWeightKg defaults to WeightKg.
	TargetWeightKg *float64 `json:"target_weight_kg,omitempty"`

	// CycleStartDate is YYYY-MM-DD and only read for female users.
	CycleStartDate string `json:"cycle_start_date,omitempty"`

	// BMICategory replaces the category derived from the BMI, for callers
	// replaying a stored report. Labels outside the guidance table are
	// re-derived from the BMI.
	BMICategory bm.BMICategory `json:"bmi_category,omitempty"`
}

// Report is a composed recommendation.
type Report struct {
	Summary     string           `json:"summary"`
	Components  map[Facet]string `json:"components"`
	FullText    string           `json:"full_recommendation"`
	BMI         float64          `json:"bmi"`
	BMICategory bm.BMICategory   `json:"bmi_category"`
	AgeBracket  bm.AgeBracket    `json:"age_bracket"`
	CyclePhase  cycle.Phase      `json:"cycle_phase,omitempty"`
}

// Composer builds reports. The zero value uses the wall clock.
type Composer struct {
	now func() time.Time
}

// NewComposer creates a composer reading today's date from now.
// A nil now uses time.Now.
func NewComposer(now func() time.Time) *Composer {
	return &Composer{now: now}
}

func (c *Composer) today() time.Time {
	if c == nil || c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Compose validates in and builds its report. Only non-positive numbers and
// an unknown gender or goal are rejected; every table miss past that point
// resolves to a default sentence.
func (c *Composer) Compose(in Input) (Report, error) {
	if in.Age <= 0 {
		return Report{}, fmt.Errorf("%w: age must be positive", bm.ErrInvalidInput)
	}
	if !in.Gender.Valid() {
		return Report{}, fmt.Errorf("%w: unknown gender %q", bm.ErrInvalidInput, in.Gender)
	}
	if !in.Goal.Valid() {
		return Report{}, fmt.Errorf("%w: unknown goal %q", bm.ErrInvalidInput, in.Goal)
	}
	bmi, err := bm.BMI(in.WeightKg, in.HeightCm)
	if err != nil {
		return Report{}, err
	}

	target := in.WeightKg
	if in.TargetWeightKg != nil {
		if *in.TargetWeightKg <= 0 {
			return Report{}, fmt.Errorf("%w: target weight must be positive", bm.ErrInvalidInput)
		}
		target = *in.TargetWeightKg
	}

	category := resolveCategory(bmi, in.BMICategory)
	bracket := bm.BracketForAge(in.Age)

	components := map[Facet]string{
		FacetWeeklyStructure:  weeklyStructures.lookup(in.Goal, in.Activity, defaultWeeklyStructure),
		FacetCardioTraining:   cardioTraining(in.Goal, in.Activity, bracket),
		FacetStrengthTraining: strengthTraining(in.Gender, in.Goal, in.Activity),
		FacetProgressionPlan:  progressionPlan(in.Goal),
		FacetBMIGuidance:      guidanceForBMI(bmi, category, in.Goal),
		FacetAgeGuidance:      guidanceForAge(bracket),
		FacetWeightChange:     weightChangeGuidance(in.WeightKg, target),
	}

	report := Report{
		BMI:         bm.Round(bmi, 1),
		BMICategory: category,
		AgeBracket:  bracket,
	}

	if in.Gender == bm.GenderFemale && in.CycleStartDate != "" {
		report.CyclePhase = cycle.PhaseFromString(in.CycleStartDate, c.today())
		components[FacetCycleConsiderations] = guidanceForCycle(report.CyclePhase)
	}

	report.Components = components
	report.Summary = fmt.Sprintf("**Personalized Training Plan** - %s/%d/%gcm/%.1fkg/BMI:%.1f/%s/%s",
		in.Gender, in.Age, in.HeightCm, in.WeightKg, bmi, in.Goal, in.Activity)
	report.FullText = fullText(report, in.WeightKg, target)

	return report, nil
}

func fullText(r Report, current, target float64) string {
	parts := []string{r.Summary}
	add := func(heading, body string) {
		if body != "" {
			parts = append(parts, heading+" "+body)
		}
	}

	add("**Weekly Structure:**", r.Components[FacetWeeklyStructure])
	add("**Cardio Training:**", r.Components[FacetCardioTraining])
	add("**Strength Training:**", r.Components[FacetStrengthTraining])
	add("**Progression Plan:**", r.Components[FacetProgressionPlan])
	add(fmt.Sprintf("**Based on BMI (%.1f - %s):**", r.BMI, r.BMICategory.Label()), r.Components[FacetBMIGuidance])
	add(fmt.Sprintf("**Age-Specific Guidance (%s):**", r.AgeBracket.Label()), r.Components[FacetAgeGuidance])

	deltaKg := target - current
	add(fmt.Sprintf("**Weight Change Goal:** %+.1f%% (%+.1fkg).", deltaKg/current*100, deltaKg), r.Components[FacetWeightChange])

	if text, ok := r.Components[FacetCycleConsiderations]; ok {
		add(fmt.Sprintf("**Menstrual Cycle Considerations (%s phase):**", r.CyclePhase), text)
	}

	return strings.Join(parts, " ")
}

func cardioTraining(goal bm.Goal, activity bm.ActivityLevel, bracket bm.AgeBracket) string {
	base := cardioBase.lookup(goal, activity, defaultCardio)
	if adj := cardioAgeAdjustments[bracket]; adj != "" {
		return base + " " + adj
	}
	return base
}

func strengthTraining(gender bm.Gender, goal bm.Goal, activity bm.ActivityLevel) string {
	base := strengthBase.lookup(goal, activity, defaultStrength)
	if adj := strengthGenderAdjustments[gender][goal]; adj != "" {
		return base + " " + adj
	}
	return base
}

func progressionPlan(goal bm.Goal) string {
	if s, ok := progressionPlans[goal]; ok {
		return s
	}
	return defaultProgression
}

// resolveCategory returns given when it is a guidance table key. An empty
// label is derived from bmi and any other label falls back to the coarse
// four-way split.
func resolveCategory(bmi float64, given bm.BMICategory) bm.BMICategory {
	if given == "" {
		return bm.CategoryForBMI(bmi)
	}
	if _, ok := bmiGuidance[given]; ok {
		return given
	}
	switch {
	case bmi >= 30:
		return bm.BMIObesity1
	case bmi >= 25:
		return bm.BMIOverweight
	case bmi >= 18.5:
		return bm.BMINormal
	default:
		return bm.BMIUnderweight
	}
}

func guidanceForBMI(bmi float64, category bm.BMICategory, goal bm.Goal) string {
	if s, ok := bmiGuidance[category][goal]; ok {
		return s
	}
	return fmt.Sprintf(defaultBMIGuidance, bmi)
}

func guidanceForAge(bracket bm.AgeBracket) string {
	if s, ok := ageGuidance[bracket]; ok {
		return s
	}
	return defaultAgeGuidance
}

func guidanceForCycle(phase cycle.Phase) string {
	if s, ok := cycleGuidance[phase]; ok {
		return s
	}
	return defaultCycleGuidance
}

// weightChangeGuidance branches on the sign and size of the relative change
// from current to target. current is positive.
func weightChangeGuidance(current, target float64) string {
	diff := target - current
	pct := diff / current * 100

	switch {
	case math.Abs(pct) < 1:
		return weightChangeComposition
	case diff > 0 && pct > 20:
		return weightChangeLargeGain
	case diff > 0:
		return fmt.Sprintf(weightChangeGain, diff)
	case -pct > 20:
		return weightChangeLargeLoss
	default:
		return fmt.Sprintf(weightChangeLoss, -diff)
	}
}
