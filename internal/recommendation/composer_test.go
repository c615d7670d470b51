package recommendation_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
	"github.com/fitplan/fitplan/internal/history"
	"github.com/fitplan/fitplan/internal/recommendation"
)

var today = time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC)

func composer() *recommendation.Composer {
	return recommendation.NewComposer(func() time.Time { return today })
}

func baseInput() recommendation.Input {
	return recommendation.Input{
		Gender:   bm.GenderMale,
		Age:      30,
		HeightCm: 180,
		WeightKg: 80,
		Goal:     bm.GoalMaintenance,
		Activity: bm.ActivityModerate,
	}
}

func ptr(v float64) *float64 { return &v }

func TestCompose_TotalOverAllCombinations(t *testing.T) {
	ages := map[bm.AgeBracket]int{
		bm.AgeUnder18: 16, bm.Age18To30: 25, bm.Age31To45: 40, bm.Age46To60: 55, bm.AgeOver60: 70,
	}
	c := composer()

	for _, g := range bm.Genders {
		for _, goal := range bm.Goals {
			for _, activity := range bm.ActivityLevels {
				for _, bracket := range bm.AgeBrackets {
					in := recommendation.Input{
						Gender: g, Age: ages[bracket], HeightCm: 170, WeightKg: 70,
						Goal: goal, Activity: activity,
					}
					report, err := c.Compose(in)
					require.NoError(t, err)

					assert.Equal(t, bracket, report.AgeBracket)
					assert.NotEmpty(t, report.FullText)
					for _, facet := range []recommendation.Facet{
						recommendation.FacetWeeklyStructure, recommendation.FacetCardioTraining,
						recommendation.FacetStrengthTraining, recommendation.FacetProgressionPlan,
						recommendation.FacetBMIGuidance, recommendation.FacetAgeGuidance,
						recommendation.FacetWeightChange,
					} {
						assert.NotEmpty(t, report.Components[facet], "%s/%s/%s/%s facet=%s", g, goal, activity, bracket, facet)
					}
				}
			}
		}
	}
}

func TestCompose_UnknownActivityUsesDefaults(t *testing.T) {
	in := baseInput()
	in.Activity = bm.ActivityLevel("extreme")

	report, err := composer().Compose(in)
	require.NoError(t, err)

	assert.Equal(t, "3-4 days of mixed training with balanced cardio and strength work.",
		report.Components[recommendation.FacetWeeklyStructure])
	assert.True(t, strings.HasPrefix(report.Components[recommendation.FacetCardioTraining],
		"Mix of moderate intensity cardio and interval training 3-4 times weekly."))
	assert.True(t, strings.HasPrefix(report.Components[recommendation.FacetStrengthTraining],
		"Balanced strength training 3 times weekly focusing on all major muscle groups."))
}

func TestCompose_WeightChangeGuidance(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		want   string
	}{
		{"within one percent", 80.5, "Focus on body composition changes rather than weight changes."},
		{"large gain", 100, "Consider setting intermediate goals and focusing on gradual, healthy weight gain"},
		{"moderate gain", 85, "To reach your target weight gain of 5.0kg"},
		{"moderate loss", 72, "To reach your target weight loss of 8.0kg"},
		{"large loss", 60, "Consider setting intermediate goals and focusing on gradual, sustainable weight loss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			in.TargetWeightKg = ptr(tt.target)

			report, err := composer().Compose(in)
			require.NoError(t, err)
			assert.Contains(t, report.Components[recommendation.FacetWeightChange], tt.want)
		})
	}
}

func TestCompose_NoTargetMeansComposition(t *testing.T) {
	report, err := composer().Compose(baseInput())
	require.NoError(t, err)

	assert.Contains(t, report.Components[recommendation.FacetWeightChange], "very close to your current weight")
	assert.Contains(t, report.FullText, "**Weight Change Goal:** +0.0% (+0.0kg).")
}

func TestCompose_AgeAdjustment(t *testing.T) {
	in := baseInput()
	in.Age = 25
	young, err := composer().Compose(in)
	require.NoError(t, err)
	assert.Equal(t,
		"Balanced approach with 2 moderate sessions (30-40 min at RPE 6-7/10) and 1-2 interval sessions weekly.",
		young.Components[recommendation.FacetCardioTraining])

	in.Age = 65
	old, err := composer().Compose(in)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(old.Components[recommendation.FacetCardioTraining],
		"Extend warm-up to 10 minutes and keep RPE between 4-7/10."))
}

func TestCompose_GenderAdjustment(t *testing.T) {
	in := baseInput()
	in.Goal = bm.GoalWeightGain

	male, err := composer().Compose(in)
	require.NoError(t, err)
	assert.Contains(t, male.Components[recommendation.FacetStrengthTraining], "bench press, squats, and deadlifts")

	in.Gender = bm.GenderFemale
	female, err := composer().Compose(in)
	require.NoError(t, err)
	assert.Contains(t, female.Components[recommendation.FacetStrengthTraining], "emphasizing glutes, legs")
}

func TestCompose_CycleConsiderations(t *testing.T) {
	in := baseInput()
	in.Gender = bm.GenderFemale
	in.CycleStartDate = "2026-03-05"

	report, err := composer().Compose(in)
	require.NoError(t, err)

	assert.Equal(t, cycle.PhaseOvulatory, report.CyclePhase)
	assert.Contains(t, report.Components[recommendation.FacetCycleConsiderations], "During your ovulatory phase")
	assert.Contains(t, report.FullText, "**Menstrual Cycle Considerations (ovulatory phase):**")

	in.CycleStartDate = "not-a-date"
	report, err = composer().Compose(in)
	require.NoError(t, err)
	assert.Equal(t, cycle.PhaseUnknown, report.CyclePhase)
	assert.Contains(t, report.Components[recommendation.FacetCycleConsiderations], "Consider tracking your menstrual cycle")
}

func TestCompose_CycleIgnoredForMale(t *testing.T) {
	in := baseInput()
	in.CycleStartDate = "2026-03-05"

	report, err := composer().Compose(in)
	require.NoError(t, err)

	_, ok := report.Components[recommendation.FacetCycleConsiderations]
	assert.False(t, ok)
	assert.Empty(t, report.CyclePhase)
	assert.NotContains(t, report.FullText, "Menstrual Cycle")
}

func TestCompose_FullTextLayout(t *testing.T) {
	report, err := composer().Compose(baseInput())
	require.NoError(t, err)

	assert.Equal(t, "**Personalized Training Plan** - male/30/180cm/80.0kg/BMI:24.7/maintenance/moderate", report.Summary)
	assert.True(t, strings.HasPrefix(report.FullText, report.Summary+" **Weekly Structure:** "))

	order := []string{
		"**Weekly Structure:**", "**Cardio Training:**", "**Strength Training:**", "**Progression Plan:**",
		"**Based on BMI (24.7 - normal weight):**", "**Age-Specific Guidance (18-30):**", "**Weight Change Goal:**",
	}
	last := -1
	for _, heading := range order {
		idx := strings.Index(report.FullText, heading)
		require.GreaterOrEqual(t, idx, 0, heading)
		assert.Greater(t, idx, last, heading)
		last = idx
	}
}

func TestCompose_BMIGuidance(t *testing.T) {
	in := baseInput()
	in.WeightKg = 130
	in.Goal = bm.GoalWeightGain

	report, err := composer().Compose(in)
	require.NoError(t, err)

	assert.Equal(t, bm.BMIObesity3, report.BMICategory)
	assert.Contains(t, report.Components[recommendation.FacetBMIGuidance], "obesity class 3, weight gain is not recommended")
}

func TestCompose_StoredBMICategory(t *testing.T) {
	in := baseInput()
	in.WeightKg = 130
	in.Goal = bm.GoalWeightLoss

	in.BMICategory = bm.BMIObesity2
	report, err := composer().Compose(in)
	require.NoError(t, err)
	assert.Equal(t, bm.BMIObesity2, report.BMICategory)

	// Labels outside the table use the coarse split on the BMI.
	in.BMICategory = "Obese"
	report, err = composer().Compose(in)
	require.NoError(t, err)
	assert.Equal(t, bm.BMIObesity1, report.BMICategory)

	derived := baseInput()
	derived.WeightKg = 100
	derived.Goal = bm.GoalWeightLoss
	derived.BMICategory = bm.BMIObesity1
	want, err := composer().Compose(derived)
	require.NoError(t, err)
	assert.Equal(t,
		want.Components[recommendation.FacetBMIGuidance],
		report.Components[recommendation.FacetBMIGuidance])
}

func TestCompose_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*recommendation.Input)
	}{
		{"zero age", func(in *recommendation.Input) { in.Age = 0 }},
		{"zero height", func(in *recommendation.Input) { in.HeightCm = 0 }},
		{"negative weight", func(in *recommendation.Input) { in.WeightKg = -5 }},
		{"unknown gender", func(in *recommendation.Input) { in.Gender = "x" }},
		{"unknown goal", func(in *recommendation.Input) { in.Goal = "bulk" }},
		{"zero target", func(in *recommendation.Input) { in.TargetWeightKg = ptr(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)
			_, err := composer().Compose(in)
			assert.ErrorIs(t, err, bm.ErrInvalidInput)
		})
	}
}

func TestService_GenerateRecordsHistory(t *testing.T) {
	ctx := context.Background()
	hist := history.NewService(history.NewInMemoryRepository())
	svc := recommendation.NewService(composer(), hist, zerolog.Nop())

	report, err := svc.Generate(ctx, "usr_1", baseInput())
	require.NoError(t, err)

	stored, err := svc.History(ctx, "usr_1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, report.FullText, stored[0].Report.FullText)
	assert.Equal(t, baseInput().Goal, stored[0].Input.Goal)

	_, err = svc.Generate(ctx, "usr_1", recommendation.Input{})
	assert.ErrorIs(t, err, bm.ErrInvalidInput)

	stored, err = svc.History(ctx, "usr_1", 10)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
