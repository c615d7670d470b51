package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	bm "github.com/fitplan/fitplan/internal/bodymetrics"
)

func TestResolveCategory(t *testing.T) {
	unknown := bm.BMICategory("obese")

	assert.Equal(t, bm.BMIObesity1, resolveCategory(45, unknown))
	assert.Equal(t, bm.BMIOverweight, resolveCategory(27, unknown))
	assert.Equal(t, bm.BMINormal, resolveCategory(20, unknown))
	assert.Equal(t, bm.BMIUnderweight, resolveCategory(17, unknown))

	assert.Equal(t, bm.BMIObesity3, resolveCategory(45, ""))
	assert.Equal(t, bm.BMIOverweight, resolveCategory(22, bm.BMIOverweight))
}

func TestGuidanceForBMI_UnknownGoal(t *testing.T) {

	assert.Equal(t,
		"With your BMI of 22.0, focus on balanced nutrition and consistent exercise appropriate for your fitness level.",
		guidanceForBMI(22, bm.BMINormal, bm.Goal("bulk")))
}

func TestTablesCoverEveryKey(t *testing.T) {
	for _, goal := range bm.Goals {
		for _, activity := range bm.ActivityLevels {
			assert.NotEmpty(t, weeklyStructures[goal][activity])
			assert.NotEmpty(t, cardioBase[goal][activity])
			assert.NotEmpty(t, strengthBase[goal][activity])
		}
		assert.NotEmpty(t, progressionPlans[goal])
		for _, g := range bm.Genders {
			assert.NotEmpty(t, strengthGenderAdjustments[g][goal])
		}
	}
	for _, bracket := range bm.AgeBrackets {
		assert.NotEmpty(t, ageGuidance[bracket])
		_, ok := cardioAgeAdjustments[bracket]
		assert.True(t, ok)
	}
}

func TestWeightChangeGuidance_Boundaries(t *testing.T) {
	// Exactly 20% is not "significant".
	assert.Equal(t, "To reach your target weight gain of 20.0kg, focus on a moderate caloric surplus (300-500 calories/day) "+
		"and progressive strength training. Aim for 0.5-1 lb of gain per week.", weightChangeGuidance(100, 120))
	assert.Equal(t, weightChangeLargeLoss, weightChangeGuidance(100, 79))
}
