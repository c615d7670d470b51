package recommendation

import (
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
)

// goalActivityTable maps goal then activity level to a text fragment.
type goalActivityTable map[bm.Goal]map[bm.ActivityLevel]string

func (t goalActivityTable) lookup(goal bm.Goal, activity bm.ActivityLevel, fallback string) string {
	if s, ok := t[goal][activity]; ok {
		return s
	}
	return fallback
}

const (
	defaultWeeklyStructure = "3-4 days of mixed training with balanced cardio and strength work."
	defaultCardio          = "Mix of moderate intensity cardio and interval training 3-4 times weekly."
	defaultStrength        = "Balanced strength training 3 times weekly focusing on all major muscle groups."
	defaultProgression     = "Weeks 1-4: Establish baseline fitness. Weeks 5-8: Increase intensity and duration gradually. " +
		"Weeks 9-12: Implement advanced techniques specific to your goals."
	defaultBMIGuidance   = "With your BMI of %.1f, focus on balanced nutrition and consistent exercise appropriate for your fitness level."
	defaultAgeGuidance   = "Focus on consistency and gradual progression appropriate for your age and fitness level."
	defaultCycleGuidance = "Consider how your menstrual cycle affects your energy and performance. " +
		"Adjust training intensity based on how you feel throughout your cycle."
)

var weeklyStructures = goalActivityTable{
	bm.GoalWeightLoss: {
		bm.ActivitySedentary:  "3-4 days of cardio (20-30 min) with 2 days of full-body strength training. Focus on creating a calorie deficit through diet and exercise.",
		bm.ActivityLight:      "3-4 days of cardio (30-40 min) with 2-3 days of strength training. Alternate between upper and lower body workouts.",
		bm.ActivityModerate:   "4-5 days of mixed cardio (30-45 min) with 3 days of strength training. Include HIIT sessions twice weekly.",
		bm.ActivityVeryActive: "5-6 days of varied training with 3 strength sessions, 2 HIIT sessions, and 1 longer cardio session. Include active recovery days.",
	},
	bm.GoalMaintenance: {
		bm.ActivitySedentary:  "2-3 days of cardio (20-30 min) with 2 days of strength training. Focus on consistency rather than intensity.",
		bm.ActivityLight:      "3 days of cardio (20-30 min) with 2-3 days of strength training. Balance between cardio and resistance work.",
		bm.ActivityModerate:   "3-4 days of varied cardio with 3 days of strength training. Include flexibility work twice weekly.",
		bm.ActivityVeryActive: "4-5 days of mixed training with equal focus on strength, cardio, and mobility. Include one active recovery day.",
	},
	bm.GoalWeightGain: {
		bm.ActivitySedentary:  "2 days of light cardio (15-20 min) with 3 days of strength training. Focus on progressive overload in strength sessions.",
		bm.ActivityLight:      "2 days of moderate cardio with 3-4 days of hypertrophy-focused strength training. Emphasize major muscle groups.",
		bm.ActivityModerate:   "2-3 days of cardio (20-30 min) with 4 days of split strength training. Focus on compound movements.",
		bm.ActivityVeryActive: "2-3 days of cardio with 4-5 days of intensive strength training. Use a push/pull/legs split for maximum muscle stimulation.",
	},
	bm.GoalCutting: {
		bm.ActivitySedentary:  "3-4 days of cardio (20-30 min) with 3 days of strength training. Maintain protein intake to preserve muscle mass.",
		bm.ActivityLight:      "4 days of cardio (mix of HIIT and steady-state) with 3 days of strength training. Keep intensity high but reduce volume.",
		bm.ActivityModerate:   "5 days of varied cardio (including fasted morning sessions) with 3-4 days of strength training. Focus on maintaining strength.",
		bm.ActivityVeryActive: "5-6 days of training with 3 strength sessions, 2 HIIT sessions, and 1-2 steady-state cardio sessions. Carefully monitor recovery.",
	},
}

var cardioBase = goalActivityTable{
	bm.GoalWeightLoss: {
		bm.ActivitySedentary:  "Start with walking (20-30 min) at moderate pace (RPE 4-5/10). Gradually increase duration before intensity.",
		bm.ActivityLight:      "Mix walking and jogging intervals. Add 1-2 HIIT sessions (10-15 min) weekly with 30s work/90s rest intervals.",
		bm.ActivityModerate:   "Include 2-3 HIIT sessions (15-20 min) weekly. Add steady-state cardio (30-40 min at RPE 6-7/10) on alternate days.",
		bm.ActivityVeryActive: "Varied cardio including HIIT (20 min, 40s work/80s rest), steady-state (40-50 min at RPE 7/10), and interval training.",
	},
	bm.GoalMaintenance: {
		bm.ActivitySedentary:  "Focus on consistent moderate cardio (20-30 min at RPE 5-6/10) 2-3 times weekly. Walking, cycling, or swimming recommended.",
		bm.ActivityLight:      "Mix of moderate cardio (25-35 min at RPE 6/10) with one weekly interval session (alternating 2 min hard/2 min easy).",
		bm.ActivityModerate:   "Balanced approach with 2 moderate sessions (30-40 min at RPE 6-7/10) and 1-2 interval sessions weekly.",
		bm.ActivityVeryActive: "Varied cardio including one longer session (50-60 min), one HIIT session, and 1-2 moderate intensity sessions weekly.",
	},
	bm.GoalWeightGain: {
		bm.ActivitySedentary:  "Limit cardio to 15-20 min sessions at moderate intensity (RPE 5/10), 2 times weekly to avoid excessive calorie burn.",
		bm.ActivityLight:      "Short cardio sessions (20 min) at moderate intensity (RPE 5-6/10) to maintain cardiovascular health without hindering gains.",
		bm.ActivityModerate:   "2-3 cardio sessions weekly (20-30 min) at moderate intensity. Focus on maintaining conditioning without excessive duration.",
		bm.ActivityVeryActive: "Strategic cardio: 2-3 sessions (20-30 min) at moderate intensity plus one interval session to maintain conditioning.",
	},
	bm.GoalCutting: {
		bm.ActivitySedentary:  "Mix of HIIT (10-15 min, 30s work/90s rest) and moderate steady-state cardio (25-30 min at RPE 6/10).",
		bm.ActivityLight:      "3-4 cardio sessions weekly, alternating between HIIT (15-20 min) and steady-state (30-40 min at RPE 7/10).",
		bm.ActivityModerate:   "Strategic mix: morning fasted cardio (20-30 min at RPE 6/10) plus evening HIIT sessions (20 min) 2-3 times weekly.",
		bm.ActivityVeryActive: "Comprehensive approach: 2-3 HIIT sessions (20-25 min), 2 steady-state sessions (40 min at RPE 7/10), and 1 longer session (60 min).",
	},
}

// An empty adjustment means nothing is appended.
var cardioAgeAdjustments = map[bm.AgeBracket]string{
	bm.AgeUnder18: "Keep intensity moderate and focus on enjoyable activities. Ensure proper form and technique before increasing intensity.",
	bm.Age18To30:  "",
	bm.Age31To45:  "Monitor heart rate and ensure proper warm-up. Recovery between high-intensity sessions may need to be extended by 1 day.",
	bm.Age46To60:  "Extend warm-up and cool-down periods. Consider reducing high-intensity work to 30s intervals with longer recovery periods.",
	bm.AgeOver60:  "Focus on low-impact activities like swimming, cycling, or elliptical. Extend warm-up to 10 minutes and keep RPE between 4-7/10.",
}

var strengthBase = goalActivityTable{
	bm.GoalWeightLoss: {
		bm.ActivitySedentary:  "Full-body circuit training 2 times weekly. 8-10 exercises, 2-3 sets, 12-15 reps with minimal rest between exercises.",
		bm.ActivityLight:      "Full-body workouts 2-3 times weekly. Focus on compound movements (squats, push-ups, rows) with 3 sets of 12-15 reps.",
		bm.ActivityModerate:   "Upper/lower split 3 times weekly. 4-5 exercises per muscle group, 3 sets, 10-12 reps with moderate weights.",
		bm.ActivityVeryActive: "4-day split (push/pull/legs/core). 4-5 exercises per session, 3-4 sets, 10-12 reps. Include supersets to increase calorie burn.",
	},
	bm.GoalMaintenance: {
		bm.ActivitySedentary:  "Full-body workouts 2 times weekly. Basic compound movements, 2-3 sets, 10-12 reps with moderate weights.",
		bm.ActivityLight:      "Full-body workouts 2-3 times weekly. Mix of compound and isolation exercises, 3 sets, 8-12 reps.",
		bm.ActivityModerate:   "3-day split (push/pull/legs). 3-4 exercises per muscle group, 3 sets, 8-12 reps with moderate to heavy weights.",
		bm.ActivityVeryActive: "4-day split with periodized approach. Alternate between strength phases (4-6 reps) and hypertrophy phases (8-12 reps).",
	},
	bm.GoalWeightGain: {
		bm.ActivitySedentary:  "Full-body workouts 3 times weekly. Focus on compound movements, 3-4 sets, 8-10 reps with progressive overload.",
		bm.ActivityLight:      "Upper/lower split 3-4 times weekly. Emphasis on compound lifts, 4 sets, 6-10 reps with heavier weights.",
		bm.ActivityModerate:   "4-day split targeting major muscle groups. 4-5 exercises per session, 4 sets, 6-10 reps with heavy weights.",
		bm.ActivityVeryActive: "5-day body part split with emphasis on hypertrophy. 5-6 exercises per muscle group, 4 sets, 8-12 reps with controlled tempo.",
	},
	bm.GoalCutting: {
		bm.ActivitySedentary:  "Full-body workouts 3 times weekly. Maintain weight but increase tempo, 3 sets, 10-12 reps with minimal rest.",
		bm.ActivityLight:      "Upper/lower split 3-4 times weekly. Focus on maintaining strength, 3-4 sets, 8-10 reps with moderate to heavy weights.",
		bm.ActivityModerate:   "4-day split with emphasis on compound movements. 4 sets, 6-10 reps with heavy weights to preserve muscle mass.",
		bm.ActivityVeryActive: "5-day split with high volume. Mix of heavy compound movements (4-6 reps) and moderate isolation work (10-12 reps).",
	},
}

var strengthGenderAdjustments = map[bm.Gender]map[bm.Goal]string{
	bm.GenderMale: {
		bm.GoalWeightLoss:  "Include metabolic resistance training circuits to maximize calorie burn.",
		bm.GoalMaintenance: "Balance upper and lower body work with equal emphasis on pushing and pulling movements.",
		bm.GoalWeightGain:  "Emphasize progressive overload on compound lifts like bench press, squats, and deadlifts.",
		bm.GoalCutting:     "Maintain heavy compound lifts while adjusting volume to account for reduced recovery capacity.",
	},
	bm.GenderFemale: {
		bm.GoalWeightLoss:  "Include exercises that target multiple muscle groups simultaneously to maximize efficiency.",
		bm.GoalMaintenance: "Balance functional movements with targeted glute, core, and upper body exercises.",
		bm.GoalWeightGain:  "Focus on progressive overload while emphasizing glutes, legs, and balanced upper body development.",
		bm.GoalCutting:     "Maintain intensity on key lifts while incorporating more circuit-style training to preserve muscle.",
	},
}

var progressionPlans = map[bm.Goal]string{
	bm.GoalWeightLoss: "Weeks 1-4: Focus on establishing consistent workout routine and proper form. " +
		"Weeks 5-8: Increase workout duration by 5-10 minutes and add one HIIT session weekly. " +
		"Weeks 9-12: Increase intensity of strength training and add complex movements.",
	bm.GoalMaintenance: "Weeks 1-4: Establish baseline strength and endurance levels. " +
		"Weeks 5-8: Introduce periodization with alternating focus on strength and endurance. " +
		"Weeks 9-12: Add variety through new exercises and training techniques to prevent plateaus.",
	bm.GoalWeightGain: "Weeks 1-4: Focus on perfecting form on key compound lifts. " +
		"Weeks 5-8: Implement progressive overload by increasing weight 5-10% on main lifts. " +
		"Weeks 9-12: Increase training volume and add advanced techniques like drop sets and rest-pause sets.",
	bm.GoalCutting: "Weeks 1-4: Maintain current training volume while gradually reducing caloric intake. " +
		"Weeks 5-8: Increase cardio frequency while maintaining strength training intensity. " +
		"Weeks 9-12: Implement strategic refeeds and adjust training split to maintain performance.",
}

var bmiGuidance = map[bm.BMICategory]map[bm.Goal]string{
	bm.BMIUnderweight: {
		bm.GoalWeightLoss:  "With your BMI below 18.5, weight loss is not recommended. Consider shifting your goal to weight gain or maintenance with a focus on building lean muscle.",
		bm.GoalMaintenance: "With your BMI below 18.5, focus on nutrient-dense foods and sufficient protein intake to support healthy body composition while maintaining weight.",
		bm.GoalWeightGain:  "With your BMI below 18.5, focus on gradual weight gain (0.5-1 lb/week) through strength training and caloric surplus from nutrient-dense foods.",
		bm.GoalCutting:     "With your BMI below 18.5, cutting is not recommended. Consider focusing on building muscle first before attempting to reduce body fat percentage.",
	},
	bm.BMINormal: {
		bm.GoalWeightLoss:  "With your BMI in the normal range, focus on body composition changes rather than significant weight loss. Emphasize strength training to maintain muscle.",
		bm.GoalMaintenance: "Your BMI is in the healthy range. Focus on performance goals and body composition rather than weight changes.",
		bm.GoalWeightGain:  "With your BMI in the normal range, focus on lean muscle gain through progressive strength training and moderate caloric surplus.",
		bm.GoalCutting:     "With your BMI in the normal range, focus on gradual fat loss while preserving muscle mass through high protein intake and strength training.",
	},
	bm.BMIOverweight: {
		bm.GoalWeightLoss:  "With your BMI indicating overweight status, aim for gradual weight loss (1-2 lbs/week) through combined dietary changes and increased physical activity.",
		bm.GoalMaintenance: "Before maintaining your current weight, consider if a weight loss phase would benefit your health, as your BMI indicates overweight status.",
		bm.GoalWeightGain:  "With your BMI indicating overweight status, focus on recomposition (gaining muscle while losing fat) rather than overall weight gain.",
		bm.GoalCutting:     "With your BMI indicating overweight status, a cutting phase is appropriate. Focus on preserving muscle while creating a moderate caloric deficit.",
	},
	bm.BMIObesity1: {
		bm.GoalWeightLoss:  "With your BMI indicating obesity, focus on consistent, moderate weight loss (1-2 lbs/week) through sustainable dietary changes and gradually increasing activity.",
		bm.GoalMaintenance: "With your BMI indicating obesity, consider if a weight loss phase would be more beneficial for your health before maintaining current weight.",
		bm.GoalWeightGain:  "With your BMI indicating obesity, weight gain is not recommended. Consider shifting your goal to weight loss for health benefits.",
		bm.GoalCutting:     "With your BMI indicating obesity, focus on overall weight loss rather than a traditional cutting phase. Emphasize sustainable lifestyle changes.",
	},
	bm.BMIObesity2: {
		bm.GoalWeightLoss:  "With your BMI indicating obesity class 2, prioritize consistent weight loss through medical supervision. Focus on low-impact activities and dietary changes.",
		bm.GoalMaintenance: "With your BMI indicating obesity class 2, weight loss is recommended for health benefits rather than weight maintenance.",
		bm.GoalWeightGain:  "With your BMI indicating obesity class 2, weight gain is not recommended. Please consult with a healthcare provider about appropriate fitness goals.",
		bm.GoalCutting:     "With your BMI indicating obesity class 2, focus on overall weight loss for health rather than aesthetic cutting. Consult with healthcare providers.",
	},
	bm.BMIObesity3: {
		bm.GoalWeightLoss:  "With your BMI indicating obesity class 3, work with healthcare providers to develop a medically supervised weight loss plan with appropriate exercise modifications.",
		bm.GoalMaintenance: "With your BMI indicating obesity class 3, weight loss is strongly recommended for health benefits rather than weight maintenance.",
		bm.GoalWeightGain:  "With your BMI indicating obesity class 3, weight gain is not recommended. Please consult with healthcare providers about appropriate fitness goals.",
		bm.GoalCutting:     "With your BMI indicating obesity class 3, traditional cutting approaches are not appropriate. Work with healthcare providers on medically supervised weight loss.",
	},
}

var ageGuidance = map[bm.AgeBracket]string{
	bm.AgeUnder18: "Focus on developing proper exercise technique and consistency. Emphasize bodyweight exercises and moderate resistance training. " +
		"Ensure adequate nutrition to support growth and development.",
	bm.Age18To30: "This is an optimal time for building strength and fitness habits. Focus on progressive overload in strength training and developing cardiovascular endurance. " +
		"Recovery capacity is typically high.",
	bm.Age31To45: "Balance intensity with recovery as metabolism begins to change. Focus on maintaining muscle mass through consistent strength training. " +
		"Monitor joint health and incorporate more mobility work.",
	bm.Age46To60: "Emphasize strength training to combat natural muscle loss. Focus on functional movements that support daily activities. " +
		"Include more dedicated warm-up time and recovery between intense sessions.",
	bm.AgeOver60: "Prioritize strength and balance training to maintain independence. Focus on low-impact activities and proper form. " +
		"Include specific exercises for bone density and joint health. Extend warm-up and cool-down periods.",
}

var cycleGuidance = map[cycle.Phase]string{
	cycle.PhaseMenstrual: "During your menstrual phase, energy levels may be lower. Focus on lighter intensity workouts and prioritize recovery. " +
		"Gentle yoga, walking, and light strength training are ideal. Iron-rich foods can help combat fatigue.",
	cycle.PhaseFollicular: "During your follicular phase, energy levels typically increase. This is an optimal time for higher intensity workouts and strength training. " +
		"Take advantage of potentially increased strength and endurance during this phase.",
	cycle.PhaseOvulatory: "During your ovulatory phase, energy and strength may peak. This is an excellent time for challenging workouts, personal records, and high-intensity training. " +
		"Monitor hydration as body temperature may be slightly elevated.",
	cycle.PhaseLuteal: "During your luteal phase, you may experience decreased energy and increased core temperature. " +
		"Focus on moderate intensity workouts, adjust expectations, and increase cooling strategies. Emphasize protein intake to manage cravings.",
	cycle.PhaseUnknown: "Consider tracking your menstrual cycle to optimize training. " +
		"Different phases can affect energy levels, strength, and recovery capacity, allowing for strategic training adjustments.",
}

const (
	weightChangeComposition = "Your target weight is very close to your current weight. Focus on body composition changes rather than weight changes."
	weightChangeLargeGain   = "Your target weight represents a significant increase. Consider setting intermediate goals and focusing on gradual, healthy weight gain of 0.5-1 lb per week."
	weightChangeGain        = "To reach your target weight gain of %.1fkg, focus on a moderate caloric surplus (300-500 calories/day) and progressive strength training. Aim for 0.5-1 lb of gain per week."
	weightChangeLargeLoss   = "Your target weight represents a significant decrease. Consider setting intermediate goals and focusing on gradual, sustainable weight loss of 1-2 lbs per week."
	weightChangeLoss        = "To reach your target weight loss of %.1fkg, create a moderate caloric deficit (500 calories/day) through diet and exercise. Aim for 1-2 lbs of loss per week."
)
