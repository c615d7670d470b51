package models

import (
	bm "github.com/fitplan/fitplan/internal/bodymetrics"
	"github.com/fitplan/fitplan/internal/cycle"
)

// ProfileInput is a complete profile as sent at registration.
type ProfileInput struct {
	FullName       string   `json:"full_name" validate:"max=200"`
	Gender         string   `json:"gender" validate:"required,gender"`
	BirthDate      *Date    `json:"birth_date"`
	Age            *int     `json:"age" validate:"required_without=BirthDate,omitempty,min=1,max=120"`
	HeightCm       float64  `json:"height_cm" validate:"required,gte=50,lte=250"`
	WeightKg       float64  `json:"weight_kg" validate:"required,gte=20,lte=300"`
	Goal           string   `json:"goal" validate:"required,goal"`
	ActivityLevel  string   `json:"activity_level" validate:"omitempty,activity"`
	TargetWeightKg *float64 `json:"target_weight_kg" validate:"omitempty,gte=20,lte=300"`
	CycleDates     []Date   `json:"cycle_dates" validate:"max=24"`
}

// ProfilePatch is a partial profile update. Absent fields are unchanged.
type ProfilePatch struct {
	FullName        *string  `json:"full_name" validate:"omitempty,max=200"`
	Gender          *string  `json:"gender" validate:"omitempty,gender"`
	BirthDate       *Date    `json:"birth_date"`
	Age             *int     `json:"age" validate:"omitempty,min=1,max=120"`
	HeightCm        *float64 `json:"height_cm" validate:"omitempty,gte=50,lte=250"`
	WeightKg        *float64 `json:"weight_kg" validate:"omitempty,gte=20,lte=300"`
	Goal            *string  `json:"goal" validate:"omitempty,goal"`
	ActivityLevel   *string  `json:"activity_level" validate:"omitempty,activity"`
	TargetWeightKg  *float64 `json:"target_weight_kg" validate:"omitempty,gte=20,lte=300"`
	CycleDates      *[]Date  `json:"cycle_dates" validate:"omitempty,max=24"`
	CycleLengthDays *int     `json:"cycle_length_days" validate:"omitempty,min=15,max=60"`
	CycleDay        *int     `json:"cycle_day" validate:"omitempty,min=1,max=60"`
}

// Profile is the profile as returned to its owner, with derived metrics.
type Profile struct {
	UserID          string            `json:"user_id"`
	Email           string            `json:"email"`
	FullName        string            `json:"full_name,omitempty"`
	Gender          bm.Gender         `json:"gender"`
	BirthDate       *Date             `json:"birth_date,omitempty"`
	Age             int               `json:"age"`
	HeightCm        float64           `json:"height_cm"`
	WeightKg        float64           `json:"weight_kg"`
	Goal            bm.Goal           `json:"goal"`
	ActivityLevel   bm.ActivityLevel  `json:"activity_level"`
	TargetWeightKg  *float64          `json:"target_weight_kg,omitempty"`
	CycleDates      []Date            `json:"cycle_dates,omitempty"`
	CycleLengthDays *int              `json:"cycle_length_days,omitempty"`
	CycleDay        *int              `json:"cycle_day,omitempty"`
	CyclePhase      cycle.Phase       `json:"cycle_phase,omitempty"`
	CyclePrediction *cycle.Prediction `json:"cycle_prediction,omitempty"`
	Metrics         *bm.Derived       `json:"metrics,omitempty"`
	CreatedAt       Timestamp         `json:"created_at"`
	UpdatedAt       Timestamp         `json:"updated_at"`
}

// ProfileOverrides lets a computation request replace stored profile fields.
// Every field is optional; missing ones come from the caller's profile.
type ProfileOverrides struct {
	Gender         *string  `json:"gender" validate:"omitempty,gender"`
	Age            *int     `json:"age" validate:"omitempty,min=1,max=120"`
	HeightCm       *float64 `json:"height_cm" validate:"omitempty,gte=50,lte=250"`
	WeightKg       *float64 `json:"weight_kg" validate:"omitempty,gte=20,lte=300"`
	Goal           *string  `json:"goal" validate:"omitempty,goal"`
	ActivityLevel  *string  `json:"activity_level" validate:"omitempty,activity"`
	TargetWeightKg *float64 `json:"target_weight_kg" validate:"omitempty,gte=20,lte=300"`
	CycleStartDate *Date    `json:"cycle_start_date"`
}

// RecommendationRequest asks for a training recommendation.
type RecommendationRequest struct {
	ProfileOverrides
}

// NutritionPlanRequest asks for a weekly nutrition plan.
type NutritionPlanRequest struct {
	ProfileOverrides
	DietaryRestrictions []string `json:"dietary_restrictions" validate:"max=10,dive,max=40"`
	Allergies           []string `json:"allergies" validate:"max=20,dive,max=60"`
	PreferredCuisine    string   `json:"preferred_cuisine" validate:"max=60"`
}
