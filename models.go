package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lg/stride-goals-api/recommend"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly. NULL zeroes the time so *DateOnly fields become nil.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// userProfile maps to user_profiles. Every biometric field is nullable; a
// row with nothing filled in still gets a (degraded) recommendation.
type userProfile struct {
	UserID        int        `json:"user_id"        db:"user_id"`
	HeightCM      *float64   `json:"height_cm"      db:"height_cm"`
	DateOfBirth   *DateOnly  `json:"date_of_birth"  db:"date_of_birth"`
	Gender        *string    `json:"gender"         db:"gender"`
	ActivityLevel string     `json:"activity_level" db:"activity_level"`
	UpdatedAt     *time.Time `json:"updated_at"     db:"updated_at"`

	// Computed fields, not stored.
	Age      *int `json:"age,omitempty" db:"-"`
	Complete bool `json:"complete"      db:"-"`
}

// goal maps to the goals table. Only daily_calorie_goal and the request
// parameters are stored; the full recommendation is recomputed on read.
type goal struct {
	ID                       int        `json:"id"                       db:"id"`
	UserID                   int        `json:"userId"                   db:"user_id"`
	GoalType                 string     `json:"goalType"                 db:"goal_type"`
	CurrentWeightKg          float64    `json:"currentWeightKg"          db:"current_weight_kg"`
	TargetWeightKg           float64    `json:"targetWeightKg"           db:"target_weight_kg"`
	WeeklyWeightChangeGoalKg float64    `json:"weeklyWeightChangeGoalKg" db:"weekly_weight_change_goal_kg"`
	DailyCalorieGoal         int        `json:"dailyCalorieGoal"         db:"daily_calorie_goal"`
	IsActive                 bool       `json:"isActive"                 db:"is_active"`
	CreatedAt                *time.Time `json:"createdAt"                db:"created_at"`
}

// weightEntry maps to weight_log. One row per user per date.
type weightEntry struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	WeightKg  float64    `json:"weight_kg"  db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// dietLogItem maps to diet_log_items. Nullable numeric fields use pointers
// so pgx can scan NULLs.
type dietLogItem struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	ItemName  string     `json:"item_name" db:"item_name"`
	Type      string     `json:"type" db:"type"`
	Calories  int        `json:"calories" db:"calories"`
	ProteinG  *float64   `json:"protein_g" db:"protein_g"`
	CarbsG    *float64   `json:"carbs_g" db:"carbs_g"`
	FatG      *float64   `json:"fat_g" db:"fat_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// dayTotalsRow is the shape of each row from the per-day GROUP BY query.
type dayTotalsRow struct {
	Date             DateOnly `db:"date"`
	CaloriesFood     int      `db:"calories_food"`
	CaloriesExercise int      `db:"calories_exercise"`
}

// weekDaySummary is one day in GET /diet-log/week-summary.
// Days with no logged items have HasData=false.
type weekDaySummary struct {
	Date             DateOnly `json:"date"`
	CalorieBudget    int      `json:"calorie_budget"`
	CaloriesFood     int      `json:"calories_food"`
	CaloriesExercise int      `json:"calories_exercise"`
	NetCalories      int      `json:"net_calories"`
	CaloriesLeft     int      `json:"calories_left"`
	HasData          bool     `json:"has_data"`
}

// dailySummary is the response shape for GET /diet-log/daily.
type dailySummary struct {
	Date              string        `json:"date"`
	CalorieBudget     int           `json:"calorie_budget"`
	CaloriesFood      int           `json:"calories_food"`
	CaloriesExercise  int           `json:"calories_exercise"`
	NetCalories       int           `json:"net_calories"`
	CaloriesLeft      int           `json:"calories_left"`
	ExerciseTarget    int           `json:"exercise_target"`
	ExerciseRemaining int           `json:"exercise_remaining"`
	ProteinG          float64       `json:"protein_g"`
	CarbsG            float64       `json:"carbs_g"`
	FatG              float64       `json:"fat_g"`
	Items             []dietLogItem `json:"items"`
	HasActiveGoal     bool          `json:"has_active_goal"`
}

/* ─── Request / response bodies ──────────────────────────────────────── */

// createDietLogItemRequest is the body for POST /api/diet-log/items.
type createDietLogItemRequest struct {
	Date     string   `json:"date"`
	ItemName string   `json:"item_name"`
	Type     string   `json:"type"`
	Calories int      `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`
}

// patchProfileRequest is the body for PATCH /api/profile. Only non-nil
// fields are written.
type patchProfileRequest struct {
	HeightCM      *float64 `json:"height_cm"`
	DateOfBirth   *string  `json:"date_of_birth"` // YYYY-MM-DD
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activity_level"`
}

// goalRequest is the body for POST /api/goals and POST /api/goals/calories.
// Field names follow the recommendation contract.
type goalRequest struct {
	CurrentWeightKg          *float64 `json:"currentWeightKg"`
	TargetWeightKg           *float64 `json:"targetWeightKg"`
	WeeklyWeightChangeGoalKg *float64 `json:"weeklyWeightChangeGoalKg"`
	GoalType                 string   `json:"goalType"`
	ActivityLevel            *string  `json:"activityLevel"` // overrides the profile for this request
}

// goalResponse pairs a stored goal with its recomputed recommendation.
type goalResponse struct {
	Goal           goal             `json:"goal"`
	Recommendation recommend.Result `json:"recommendation"`
	LatestWeightKg *float64         `json:"latestWeightKg,omitempty"`
}
