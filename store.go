package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoActiveGoal = errors.New("no active goal")

// profileStore is the profile lookup collaborator of the recommendation service.
type profileStore interface {
	// getProfile returns the user's profile. A user without a row gets an
	// empty profile, never an error.
	getProfile(ctx context.Context, userID int) (userProfile, error)
	updateProfile(ctx context.Context, userID int, body patchProfileRequest) (userProfile, error)
}

// goalStore is the goal persistence collaborator.
type goalStore interface {
	activeGoal(ctx context.Context, userID int) (goal, error)
	listGoals(ctx context.Context, userID int) ([]goal, error)
	// replaceActiveGoal deactivates the user's current goal and inserts g as
	// the new active one, atomically.
	replaceActiveGoal(ctx context.Context, g goal) (goal, error)
	latestWeightKg(ctx context.Context, userID int) (*float64, error)
}

// pgStore implements profileStore and goalStore on PostgreSQL.
type pgStore struct {
	db *pgxpool.Pool
}

var (
	_ profileStore = (*pgStore)(nil)
	_ goalStore    = (*pgStore)(nil)
)

func (s *pgStore) getProfile(ctx context.Context, userID int) (userProfile, error) {
	p, err := queryOne[userProfile](s.db, ctx,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if errors.Is(err, pgx.ErrNoRows) {
		return userProfile{UserID: userID, ActivityLevel: defaultActivityLevel}, nil
	}
	if err != nil {
		return userProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// updateProfile upserts only the provided fields. The SET clause is built
// from the non-nil request fields, so the caller must reject empty bodies.
func (s *pgStore) updateProfile(ctx context.Context, userID int, body patchProfileRequest) (userProfile, error) {
	cols := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.HeightCM != nil {
		cols = append(cols, "height_cm")
		args["height_cm"] = *body.HeightCM
	}
	if body.DateOfBirth != nil {
		cols = append(cols, "date_of_birth")
		args["date_of_birth"] = *body.DateOfBirth
	}
	if body.Gender != nil {
		cols = append(cols, "gender")
		args["gender"] = *body.Gender
	}
	if body.ActivityLevel != nil {
		cols = append(cols, "activity_level")
		args["activity_level"] = *body.ActivityLevel
	}
	if len(cols) == 0 {
		return userProfile{}, errors.New("update profile: no fields")
	}

	values := make([]string, len(cols))
	sets := make([]string, len(cols))
	for i, col := range cols {
		values[i] = "@" + col
		sets[i] = col + " = EXCLUDED." + col
	}
	query := "INSERT INTO user_profiles (user_id, " + strings.Join(cols, ", ") + ")" +
		" VALUES (@userID, " + strings.Join(values, ", ") + ")" +
		" ON CONFLICT (user_id) DO UPDATE SET " + strings.Join(sets, ", ") + ", updated_at = now()" +
		" RETURNING *"

	p, err := queryOne[userProfile](s.db, ctx, query, args)
	if err != nil {
		return userProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (s *pgStore) activeGoal(ctx context.Context, userID int) (goal, error) {
	g, err := queryOne[goal](s.db, ctx,
		"SELECT * FROM goals WHERE user_id = @userID AND is_active",
		pgx.NamedArgs{"userID": userID})
	if errors.Is(err, pgx.ErrNoRows) {
		return goal{}, errNoActiveGoal
	}
	if err != nil {
		return goal{}, fmt.Errorf("get active goal: %w", err)
	}
	return g, nil
}

func (s *pgStore) listGoals(ctx context.Context, userID int) ([]goal, error) {
	goals, err := queryMany[goal](s.db, ctx,
		"SELECT * FROM goals WHERE user_id = @userID ORDER BY created_at DESC, id DESC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// replaceActiveGoal locks the user row first so concurrent creates for the
// same user run one after the other instead of tripping the one-active-goal index.
func (s *pgStore) replaceActiveGoal(ctx context.Context, g goal) (goal, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return goal{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"userID": g.UserID}
	if _, err := tx.Exec(ctx, "SELECT id FROM users WHERE id = @userID FOR UPDATE", args); err != nil {
		return goal{}, fmt.Errorf("lock user: %w", err)
	}
	if _, err := tx.Exec(ctx, "UPDATE goals SET is_active = false WHERE user_id = @userID AND is_active", args); err != nil {
		return goal{}, fmt.Errorf("deactivate goal: %w", err)
	}

	created, err := queryOne[goal](tx, ctx,
		`INSERT INTO goals (user_id, goal_type, current_weight_kg, target_weight_kg,
		                    weekly_weight_change_goal_kg, daily_calorie_goal, is_active)
		 VALUES (@userID, @goalType, @currentWeightKg, @targetWeightKg, @weekly, @dailyCalorieGoal, true)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": g.UserID, "goalType": g.GoalType,
			"currentWeightKg": g.CurrentWeightKg, "targetWeightKg": g.TargetWeightKg,
			"weekly": g.WeeklyWeightChangeGoalKg, "dailyCalorieGoal": g.DailyCalorieGoal,
		})
	if err != nil {
		return goal{}, fmt.Errorf("insert goal: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return goal{}, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

func (s *pgStore) latestWeightKg(ctx context.Context, userID int) (*float64, error) {
	var w *float64
	err := s.db.QueryRow(ctx,
		"SELECT weight_kg FROM weight_log WHERE user_id = $1 ORDER BY date DESC LIMIT 1", userID).Scan(&w)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest weight: %w", err)
	}
	return w, nil
}
