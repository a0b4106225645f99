package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lg/stride-goals-api/recommend"
)

const (
	activityLevelMessage = "activityLevel must be one of: sedentary, light, moderate, active, very_active"
	goalTypeMessage      = "goalType must be one of: weight_loss, weight_gain, maintain"

	maxWeightKg          = 1000
	maxWeeklyChangeKg    = 1.5
	defaultCalorieBudget = 2000
)

// Call sites, used as the metrics label.
const (
	callSiteRead    = "goal_read"
	callSiteCreate  = "goal_create"
	callSitePreview = "calories_preview"
	callSiteBudget  = "diet_budget"
)

// recommendationService is the I/O shell around recommend.Compute: it looks
// up the profile, runs the pure engine and persists goals. It holds no
// per-request state.
type recommendationService struct {
	profiles profileStore
	goals    goalStore
	metrics  *recommendationMetrics
	now      func() time.Time
}

func newRecommendationService(profiles profileStore, goals goalStore, metrics *recommendationMetrics) *recommendationService {
	return &recommendationService{profiles: profiles, goals: goals, metrics: metrics, now: time.Now}
}

// biometrics resolves the user's profile, with an optional per-request
// activity level override.
func (s *recommendationService) biometrics(ctx context.Context, userID int, activity *recommend.ActivityLevel) (recommend.Biometrics, error) {
	p, err := s.profiles.getProfile(ctx, userID)
	if err != nil {
		return recommend.Biometrics{}, err
	}
	b := p.biometrics(s.now())
	if activity != nil {
		b.ActivityLevel = activity
	}
	return b, nil
}

func (s *recommendationService) compute(callSite string, req recommend.GoalRequest, b recommend.Biometrics) recommend.Result {
	r := recommend.Compute(req, b)
	s.metrics.observe(callSite, req.GoalType, b.HasCompleteProfile(), r)
	return r
}

// preview computes a recommendation without persisting anything.
func (s *recommendationService) preview(ctx context.Context, userID int, req recommend.GoalRequest, activity *recommend.ActivityLevel) (recommend.Result, error) {
	b, err := s.biometrics(ctx, userID, activity)
	if err != nil {
		return recommend.Result{}, err
	}
	return s.compute(callSitePreview, req, b), nil
}

// create computes the recommendation and stores the goal as the user's only
// active one.
func (s *recommendationService) create(ctx context.Context, userID int, req recommend.GoalRequest, activity *recommend.ActivityLevel) (goalResponse, error) {
	b, err := s.biometrics(ctx, userID, activity)
	if err != nil {
		return goalResponse{}, err
	}
	r := s.compute(callSiteCreate, req, b)

	g, err := s.goals.replaceActiveGoal(ctx, goal{
		UserID:                   userID,
		GoalType:                 string(req.GoalType),
		CurrentWeightKg:          req.CurrentWeightKg,
		TargetWeightKg:           req.TargetWeightKg,
		WeeklyWeightChangeGoalKg: req.ResolvedWeeklyChange(),
		DailyCalorieGoal:         r.DailyCalorieGoal,
	})
	if err != nil {
		return goalResponse{}, err
	}
	return goalResponse{Goal: g, Recommendation: r}, nil
}

// active recomputes the recommendation for the stored active goal.
func (s *recommendationService) active(ctx context.Context, userID int) (goalResponse, error) {
	g, err := s.goals.activeGoal(ctx, userID)
	if err != nil {
		return goalResponse{}, err
	}
	b, err := s.biometrics(ctx, userID, nil)
	if err != nil {
		return goalResponse{}, err
	}

	req, err := g.request()
	if err != nil {
		return goalResponse{}, err
	}
	r := s.compute(callSiteRead, req, b)

	latest, err := s.goals.latestWeightKg(ctx, userID)
	if err != nil {
		// Display-only field; the goal itself is still useful.
		log.Printf("[recommendationService.active] latest weight for user %d: %v", userID, err)
	}
	return goalResponse{Goal: g, Recommendation: r, LatestWeightKg: latest}, nil
}

// budget returns the active goal's stored daily calorie goal and the exercise
// needed on top of eating exactly that to reach the goal's deficit, against
// the TDEE of the current profile. ok is false when the user has no active goal.
func (s *recommendationService) budget(ctx context.Context, userID int) (calories, exercise int, ok bool, err error) {
	g, err := s.goals.activeGoal(ctx, userID)
	if errors.Is(err, errNoActiveGoal) {
		return defaultCalorieBudget, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	req, err := g.request()
	if err != nil {
		return 0, 0, false, err
	}
	b, err := s.biometrics(ctx, userID, nil)
	if err != nil {
		return 0, 0, false, err
	}

	r, plan := recommend.ComputePlan(req, b)
	s.metrics.observe(callSiteBudget, req.GoalType, b.HasCompleteProfile(), r)

	exercise = recommend.ExerciseShortfall(req.GoalType, plan.IdealDeficit, r.TDEE, g.DailyCalorieGoal)
	return g.DailyCalorieGoal, exercise, true, nil
}

// request rebuilds the engine input from a stored goal.
func (g goal) request() (recommend.GoalRequest, error) {
	goalType, err := recommend.ParseGoalType(g.GoalType)
	if err != nil {
		return recommend.GoalRequest{}, fmt.Errorf("goal %d: %w", g.ID, err)
	}
	weekly := g.WeeklyWeightChangeGoalKg
	return recommend.GoalRequest{
		CurrentWeightKg:          g.CurrentWeightKg,
		TargetWeightKg:           g.TargetWeightKg,
		WeeklyWeightChangeGoalKg: &weekly,
		GoalType:                 goalType,
	}, nil
}

/* ─── Request validation ─────────────────────────────────────────────── */

// bindGoalRequest parses and validates a goal body. On failure it has already
// written the 400 response.
func bindGoalRequest(c *gin.Context) (recommend.GoalRequest, *recommend.ActivityLevel, bool) {
	var body goalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return recommend.GoalRequest{}, nil, false
	}
	if msg := validateGoalRequest(body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return recommend.GoalRequest{}, nil, false
	}

	req := recommend.GoalRequest{
		CurrentWeightKg:          *body.CurrentWeightKg,
		TargetWeightKg:           *body.TargetWeightKg,
		WeeklyWeightChangeGoalKg: body.WeeklyWeightChangeGoalKg,
		GoalType:                 recommend.GoalType(body.GoalType),
	}
	var activity *recommend.ActivityLevel
	if body.ActivityLevel != nil {
		a := recommend.ActivityLevel(*body.ActivityLevel)
		activity = &a
	}
	return req, activity, true
}

// validateGoalRequest returns the first problem with body, or "".
func validateGoalRequest(body goalRequest) string {
	if body.CurrentWeightKg == nil {
		return "currentWeightKg is required"
	}
	if body.TargetWeightKg == nil {
		return "targetWeightKg is required"
	}
	if !inWeightRange(*body.CurrentWeightKg) {
		return fmt.Sprintf("currentWeightKg must be between 0 and %d", maxWeightKg)
	}
	if !inWeightRange(*body.TargetWeightKg) {
		return fmt.Sprintf("targetWeightKg must be between 0 and %d", maxWeightKg)
	}

	goalType, err := recommend.ParseGoalType(body.GoalType)
	if err != nil {
		return goalTypeMessage
	}
	if body.ActivityLevel != nil {
		if _, err := recommend.ParseActivityLevel(*body.ActivityLevel); err != nil {
			return activityLevelMessage
		}
	}

	if w := body.WeeklyWeightChangeGoalKg; w != nil {
		switch {
		case math.IsNaN(*w) || math.Abs(*w) > maxWeeklyChangeKg:
			return fmt.Sprintf("weeklyWeightChangeGoalKg must be between -%.1f and %.1f", maxWeeklyChangeKg, maxWeeklyChangeKg)
		case goalType == recommend.GoalWeightLoss && *w > 0:
			return "weeklyWeightChangeGoalKg must be negative or zero for weight_loss"
		case goalType == recommend.GoalWeightGain && *w < 0:
			return "weeklyWeightChangeGoalKg must be positive or zero for weight_gain"
		}
	}
	return ""
}

func inWeightRange(kg float64) bool {
	return kg > 0 && kg <= maxWeightKg
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// getActiveGoal returns the active goal with its recomputed recommendation.
// GET /api/goals/active. 404 when the user has no active goal.
func (h *Handler) getActiveGoal(c *gin.Context) {
	userID := c.GetInt("user_id")

	resp, err := h.recs.active(c, userID)
	if errors.Is(err, errNoActiveGoal) {
		apiError(c, http.StatusNotFound, "no active goal")
		return
	}
	if err != nil {
		log.Printf("[getActiveGoal] user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch goal")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listGoals returns all of the user's goals, newest first.
// GET /api/goals. Returns an empty array (not null) when there are none.
func (h *Handler) listGoals(c *gin.Context) {
	userID := c.GetInt("user_id")

	goals, err := h.recs.goals.listGoals(c, userID)
	if err != nil {
		log.Printf("[listGoals] user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch goals")
		return
	}
	if goals == nil {
		goals = []goal{}
	}

	c.JSON(http.StatusOK, goals)
}

// createGoal stores a new active goal, replacing the previous one.
// POST /api/goals. Responds 201 with the goal and its recommendation.
func (h *Handler) createGoal(c *gin.Context) {
	userID := c.GetInt("user_id")

	req, activity, ok := bindGoalRequest(c)
	if !ok {
		return
	}

	resp, err := h.recs.create(c, userID, req, activity)
	if err != nil {
		log.Printf("[createGoal] user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to create goal")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// previewCalories computes a recommendation without saving it.
// POST /api/goals/calories.
func (h *Handler) previewCalories(c *gin.Context) {
	userID := c.GetInt("user_id")

	req, activity, ok := bindGoalRequest(c)
	if !ok {
		return
	}

	r, err := h.recs.preview(c, userID, req, activity)
	if err != nil {
		log.Printf("[previewCalories] user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to compute recommendation")
		return
	}

	c.JSON(http.StatusOK, r)
}
