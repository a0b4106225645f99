package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"lg/stride-goals-api/recommend"
)

// recommendationMetrics counts computed recommendations. A nil
// *recommendationMetrics is valid and records nothing.
type recommendationMetrics struct {
	computed          *prometheus.CounterVec
	degraded          *prometheus.CounterVec
	exerciseAugmented *prometheus.CounterVec
}

// newRecommendationMetrics registers the collectors on reg.
func newRecommendationMetrics(reg prometheus.Registerer) *recommendationMetrics {
	factory := promauto.With(reg)
	return &recommendationMetrics{
		computed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stride_recommendations_total",
			Help: "Total number of computed calorie recommendations",
		}, []string{"call_site", "goal_type"}),

		degraded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stride_recommendations_degraded_total",
			Help: "Recommendations computed without a complete profile",
		}, []string{"call_site"}),

		exerciseAugmented: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stride_recommendations_exercise_augmented_total",
			Help: "Recommendations that needed extra exercise to reach the requested rate",
		}, []string{"goal_type"}),
	}
}

func (m *recommendationMetrics) observe(callSite string, goalType recommend.GoalType, completeProfile bool, r recommend.Result) {
	if m == nil {
		return
	}
	m.computed.WithLabelValues(callSite, string(goalType)).Inc()
	if !completeProfile {
		m.degraded.WithLabelValues(callSite).Inc()
	}
	if r.ExerciseCaloriesNeeded > 0 {
		m.exerciseAugmented.WithLabelValues(string(goalType)).Inc()
	}
}

// Login outcomes, used as the metrics label.
const (
	loginOK       = "ok"
	loginRejected = "rejected"
	loginError    = "error"
)

// loginMetrics counts login attempts by outcome. Nil-safe like
// recommendationMetrics.
type loginMetrics struct {
	attempts *prometheus.CounterVec
}

func newLoginMetrics(reg prometheus.Registerer) *loginMetrics {
	return &loginMetrics{
		attempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "stride_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"result"}),
	}
}

func (m *loginMetrics) observe(result string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(result).Inc()
}
