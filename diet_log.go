package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validItemTypes is the set of allowed values for the diet_log_item_type enum.
// Unknown values get a 400 rather than a cryptic 500 from the DB.
var validItemTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
	"exercise":  true,
}

// currentMonday returns the Monday of the current week at midnight UTC.
func currentMonday() time.Time {
	return mondayOf(time.Now().UTC())
}

// mondayOf returns the Monday of t's week at midnight UTC. Sunday belongs to
// the week that started six days earlier.
func mondayOf(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1)).Truncate(24 * time.Hour)
}

// getDailySummary returns the day's items and totals against the active goal.
// GET /api/diet-log/daily?date=YYYY-MM-DD (defaults to today).
// Without an active goal the budget is defaultCalorieBudget and there is no
// exercise target.
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := queryMany[dietLogItem](h.db, c,
		`SELECT * FROM diet_log_items
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch items")
		return
	}
	if items == nil {
		items = []dietLogItem{}
	}

	budget, exerciseTarget, hasGoal, err := h.recs.budget(c, userID)
	if err != nil {
		log.Printf("[getDailySummary] budget for user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch goal")
		return
	}

	summary := summarizeDay(date, items, budget, exerciseTarget)
	summary.HasActiveGoal = hasGoal
	c.JSON(http.StatusOK, summary)
}

// summarizeDay totals a day's items. Exercise calories are stored positive;
// the type decides the direction (food adds, exercise subtracts).
func summarizeDay(date string, items []dietLogItem, budget, exerciseTarget int) dailySummary {
	s := dailySummary{
		Date:           date,
		CalorieBudget:  budget,
		ExerciseTarget: exerciseTarget,
		Items:          items,
	}
	for _, item := range items {
		if item.Type == "exercise" {
			s.CaloriesExercise += item.Calories
		} else {
			s.CaloriesFood += item.Calories
		}
		if item.ProteinG != nil {
			s.ProteinG += *item.ProteinG
		}
		if item.CarbsG != nil {
			s.CarbsG += *item.CarbsG
		}
		if item.FatG != nil {
			s.FatG += *item.FatG
		}
	}
	s.NetCalories = s.CaloriesFood - s.CaloriesExercise
	s.CaloriesLeft = budget - s.NetCalories
	s.ExerciseRemaining = max(exerciseTarget-s.CaloriesExercise, 0)
	return s
}

// getWeekSummary returns per-day totals for the Mon-Sun week containing
// week_start. Days with no items are included with has_data=false.
// GET /api/diet-log/week-summary?week_start=YYYY-MM-DD (defaults to this week).
func (h *Handler) getWeekSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	weekStart := currentMonday()
	if s := c.Query("week_start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = mondayOf(t)
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	budget, _, _, err := h.recs.budget(c, userID)
	if err != nil {
		log.Printf("[getWeekSummary] budget for user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch goal")
		return
	}

	rows, err := queryMany[dayTotalsRow](h.db, c,
		`SELECT
			date,
			SUM(CASE WHEN type != 'exercise' THEN calories ELSE 0 END) AS calories_food,
			SUM(CASE WHEN type  = 'exercise' THEN calories ELSE 0 END) AS calories_exercise
		 FROM diet_log_items
		 WHERE user_id = @userID AND date >= @weekStart AND date <= @weekEnd
		 GROUP BY date`,
		pgx.NamedArgs{
			"userID":    userID,
			"weekStart": weekStart.Format("2006-01-02"),
			"weekEnd":   weekEnd.Format("2006-01-02"),
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	c.JSON(http.StatusOK, fillWeek(weekStart, rows, budget))
}

// fillWeek expands the grouped rows into exactly seven days starting at weekStart.
func fillWeek(weekStart time.Time, rows []dayTotalsRow, budget int) []weekDaySummary {
	byDate := make(map[string]dayTotalsRow, len(rows))
	for _, r := range rows {
		byDate[r.Date.Format("2006-01-02")] = r
	}

	week := make([]weekDaySummary, 7)
	for i := range week {
		d := weekStart.AddDate(0, 0, i)
		day := weekDaySummary{Date: DateOnly{d}, CalorieBudget: budget}
		if r, ok := byDate[d.Format("2006-01-02")]; ok {
			day.HasData = true
			day.CaloriesFood = r.CaloriesFood
			day.CaloriesExercise = r.CaloriesExercise
		}
		day.NetCalories = day.CaloriesFood - day.CaloriesExercise
		day.CaloriesLeft = budget - day.NetCalories
		week[i] = day
	}
	return week
}

// createDietLogItem inserts a new diet log entry.
// POST /api/diet-log/items. Defaults date to today if omitted.
func (h *Handler) createDietLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createDietLogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ItemName == "" {
		apiError(c, http.StatusBadRequest, "item_name is required")
		return
	}
	if !validItemTypes[body.Type] {
		apiError(c, http.StatusBadRequest, "type must be one of: breakfast, lunch, dinner, snack, exercise")
		return
	}
	if body.Calories < 0 {
		apiError(c, http.StatusBadRequest, "calories must not be negative")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}

	item, err := queryOne[dietLogItem](h.db, c,
		`INSERT INTO diet_log_items (user_id, date, item_name, type, calories, protein_g, carbs_g, fat_g)
		 VALUES (@userID, @date, @itemName, @type, @calories, @proteinG, @carbsG, @fatG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "itemName": body.ItemName,
			"type": body.Type, "calories": body.Calories,
			"proteinG": body.ProteinG, "carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// updateDietLogItem updates an existing entry; omitted fields keep their value.
// PUT /api/diet-log/items/:id.
func (h *Handler) updateDietLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date     *string  `json:"date"`
		ItemName *string  `json:"item_name"`
		Type     *string  `json:"type"`
		Calories *int     `json:"calories"`
		ProteinG *float64 `json:"protein_g"`
		CarbsG   *float64 `json:"carbs_g"`
		FatG     *float64 `json:"fat_g"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Type != nil && !validItemTypes[*body.Type] {
		apiError(c, http.StatusBadRequest, "type must be one of: breakfast, lunch, dinner, snack, exercise")
		return
	}

	item, err := queryOne[dietLogItem](h.db, c,
		`UPDATE diet_log_items SET
			date = COALESCE(@date, date),
			item_name = COALESCE(@itemName, item_name),
			type = COALESCE(@type, type),
			calories = COALESCE(@calories, calories),
			protein_g = COALESCE(@proteinG, protein_g),
			carbs_g = COALESCE(@carbsG, carbs_g),
			fat_g = COALESCE(@fatG, fat_g),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": c.Param("id"), "userID": userID,
			"date": body.Date, "itemName": body.ItemName, "type": body.Type,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteDietLogItem removes a diet log entry. Returns 204 on success.
// DELETE /api/diet-log/items/:id.
func (h *Handler) deleteDietLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	result, err := h.db.Exec(c,
		"DELETE FROM diet_log_items WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": c.Param("id"), "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	c.Status(http.StatusNoContent)
}
