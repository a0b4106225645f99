package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const weightRangeMessage = "weight_kg must be between 0 and 1000"

func validWeightKg(kg float64) bool {
	return kg > 0 && kg <= maxWeightKg
}

// parseDateRange reads the required start/end query params.
// On failure it has already written the 400 response.
func parseDateRange(c *gin.Context) (start, end string, ok bool) {
	start = c.Query("start")
	end = c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return "", "", false
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return "", "", false
	}
	return start, end, true
}

// getWeightLog returns weight entries for the authenticated user within [start, end].
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	entries, err := queryMany[weightEntry](h.db, c,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}
	if entries == nil {
		entries = []weightEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// upsertWeightEntry creates or updates the weight entry for the given date.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_kg": 82.4 }.
// Posting the same date again overwrites the weight (UNIQUE(user_id, date)).
func (h *Handler) upsertWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date     string  `json:"date"`
		WeightKg float64 `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if !validWeightKg(body.WeightKg) {
		apiError(c, http.StatusBadRequest, weightRangeMessage)
		return
	}

	entry, err := queryOne[weightEntry](h.db, c,
		`INSERT INTO weight_log (user_id, date, weight_kg)
		 VALUES (@userID, @date, @weightKg)
		 ON CONFLICT (user_id, date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": body.Date, "weightKg": body.WeightKg})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save weight entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// updateWeightEntry partially updates an existing weight entry.
// PUT /api/weight-log/:id. Omitted fields keep their current values.
func (h *Handler) updateWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Date     *string  `json:"date"`
		WeightKg *float64 `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date != nil {
		if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}
	if body.WeightKg != nil && !validWeightKg(*body.WeightKg) {
		apiError(c, http.StatusBadRequest, weightRangeMessage)
		return
	}

	entry, err := queryOne[weightEntry](h.db, c,
		`UPDATE weight_log SET
			date      = COALESCE(@date, date),
			weight_kg = COALESCE(@weightKg, weight_kg)
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID, "date": body.Date, "weightKg": body.WeightKg})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "weight entry not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update weight entry")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteWeightEntry removes a weight entry. Returns 204, or 404 if the entry
// does not exist or belongs to someone else.
// DELETE /api/weight-log/:id.
func (h *Handler) deleteWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	result, err := h.db.Exec(c,
		"DELETE FROM weight_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": c.Param("id"), "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete weight entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
