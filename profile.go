package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lg/stride-goals-api/recommend"
)

const defaultActivityLevel = string(recommend.ActivityModerate)

// ageOn returns the age in whole years at now. ok is false for implausible
// ages (DOB in the future, or over 130 years ago).
func ageOn(dob time.Time, now time.Time) (age int, ok bool) {
	age = now.Year() - dob.Year()
	if now.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	if age < 1 || age > 130 {
		return 0, false
	}
	return age, true
}

// biometrics converts a stored profile into engine input. Values that do not
// parse are treated as missing rather than rejected.
func (p userProfile) biometrics(now time.Time) recommend.Biometrics {
	var b recommend.Biometrics
	if p.HeightCM != nil && *p.HeightCM > 0 {
		h := *p.HeightCM
		b.HeightCM = &h
	}
	if p.DateOfBirth != nil && !p.DateOfBirth.IsZero() {
		if age, ok := ageOn(p.DateOfBirth.Time, now); ok {
			b.AgeYears = &age
		}
	}
	if p.Gender != nil {
		if g, err := recommend.ParseGender(*p.Gender); err == nil {
			b.Gender = &g
		}
	}
	if a, err := recommend.ParseActivityLevel(p.ActivityLevel); err == nil {
		b.ActivityLevel = &a
	}
	return b
}

// withComputed fills the computed-only fields.
func (p userProfile) withComputed(now time.Time) userProfile {
	b := p.biometrics(now)
	p.Age = b.AgeYears
	p.Complete = b.HasCompleteProfile()
	return p
}

// getProfile returns the authenticated user's biometric profile.
// GET /api/profile. Users without a row get an empty profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := h.recs.profiles.getProfile(c, userID)
	if err != nil {
		log.Printf("[getProfile] user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, p.withComputed(time.Now()))
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Pointer fields distinguish "not provided" from zero.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.HeightCM == nil && body.DateOfBirth == nil && body.Gender == nil && body.ActivityLevel == nil {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	if body.HeightCM != nil && (*body.HeightCM <= 0 || *body.HeightCM > 300) {
		apiError(c, http.StatusBadRequest, "height_cm must be between 0 and 300")
		return
	}
	if body.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *body.DateOfBirth)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date_of_birth, expected YYYY-MM-DD")
			return
		}
		if _, ok := ageOn(dob, time.Now()); !ok {
			apiError(c, http.StatusBadRequest, "date_of_birth gives an implausible age")
			return
		}
	}
	if body.Gender != nil {
		g, err := recommend.ParseGender(*body.Gender)
		if err != nil {
			apiError(c, http.StatusBadRequest, "gender must be one of: male, female, other")
			return
		}
		normalized := string(g)
		body.Gender = &normalized
	}
	// An unknown level would silently fall back to moderate on every future
	// recommendation, so reject it here.
	if body.ActivityLevel != nil {
		if _, err := recommend.ParseActivityLevel(*body.ActivityLevel); err != nil {
			apiError(c, http.StatusBadRequest, activityLevelMessage)
			return
		}
	}

	p, err := h.recs.profiles.updateProfile(c, userID, body)
	if err != nil {
		log.Printf("[patchProfile] user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, p.withComputed(time.Now()))
}
