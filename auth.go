package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown so both paths
// pay for one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login verifies username/password and returns the user's auth token.
// POST /api/login (public, rate limited per client IP).
func (h *Handler) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Username == "" {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, lookupErr := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE username = @username",
		pgx.NamedArgs{"username": body.Username})
	if lookupErr != nil && !errors.Is(lookupErr, pgx.ErrNoRows) {
		h.logins.observe(loginError)
		apiError(c, http.StatusInternalServerError, "login failed")
		return
	}

	hash := dummyHash
	if lookupErr == nil {
		hash = []byte(u.Password)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(body.Password)); err != nil || lookupErr != nil {
		log.Printf("[login] rejected %q from %s", body.Username, c.ClientIP())
		h.logins.observe(loginRejected)
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.logins.observe(loginOK)
	c.JSON(http.StatusOK, gin.H{"token": u.AuthToken, "user_id": u.ID})
}

// authMiddleware resolves "Authorization: Bearer <token>" to a user and stores
// its id under "user_id" for the handlers.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || token == "" {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		var userID int
		err := h.db.QueryRow(c, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&userID)
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		if err != nil {
			log.Printf("[authMiddleware] token lookup: %v", err)
			apiError(c, http.StatusInternalServerError, "failed to authenticate")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
