// CLI tool to create a user with bcrypt-hashed password and a biometric profile.
// Height, date of birth and gender are optional at prompt time; leave them
// blank and the user gets degraded recommendations until they fill them in.
// Usage: go run ./cmd/create-user (from the repo root)
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"lg/stride-goals-api/recommend"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string) string {
		fmt.Print(label)
		s, _ := reader.ReadString('\n')
		return strings.TrimSpace(s)
	}

	username := prompt("Username: ")
	email := prompt("Email: ")
	password := prompt("Password: ")
	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Username and password are required")
		os.Exit(1)
	}

	profile, err := parseProfile(
		prompt("Height cm (optional): "),
		prompt("Date of birth YYYY-MM-DD (optional): "),
		prompt("Gender (optional): "),
		prompt("Activity level [moderate]: "),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid profile: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	authToken := uuid.New().String()

	var userID int
	err = conn.QueryRow(context.Background(),
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		username, email, string(hash), authToken,
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	_, err = conn.Exec(context.Background(),
		`INSERT INTO user_profiles (user_id, height_cm, date_of_birth, gender, activity_level)
		 VALUES (@userID, @heightCM, @dob, @gender, @activity)`,
		pgx.NamedArgs{
			"userID":   userID,
			"heightCM": profile.heightCM,
			"dob":      profile.dateOfBirth,
			"gender":   profile.gender,
			"activity": profile.activityLevel,
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", userID)
	fmt.Printf("  Username:   %s\n", username)
	fmt.Printf("  Auth Token: %s\n", authToken)
}

type profileInput struct {
	heightCM      *float64
	dateOfBirth   *string
	gender        *string
	activityLevel string
}

// parseProfile validates the optional prompt answers. Blank means NULL,
// except activity level which defaults to moderate.
func parseProfile(height, dob, gender, activity string) (profileInput, error) {
	p := profileInput{activityLevel: string(recommend.ActivityModerate)}

	if height != "" {
		h, err := strconv.ParseFloat(height, 64)
		if err != nil || h <= 0 || h > 300 {
			return p, fmt.Errorf("height must be a number between 0 and 300, got %q", height)
		}
		p.heightCM = &h
	}
	if dob != "" {
		if _, err := time.Parse("2006-01-02", dob); err != nil {
			return p, fmt.Errorf("date of birth must be YYYY-MM-DD, got %q", dob)
		}
		p.dateOfBirth = &dob
	}
	if gender != "" {
		g, err := recommend.ParseGender(gender)
		if err != nil {
			return p, err
		}
		s := string(g)
		p.gender = &s
	}
	if activity != "" {
		a, err := recommend.ParseActivityLevel(activity)
		if err != nil {
			return p, err
		}
		p.activityLevel = string(a)
	}
	return p, nil
}
