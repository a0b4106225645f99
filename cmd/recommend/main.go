// CLI tool to compute a calorie recommendation without a database or server.
// Usage: go run ./cmd/recommend --weight 75 --target 70 --height 175 --age 30 --gender male
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	"lg/stride-goals-api/recommend"
)

type options struct {
	weightKg float64
	targetKg float64
	weekly   float64
	goal     string
	heightCM float64
	age      int
	gender   string
	activity string
	asJSON   bool
	verbose  bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "recommend",
		Short:         "Compute a daily calorie goal and exercise split",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, bio, err := buildInputs(cmd, opts)
			if err != nil {
				return err
			}
			r, plan := recommend.ComputePlan(req, bio)
			if opts.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			printResult(out, r, plan, opts.verbose)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.weightKg, "weight", 0, "Current weight in kg (required)")
	f.Float64Var(&opts.targetKg, "target", 0, "Target weight in kg (required)")
	f.Float64Var(&opts.weekly, "weekly", 0, "Weekly weight change in kg, negative for loss (default depends on --goal)")
	f.StringVar(&opts.goal, "goal", string(recommend.GoalWeightLoss), "Goal type: weight_loss, weight_gain or maintain")
	f.Float64Var(&opts.heightCM, "height", 0, "Height in cm")
	f.IntVar(&opts.age, "age", 0, "Age in years")
	f.StringVar(&opts.gender, "gender", "", "Gender: male, female or other")
	f.StringVar(&opts.activity, "activity", string(recommend.ActivityModerate), "Activity level: sedentary, light, moderate, active or very_active")
	f.BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	f.BoolVar(&opts.verbose, "verbose", false, "Also print planner intermediates")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// buildInputs validates flags the same way the HTTP API validates bodies.
// Unset optional biometrics stay nil so the degraded BMR path applies.
func buildInputs(cmd *cobra.Command, opts options) (recommend.GoalRequest, recommend.Biometrics, error) {
	var req recommend.GoalRequest
	var bio recommend.Biometrics

	goal, err := recommend.ParseGoalType(opts.goal)
	if err != nil {
		return req, bio, err
	}
	if opts.weightKg <= 0 || opts.weightKg > 1000 {
		return req, bio, errors.New("--weight must be between 0 and 1000")
	}
	if opts.targetKg <= 0 || opts.targetKg > 1000 {
		return req, bio, errors.New("--target must be between 0 and 1000")
	}

	req = recommend.GoalRequest{
		CurrentWeightKg: opts.weightKg,
		TargetWeightKg:  opts.targetKg,
		GoalType:        goal,
	}
	if cmd.Flags().Changed("weekly") {
		w := opts.weekly
		switch {
		case math.IsNaN(w):
			return req, bio, errors.New("--weekly must be a number")
		case goal == recommend.GoalWeightLoss && w > 0:
			return req, bio, errors.New("--weekly must be negative or zero for weight_loss")
		case goal == recommend.GoalWeightGain && w < 0:
			return req, bio, errors.New("--weekly must be positive or zero for weight_gain")
		case w < -1.5 || w > 1.5:
			return req, bio, errors.New("--weekly must be between -1.5 and 1.5")
		}
		req.WeeklyWeightChangeGoalKg = &w
	}

	if cmd.Flags().Changed("height") {
		h := opts.heightCM
		bio.HeightCM = &h
	}
	if cmd.Flags().Changed("age") {
		a := opts.age
		bio.AgeYears = &a
	}
	if opts.gender != "" {
		g, err := recommend.ParseGender(opts.gender)
		if err != nil {
			return req, bio, err
		}
		bio.Gender = &g
	}
	level, err := recommend.ParseActivityLevel(opts.activity)
	if err != nil {
		return req, bio, err
	}
	bio.ActivityLevel = &level

	return req, bio, nil
}

func printResult(out io.Writer, r recommend.Result, plan recommend.Plan, verbose bool) {
	fmt.Fprintf(out, "Daily calorie goal:  %d kcal\n", r.DailyCalorieGoal)
	fmt.Fprintf(out, "BMR:                 %d kcal\n", r.BMR)
	fmt.Fprintf(out, "TDEE:                %d kcal\n", r.TDEE)
	fmt.Fprintf(out, "Daily activity:      %d kcal\n", r.DailyActivity)
	fmt.Fprintf(out, "Calories to burn:    %d kcal\n", r.CaloriesToBurn)
	fmt.Fprintf(out, "Deficit:             %d kcal\n", r.Deficit)
	fmt.Fprintf(out, "Exercise needed:     %d kcal\n", r.ExerciseCaloriesNeeded)
	if verbose {
		fmt.Fprintf(out, "Daily adjustment:    %.1f kcal\n", plan.DailyAdjustment)
		fmt.Fprintf(out, "Ideal deficit:       %.1f kcal\n", plan.IdealDeficit)
		fmt.Fprintf(out, "Actual deficit:      %d kcal\n", plan.ActualDeficit)
	}
	fmt.Fprintf(out, "\n%s\n", r.Explanation)
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
