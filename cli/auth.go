package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"smartfitness/logger"
	"smartfitness/models"
	"smartfitness/utils"
)

func newLoginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Login(args[0], password); err != nil {
				return err
			}
			logger.Success("Logged in as %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Auth.Logout()
			logger.Success("Logged out")
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var (
		password  string
		email     string
		weightKg  float64
		heightCm  float64
		sex       string
		birthDate string
	)

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sex == "" {
				return errors.New("--sex is required")
			}

			profile := models.RegisterRequest{
				Username: args[0],
				Password: password,
				Email:    email,
				Sex:      sex,
			}
			if weightKg > 0 {
				profile.WeightKg = &weightKg
			}
			if heightCm > 0 {
				profile.HeightCm = &heightCm
			}
			if birthDate != "" {
				birth, err := time.Parse("2006-01-02", birthDate)
				if err != nil {
					return fmt.Errorf("invalid --birth-date %q, expected YYYY-MM-DD", birthDate)
				}
				age := utils.AgeFromBirthDate(birth, time.Now())
				profile.Age = &age
			}

			if err := app.Auth.Register(profile); err != nil {
				return err
			}
			logger.Success("Account created, logged in as %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().Float64Var(&weightKg, "weight", 0, "weight in kilograms")
	cmd.Flags().Float64Var(&heightCm, "height", 0, "height in centimeters")
	cmd.Flags().StringVar(&sex, "sex", "", "sex (as accepted by the service)")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date (YYYY-MM-DD), used to derive age")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireSession(app)
			if err != nil {
				return err
			}

			fmt.Printf("Username:     %s\n", user.Username)
			if user.Email != "" {
				fmt.Printf("Email:        %s\n", user.Email)
			}
			fmt.Printf("Account type: %s\n", user.Type)
			if user.Sex != "" {
				fmt.Printf("Sex:          %s\n", user.Sex)
			}
			if user.Age != nil {
				fmt.Printf("Age:          %d\n", *user.Age)
			}
			if user.WeightKg != nil {
				fmt.Printf("Weight:       %.1f kg\n", *user.WeightKg)
			}
			if user.HeightCm != nil {
				fmt.Printf("Height:       %.1f cm\n", *user.HeightCm)
			}
			if user.WeightKg != nil && user.HeightCm != nil {
				bmi, err := utils.CalculateBMI(*user.HeightCm, *user.WeightKg)
				if err == nil {
					fmt.Printf("BMI:          %.1f (%s)\n", bmi, utils.BMICategory(bmi))
				}
			}
			return nil
		},
	}
}
