package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"smartfitness/models"
)

func newGalleryCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse your photo history grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireSession(app)
			if err != nil {
				return err
			}

			var days []models.DayAggregate
			if refresh {
				days, err = app.Gallery.Refresh(user.Username)
			} else {
				days, err = app.Gallery.Load(user.Username)
			}
			if err != nil {
				return err
			}

			if len(days) == 0 {
				fmt.Println("No history yet. Upload your first photo!")
				return nil
			}
			for _, day := range days {
				printDayCard(day)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "force a refetch from the service")
	return cmd
}

func printDayCard(day models.DayAggregate) {
	color.New(color.Bold).Println(day.DateLabel)

	meals := make([]string, 0, len(day.Photos))
	for _, p := range day.Photos {
		meals = append(meals, p.MealType)
	}
	fmt.Printf("  %d photos - %s\n", len(day.Photos), strings.Join(meals, ", "))
	if day.Recommendation != "" {
		fmt.Printf("  💡 %s\n", day.Recommendation)
	}
	fmt.Println()
}

func newDetailsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "details <date>",
		Short: "Show every photo and the recommendation for one day",
		Long:  "Show one day of your history. <date> is the label shown by the gallery command, e.g. 1/2/2024.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireSession(app)
			if err != nil {
				return err
			}

			day, err := app.Gallery.DayDetail(user.Username, args[0])
			var notFound *models.NotFoundError
			if errors.As(err, &notFound) {
				fmt.Printf("No photos for %s.\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}

			color.New(color.Bold).Println(day.DateLabel)
			for _, p := range day.Photos {
				fmt.Printf("\n[%s] %s\n", p.MealType, p.Timestamp.Format("15:04"))
				fmt.Printf("  %s\n", p.ImageURL)
				if p.Interpretation != "" {
					fmt.Printf("  %s\n", p.Interpretation)
				}
			}
			if len(day.RecommendationLines) > 0 || day.Recommendation != "" {
				fmt.Println()
				color.New(color.Bold).Println("Recommendation")
				for _, line := range day.RecommendationLines {
					fmt.Printf("  - %s\n", line)
				}
				if day.Recommendation != "" {
					fmt.Printf("  💡 %s\n", day.Recommendation)
				}
			}
			return nil
		},
	}
}
