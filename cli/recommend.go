package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"smartfitness/logger"
	"smartfitness/models"
)

func newRecommendCmd(app *App) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate today's nutrition recommendation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireSession(app)
			if err != nil {
				return err
			}

			rec, err := app.Recommendations.Request(user.Username)
			var notFound *models.NotFoundError
			if errors.As(err, &notFound) {
				fmt.Println("No photos to analyze yet. Upload a meal photo first.")
				return nil
			}
			if err != nil {
				return err
			}

			for _, line := range rec.RecommendationLines {
				fmt.Printf("  - %s\n", line)
			}
			color.New(color.Bold).Printf("💡 %s\n", rec.FinalRecommendation)

			if !save {
				fmt.Println("\nRun with --save to keep this recommendation.")
				return nil
			}
			if err := app.Recommendations.Save(user.Username, rec); err != nil {
				return err
			}
			logger.Success("Recommendation saved")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the recommendation to your history")
	return cmd
}
