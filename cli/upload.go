package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smartfitness/logger"
	"smartfitness/models"
)

func newUploadCmd(app *App) *cobra.Command {
	var (
		mealType       string
		interpretation string
	)

	cmd := &cobra.Command{
		Use:   "upload <image>",
		Short: "Interpret a meal photo and save it to your history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireSession(app)
			if err != nil {
				return err
			}
			imagePath := args[0]

			// Same flow as the app's camera screen: interpret first,
			// then save photo + interpretation together.
			if interpretation == "" {
				logger.Info("Interpreting photo...")
				interpretation, err = app.Photos.Interpret(imagePath)
				if err != nil {
					return err
				}
				fmt.Printf("Interpretation: %s\n", interpretation)
			}

			if err := app.Photos.Upload(user.Username, imagePath, mealType, interpretation); err != nil {
				return err
			}
			logger.Success("Photo saved (%s)", mealType)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mealType, "meal", "m", models.MealBreakfast,
		"meal type: "+strings.Join(models.MealTypes(), "|"))
	cmd.Flags().StringVarP(&interpretation, "interpretation", "i", "",
		"interpretation text, skips the interpret call")
	return cmd
}
