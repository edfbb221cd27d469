package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"smartfitness/models"
	"smartfitness/services"
)

// App bundles the services the commands operate on. Everything is
// constructor-injected from main so commands stay testable.
type App struct {
	Auth            *services.AuthService
	Gallery         *services.GalleryService
	Photos          *services.PhotoService
	Recommendations *services.RecommendationService
}

// Execute runs the root command against the wired application.
func Execute(app *App) error {
	return newRootCmd(app).Execute()
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "smartfitness",
		Short:         "SmartFitness nutrition assistant client",
		Long:          "Terminal client for the SmartFitness nutrition assistant: log meal photos, browse your dated history and get daily recommendations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newWhoamiCmd(app),
		newUploadCmd(app),
		newGalleryCmd(app),
		newDetailsCmd(app),
		newDeleteDayCmd(app),
		newRecommendCmd(app),
	)
	return root
}

// requireSession returns the logged-in user or an instruction to log in.
func requireSession(app *App) (*models.User, error) {
	user := app.Auth.Current()
	if user == nil {
		return nil, errors.New(`not logged in, run "smartfitness login" first`)
	}
	return user, nil
}
