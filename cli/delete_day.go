package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"smartfitness/logger"
	"smartfitness/models"
)

func newDeleteDayCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-day <date>",
		Short: "Delete all photos and recommendations of one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireSession(app)
			if err != nil {
				return err
			}

			day, err := app.Gallery.DayDetail(user.Username, args[0])
			var notFound *models.NotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("no photos found for %s", args[0])
			}
			if err != nil {
				return err
			}

			if !yes {
				prompt := fmt.Sprintf("Delete all photos and recommendations of %s? [y/N] ", day.DateLabel)
				ok, err := confirm(cmd.InOrStdin(), prompt)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			msg, err := app.Photos.DeleteDay(user.Username, day.ISODate(time.Local))
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "Day deleted"
			}
			logger.Success("%s", msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm prints prompt and reads a yes/no answer from in. A closed input
// (EOF) counts as a decline; any other read failure is reported.
func confirm(in io.Reader, prompt string) (bool, error) {
	fmt.Print(prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
