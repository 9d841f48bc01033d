package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/laban/internal/app"
)

// runApp opens the stores and launches the TUI.
func runApp(cmd *cobra.Command) error {
	b, err := openBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer b.Close()

	return app.Run(app.Options{
		Results:  b.results,
		Profiles: b.sqlite.ProfileRepo(),
	})
}
