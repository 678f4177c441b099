package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/services"
)

// ImportAbsencesCmd creates the importAbsences command
func ImportAbsencesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importAbsences <csv_path>",
		Short: "Import an absence CSV into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			app.Logger.Debug("importAbsences command", zap.String("path", path))

			result, err := services.ImportAbsences(app.Ctx, app.Database, app.Logger, path)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Absences imported successfully!\n\n")
			fmt.Printf("Imported: %d\n", result.Imported)
			fmt.Printf("People:   %d\n\n", result.People)

			return nil
		},
	}
}
