package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/services"
)

// ImportTemplatesCmd creates the importTemplates command
func ImportTemplatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importTemplates <csv_path>",
		Short: "Import a rotation template CSV into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			app.Logger.Debug("importTemplates command", zap.String("path", path))

			result, err := services.ImportTemplates(app.Ctx, app.Database, app.Logger, path)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ Rotation templates imported successfully!\n\n")
			fmt.Printf("Imported: %d\n\n", result.Imported)

			return nil
		},
	}
}
