package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/services"
)

// ImportPeopleCmd creates the importPeople command
func ImportPeopleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importPeople <csv_path>",
		Short: "Import a people roster CSV into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			app.Logger.Debug("importPeople command", zap.String("path", path))

			result, err := services.ImportPeople(app.Ctx, app.Database, app.Logger, path)
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\n✓ People imported successfully!\n\n")
			fmt.Printf("Imported:  %d\n", result.Imported)
			fmt.Printf("Residents: %d\n", result.Residents)
			fmt.Printf("Faculty:   %d\n\n", result.Faculty)

			return nil
		},
	}
}
