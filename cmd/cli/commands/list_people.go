package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/services"
)

// ListPeopleCmd creates the listPeople command
func ListPeopleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPeople",
		Short: "List the stored roster of residents and faculty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ListPeople(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to list people: %w", err)
			}

			// Print roster
			fmt.Printf("\nFound %d residents:\n\n", len(result.Residents))
			for _, person := range result.Residents {
				fmt.Printf("- %s %s (%s) - PGY-%d%s\n",
					person.FirstName,
					person.LastName,
					person.ID,
					person.PGYLevel,
					inactiveSuffix(person),
				)
			}

			fmt.Printf("\nFound %d faculty:\n\n", len(result.Faculty))
			for _, person := range result.Faculty {
				role := person.Role
				if role == "" {
					role = "faculty"
				}
				fmt.Printf("- %s %s (%s) - %s%s\n",
					person.FirstName,
					person.LastName,
					person.ID,
					role,
					inactiveSuffix(person),
				)
			}

			return nil
		},
	}
}

func inactiveSuffix(person model.Person) string {
	if person.Active {
		return ""
	}
	return " [inactive]"
}
