package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/services"
)

// ValidateScheduleCmd creates the validateSchedule command
func ValidateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validateSchedule",
		Short: "Check the stored schedule for a horizon against compliance rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseHorizon(cmd, app.Cfg)
			if err != nil {
				return err
			}

			app.Logger.Debug("validateSchedule command",
				zap.Time("start", start),
				zap.Time("end", end))

			result, err := services.ValidateSchedule(app.Ctx, app.Database, app.Logger, start, end)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			// Display results
			fmt.Printf("\n🔍 Schedule Validation Results\n\n")
			fmt.Printf("Horizon:     %s to %s\n", result.HorizonStart.Format(dateLayout), result.HorizonEnd.Format(dateLayout))
			fmt.Printf("Assignments: %d\n", result.Assignments)
			fmt.Printf("People:      %d\n", result.People)
			fmt.Printf("Score:       %.1f / 100\n", result.Score)
			fmt.Println()

			if result.Clean() {
				fmt.Println("✅ No compliance violations found.")
				return nil
			}

			fmt.Printf("⚠️  Compliance Violations (%d):\n", len(result.Violations))
			for _, violation := range result.Violations {
				fmt.Printf("  • %s - %s: %s\n", violation.PersonID, violation.Rule, violation.Detail)
			}
			fmt.Println()

			fmt.Println("By rule:")
			for rule, count := range result.CountByRule {
				fmt.Printf("  %-12s %d\n", rule, count)
			}
			fmt.Println()

			return nil
		},
	}

	addHorizonFlags(cmd)

	return cmd
}
