package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/services"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// ViewRunsCmd creates the viewRuns command
func ViewRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRuns [run_id]",
		Short: "View schedule run history (or one run's assignments)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return viewOneRun(app, args[0])
			}

			runs, err := services.ViewRuns(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to view runs: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println("\nNo schedule runs recorded yet.")
				return nil
			}

			fmt.Printf("\nFound %d schedule runs (newest first):\n\n", len(runs))

			idColWidth := 38
			fmt.Printf("%-*s%-10s%-9s%-10s%-8s%-12s%s\n",
				idColWidth, "Run ID", "Status", "Algo", "Assigned", "Blocks", "Violations", "Created")
			fmt.Println(strings.Repeat("-", idColWidth+10+9+10+8+12+19))

			for _, run := range runs {
				fmt.Printf("%-*s%-10s%-9s%-10d%-8d%-12d%s\n",
					idColWidth, run.ID,
					statusBadge(run.Status),
					run.Algorithm,
					run.TotalAssigned,
					run.TotalBlocks,
					run.ViolationCount,
					run.CreatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Println()

			return nil
		},
	}
}

// viewOneRun prints one run record with its stored assignments
func viewOneRun(app *AppContext, runID string) error {
	detail, err := services.ViewRun(app.Ctx, app.Database, app.Logger, runID)
	if err != nil {
		return fmt.Errorf("failed to view run: %w", err)
	}

	run := detail.Run
	fmt.Printf("\nSchedule Run %s\n\n", run.ID)
	fmt.Printf("Status:      %s\n", statusBadge(run.Status))
	fmt.Printf("Algorithm:   %s\n", run.Algorithm)
	fmt.Printf("Horizon:     %s to %s\n", run.HorizonStart.Format(dateLayout), run.HorizonEnd.Format(dateLayout))
	fmt.Printf("Assigned:    %d across %d blocks\n", run.TotalAssigned, run.TotalBlocks)
	fmt.Printf("Violations:  %d\n", run.ViolationCount)
	fmt.Printf("Runtime:     %dms\n", run.RuntimeMS)
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()

	if len(detail.Assignments) == 0 {
		fmt.Println("No assignments recorded for this run.")
		return nil
	}

	byRole := make(map[string][]db.Assignment)
	for _, assignment := range detail.Assignments {
		byRole[assignment.Role] = append(byRole[assignment.Role], assignment)
	}

	labels := []struct{ role, heading string }{
		{"primary", "Primary"},
		{"supervising", "Supervising"},
	}
	for _, label := range labels {
		assignments := byRole[label.role]
		if len(assignments) == 0 {
			continue
		}
		fmt.Printf("%s assignments (%d):\n", label.heading, len(assignments))
		for _, assignment := range assignments {
			fmt.Printf("  • %s on block %s\n", assignment.PersonID, assignment.BlockID)
		}
		fmt.Println()
	}

	return nil
}

// statusBadge prefixes a run status with its outcome marker
func statusBadge(status string) string {
	switch status {
	case "success":
		return "✅ " + status
	case "partial":
		return "⚠️ " + status
	case "failed":
		return "❌ " + status
	default:
		return status
	}
}
