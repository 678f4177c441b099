package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule",
		Short: "Generate a schedule for the horizon",
		Long:  "Run the scheduling engine to assign residents and supervising faculty to half-day blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseHorizon(cmd, app.Cfg)
			if err != nil {
				return err
			}
			pgyLevels, _ := cmd.Flags().GetIntSlice("pgy")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			skipOptimize, _ := cmd.Flags().GetBool("skip-optimize")

			app.Logger.Debug("generateSchedule command",
				zap.Time("start", start),
				zap.Time("end", end),
				zap.Ints("pgy_levels", pgyLevels),
				zap.Bool("dry_run", dryRun),
				zap.Bool("skip_optimize", skipOptimize))

			// Call the service
			result, err := services.GenerateSchedule(
				app.Ctx,
				app.Database,
				app.Cfg,
				app.Logger,
				services.GenerateScheduleOptions{
					Start:        start,
					End:          end,
					PGYLevels:    pgyLevels,
					DryRun:       dryRun,
					SkipOptimize: skipOptimize,
				},
			)
			if err != nil {
				return fmt.Errorf("schedule generation failed: %w", err)
			}

			// Display header
			fmt.Printf("\n🎯 Schedule Generation Results\n\n")
			if result.RunID != "" {
				fmt.Printf("Run ID:      %s\n", result.RunID)
			}
			fmt.Printf("Horizon:     %s to %s\n", result.HorizonStart.Format(dateLayout), result.HorizonEnd.Format(dateLayout))
			fmt.Printf("Algorithm:   %s\n", result.Algorithm)
			fmt.Printf("Blocks:      %d\n", result.TotalBlocks)
			fmt.Printf("Complexity:  %.1f (recommended: %s)\n", result.Complexity.Score, result.Complexity.RecommendedStrategy)
			if dryRun {
				fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
			} else {
				switch result.Status {
				case model.RunSuccess:
					fmt.Printf("Status:      ✅ SUCCESS (saved to database)\n")
				case model.RunPartial:
					fmt.Printf("Status:      ⚠️  PARTIAL (saved with gaps or violations)\n")
				case model.RunFailed:
					fmt.Printf("Status:      ❌ FAILED (not saved)\n")
				}
			}
			fmt.Println()

			if result.Status == model.RunFailed {
				fmt.Println("❌ No eligible residents for this horizon; nothing was scheduled.")
				fmt.Println("💡 Check the roster is imported and the --pgy filter is not too narrow.")
				return nil
			}

			// Display compliance violations if any
			if len(result.Violations) > 0 {
				fmt.Printf("⚠️  Compliance Violations (%d):\n", len(result.Violations))
				for _, violation := range result.Violations {
					fmt.Printf("  • %s - %s: %s\n", violation.PersonID, violation.Rule, violation.Detail)
				}
				fmt.Println()
			}

			// Display coverage gaps if any
			if len(result.Gaps) > 0 {
				fmt.Printf("⚠️  Coverage Gaps (%d):\n", len(result.Gaps))
				for _, gap := range result.Gaps {
					if gap.Missing > 0 {
						fmt.Printf("  • %s %s - %s (missing %d)\n", gap.Date.Format(dateLayout), gap.Session, gap.Reason, gap.Missing)
					} else {
						fmt.Printf("  • %s %s - %s\n", gap.Date.Format(dateLayout), gap.Session, gap.Reason)
					}
				}
				fmt.Println()
			}

			printBlockTable(result)
			printLoadSummary(result)

			// Summary message
			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save the schedule.")
			} else if result.Status == model.RunSuccess {
				fmt.Println("✅ The schedule has been saved to the database.")
			} else {
				fmt.Println("⚠️  The schedule was saved with gaps or violations; review before publishing.")
			}

			return nil
		},
	}

	addHorizonFlags(cmd)
	cmd.Flags().IntSlice("pgy", nil, "PGY levels to schedule (defaults to the configured levels)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Bool("skip-optimize", false, "Keep uncoverable blocks and unavailable residents in the run")

	return cmd
}

// printBlockTable renders one row per weekday block with the assigned
// resident and faculty names
func printBlockTable(result *services.GenerateScheduleResult) {
	// ANSI color codes
	const (
		colorReset = "\033[0m"
		colorGreen = "\033[32m"
		colorRed   = "\033[31m"
		colorBold  = "\033[1m"
	)

	names := make(map[string]string, len(result.People))
	for _, person := range result.People {
		names[person.ID] = fmt.Sprintf("%s %s", person.FirstName, person.LastName)
	}

	primaries := make(map[string][]string)
	supervising := make(map[string][]string)
	for _, assignment := range result.Assignments {
		name, ok := names[assignment.PersonID]
		if !ok {
			name = assignment.PersonID
		}
		if assignment.Role == model.RolePrimary {
			primaries[assignment.BlockID] = append(primaries[assignment.BlockID], name)
		} else {
			supervising[assignment.BlockID] = append(supervising[assignment.BlockID], name)
		}
	}

	fmt.Printf("📅 Assigned Blocks:\n\n")

	// Calculate column widths
	residentColWidth := 18
	facultyColWidth := 18
	for blockID := range primaries {
		if width := len(strings.Join(primaries[blockID], ", ")); width > residentColWidth {
			residentColWidth = width
		}
	}
	for blockID := range supervising {
		if width := len(strings.Join(supervising[blockID], ", ")); width > facultyColWidth {
			facultyColWidth = width
		}
	}
	residentColWidth += 2
	facultyColWidth += 2
	dateColWidth := 12
	sessionColWidth := 9

	// Print header
	fmt.Printf("%s%-*s%-*s%-*s%s%s\n",
		colorBold,
		dateColWidth, "Date",
		sessionColWidth, "Session",
		residentColWidth, "Resident",
		"Faculty",
		colorReset)

	// Print separator
	fmt.Print(strings.Repeat("-", dateColWidth))
	fmt.Print(strings.Repeat("-", sessionColWidth))
	fmt.Print(strings.Repeat("-", residentColWidth))
	fmt.Println(strings.Repeat("-", facultyColWidth))

	// Print each weekday block
	for _, block := range result.Blocks {
		if block.IsWeekend {
			continue
		}

		fmt.Printf("%-*s%-*s", dateColWidth, block.Date.Format(dateLayout), sessionColWidth, block.Session)

		residentStr := strings.Join(primaries[block.ID], ", ")
		if residentStr == "" {
			fmt.Printf("%s%-*s%s", colorRed, residentColWidth, "—", colorReset)
		} else {
			fmt.Printf("%s%s%s%s", colorGreen, residentStr, colorReset,
				strings.Repeat(" ", residentColWidth-len(residentStr)))
		}

		facultyStr := strings.Join(supervising[block.ID], ", ")
		if facultyStr == "" {
			fmt.Printf("%s%s%s", colorRed, "—", colorReset)
		} else {
			fmt.Print(facultyStr)
		}
		fmt.Println()
	}
	fmt.Println()
}

// printLoadSummary renders the per-person assignment counts
func printLoadSummary(result *services.GenerateScheduleResult) {
	if len(result.ResidentLoad) == 0 && len(result.FacultyLoad) == 0 {
		return
	}

	fmt.Printf("ℹ️  Assignment Load:\n")
	for _, person := range result.People {
		if count, ok := result.ResidentLoad[person.ID]; ok {
			fmt.Printf("  • %s %s (PGY-%d): %d blocks\n", person.FirstName, person.LastName, person.PGYLevel, count)
		}
	}
	for _, person := range result.People {
		if count, ok := result.FacultyLoad[person.ID]; ok {
			fmt.Printf("  • %s %s (faculty): %d blocks\n", person.FirstName, person.LastName, count)
		}
	}
	fmt.Println()
}
