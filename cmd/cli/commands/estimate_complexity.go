package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/services"
)

// EstimateComplexityCmd creates the estimateComplexity command
func EstimateComplexityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimateComplexity",
		Short: "Size the scheduling problem for a horizon without solving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseHorizon(cmd, app.Cfg)
			if err != nil {
				return err
			}
			pgyLevels, _ := cmd.Flags().GetIntSlice("pgy")

			app.Logger.Debug("estimateComplexity command",
				zap.Time("start", start),
				zap.Time("end", end),
				zap.Ints("pgy_levels", pgyLevels))

			result, err := services.EstimateComplexity(app.Ctx, app.Database, app.Cfg, app.Logger, start, end, pgyLevels)
			if err != nil {
				return fmt.Errorf("complexity estimation failed: %w", err)
			}

			// Display results
			fmt.Printf("\n📐 Scheduling Complexity Estimate\n\n")
			fmt.Printf("Horizon:     %s to %s (%d days)\n",
				result.HorizonStart.Format(dateLayout),
				result.HorizonEnd.Format(dateLayout),
				result.Summary.HorizonDays)
			fmt.Printf("Residents:   %d\n", result.Summary.Residents)
			fmt.Printf("Blocks:      %d\n", result.Summary.Blocks)
			fmt.Printf("Templates:   %d\n", result.Summary.Templates)
			fmt.Printf("Sparsity:    %.2f\n", result.Summary.Sparsity)
			fmt.Println()

			fmt.Printf("Score:       %.1f / 100\n", result.Report.Score)
			fmt.Printf("Variables:   %d\n", result.Report.Variables)
			fmt.Printf("Constraints: %d\n", result.Report.Constraints)
			fmt.Printf("Recommended: %s\n", result.Report.RecommendedStrategy)
			if result.Report.AlternateRecommended {
				fmt.Println("\n💡 This problem is large; consider a more capable solver strategy.")
			}
			fmt.Println()

			return nil
		},
	}

	addHorizonFlags(cmd)
	cmd.Flags().IntSlice("pgy", nil, "PGY levels to include (defaults to the configured levels)")

	return cmd
}
