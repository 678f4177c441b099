package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/internal/config"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

const dateLayout = "2006-01-02"

// addHorizonFlags registers the --start and --end flags shared by the
// schedule commands
func addHorizonFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "Horizon start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().String("end", "", "Horizon end date (YYYY-MM-DD, defaults to start plus the configured horizon)")
}

// parseHorizon resolves the --start and --end flags. Unset flags fall back to
// today and the configured default horizon length.
func parseHorizon(cmd *cobra.Command, cfg *config.Config) (time.Time, time.Time, error) {
	start := model.Date(time.Now())
	if value, _ := cmd.Flags().GetString("start"); value != "" {
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date %q: %w", value, err)
		}
		start = parsed
	}

	end := start.AddDate(0, 0, cfg.DefaultHorizonDays-1)
	if value, _ := cmd.Flags().GetString("end"); value != "" {
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date %q: %w", value, err)
		}
		end = parsed
	}

	return start, end, nil
}
