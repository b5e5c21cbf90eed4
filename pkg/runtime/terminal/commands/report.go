package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/erp-tools/costboard/pkg/models/domain"
)

type ReportCmd struct {
	opts     *Options
	duration int
	topN     int
	by       string
}

func NewReportCmd(opts *Options) *cobra.Command {
	rc := &ReportCmd{opts: opts}
	cmd := &cobra.Command{
		Use:   "report [cost-center]",
		Short: "Print a cost-center summary with period comparison",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().IntVar(&rc.duration, "duration", 30, "Period length in days, ending now")
	cmd.Flags().IntVar(&rc.topN, "top", 5, "Number of top groups to show")
	cmd.Flags().StringVar(&rc.by, "by", "group", "Ranking key: group or category")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	d, err := openDeps(rc.opts)
	if err != nil {
		return err
	}
	defer d.close()

	end := time.Now().UTC()
	period := domain.Period{Start: end.AddDate(0, 0, -rc.duration), End: end}
	center := args[0]

	summary, err := d.dashboard.GetSummary(ctx, center, period)
	if err != nil {
		return fmt.Errorf("failed to build summary for %q: %w", center, err)
	}

	top, err := d.dashboard.GetTopGroups(ctx, center, period, rc.by, rc.topN)
	if err != nil {
		return fmt.Errorf("failed to rank groups for %q: %w", center, err)
	}

	return d.reporter.HandleSummary(summary, top)
}
