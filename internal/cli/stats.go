package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vitalog/vita/internal/daemon"
	"github.com/vitalog/vita/internal/domain"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show derived metrics per domain",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	snap := d.Tracker.Snapshot()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tTODAY\tTOTAL\tENTRIES\tSTREAK\tBEST DAY")
	for _, dom := range domain.Domains() {
		fmt.Fprintf(w, "%s\t%g %s\t%g\t%g\t%g days\t%g\n",
			dom,
			snap[domain.TodayKey(dom)], dom.Unit(),
			snap[domain.TotalKey(dom)],
			snap[domain.CountKey(dom)],
			snap[domain.StreakKey(dom)],
			snap[domain.BestDayKey(dom)],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTracking streak: %g days (%g active days all-time)\n",
		snap[domain.MetricActivityStreak], snap[domain.MetricActivityDays])
	return nil
}
