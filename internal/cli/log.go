package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitalog/vita/internal/daemon"
	"github.com/vitalog/vita/internal/domain"
)

func init() {
	logCmd.Flags().StringVar(&logCategory, "category", "", "Secondary dimension: workout type, food name")
	logCmd.Flags().StringVar(&logAt, "at", "", "Event time (RFC 3339), defaults to now")
	rootCmd.AddCommand(logCmd)
}

var (
	logCategory string
	logAt       string
)

var logCmd = &cobra.Command{
	Use:   "log <domain> <value>",
	Short: "Log a health activity",
	Long: `Log one activity event and print any achievements it unlocked.

Domains and units:
  water <ml>          vita log water 500
  sleep <hours>       vita log sleep 7.5
  workout <minutes>   vita log workout 45 --category running
  mood <level 1-5>    vita log mood 4
  nutrition <kcal>    vita log nutrition 650 --category "pasta"`,
	Args: cobra.ExactArgs(2),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", args[1])
	}

	occurredAt := time.Now()
	if logAt != "" {
		occurredAt, err = time.Parse(time.RFC3339, logAt)
		if err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	unlocked, err := d.Tracker.LogActivity(context.Background(), domain.ActivityEvent{
		Domain:     domain.ActivityDomain(args[0]),
		Value:      value,
		Category:   logCategory,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return err
	}

	dom := domain.ActivityDomain(args[0])
	fmt.Printf("Logged %g %s of %s.\n", value, dom.Unit(), dom)
	for _, a := range unlocked {
		fmt.Printf("%s  Achievement unlocked: %s — %s\n", a.Icon, a.Title, a.Description)
	}
	return nil
}
