package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vitalog/vita/internal/daemon"
)

func init() {
	achievementsCmd.Flags().BoolVar(&achievementsAll, "all", false, "Include locked achievements")
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsAll bool

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show achievement progress",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	unlocked, total := d.Tracker.Progress()
	fmt.Printf("Achievements: %d/%d unlocked\n\n", unlocked, total)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tTITLE\tRARITY\tCATEGORY\tUNLOCKED")
	for _, a := range d.Tracker.List() {
		if !a.Unlocked && !achievementsAll {
			continue
		}
		when := "—"
		if a.UnlockedAt != nil {
			when = a.UnlockedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Icon, a.Title, a.Rarity, a.Category, when)
	}
	return w.Flush()
}
