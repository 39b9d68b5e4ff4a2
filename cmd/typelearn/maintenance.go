package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.close()

		removed, err := eng.cache.SweepExpired()
		if err != nil {
			return err
		}

		fmt.Printf("removed %d expired entries\n", removed)
		return nil
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete stale mistake patterns for every user",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		eng, err := newEngine()
		if err != nil {
			return err
		}
		defer eng.close()

		if days <= 0 {
			days = eng.cfg.Maintenance.PatternRetentionDays
		}

		users, err := eng.users.List()
		if err != nil {
			return err
		}

		var total int64
		for _, u := range users {
			removed, err := eng.patterns.Cleanup(u.UserID, days)
			if err != nil {
				return err
			}
			total += removed
		}

		fmt.Printf("removed %d stale patterns\n", total)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().Int("days", 0, "Delete patterns not seen for this many days (default: PATTERN_RETENTION_DAYS)")
}
