package cmd

import (
	"fmt"

	"masterdata-monitor/feature/region"
	"masterdata-monitor/feature/status"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the tracked versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bootstrap()
		if err != nil {
			return err
		}
		defer s.close()

		overview, err := status.NewService(s.store, nil, s.logger).Overview()
		if err != nil {
			return err
		}

		fmt.Println("=== Tracked Regions ===")
		fmt.Printf("%-4s %-10s %-34s %-8s %s\n", "CODE", "VERSION", "HASH", "CHANGED", "DATABASE")
		for _, r := range overview.Regions {
			st, _ := region.Lookup(r.Code)
			version := st.FormatVersion(r.Version)
			hash := r.Hash
			if hash == "" {
				hash = "-"
			}
			fmt.Printf("%-4s %-10s %-34s %-8t %s\n", r.Code, version, hash, r.Changed, r.Database)
		}
		if len(overview.Changed) > 0 {
			fmt.Printf("\nPending download: %v\n", overview.Changed)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
