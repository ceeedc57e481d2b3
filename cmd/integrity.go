package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"masterdata-monitor/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

var errUnhealthy = errors.New("integrity check found problems")

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the downloaded databases and their published copies",
	Long: `Verifies that every region with a recorded hash has a converted database that opens
as SQLite, and, when storage is enabled, that each database and version.json exist
in the bucket. --fix republishes missing objects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		s, err := bootstrap()
		if err != nil {
			return err
		}
		defer s.close()

		svc, err := s.integrityService()
		if err != nil {
			return err
		}

		s.logger.Info("Checking artifact integrity...", zap.Bool("storage", svc.StorageEnabled()))
		report, err := svc.Run(ctx, fixFlag)
		if report == nil {
			return err
		}
		if err != nil {
			s.logger.Error("Integrity check incomplete", zap.Error(err))
		}

		if jsonFlag {
			data, mErr := json.MarshalIndent(report, "", "  ")
			if mErr != nil {
				return fmt.Errorf("failed to marshal JSON: %w", mErr)
			}
			fmt.Println(string(data))
			return err
		}

		fmt.Println("\n=== Local Databases ===")
		for _, l := range report.Local {
			if l.OK() {
				fmt.Printf("%-4s ok      %3d tables  %s\n", l.Code, l.Tables, l.Path)
			} else {
				fmt.Printf("%-4s BROKEN  %s\n", l.Code, l.Error)
			}
		}
		if report.StorageChecked {
			fmt.Println("\n=== Storage ===")
			fmt.Printf("Missing objects: %d\n", len(report.Missing))
			for _, a := range report.Missing {
				fmt.Printf("  %s\n", a.Object)
			}
			if fixFlag {
				fmt.Printf("Republished: %d\n", len(report.Fixed))
			}
		}
		fmt.Printf("\nHealthy: %t\n", report.Healthy())
		fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

		if err != nil {
			return err
		}
		if !report.Healthy() {
			return errUnhealthy
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "republish objects missing from the bucket")
	integrityCmd.Flags().BoolVar(&jsonFlag, "json", false, "print the report as JSON")
}

// integrityService builds the integrity service, with storage checks when a bucket is configured.
func (s *session) integrityService() (*integrity.Service, error) {
	client, pub, err := s.bucket()
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return integrity.NewService(s.store, s.cfg.Download.Dir, nil, "", nil, s.logger), nil
	}
	return integrity.NewService(s.store, s.cfg.Download.Dir, client, s.cfg.Storage.Bucket, pub, s.logger), nil
}
