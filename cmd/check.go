package cmd

import (
	"os"

	"masterdata-monitor/core/actions"
	"masterdata-monitor/feature/history"
	"masterdata-monitor/feature/region"
	"masterdata-monitor/feature/update"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every enabled region for a new truth version",
	Long: `Probes every enabled region concurrently, compares the discovered versions with
version.json and, when anything changed, rewrites version.json and changed.json.
Sets the "success" step output to whether a change was found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := bootstrap()
		if err != nil {
			return err
		}
		defer s.close()

		adapters, _, err := s.adapters()
		if err != nil {
			return err
		}
		repo := s.history()

		s.logger.Info("Checking for database updates", zap.Int("regions", len(adapters)))
		orch := update.NewOrchestrator(s.store, adapters, s.logger, s.cfg.Probe.Concurrency)
		res, err := orch.Run(ctx)
		if err != nil {
			return err
		}

		for _, r := range res.Regions {
			s.metrics.Versions.WithLabelValues(r.Code).Set(float64(r.Current.Version))
			changed := 0.0
			if r.Changed {
				changed = 1
			}
			s.metrics.Changed.WithLabelValues(r.Code).Set(changed)
		}

		if repo != nil {
			if err := repo.Record(ctx, history.FromCheck(s.runID, res)); err != nil {
				s.logger.Warn("Failed to record history", zap.Error(err))
			}
		}
		if err := s.metrics.Push(ctx, s.cfg.Metrics); err != nil {
			s.logger.Warn("Failed to push metrics", zap.Error(err))
		}

		s.logger.Info("Update check complete",
			zap.Bool("changed", res.Dirty()),
			zap.Strings("regions", res.Changed.Codes(region.AllCodes)))
		return actions.NewWriter(s.cfg.Github, os.Stdout).SetBool("success", res.Dirty())
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
