package cmd

import (
	"os"

	"masterdata-monitor/core/actions"
	"masterdata-monitor/core/convert"
	"masterdata-monitor/feature/download"
	"masterdata-monitor/feature/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download and convert the master database of every changed region",
	Long: `Reads version.json and changed.json, downloads the master database bundle of
every flagged region whose hash moved, converts it to SQLite and records the new
hash. Sets the "title" and "diff" step outputs on success.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := bootstrap()
		if err != nil {
			return err
		}
		defer s.close()

		adapters, probers, err := s.adapters()
		if err != nil {
			return err
		}
		repo := s.history()

		var pub download.Publisher
		if _, p, err := s.bucket(); err != nil {
			return err
		} else if p != nil {
			pub = p
		}

		orch := download.NewOrchestrator(
			s.cfg.Download,
			s.store,
			adapters,
			probers,
			convert.NewRegistry(s.cfg.Convert),
			s.cfg.Convert.Verify,
			pub,
			s.logger,
		)

		res, runErr := orch.Run(ctx)
		if res != nil {
			for _, r := range res.Regions {
				if r.Diff != nil || r.Err != nil {
					s.metrics.ObserveDownload(r.Code, r.Err)
				}
			}
			if repo != nil {
				if err := repo.Record(ctx, history.FromDownload(s.runID, res)); err != nil {
					s.logger.Warn("Failed to record history", zap.Error(err))
				}
			}
		}
		if err := s.metrics.Push(ctx, s.cfg.Metrics); err != nil {
			s.logger.Warn("Failed to push metrics", zap.Error(err))
		}
		if runErr != nil {
			return runErr
		}

		s.logger.Info("Download completed successfully", zap.Int("downloaded", len(res.Diffs())))
		out := actions.NewWriter(s.cfg.Github, os.Stdout)
		if err := out.Set("title", download.Title(res.Changed)); err != nil {
			return err
		}
		return out.Set("diff", download.FormatDiff(res.Diffs()))
	},
}

func init() {
	RootCmd.AddCommand(downloadCmd)
}
