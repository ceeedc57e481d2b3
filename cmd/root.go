package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"masterdata-monitor/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var regionsFlag string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "masterdata-monitor",
	Short: "Master database update monitor",
	Long: `Masterdata Monitor discovers new truth versions on the CN, EN, JP, KR, TH and TW
game servers and downloads the updated master database of every changed region.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// Use the application's standard logger for error reporting
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&regionsFlag, "regions", "", "comma separated region codes, overrides REGIONS_ENABLED")
}
