package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ksyq12/renewd/internal/logger"
	"github.com/ksyq12/renewd/internal/output"
	"github.com/spf13/cobra"
)

var (
	runWorkDir string
	runLogsDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one renewal and deployment pass over all lineages",
	Long: `Run walks every renewal configuration, renews certificates that are
close to expiry, and deploys undeployed versions. It is intended to be
invoked periodically from cron.

A problem with one lineage never stops the others; the exit status is
nonzero only when the pass could not start at all.

Examples:
  renewd run
  renewd run --logs-dir /var/log/renewd
  renewd run --json`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runWorkDir, "work-dir", "", "Override the version archive directory")
	runCmd.Flags().StringVar(&runLogsDir, "logs-dir", "", "Write diagnostics to a log file in this directory")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runWorkDir != "" {
		cfg.WorkDir = runWorkDir
	}
	if runLogsDir != "" {
		cfg.LogsDir = runLogsDir
	}

	if runLogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
		path := filepath.Join(cfg.LogsDir, "renewd.log")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			logger.SetOutput(nil)
			_ = f.Close()
		}()
		logger.SetOutput(f)
	}

	summary, err := deps.BatchRunner.Run(cfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(summary)
	}

	if summary.Processed == 0 {
		output.Info("No renewal configurations found")
		return nil
	}

	output.Print("Processed %d lineages: %d renewed, %d deployed, %d skipped, %d failed",
		summary.Processed, summary.Renewed, summary.Deployed, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		output.Warn("%d lineages had failures, see the log for details", summary.Failed)
	}
	return nil
}
