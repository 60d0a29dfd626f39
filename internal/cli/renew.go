package cli

import (
	"fmt"

	"github.com/ksyq12/renewd/internal/output"
	"github.com/spf13/cobra"
)

var renewCmd = &cobra.Command{
	Use:   "renew <lineage>",
	Short: "Renew one lineage now",
	Long: `Renew one certificate lineage immediately, regardless of expiry or the
autorenew setting. The new version is recorded in the archive but not
deployed; use deploy or the next scheduled run for that.

Examples:
  renewd renew example.com
  renewd renew example.com --json`,
	Args: cobra.ExactArgs(1),
	RunE: runRenew,
}

func init() {
	rootCmd.AddCommand(renewCmd)
}

func runRenew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLineage(cfg, args[0])
	if err != nil {
		return err
	}

	base := store.LatestVersion()
	if base == 0 {
		return fmt.Errorf("lineage %s has no versions to renew from", store.Name())
	}

	version, renewed, err := deps.Renewer.Renew(cfg, store, base)
	if err != nil {
		return err
	}
	if !renewed {
		output.Warn("Lineage %s is not renewable (no renewal parameters or no usable authenticator)", store.Name())
		return nil
	}

	return outputResult(
		CommandResult{Success: true, Lineage: store.Name(), Action: "renew", Version: version},
		"Renewed %s as version %d", store.Name(), version)
}
