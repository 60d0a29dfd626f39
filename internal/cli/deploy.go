package cli

import (
	"fmt"

	"github.com/ksyq12/renewd/internal/input"
	"github.com/ksyq12/renewd/internal/lineage"
	"github.com/ksyq12/renewd/internal/output"
	"github.com/spf13/cobra"
)

var (
	deployVersion int
	deployYes     bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy <lineage>",
	Short: "Deploy a version of one lineage",
	Long: `Deploy a recorded version by atomically advancing the live symlinks.
Without --version the latest version is deployed. Serving processes
pick up the change on their next reload.

Examples:
  renewd deploy example.com
  renewd deploy example.com --version 3
  renewd deploy example.com --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().IntVar(&deployVersion, "version", 0, "Version to deploy (default: latest)")
	deployCmd.Flags().BoolVarP(&deployYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLineage(cfg, args[0])
	if err != nil {
		return err
	}

	target := deployVersion
	if target == 0 {
		target = store.LatestVersion()
	}
	if target == 0 {
		return fmt.Errorf("lineage %s has no versions to deploy", store.Name())
	}

	current := store.CurrentVersion(lineage.Cert)
	if target == current {
		output.Info("Version %d of %s is already deployed", target, store.Name())
		return nil
	}

	if !deployYes && !jsonOutput {
		if target < current {
			output.Warn("Version %d is older than the deployed version %d", target, current)
		}
		output.Print("Deploy version %d of %s? [y/N]", target, store.Name())
		if !input.Confirm(deps.StdinReader) {
			output.Info("Aborted")
			return nil
		}
	}

	if err := store.AdvanceCurrentTo(target); err != nil {
		return err
	}

	return outputResult(
		CommandResult{Success: true, Lineage: store.Name(), Action: "deploy", Version: target},
		"Deployed version %d of %s", target, store.Name())
}
