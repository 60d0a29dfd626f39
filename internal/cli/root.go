package cli

import (
	"os"

	"github.com/ksyq12/renewd/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	configDir  string
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "renewd",
	Short: "Certificate renewal and deployment CLI",
	Long: `renewd manages the lifecycle of issued certificates.

It keeps every certificate as a lineage of numbered versions, renews
versions approaching expiry through the CA, and deploys new versions by
atomically advancing the live symlinks serving processes read.

The run command is designed for cron: it walks all renewal
configurations, applies the autorenew and autodeploy policies, and
notifies the administrator about everything it did.`,
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default: platform-specific)")
}
