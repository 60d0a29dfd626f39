package cli

import (
	"os"

	"github.com/ksyq12/renewd/internal/authenticator"
	"github.com/ksyq12/renewd/internal/certutil"
	"github.com/ksyq12/renewd/internal/lineage"
	"github.com/ksyq12/renewd/internal/output"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <lineage>",
	Short: "Show details of a certificate lineage",
	Long: `Show detailed information about one certificate lineage.

Examples:
  renewd show example.com
  renewd show example.com --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// showDetail represents the detailed lineage information for output
type showDetail struct {
	Name          string   `json:"name"`
	Names         []string `json:"names,omitempty"`
	Latest        int      `json:"latest"`
	Current       int      `json:"current"`
	Expires       string   `json:"expires,omitempty"`
	Renewable     bool     `json:"renewable"`
	Authenticator string   `json:"authenticator,omitempty"`
	WillRenew     bool     `json:"will_renew"`
	WillDeploy    bool     `json:"will_deploy"`
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLineage(cfg, args[0])
	if err != nil {
		return err
	}

	params := store.RenewalParams()
	detail := showDetail{
		Name:       store.Name(),
		Latest:     store.LatestVersion(),
		Current:    store.CurrentVersion(lineage.Cert),
		Expires:    latestExpiry(store),
		Renewable:  params != nil,
		WillRenew:  store.ShouldAutorenew(),
		WillDeploy: store.ShouldAutodeploy(),
	}
	if params != nil {
		detail.Authenticator = params[authenticator.ParamAuthenticator]
	}
	if detail.Latest > 0 {
		if path, err := store.VersionPath(lineage.Cert, detail.Latest); err == nil {
			if pemBytes, err := os.ReadFile(path); err == nil {
				detail.Names, _ = certutil.SubjectAltNames(pemBytes)
			}
		}
	}

	if jsonOutput {
		return output.JSON(detail)
	}

	output.Print("")
	output.Print("Lineage:       %s", detail.Name)
	for i, name := range detail.Names {
		if i == 0 {
			output.Print("Names:         %s", name)
		} else {
			output.Print("               %s", name)
		}
	}
	output.Print("Latest:        %d", detail.Latest)
	output.Print("Current:       %d", detail.Current)
	output.Print("Expires:       %s", detail.Expires)

	if detail.Renewable {
		auth := detail.Authenticator
		if _, ok := authenticator.Get(auth); auth != "" && !ok {
			auth += " (not registered)"
		}
		output.Print("Renewable:     yes (%s)", auth)
	} else {
		output.Print("Renewable:     no")
	}
	if detail.WillRenew {
		output.Print("Next run:      will renew")
	} else if detail.WillDeploy {
		output.Print("Next run:      will deploy version %d", detail.Latest)
	} else {
		output.Print("Next run:      no action")
	}
	output.Print("")

	return nil
}
