package cli

import (
	"strconv"

	"github.com/ksyq12/renewd/internal/lineage"
	"github.com/ksyq12/renewd/internal/output"
	"github.com/ksyq12/renewd/internal/renewer"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all certificate lineages",
	Long: `List all configured certificate lineages with their version state.

Examples:
  renewd list
  renewd ls
  renewd list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type lineageListItem struct {
	Name      string `json:"name"`
	Latest    int    `json:"latest"`
	Current   int    `json:"current"`
	Expires   string `json:"expires,omitempty"`
	Renewable bool   `json:"renewable"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names, err := renewer.ListLineageNames(cfg)
	if err != nil {
		return err
	}

	items := make([]lineageListItem, 0, len(names))
	for _, name := range names {
		store, err := deps.StoreOpener.Open(cfg, name)
		if err != nil {
			output.Warn("Could not open lineage %s: %v", name, err)
			continue
		}
		items = append(items, lineageListItem{
			Name:      store.Name(),
			Latest:    store.LatestVersion(),
			Current:   store.CurrentVersion(lineage.Cert),
			Expires:   latestExpiry(store),
			Renewable: store.RenewalParams() != nil,
		})
	}

	if len(items) == 0 {
		if jsonOutput {
			return output.JSON([]lineageListItem{})
		}
		output.Info("No certificate lineages configured")
		return nil
	}

	if jsonOutput {
		return output.JSON(items)
	}

	headers := []string{"LINEAGE", "LATEST", "CURRENT", "EXPIRES", "RENEWABLE"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		renewable := "no"
		if item.Renewable {
			renewable = "yes"
		}
		rows = append(rows, []string{
			item.Name,
			strconv.Itoa(item.Latest),
			strconv.Itoa(item.Current),
			item.Expires,
			renewable,
		})
	}

	output.Table(headers, rows)
	return nil
}
