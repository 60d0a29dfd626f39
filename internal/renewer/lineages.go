package renewer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ksyq12/renewd/internal/config"
	"github.com/ksyq12/renewd/internal/errors"
	"github.com/ksyq12/renewd/internal/lineage"
)

// ListLineageNames returns the sorted names of all configured lineages.
func ListLineageNames(cfg *config.Config) ([]string, error) {
	entries, err := os.ReadDir(cfg.RenewalConfigsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "cannot read renewal configs directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), lineage.ConfSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), lineage.ConfSuffix))
	}
	sort.Strings(names)
	return names, nil
}

// OpenLineage loads one named lineage through the same three-layer
// config merge the batch driver applies.
func OpenLineage(cfg *config.Config, name string) (*lineage.Lineage, error) {
	confPath := filepath.Join(cfg.RenewalConfigsDir(), name+lineage.ConfSuffix)
	if _, err := os.Stat(confPath); err != nil {
		return nil, errors.NotFound(name)
	}

	perLineage, err := config.ParseConfFile(confPath)
	if err != nil {
		return nil, errors.WrapLineage(errors.ErrCodeConfig, name, "invalid renewal configuration", err)
	}
	merged := config.MergeLayers(config.Defaults(), renewerWideValues(cfg), perLineage)
	return lineage.New(confPath, merged, cfg.WorkDir)
}
