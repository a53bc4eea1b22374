package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"listical-cli/internal/model"
)

const estimatesFileName = "estimates.yaml"

// EstimateAliases maps user shorthand ("1h", "half") to canonical estimate
// labels. Loaded from a user-editable YAML file in the config directory.
type EstimateAliases map[string]model.Estimate

// LoadEstimateAliases reads the alias file. Missing file means no aliases;
// unknown target labels are dropped with a note on stderr.
func LoadEstimateAliases() (EstimateAliases, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(dir, estimatesFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EstimateAliases{}, nil
		}
		return nil, err
	}
	var raw map[string]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := EstimateAliases{}
	for alias, label := range raw {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" {
			continue
		}
		est, ok := model.ParseEstimate(label)
		if !ok {
			os.Stderr.WriteString("store: estimates.yaml: unknown estimate label " + label + "\n")
			continue
		}
		out[alias] = est
	}
	return out, nil
}

// Resolve maps user input to an estimate, trying aliases first, then the
// canonical labels.
func (a EstimateAliases) Resolve(input string) (model.Estimate, bool) {
	if est, ok := a[strings.ToLower(strings.TrimSpace(input))]; ok {
		return est, true
	}
	return model.ParseEstimate(input)
}
