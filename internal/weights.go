package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"crosswarped.com/pipegen/pkg/primitives"
)

// WeightOverrides maps tile names, as produced by primitives.Tile.String,
// to replacement selection weights.
type WeightOverrides map[string]int

// ResolveWeights builds a solver weight table from the defaults plus the
// given overrides. Unknown tile names and non-positive weights are
// rejected.
func ResolveWeights(overrides WeightOverrides) (primitives.Weights, error) {
	w := primitives.DefaultWeights()
	for name, weight := range overrides {
		t, err := primitives.ParseTile(name)
		if err != nil {
			return primitives.Weights{}, fmt.Errorf("weight override: %w", err)
		}
		if weight <= 0 {
			return primitives.Weights{}, fmt.Errorf("weight override: tile %q needs a positive weight, got %d", name, weight)
		}
		w[t] = weight
	}
	return w, nil
}

// weightsFile is the on-disk shape of a tile weights profile.
type weightsFile struct {
	Weights WeightOverrides `yaml:"weights"`
}

// LoadWeightsFile reads a YAML weights profile and resolves it against the
// defaults.
func LoadWeightsFile(path string) (primitives.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return primitives.Weights{}, fmt.Errorf("read weights file: %w", err)
	}
	var file weightsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return primitives.Weights{}, fmt.Errorf("parse weights file: %w", err)
	}
	return ResolveWeights(file.Weights)
}
