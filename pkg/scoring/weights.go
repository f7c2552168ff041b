package scoring

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	TopTierWeight = 2.0
	DefaultWeight = 1.0
)

var topTierOutlets = []string{
	"The New York Times", "The Washington Post", "Reuters", "Bloomberg", "BBC News",
	"CNN", "The Wall Street Journal", "Financial Times", "The Guardian", "Politico",
	"NPR", "Associated Press", "Los Angeles Times", "TIME", "Forbes",
	"Fortune", "Vox", "Axios", "The Atlantic", "NBC News",
}

// Weights resolves an outlet name to its prominence weight.
type Weights struct {
	topTier       float64
	defaultWeight float64
	byOutlet      map[string]float64
}

func DefaultWeights() *Weights {
	w := &Weights{
		topTier:       TopTierWeight,
		defaultWeight: DefaultWeight,
		byOutlet:      make(map[string]float64, len(topTierOutlets)),
	}
	for _, o := range topTierOutlets {
		w.byOutlet[strings.ToLower(o)] = TopTierWeight
	}
	return w
}

// OutletWeight matches case-insensitively on the trimmed outlet name.
func (w *Weights) OutletWeight(outlet string) float64 {
	cleaned := strings.ToLower(strings.TrimSpace(outlet))
	if cleaned == "" {
		return w.defaultWeight
	}
	if weight, ok := w.byOutlet[cleaned]; ok {
		return weight
	}
	return w.defaultWeight
}

type weightsFile struct {
	TopTierWeight float64            `yaml:"top_tier_weight"`
	DefaultWeight float64            `yaml:"default_weight"`
	TopTier       []string           `yaml:"top_tier"`
	Outlets       map[string]float64 `yaml:"outlets"`
}

// LoadWeights reads an outlet weight override file. The file replaces
// the built-in top-tier list when it supplies one; per-outlet entries
// always win over the tier weight.
func LoadWeights(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights file: %w", err)
	}

	var f weightsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse weights file: %w", err)
	}

	w := &Weights{
		topTier:       TopTierWeight,
		defaultWeight: DefaultWeight,
		byOutlet:      make(map[string]float64),
	}
	if f.TopTierWeight > 0 {
		w.topTier = f.TopTierWeight
	}
	if f.DefaultWeight > 0 {
		w.defaultWeight = f.DefaultWeight
	}

	tier := f.TopTier
	if len(tier) == 0 {
		tier = topTierOutlets
	}
	for _, o := range tier {
		w.byOutlet[strings.ToLower(strings.TrimSpace(o))] = w.topTier
	}
	for o, weight := range f.Outlets {
		w.byOutlet[strings.ToLower(strings.TrimSpace(o))] = weight
	}

	return w, nil
}
