package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"go-vulndash/types"
)

// IndicatorSpec is the static per-indicator configuration: polarity, the
// discrete color classes for the choropleth, and the KPI alert threshold.
// One structure instead of literals scattered across pages.
type IndicatorSpec struct {
	Label     string         `yaml:"label"`
	Unit      string         `yaml:"unit"`
	Precision int            `yaml:"precision"`
	Polarity  types.Polarity `yaml:"polarity"`

	// Ascending thresholds; values bucket into len(thresholds)+1 classes.
	ColorThresholds []float64    `yaml:"color_thresholds,omitempty"`
	PaletteName     string       `yaml:"palette,omitempty"`
	PaletteSteps    []types.RGBA `yaml:"palette_steps,omitempty"`

	// Alert is the cutoff used for the "vulnerable departments" KPI.
	// For higher_is_better indicators departments below it count, for
	// higher_is_worse departments above it.
	Alert    float64 `yaml:"alert,omitempty"`
	HasAlert bool    `yaml:"has_alert,omitempty"`
}

// CompositeSpec names a composite score: the normalized columns summed into
// it (unweighted, by design of the source) and the tier cut points.
type CompositeSpec struct {
	Constituents []string  `yaml:"constituents"`
	TierCuts     []float64 `yaml:"tier_cuts"`
}

// IndicatorConfig is the whole static analytical configuration.
type IndicatorConfig struct {
	Indicators map[string]IndicatorSpec `yaml:"indicators"`
	Composites map[string]CompositeSpec `yaml:"composites"`
}

// ColorBrewer ramps the source dashboard's matplotlib palettes resolve to,
// sampled at 7 steps (= 6 thresholds + 1). Alpha 220 matches the map layer.
var (
	paletteRdYlGn = []types.RGBA{
		{215, 48, 39, 220}, {252, 141, 89, 220}, {254, 224, 139, 220},
		{255, 255, 191, 220}, {217, 239, 139, 220}, {145, 207, 96, 220},
		{26, 152, 80, 220},
	}
	paletteYlOrRdReversed = []types.RGBA{
		{177, 0, 38, 220}, {227, 26, 28, 220}, {252, 78, 42, 220},
		{253, 141, 60, 220}, {254, 178, 76, 220}, {254, 217, 118, 220},
		{255, 255, 178, 220},
	}
)

// Default returns the built-in configuration matching the 2022 dataset.
func Default() *IndicatorConfig {
	return &IndicatorConfig{
		Indicators: map[string]IndicatorSpec{
			types.Mortalite064: {
				Label:     "Premature mortality (<65)",
				Unit:      "‰",
				Precision: 2,
				Polarity:  types.HigherIsWorse,
			},
			types.Mortalite65: {
				Label:     "Mortality 65+",
				Unit:      "‰",
				Precision: 2,
				Polarity:  types.HigherIsWorse,
			},
			types.APLMed: {
				Label:           "APL Doctors",
				Precision:       2,
				Polarity:        types.HigherIsBetter,
				ColorThresholds: []float64{1.9, 2.5, 3, 3.5, 4.5, 5.2},
				PaletteName:     "RdYlGn",
				PaletteSteps:    paletteRdYlGn,
				Alert:           2.5,
				HasAlert:        true,
			},
			types.APLInf: {
				Label:           "APL Nurses",
				Precision:       0,
				Polarity:        types.HigherIsBetter,
				ColorThresholds: []float64{60, 100, 150, 200, 250, 300},
				PaletteName:     "RdYlGn",
				PaletteSteps:    paletteRdYlGn,
				Alert:           100,
				HasAlert:        true,
			},
			types.TauxPauvrete: {
				Label:           "Poverty rate",
				Unit:            "%",
				Precision:       1,
				Polarity:        types.HigherIsWorse,
				ColorThresholds: []float64{9, 13, 17, 21, 25, 30},
				PaletteName:     "YlOrRd_r",
				PaletteSteps:    paletteYlOrRdReversed,
				Alert:           20,
				HasAlert:        true,
			},
			types.ScoreVulnGlobal: {
				Label:     "Global vulnerability score",
				Precision: 2,
				Polarity:  types.HigherIsWorse,
			},
		},
		Composites: map[string]CompositeSpec{
			types.ScoreVulnGlobal: {
				Constituents: []string{types.Mortalite064, types.APLMed},
				TierCuts:     []float64{-1.0, 0.0, 1.5},
			},
			types.ScoreSenior: {
				Constituents: []string{types.Mortalite65, types.APLMed, types.APLInf, types.TauxPauvrete},
				TierCuts:     []float64{-2.0, 0.0, 2.5},
			},
		},
	}
}

// LoadIndicatorConfig returns the defaults, overlaid with the YAML file at
// path when one is given. Entries in the file replace the default entry of
// the same name wholesale.
func LoadIndicatorConfig(path string) (*IndicatorConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading indicator config: %w", err)
	}
	var override IndicatorConfig
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("parsing indicator config %s: %w", path, err)
	}
	for name, spec := range override.Indicators {
		cfg.Indicators[name] = spec
	}
	for name, spec := range override.Composites {
		cfg.Composites[name] = spec
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the structural invariants: ascending thresholds and cut
// points, and one more palette step than thresholds.
func (c *IndicatorConfig) Validate() error {
	for name, spec := range c.Indicators {
		if spec.Polarity != types.HigherIsWorse && spec.Polarity != types.HigherIsBetter {
			return fmt.Errorf("indicator %s: unknown polarity %q", name, spec.Polarity)
		}
		if len(spec.ColorThresholds) > 0 {
			if !sort.Float64sAreSorted(spec.ColorThresholds) {
				return fmt.Errorf("indicator %s: color thresholds not ascending", name)
			}
			if len(spec.PaletteSteps) != len(spec.ColorThresholds)+1 {
				return fmt.Errorf("indicator %s: %d palette steps for %d thresholds, want %d",
					name, len(spec.PaletteSteps), len(spec.ColorThresholds), len(spec.ColorThresholds)+1)
			}
		}
	}
	for name, spec := range c.Composites {
		if len(spec.Constituents) == 0 {
			return fmt.Errorf("composite %s: no constituents", name)
		}
		if len(spec.TierCuts) != 3 {
			return fmt.Errorf("composite %s: %d tier cuts, want 3", name, len(spec.TierCuts))
		}
		if !sort.Float64sAreSorted(spec.TierCuts) {
			return fmt.Errorf("composite %s: tier cuts not ascending", name)
		}
	}
	return nil
}

// Indicator returns the spec for a configured indicator.
func (c *IndicatorConfig) Indicator(name string) (IndicatorSpec, bool) {
	s, ok := c.Indicators[name]
	return s, ok
}
