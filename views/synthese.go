package views

import (
	"fmt"
	"sort"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/geo"
	"go-vulndash/scoring"
	"go-vulndash/types"
)

// maxBarElevation is the tallest mortality bar on the synthesis map, in
// deck.gl meters (100 km, matching the source dashboard).
const maxBarElevation = 100_000.0

// SurfaceIndicators lists the indicators selectable as the map surface.
func SurfaceIndicators() []string {
	return []string{types.APLMed, types.APLInf, types.TauxPauvrete}
}

// Synthese assembles the multi-factor synthesis map: departments joined to
// their polygons, a discrete fill color for the chosen surface indicator,
// and a premature-mortality bar scaled between the national extremes.
func Synthese(t *dataset.Table, bounds *geo.BoundarySet, cfg *config.IndicatorConfig, surface string) (*SynthesePayload, error) {
	valid := false
	for _, s := range SurfaceIndicators() {
		if s == surface {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("unknown surface indicator %q", surface)
	}
	if err := t.RequireColumns(surface, types.Mortalite064); err != nil {
		return nil, err
	}
	spec, _ := cfg.Indicator(surface)

	join := bounds.Join(t.Codes())

	// Mortality extremes over the joined departments drive bar scaling.
	mortMin, mortMax := 0.0, 0.0
	first := true
	for _, code := range join.MatchedCodes {
		rec, _ := t.Lookup(code)
		v, ok := rec.Value(types.Mortalite064)
		if !ok {
			continue
		}
		if first {
			mortMin, mortMax = v, v
			first = false
			continue
		}
		if v < mortMin {
			mortMin = v
		}
		if v > mortMax {
			mortMax = v
		}
	}
	mortSpan := mortMax - mortMin

	payload := &SynthesePayload{
		Surface:      surface,
		Label:        spec.Label,
		Palette:      spec.PaletteName,
		Thresholds:   spec.ColorThresholds,
		MaxElevation: maxBarElevation,
		JoinStats:    join.Stats,
	}

	for _, code := range join.MatchedCodes {
		rec, _ := t.Lookup(code)
		boundary, _ := bounds.Lookup(code)

		f := SyntheseFeature{
			Code:   code,
			Name:   rec.Name,
			Bucket: scoring.NoDataBucket,
			Lon:    boundary.Lon,
			Lat:    boundary.Lat,
		}
		f.FillColor = types.Transparent
		if v, ok := rec.Value(surface); ok {
			v := v
			f.SurfaceValue = &v
			f.Bucket = scoring.BucketIndex(v, spec.ColorThresholds)
			f.FillColor = scoring.FillColor(v, true, spec.ColorThresholds, spec.PaletteSteps)
		}

		if m, ok := rec.Value(types.Mortalite064); ok {
			m := m
			f.Mortality = &m
			if mortSpan > 0 {
				f.BarElevation = (m - mortMin) / mortSpan * maxBarElevation
			}
		}

		payload.Features = append(payload.Features, f)
	}
	sort.Slice(payload.Features, func(i, j int) bool {
		return payload.Features[i].Code < payload.Features[j].Code
	})

	return payload, nil
}
