package views

import (
	"sort"

	"go-vulndash/config"
	"go-vulndash/dataset"
)

const overviewDescription = `The APL (Localized Potential Accessibility) indicator measures the spatial
match between the supply of general-practice care and local demand at a fine
geographic level. It is essential for identifying medical deserts and
planning public-health policy.

This dashboard offers a step-by-step exploration of the relationship
between APL, mortality before age 65, mortality after age 65, and the
poverty rate across French departments.`

// Overview backs the introduction page: the static description plus a
// summary of what was actually loaded.
func Overview(t *dataset.Table, cfg *config.IndicatorConfig) *OverviewPayload {
	var indicators []string
	for name := range cfg.Indicators {
		if t.HasColumn(name) {
			indicators = append(indicators, name)
		}
	}
	sort.Strings(indicators)

	return &OverviewPayload{
		Title:       "Introduction to APL (Localized Potential Accessibility)",
		Description: overviewDescription,
		Departments: len(t.Records),
		Indicators:  indicators,
		Warnings:    t.Warnings,
	}
}
