package scoring

import (
	"fmt"
	"sort"

	"go-vulndash/types"
)

// ClassifyTier buckets a score into one of the four vulnerability tiers
// using three ascending cut points [a, b, c]. Bands are lower-exclusive,
// upper-inclusive: (-inf, a] (a, b] (b, c] (c, +inf) — a score sitting
// exactly on a cut point belongs to the band that ends there.
func ClassifyTier(score float64, cuts []float64) (types.VulnerabilityTier, error) {
	if len(cuts) != 3 {
		return 0, fmt.Errorf("tier classification needs exactly 3 cut points, got %d", len(cuts))
	}
	if !sort.Float64sAreSorted(cuts) {
		return 0, fmt.Errorf("tier cut points %v are not ascending", cuts)
	}
	switch {
	case score <= cuts[0]:
		return types.TierFaible, nil
	case score <= cuts[1]:
		return types.TierMoyenne, nil
	case score <= cuts[2]:
		return types.TierElevee, nil
	default:
		return types.TierTresElevee, nil
	}
}

// ClassifyTiers classifies a whole score column.
func ClassifyTiers(scores map[string]float64, cuts []float64) (map[string]types.VulnerabilityTier, error) {
	out := make(map[string]types.VulnerabilityTier, len(scores))
	for code, s := range scores {
		tier, err := ClassifyTier(s, cuts)
		if err != nil {
			return nil, err
		}
		out[code] = tier
	}
	return out, nil
}
