package scoring

import (
	"math"

	"go-vulndash/types"
)

// NoDataBucket is the bucket index reported for missing or non-finite
// values; its color is the transparent no-data color.
const NoDataBucket = -1

// BucketIndex places a raw value into a discrete class against an ascending
// threshold list. With thresholds t1..tk the classes are
// (-inf, t1] (t1, t2] ... (tk, +inf): values at or below the first
// threshold land in bucket 0, values beyond the last in bucket k. The upper
// bound of every class is inclusive, same convention as the tiers.
func BucketIndex(v float64, thresholds []float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NoDataBucket
	}
	for i, t := range thresholds {
		if v <= t {
			return i
		}
	}
	return len(thresholds)
}

// FillColor maps a possibly-missing value to its render color. Missing and
// out-of-palette values get the transparent no-data color.
func FillColor(v float64, present bool, thresholds []float64, palette []types.RGBA) types.RGBA {
	if !present {
		return types.Transparent
	}
	i := BucketIndex(v, thresholds)
	if i == NoDataBucket || i >= len(palette) {
		return types.Transparent
	}
	return palette[i]
}
