package geo

// JoinStats counts the outcome of joining indicator rows against boundary
// polygons on the normalized department code. Mismatches on either side are
// non-fatal; they only shrink what the map can draw.
type JoinStats struct {
	Matched       int `json:"matched"`
	IndicatorOnly int `json:"indicatorOnly"`
	BoundaryOnly  int `json:"boundaryOnly"`
}

// JoinResult lists which indicator codes found a polygon and which did not,
// in input order, plus the aggregate counts.
type JoinResult struct {
	MatchedCodes []string  `json:"matchedCodes"`
	Unmatched    []string  `json:"unmatched"`
	Stats        JoinStats `json:"stats"`
}

// Join matches the given indicator codes against the boundary set.
// Indicator rows without a polygon stay available for tabular output but
// are excluded from map hand-off; polygons without an indicator row are
// simply counted.
func (s *BoundarySet) Join(codes []string) *JoinResult {
	res := &JoinResult{}
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		seen[code] = true
		if _, ok := s.byCode[code]; ok {
			res.MatchedCodes = append(res.MatchedCodes, code)
			res.Stats.Matched++
		} else {
			res.Unmatched = append(res.Unmatched, code)
			res.Stats.IndicatorOnly++
		}
	}
	for _, b := range s.Boundaries {
		if !seen[b.Code] {
			res.Stats.BoundaryOnly++
		}
	}
	return res
}
