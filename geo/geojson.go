package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"go-vulndash/types"
)

// Boundary is one department polygon from the boundary file. Geometry is
// kept as raw GeoJSON so the map handler can pass it through untouched.
type Boundary struct {
	Code     string          `json:"code"`
	Name     string          `json:"nom"`
	Geometry json.RawMessage `json:"geometry"`
	// Centroid in lon/lat, for anchoring the 3-D bar columns.
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// BoundarySet is the parsed boundary file, indexed by normalized code.
type BoundarySet struct {
	Boundaries []Boundary
	byCode     map[string]int
}

type rawFeatureCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	Properties struct {
		Code string `json:"code"`
		Nom  string `json:"nom"`
	} `json:"properties"`
	Geometry json.RawMessage `json:"geometry"`
}

// LoadBoundaries reads and parses a department boundary GeoJSON file.
func LoadBoundaries(path string) (*BoundarySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBoundaries(data)
}

// ParseBoundaries parses a FeatureCollection of department polygons.
// Codes are normalized the same way as the indicator table so the join is
// purely on the 2-character code. Features without a code are dropped.
func ParseBoundaries(data []byte) (*BoundarySet, error) {
	var fc rawFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing boundary file: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("boundary file is %q, want FeatureCollection", fc.Type)
	}

	set := &BoundarySet{byCode: make(map[string]int, len(fc.Features))}
	for _, f := range fc.Features {
		code := types.NormalizeCode(f.Properties.Code)
		if code == "" {
			continue
		}
		lon, lat := geometryCentroid(f.Geometry)
		set.byCode[code] = len(set.Boundaries)
		set.Boundaries = append(set.Boundaries, Boundary{
			Code:     code,
			Name:     f.Properties.Nom,
			Geometry: f.Geometry,
			Lon:      lon,
			Lat:      lat,
		})
	}
	if len(set.Boundaries) == 0 {
		return nil, fmt.Errorf("boundary file contains no features with a code property")
	}
	return set, nil
}

// Lookup returns the boundary for a normalized code.
func (s *BoundarySet) Lookup(code string) (Boundary, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return Boundary{}, false
	}
	return s.Boundaries[i], true
}

// Len returns the number of boundaries.
func (s *BoundarySet) Len() int {
	return len(s.Boundaries)
}
