package geo

import (
	"encoding/json"
	"math"
)

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// geometryCentroid returns the lon/lat centroid of a Polygon or
// MultiPolygon geometry. For a MultiPolygon the largest part wins, which
// keeps mainland departments with offshore islands anchored sensibly.
// Unknown or malformed geometry yields (0, 0).
func geometryCentroid(geometry json.RawMessage) (lon, lat float64) {
	var g rawGeometry
	if err := json.Unmarshal(geometry, &g); err != nil {
		return 0, 0
	}
	switch g.Type {
	case "Polygon":
		var rings [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil || len(rings) == 0 {
			return 0, 0
		}
		return ringCentroid(rings[0])
	case "MultiPolygon":
		var polys [][][][2]float64
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil || len(polys) == 0 {
			return 0, 0
		}
		best := 0
		bestArea := -1.0
		for i, p := range polys {
			if len(p) == 0 {
				continue
			}
			if a := math.Abs(signedArea(p[0])); a > bestArea {
				bestArea = a
				best = i
			}
		}
		if bestArea < 0 {
			return 0, 0
		}
		return ringCentroid(polys[best][0])
	}
	return 0, 0
}

// signedArea is the shoelace formula over an outer ring.
func signedArea(ring [][2]float64) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i][0] * ring[j][1]
		area -= ring[j][0] * ring[i][1]
	}
	return area / 2
}

// ringCentroid is the area-weighted polygon centroid; degenerate rings fall
// back to the vertex average.
func ringCentroid(ring [][2]float64) (lon, lat float64) {
	n := len(ring)
	if n == 0 {
		return 0, 0
	}
	a := signedArea(ring)
	if n < 3 || math.Abs(a) < 1e-12 {
		for _, v := range ring {
			lon += v[0]
			lat += v[1]
		}
		return lon / float64(n), lat / float64(n)
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := ring[i][0]*ring[j][1] - ring[j][0]*ring[i][1]
		cx += (ring[i][0] + ring[j][0]) * cross
		cy += (ring[i][1] + ring[j][1]) * cross
	}
	f := 1.0 / (6.0 * a)
	return cx * f, cy * f
}
