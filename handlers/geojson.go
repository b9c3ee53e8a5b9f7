package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-vulndash/dataset"
	"go-vulndash/geo"
)

// geoFeature is one department polygon with its indicator row attached as
// GeoJSON properties; the rendering layer reads these and never recomputes.
type geoFeature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geoCollection struct {
	Type      string        `json:"type"`
	Features  []geoFeature  `json:"features"`
	JoinStats geo.JoinStats `json:"joinStats"`
}

// GeoJSONHandler serves the boundary polygons joined to the indicator
// table. Indicator rows with no polygon and polygons with no row are
// counted in joinStats and skipped — map rendering only gets full matches.
func GeoJSONHandler(c *gin.Context, store *dataset.Store) {
	t, err := store.Table()
	if err != nil {
		respondError(c, err)
		return
	}
	bounds, err := store.Boundaries()
	if err != nil {
		respondError(c, err)
		return
	}

	join := bounds.Join(t.Codes())
	out := geoCollection{
		Type:      "FeatureCollection",
		Features:  make([]geoFeature, 0, len(join.MatchedCodes)),
		JoinStats: join.Stats,
	}

	for _, code := range join.MatchedCodes {
		rec, _ := t.Lookup(code)
		boundary, _ := bounds.Lookup(code)

		props := map[string]interface{}{
			"code": code,
			"nom":  rec.Name,
		}
		for ind, v := range rec.Values {
			props[ind] = v
		}
		if rec.VulnClass != "" {
			props["classe_vuln"] = rec.VulnClass
		}

		out.Features = append(out.Features, geoFeature{
			Type:       "Feature",
			Geometry:   boundary.Geometry,
			Properties: props,
		})
	}

	c.JSON(http.StatusOK, out)
}
