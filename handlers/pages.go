package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/types"
	"go-vulndash/views"
)

// OverviewHandler serves the introduction page payload.
func OverviewHandler(c *gin.Context, store *dataset.Store, cfg *config.IndicatorConfig) {
	t, err := store.Table()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.Overview(t, cfg))
}

// MortalityHandler serves the premature-mortality page payload.
func MortalityHandler(c *gin.Context, store *dataset.Store, cfg *config.IndicatorConfig) {
	t, err := store.Table()
	if err != nil {
		respondError(c, err)
		return
	}
	payload, err := views.Mortality(t, cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// SeniorHandler serves the 65+ mortality page payload.
func SeniorHandler(c *gin.Context, store *dataset.Store, cfg *config.IndicatorConfig) {
	t, err := store.Table()
	if err != nil {
		respondError(c, err)
		return
	}
	payload, err := views.Senior(t, cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// PovertyHandler serves the poverty/APL page payload.
func PovertyHandler(c *gin.Context, store *dataset.Store, cfg *config.IndicatorConfig) {
	t, err := store.Table()
	if err != nil {
		respondError(c, err)
		return
	}
	payload, err := views.Poverty(t, cfg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// SyntheseHandler serves the synthesis map payload. The surface indicator
// is selectable via ?surface=, defaulting to GP accessibility.
func SyntheseHandler(c *gin.Context, store *dataset.Store, cfg *config.IndicatorConfig) {
	surface := c.DefaultQuery("surface", types.APLMed)
	valid := false
	for _, s := range views.SurfaceIndicators() {
		if s == surface {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "unknown surface indicator",
			"surface":  surface,
			"accepted": views.SurfaceIndicators(),
		})
		return
	}

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
	payload, err := views.Synthese(t, bounds, cfg, surface)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}
