package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/handlers"
)

// SetupRouter wires the dashboard API. The store and indicator config are
// injected into every handler; the frontend origin comes from CLIENT_URL.
func SetupRouter(store *dataset.Store, indCfg *config.IndicatorConfig, clientURL string) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if clientURL != "" {
		corsCfg.AllowOrigins = []string{clientURL}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to the vulnerability dashboard API!",
		})
	})

	api := r.Group("/api/vulndash")
	{
		api.GET("/overview", func(c *gin.Context) {
			handlers.OverviewHandler(c, store, indCfg)
		})
		api.GET("/mortality", func(c *gin.Context) {
			handlers.MortalityHandler(c, store, indCfg)
		})
		api.GET("/senior", func(c *gin.Context) {
			handlers.SeniorHandler(c, store, indCfg)
		})
		api.GET("/poverty", func(c *gin.Context) {
			handlers.PovertyHandler(c, store, indCfg)
		})
		api.GET("/synthese", func(c *gin.Context) {
			handlers.SyntheseHandler(c, store, indCfg)
		})
		api.GET("/rankings", func(c *gin.Context) {
			handlers.RankingsHandler(c, store)
		})
		api.GET("/geo", func(c *gin.Context) {
			handlers.GeoJSONHandler(c, store)
		})
		api.GET("/export", func(c *gin.Context) {
			handlers.ExportHandler(c, store, indCfg)
		})
	}

	return r
}
