package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/routes"
)

func main() {
	// Load .env file; a missing file just means the environment is set
	// some other way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	indCfg, err := config.LoadIndicatorConfig(cfg.IndicatorConfigPath)
	if err != nil {
		log.Fatalf("Failed to load indicator config: %v", err)
	}

	store := dataset.NewStore(cfg.IndicatorPath(), cfg.BoundaryPath())

	// Warm the load-once cache up front so integrity problems kill the
	// process at startup instead of the first request.
	table, err := store.Table()
	if err != nil {
		log.Fatalf("Failed to load indicator table %s: %v", cfg.IndicatorPath(), err)
	}
	log.Printf("Loaded %d departments from %s", len(table.Records), cfg.IndicatorPath())

	bounds, err := store.Boundaries()
	if err != nil {
		log.Fatalf("Failed to load boundaries %s: %v", cfg.BoundaryPath(), err)
	}
	join := bounds.Join(table.Codes())
	log.Printf("Boundary join: %d matched, %d without polygon, %d without indicators",
		join.Stats.Matched, join.Stats.IndicatorOnly, join.Stats.BoundaryOnly)

	r := routes.SetupRouter(store, indCfg, cfg.ClientURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
