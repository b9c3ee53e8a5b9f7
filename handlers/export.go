package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-vulndash/config"
	"go-vulndash/dataset"
	"go-vulndash/views"
)

// ExportHandler writes the fully scored table — source indicators plus the
// recomputed composites and their tiers — to a local JSON file and reports
// where it landed.
func ExportHandler(c *gin.Context, store *dataset.Store, cfg *config.IndicatorConfig) {
	log.Println("Received request to export scored table...")

	t, err := store.Table()
	if err != nil {
		respondError(c, err)
		return
	}

	export, err := views.ScoredTable(t, cfg)
	if err != nil {
		respondError(c, err)
		return
	}

	jsonData, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		log.Printf("Error marshaling scored table: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to format scored table",
			"details": err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("dept_scores_%s.json", uuid.New().String()[:8])
	file, err := os.Create(filename)
	if err != nil {
		log.Printf("Error creating export file '%s': %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create export file",
			"details": err.Error(),
		})
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Printf("Error closing export file '%s': %v", filename, cerr)
		}
	}()

	if _, err := file.Write(jsonData); err != nil {
		log.Printf("Error writing export file '%s': %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to write data to export file",
			"details": err.Error(),
		})
		return
	}

	log.Printf("Successfully exported %d departments to %s", len(export.Rows), filename)
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Successfully exported %d departments.", len(export.Rows)),
		"filename": filename,
		"count":    len(export.Rows),
	})
}
