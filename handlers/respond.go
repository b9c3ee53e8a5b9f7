package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-vulndash/dataset"
)

// respondError maps view-assembly failures onto HTTP responses. Integrity
// errors abort the view and travel to the client verbatim; anything else is
// a generic failure with details.
func respondError(c *gin.Context, err error) {
	var integrity *dataset.DataIntegrityError
	if errors.As(err, &integrity) {
		log.Printf("integrity error: %v", integrity)
		c.JSON(http.StatusInternalServerError, gin.H{"error": integrity.Error()})
		return
	}
	log.Printf("view error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "failed to assemble view",
		"details": err.Error(),
	})
}
