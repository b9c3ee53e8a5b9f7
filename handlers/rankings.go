package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-vulndash/dataset"
	"go-vulndash/ranking"
	"go-vulndash/types"
)

// RankingsHandler serves top-N / bottom-N department rankings for any
// numeric column of the table: ?metric=...&n=5&order=top|bottom.
func RankingsHandler(c *gin.Context, store *dataset.Store) {
	metric := c.Query("metric")
	if metric == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "metric query parameter is required"})
		return
	}

	n := 5
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}

	order := c.DefaultQuery("order", "top")
	if order != "top" && order != "bottom" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be top or bottom"})
		return
	}

	t, err := store.Table()
	if err != nil {
		respondError(c, err)
		return
	}
	if metric == types.ColCode || metric == types.ColName || !t.HasColumn(metric) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown metric column", "metric": metric})
		return
	}

	var res ranking.Result
	if order == "top" {
		res = ranking.TopN(t.Records, metric, n)
	} else {
		res = ranking.BottomN(t.Records, metric, n)
	}
	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"n":        n,
		"metric":   res.Metric,
		"entries":  res.Entries,
		"excluded": res.Excluded,
	})
}
