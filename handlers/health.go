package handlers

import (
	"net/http"

	"wrenchly/utils"

	"github.com/gin-gonic/gin"
)

// Healthz reports the latest dependency health snapshot.
func Healthz(c *gin.Context) {
	status := utils.GetHealthStatus()
	if status.CheckedAt.IsZero() {
		// Monitor has not completed its first sweep yet.
		c.JSON(http.StatusOK, gin.H{"status": "starting"})
		return
	}

	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	for _, ok := range status.Redis {
		if !ok {
			code = http.StatusServiceUnavailable
		}
	}
	c.JSON(code, status)
}
