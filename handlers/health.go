package handlers

import (
	"net/http"

	"github.com/strumhouse/strumhouse-main-sub001/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /healthz with the latest monitor snapshot.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
