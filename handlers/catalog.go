package handlers

import (
	"net/http"

	serviceRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/service"
	"github.com/strumhouse/strumhouse-main-sub001/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the read-only service catalog.
type CatalogHandler struct {
	Services serviceRepo.ServiceRepository
	Logger   *zap.Logger
}

func NewCatalogHandler(services serviceRepo.ServiceRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Services: services, Logger: logger}
}

// ListServices handles GET /services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Services.ListActive(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, &models.StoreError{Op: "list services", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
