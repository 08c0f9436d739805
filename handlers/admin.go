package handlers

import (
	"errors"
	"net/http"
	"time"

	blockedRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/blocked"
	"github.com/strumhouse/strumhouse-main-sub001/models"
	"github.com/strumhouse/strumhouse-main-sub001/services/admin"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler serves the staff dashboard rollup and blackout management.
type AdminHandler struct {
	AdminSvc admin.AdminService
	Blocked  blockedRepo.BlockedRepository
	Logger   *zap.Logger
}

func NewAdminHandler(svc admin.AdminService, blocked blockedRepo.BlockedRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{AdminSvc: svc, Blocked: blocked, Logger: logger}
}

// GetSummary handles GET /admin/summary.
func (h *AdminHandler) GetSummary(c *gin.Context) {
	summary, err := h.AdminSvc.Summary(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type createBlockRequest struct {
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Reason    string `json:"reason"`
}

// CreateBlock handles POST /admin/blocked.
func (h *AdminHandler) CreateBlock(c *gin.Context) {
	var req createBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindValidation,
			"message": "malformed request body",
		})
		return
	}

	rng, err := models.SlotInput{Date: req.Date, Start: req.Start, End: req.End}.Range()
	if err != nil {
		writeServiceError(c, h.Logger, &models.ValidationError{Message: err.Error()})
		return
	}

	block := &models.BlockedSlot{
		BlockID:   uuid.New().String(),
		ServiceID: req.ServiceID,
		Date:      rng.Date,
		Start:     rng.Start,
		End:       rng.End,
		Reason:    req.Reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Blocked.Create(c.Request.Context(), block); err != nil {
		writeServiceError(c, h.Logger, &models.StoreError{Op: "insert blocked slot", Err: err})
		return
	}
	c.JSON(http.StatusCreated, block)
}

// ListBlocks handles GET /admin/blocked?date=YYYY-MM-DD.
func (h *AdminHandler) ListBlocks(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindValidation,
			"message": "date query parameter is required",
		})
		return
	}

	blocks, err := h.Blocked.ListByDate(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, h.Logger, &models.StoreError{Op: "list blocked slots", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocks})
}

// DeleteBlock handles DELETE /admin/blocked/:id.
func (h *AdminHandler) DeleteBlock(c *gin.Context) {
	id := c.Param("id")
	if err := h.Blocked.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, blockedRepo.ErrNotFound) {
			writeServiceError(c, h.Logger, &models.NotFoundError{Entity: "blocked slot", Key: id})
			return
		}
		writeServiceError(c, h.Logger, &models.StoreError{Op: "delete blocked slot", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
