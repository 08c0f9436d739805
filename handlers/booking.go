package handlers

import (
	"net/http"

	"github.com/strumhouse/strumhouse-main-sub001/models"
	"github.com/strumhouse/strumhouse-main-sub001/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves booking creation and the availability check.
type BookingHandler struct {
	BookingSvc      booking.BookingService
	AvailabilitySvc booking.AvailabilityService
	Logger          *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, availability booking.AvailabilityService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		BookingSvc:      svc,
		AvailabilitySvc: availability,
		Logger:          logger,
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindValidation,
			"message": "malformed request body",
		})
		return
	}

	result, err := h.BookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if result.Duplicate {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CheckAvailability handles POST /availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindValidation,
			"message": "malformed request body",
		})
		return
	}

	result, err := h.AvailabilitySvc.Check(c.Request.Context(), req.ServiceID, req.Slots)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
