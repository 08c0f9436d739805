package handlers

import (
	"net/http"

	"github.com/strumhouse/strumhouse-main-sub001/models"
	"github.com/strumhouse/strumhouse-main-sub001/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves gateway order initiation and the confirmation
// callback.
type PaymentHandler struct {
	PaymentSvc payment.Service
	Logger     *zap.Logger
}

func NewPaymentHandler(svc payment.Service, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{PaymentSvc: svc, Logger: logger}
}

// ConfirmPayment handles POST /payments/confirm, the gateway's signed
// callback. Safe to retry end to end.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindValidation,
			"message": "malformed request body",
		})
		return
	}

	result, err := h.PaymentSvc.Confirm(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// InitiatePayment handles POST /payments/initiate.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindValidation,
			"message": "malformed request body",
		})
		return
	}

	result, err := h.PaymentSvc.Initiate(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
