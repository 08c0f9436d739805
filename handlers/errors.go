package handlers

import (
	"errors"
	"net/http"

	"github.com/strumhouse/strumhouse-main-sub001/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeServiceError maps the engine's error taxonomy onto HTTP statuses
// with a stable "error" kind field. Internal detail (raw store errors,
// partial-write specifics) is logged, not returned.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validationErr    *models.ValidationError
		referenceErr     *models.ReferenceError
		conflictErr      *models.ConflictError
		securityErr      *models.SecurityError
		notFoundErr      *models.NotFoundError
		storeErr         *models.StoreError
		inconsistencyErr *models.InconsistencyError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindValidation,
			"missing": validationErr.Missing,
			"message": validationErr.Error(),
		})
	case errors.As(err, &referenceErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindReference,
			"message": referenceErr.Error(),
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     models.KindConflict,
			"message":   conflictErr.Error(),
			"conflicts": conflictErr.Conflicts,
		})
	case errors.As(err, &securityErr):
		logger.Warn("rejected payment callback", zap.String("reason", securityErr.Message))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.KindSecurity,
			"message": "signature verification failed",
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   models.KindNotFound,
			"message": notFoundErr.Error(),
		})
	case errors.As(err, &inconsistencyErr):
		logger.Error("partial write left inconsistent state",
			zap.String("step", inconsistencyErr.Step),
			zap.String("bookingId", inconsistencyErr.BookingID),
			zap.String("paymentId", inconsistencyErr.PaymentID),
			zap.String("orderId", inconsistencyErr.OrderID),
			zap.Error(inconsistencyErr.Err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   models.KindInconsistency,
			"message": "the operation was partially applied and has been flagged for repair",
		})
	case errors.As(err, &storeErr):
		logger.Error("store operation failed",
			zap.String("op", storeErr.Op),
			zap.Error(storeErr.Err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   models.KindStore,
			"message": "data service unavailable",
		})
	default:
		logger.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "An unexpected error occurred.",
		})
	}
}
