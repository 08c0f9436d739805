package routes

import (
	"github.com/strumhouse/strumhouse-main-sub001/handlers"
	"github.com/strumhouse/strumhouse-main-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// Bundle carries the wired handlers the router needs.
type Bundle struct {
	Booking    *handlers.BookingHandler
	Payment    *handlers.PaymentHandler
	Admin      *handlers.AdminHandler
	Catalog    *handlers.CatalogHandler
	AdminToken string
}

// RegisterRoutes mounts the public booking surface and the guarded staff
// surface.
func RegisterRoutes(r *gin.Engine, b *Bundle) {
	r.POST("/bookings", b.Booking.CreateBooking)
	r.POST("/availability", b.Booking.CheckAvailability)
	r.GET("/services", b.Catalog.ListServices)

	r.POST("/payments/initiate", b.Payment.InitiatePayment)
	r.POST("/payments/confirm", b.Payment.ConfirmPayment)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(b.AdminToken))
	{
		admin.GET("/summary", b.Admin.GetSummary)
		admin.POST("/blocked", b.Admin.CreateBlock)
		admin.GET("/blocked", b.Admin.ListBlocks)
		admin.DELETE("/blocked/:id", b.Admin.DeleteBlock)
	}

	r.GET("/healthz", handlers.Health)
}
