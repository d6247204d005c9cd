package routes

import (
	adminapi "payfast-licensing/internal/api/admin"
	billingapi "payfast-licensing/internal/api/billing"
	payfastapi "payfast-licensing/internal/api/payfast"
	"payfast-licensing/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	PayFast   *payfastapi.Handler
	Billing   *billingapi.Handler
	Admin     *adminapi.Handler
	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Gateway-facing and browser-facing payment endpoints. Any method is routed so
	// the handlers can answer OPTIONS and reject the rest themselves.
	payments := r.Group("/")
	payments.Use(middleware.PaymentCORS())
	payments.Any("/payfast-initiate", middleware.SanitizeJSONBody(), h.PayFast.Initiate)
	payments.Any("/payfast-webhook", h.PayFast.Webhook)

	r.GET("/licenses/:key/verify", h.Billing.VerifyLicense)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(h.JWTSecret))
	auth.GET("/payments", h.Billing.GetPaymentHistory)
	auth.GET("/licenses", h.Billing.GetLicenses)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.JWTSecret), middleware.RequireRole("admin"))
	admin.GET("/payments", h.Admin.ListAllPayments)
	admin.GET("/licenses", h.Admin.ListAllLicenses)
	admin.GET("/stats", h.Admin.GetAdminStats)
}
