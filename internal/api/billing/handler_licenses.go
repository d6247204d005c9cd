package billing

import (
	"errors"
	"net/http"
	"time"

	"payfast-licensing/internal/repository"

	"github.com/gin-gonic/gin"
)

type LicenseView struct {
	LicenseKey  string    `json:"license_key"`
	LicenseType string    `json:"license_type"`
	Status      string    `json:"status"`
	Active      bool      `json:"active"`
	ExpiresAt   time.Time `json:"expires_at"`
	PaymentID   string    `json:"payment_id"`
}

func (h *Handler) GetLicenses(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	licenses, err := h.Repo.ListLicensesByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load licenses"})
		return
	}

	now := h.Now()
	out := make([]LicenseView, 0, len(licenses))
	for _, l := range licenses {
		out = append(out, LicenseView{
			LicenseKey:  l.LicenseKey,
			LicenseType: l.LicenseType,
			Status:      string(l.Status),
			Active:      l.IsActive(now),
			ExpiresAt:   l.ExpiresAt,
			PaymentID:   l.PaymentID.String(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// VerifyLicense answers whether a license key currently grants access.
func (h *Handler) VerifyLicense(c *gin.Context) {
	key := c.Param("key")

	l, err := h.Repo.FindLicenseByKey(c.Request.Context(), key)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "License not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load license"})
		return
	}

	active := l.IsActive(h.Now())
	c.JSON(http.StatusOK, gin.H{
		"valid":        active,
		"license_type": l.LicenseType,
		"status":       l.Status,
		"expires_at":   l.ExpiresAt,
	})
}
