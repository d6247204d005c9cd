package admin

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"payfast-licensing/internal/domain/billing"
	"payfast-licensing/internal/repository"

	"github.com/gin-gonic/gin"
)

const defaultListLimit = 100

type Reader interface {
	ListPayments(ctx context.Context, limit int) ([]billing.Payment, error)
	ListLicenses(ctx context.Context, limit int) ([]billing.License, error)
	Stats(ctx context.Context, since time.Time) (*repository.Stats, error)
}

type Handler struct {
	Repo Reader
	Now  func() time.Time
}

func NewHandler(repo Reader) *Handler {
	return &Handler{Repo: repo, Now: time.Now}
}

type AdminPayment struct {
	ID            string  `json:"id"`
	UserID        *string `json:"user_id,omitempty"`
	TransactionID string  `json:"transaction_id"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

type AdminLicense struct {
	ID          string  `json:"id"`
	UserID      *string `json:"user_id,omitempty"`
	LicenseType string  `json:"license_type"`
	Status      string  `json:"status"`
	PaymentID   string  `json:"payment_id"`
	ExpiresAt   string  `json:"expires_at"`
}

func listLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 || n > 1000 {
		return defaultListLimit
	}
	return n
}

func (h *Handler) ListAllPayments(c *gin.Context) {
	payments, err := h.Repo.ListPayments(c.Request.Context(), listLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	result := make([]AdminPayment, 0, len(payments))
	for _, p := range payments {
		result = append(result, AdminPayment{
			ID:            p.ID.String(),
			UserID:        p.UserID,
			TransactionID: p.TransactionID,
			Amount:        p.Amount.StringFixed(2),
			Currency:      p.Currency,
			Status:        string(p.Status),
			CreatedAt:     p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListAllLicenses(c *gin.Context) {
	licenses, err := h.Repo.ListLicenses(c.Request.Context(), listLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load licenses"})
		return
	}

	result := make([]AdminLicense, 0, len(licenses))
	for _, l := range licenses {
		result = append(result, AdminLicense{
			ID:          l.ID.String(),
			UserID:      l.UserID,
			LicenseType: l.LicenseType,
			Status:      string(l.Status),
			PaymentID:   l.PaymentID.String(),
			ExpiresAt:   l.ExpiresAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetAdminStats(c *gin.Context) {
	thirtyDaysAgo := h.Now().AddDate(0, 0, -30)
	stats, err := h.Repo.Stats(c.Request.Context(), thirtyDaysAgo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
