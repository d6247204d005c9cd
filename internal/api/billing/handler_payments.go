package billing

import (
	"context"
	"net/http"
	"time"

	"payfast-licensing/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// Reader is the read side of the payment repository used by account routes.
type Reader interface {
	ListPaymentsByUser(ctx context.Context, userID string) ([]billing.Payment, error)
	ListLicensesByUser(ctx context.Context, userID string) ([]billing.License, error)
	FindLicenseByKey(ctx context.Context, key string) (*billing.License, error)
}

type Handler struct {
	Repo Reader
	Now  func() time.Time
}

func NewHandler(repo Reader) *Handler {
	return &Handler{Repo: repo, Now: time.Now}
}

type PaymentView struct {
	ID            string `json:"id"`
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
}

func (h *Handler) GetPaymentHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payments, err := h.Repo.ListPaymentsByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	out := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentView{
			ID:            p.ID.String(),
			TransactionID: p.TransactionID,
			Amount:        p.Amount.StringFixed(2),
			Currency:      p.Currency,
			PaymentMethod: p.PaymentMethod,
			Status:        string(p.Status),
			CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, out)
}
