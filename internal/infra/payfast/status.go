package payfast

import (
	"strings"

	"payfast-licensing/internal/domain/billing"
)

// Gateway payment_status values.
const (
	StatusComplete  = "COMPLETE"
	StatusPending   = "PENDING"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

// NormalizeStatus maps a gateway payment_status onto the stored payment status.
func NormalizeStatus(s string) billing.PaymentStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case StatusComplete:
		return billing.PaymentStatusCompleted
	case StatusPending:
		return billing.PaymentStatusPending
	case StatusFailed:
		return billing.PaymentStatusFailed
	case StatusCancelled:
		return billing.PaymentStatusCancelled
	default:
		return billing.PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	}
}
