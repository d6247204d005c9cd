package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	CurrencyZAR          = "ZAR"
	PaymentMethodPayFast = "payfast"
)

// Payment is written once, after a gateway notification passed both checks.
type Payment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          *string           `gorm:"index" json:"user_id,omitempty"`
	TransactionID   string            `gorm:"column:transaction_id;not null;index:idx_payments_transaction_id" json:"transaction_id"`
	MPaymentID      string            `gorm:"column:m_payment_id" json:"m_payment_id,omitempty"`
	Amount          decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency        string            `gorm:"type:varchar(3);not null" json:"currency"`
	PaymentMethod   string            `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status          PaymentStatus     `gorm:"column:payment_status;type:varchar(20);not null" json:"payment_status"`
	GatewayResponse datatypes.JSONMap `gorm:"type:jsonb" json:"gateway_response,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}
