package payfastapi

import (
	"context"
	"fmt"
	"time"

	"payfast-licensing/internal/domain/billing"
	"payfast-licensing/internal/infra/payfast"
	pflog "payfast-licensing/internal/pkg/log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Store is the write side the notification processor needs.
type Store interface {
	CreatePayment(ctx context.Context, p *billing.Payment) error
	CreateLicense(ctx context.Context, l *billing.License) error
	PaymentExists(ctx context.Context, transactionID string) (bool, error)
}

type Result int

const (
	ResultRejected Result = iota
	ResultIgnored
	ResultDuplicate
	ResultRecorded
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultRejected:
		return "rejected"
	case ResultIgnored:
		return "ignored"
	case ResultDuplicate:
		return "duplicate"
	case ResultRecorded:
		return "recorded"
	case ResultFailed:
		return "failed"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Outcome separates the payment result, which decides the HTTP answer, from the
// license result, which never does.
type Outcome struct {
	Result  Result
	Err     error
	Payment *billing.Payment

	License    *billing.License
	LicenseErr error
}

type Processor struct {
	Passphrase string
	Validator  payfast.Validator
	Store      Store
	// DedupeByTxID skips the insert when pf_payment_id is already stored.
	DedupeByTxID bool
	Now          func() time.Time
	Logger       *zap.SugaredLogger
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Processor) logger() *zap.SugaredLogger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop().Sugar()
}

// Process runs an ITN through signature check, gateway validation, the status gate,
// payment persistence and license issuance, in that order.
func (p *Processor) Process(ctx context.Context, fields map[string]string) Outcome {
	txID := fields[payfast.FieldPFPaymentID]
	logger := p.logger().With(pflog.PaymentID(txID), pflog.UserID(fields[payfast.FieldCustomStr1]))

	if p.Passphrase == "" {
		logger.Error("payfast passphrase not configured")
		return Outcome{Result: ResultFailed, Err: payfast.ErrMissingCredentials}
	}

	if !payfast.VerifySignature(fields, p.Passphrase) {
		logger.Warnw("invalid payfast signature")
		return Outcome{Result: ResultRejected, Err: payfast.ErrInvalidSignature}
	}

	valid, err := p.Validator.Validate(ctx, fields)
	if err != nil || !valid {
		logger.Warnw("payfast payment validation failed", "error", err)
		return Outcome{Result: ResultRejected, Err: payfast.Wrap(payfast.ErrPaymentValidationFailed, err)}
	}

	status := fields[payfast.FieldPaymentStatus]
	if status != payfast.StatusComplete {
		logger.Infow("payment not complete, acknowledging", "status", payfast.NormalizeStatus(status))
		return Outcome{Result: ResultIgnored}
	}

	if p.DedupeByTxID {
		exists, err := p.Store.PaymentExists(ctx, txID)
		if err != nil {
			logger.Errorw("failed to check for existing payment", "error", err)
			return Outcome{Result: ResultFailed, Err: payfast.Wrap(payfast.ErrPersistenceFailure, err)}
		}
		if exists {
			logger.Infow("duplicate notification, payment already recorded")
			return Outcome{Result: ResultDuplicate}
		}
	}

	payment, err := paymentFromFields(fields, p.now())
	if err != nil {
		logger.Errorw("failed to build payment", "error", err)
		return Outcome{Result: ResultFailed, Err: payfast.Wrap(payfast.ErrPersistenceFailure, err)}
	}
	if err := p.Store.CreatePayment(ctx, payment); err != nil {
		logger.Errorw("failed to record payment", "error", err)
		return Outcome{Result: ResultFailed, Err: payfast.Wrap(payfast.ErrPersistenceFailure, err)}
	}
	logger.Infow("payment recorded", "payment_id", payment.ID, "amount", payment.Amount.StringFixed(2))

	out := Outcome{Result: ResultRecorded, Payment: payment}

	licenseType := fields[payfast.FieldCustomStr2]
	if licenseType == "" {
		return out
	}
	license := billing.NewLicense(payment, licenseType, p.now())
	if err := p.Store.CreateLicense(ctx, license); err != nil {
		// The payment is stored; a retried ITN would duplicate it, so this stays a 200.
		logger.Errorw("failed to create license", "error", err, "license_type", licenseType)
		out.LicenseErr = payfast.Wrap(payfast.ErrLicenseIssuanceFailure, err)
		return out
	}
	logger.Infow("license issued", "license_type", licenseType, "expires_at", license.ExpiresAt)
	out.License = license
	return out
}

func paymentFromFields(fields map[string]string, now time.Time) (*billing.Payment, error) {
	amount, err := decimal.NewFromString(fields[payfast.FieldAmountGross])
	if err != nil {
		return nil, fmt.Errorf("parse amount_gross %q: %w", fields[payfast.FieldAmountGross], err)
	}

	raw := make(datatypes.JSONMap, len(fields))
	for k, v := range fields {
		raw[k] = v
	}

	var userID *string
	if v := fields[payfast.FieldCustomStr1]; v != "" {
		userID = &v
	}

	return &billing.Payment{
		ID:              uuid.New(),
		UserID:          userID,
		TransactionID:   fields[payfast.FieldPFPaymentID],
		MPaymentID:      fields[payfast.FieldMPaymentID],
		Amount:          amount,
		Currency:        billing.CurrencyZAR,
		PaymentMethod:   billing.PaymentMethodPayFast,
		Status:          billing.PaymentStatusCompleted,
		GatewayResponse: raw,
		CreatedAt:       now,
	}, nil
}
