package payfastapi

import (
	"net/http"

	"payfast-licensing/config"
	"payfast-licensing/internal/infra/payfast"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxNotificationBytes = 65536

type Handler struct {
	Merchant  payfast.Merchant
	Processor *Processor
	Logger    *zap.SugaredLogger
}

func NewHandler(cfg config.PayFastConfig, store Store, validator payfast.Validator, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		Merchant: MerchantFromConfig(cfg),
		Processor: &Processor{
			Passphrase:   cfg.Passphrase,
			Validator:    validator,
			Store:        store,
			DedupeByTxID: cfg.DedupeByTxID,
			Logger:       logger,
		},
		Logger: logger,
	}
}

func MerchantFromConfig(cfg config.PayFastConfig) payfast.Merchant {
	return payfast.Merchant{
		ID:               cfg.MerchantID,
		Key:              cfg.MerchantKey,
		Passphrase:       cfg.Passphrase,
		ProcessURL:       cfg.ProcessURL,
		ReturnURL:        cfg.AppURL + "/payment-return?provider=payfast",
		CancelURL:        cfg.AppURL + "/payment-cancel?provider=payfast",
		NotifyURL:        cfg.NotifyBaseURL + "/payfast-webhook",
		PlaceholderEmail: cfg.PlaceholderEmail,
	}
}

// Initiate handles POST /payfast-initiate.
func (h *Handler) Initiate(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return
	}
	if c.Request.Method != http.MethodPost {
		initiateError(c, payfast.ErrMethodNotAllowed)
		return
	}

	var req payfast.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		initiateError(c, payfast.ErrInvalidRequest)
		return
	}

	checkout, err := payfast.BuildCheckout(h.Merchant, req)
	if err != nil {
		if payfast.KindOf(err) == payfast.KindMissingCredentials {
			h.Logger.Error("payfast merchant credentials not configured")
		}
		initiateError(c, err)
		return
	}

	mPaymentID, _ := checkout.PaymentData.Get(payfast.FieldMPaymentID)
	h.Logger.Infow("payfast checkout created",
		"m_payment_id", mPaymentID,
		"license_type", req.LicenseType,
		"amount", req.Amount.Decimal.StringFixed(2),
	)

	c.JSON(http.StatusOK, checkout)
}

func initiateError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
		"kind":  payfast.KindOf(err),
	})
}

// Webhook handles the gateway's ITN on POST /payfast-webhook.
func (h *Handler) Webhook(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return
	}
	if c.Request.Method != http.MethodPost {
		c.String(http.StatusBadRequest, payfast.ErrMethodNotAllowed.Msg)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxNotificationBytes)
	if err := c.Request.ParseForm(); err != nil {
		h.Logger.Warnw("failed to parse payfast notification", "error", err)
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	fields := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			fields[k] = v[len(v)-1]
		}
	}
	h.Logger.Infow("payfast ITN received",
		"pf_payment_id", fields[payfast.FieldPFPaymentID],
		"payment_status", fields[payfast.FieldPaymentStatus],
	)

	out := h.Processor.Process(c.Request.Context(), fields)
	switch payfast.KindOf(out.Err) {
	case "":
		c.String(http.StatusOK, "OK")
	case payfast.KindInvalidSignature:
		c.String(http.StatusBadRequest, payfast.ErrInvalidSignature.Msg)
	case payfast.KindPaymentValidationFailed:
		c.String(http.StatusBadRequest, payfast.ErrPaymentValidationFailed.Msg)
	case payfast.KindPersistenceFailure:
		c.String(http.StatusInternalServerError, payfast.ErrPersistenceFailure.Msg)
	default:
		c.String(http.StatusInternalServerError, "Webhook processing failed")
	}
}
