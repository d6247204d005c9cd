package payfastapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"payfast-licensing/config"
	"payfast-licensing/internal/domain/billing"
	"payfast-licensing/internal/infra/payfast"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const testPassphrase = "jt7NOE43FZPn"

var errStoreDown = errors.New("store unavailable")

type fakeStore struct {
	mu         sync.Mutex
	payments   []*billing.Payment
	licenses   []*billing.License
	paymentErr error
	licenseErr error
	existsErr  error
}

func (s *fakeStore) CreatePayment(_ context.Context, p *billing.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paymentErr != nil {
		return s.paymentErr
	}
	s.payments = append(s.payments, p)
	return nil
}

func (s *fakeStore) CreateLicense(_ context.Context, l *billing.License) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.licenseErr != nil {
		return s.licenseErr
	}
	s.licenses = append(s.licenses, l)
	return nil
}

func (s *fakeStore) PaymentExists(_ context.Context, txID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.existsErr != nil {
		return false, s.existsErr
	}
	for _, p := range s.payments {
		if p.TransactionID == txID {
			return true, nil
		}
	}
	return false, nil
}

// gateway stands in for the validate endpoint.
type gateway struct {
	srv   *httptest.Server
	body  atomic.Value
	calls atomic.Int32
}

func newGateway(t *testing.T, reply string) *gateway {
	g := &gateway{}
	g.body.Store(reply)
	g.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.calls.Add(1)
		_, _ = w.Write([]byte(g.body.Load().(string)))
	}))
	t.Cleanup(g.srv.Close)
	return g
}

func testConfig(validateURL string) config.PayFastConfig {
	return config.PayFastConfig{
		MerchantID:       "10000100",
		MerchantKey:      "46f0cd694581a",
		Passphrase:       testPassphrase,
		ProcessURL:       "https://sandbox.payfast.co.za/eng/process",
		ValidateURL:      validateURL,
		ValidateTimeout:  time.Second,
		NotifyBaseURL:    "https://api.example.com",
		AppURL:           "https://app.example.com",
		PlaceholderEmail: "customer@faa.zone",
	}
}

func newTestHandler(cfg config.PayFastConfig, store Store) *Handler {
	return NewHandler(cfg, store, payfast.NewGatewayClient(cfg.ValidateURL, cfg.ValidateTimeout), zap.NewNop().Sugar())
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Any("/payfast-initiate", h.Initiate)
	r.Any("/payfast-webhook", h.Webhook)
	return r
}

func itnFields(status string) map[string]string {
	return map[string]string{
		"m_payment_id":   "b1c2a3f4-0000-4000-8000-000000000001",
		"pf_payment_id":  "1089250",
		"payment_status": status,
		"item_name":      "Dynastic License",
		"amount_gross":   "100.00",
		"amount_fee":     "-2.30",
		"amount_net":     "97.70",
		"custom_str1":    "u1",
		"custom_str2":    "dynastic",
		"name_first":     "Customer",
		"email_address":  "customer@faa.zone",
		"merchant_id":    "10000100",
	}
}

func signed(fields map[string]string) map[string]string {
	fields[payfast.FieldSignature] = payfast.Signature(fields, testPassphrase)
	return fields
}

func postForm(r http.Handler, path string, fields map[string]string) *httptest.ResponseRecorder {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
