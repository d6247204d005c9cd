package payfastapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"payfast-licensing/config"
	"payfast-licensing/internal/infra/payfast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initiateResponse struct {
	PaymentURL  string            `json:"paymentUrl"`
	PaymentData map[string]string `json:"paymentData"`
	Error       string            `json:"error"`
	Kind        string            `json:"kind"`
}

func postJSON(t *testing.T, r http.Handler, body string) (*httptest.ResponseRecorder, initiateResponse) {
	req := httptest.NewRequest(http.MethodPost, "/payfast-initiate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp initiateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestInitiate_SovereignLicense(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0")
	r := newTestRouter(newTestHandler(cfg, &fakeStore{}))

	w, resp := postJSON(t, r, `{"amount": 100.00, "itemName": "Sovereign License", "licenseType": "sovereign", "userId": "u1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cfg.ProcessURL, resp.PaymentURL)
	assert.Equal(t, "100.00", resp.PaymentData["amount"])
	assert.Equal(t, "u1", resp.PaymentData["custom_str1"])
	assert.Equal(t, "sovereign", resp.PaymentData["custom_str2"])
	assert.Equal(t, "https://api.example.com/payfast-webhook", resp.PaymentData["notify_url"])
	assert.Equal(t, "https://app.example.com/payment-return?provider=payfast", resp.PaymentData["return_url"])
	assert.Equal(t, "https://app.example.com/payment-cancel?provider=payfast", resp.PaymentData["cancel_url"])

	sig := resp.PaymentData["signature"]
	require.NotEmpty(t, sig)
	assert.True(t, payfast.VerifySignature(resp.PaymentData, testPassphrase))

	// signature is the last key in the serialized object
	body := w.Body.String()
	assert.Greater(t, strings.Index(body, `"signature"`), strings.Index(body, `"custom_str2"`))
}

func TestInitiate_InvalidAmount(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero", `{"amount": 0, "itemName": "x", "licenseType": "sovereign"}`},
		{"negative", `{"amount": -5, "itemName": "x", "licenseType": "sovereign"}`},
		{"missing", `{"itemName": "x", "licenseType": "sovereign"}`},
		{"null", `{"amount": null, "itemName": "x"}`},
	}
	r := newTestRouter(newTestHandler(testConfig("http://127.0.0.1:0"), &fakeStore{}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := postJSON(t, r, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Invalid amount", resp.Error)
			assert.Equal(t, string(payfast.KindInvalidAmount), resp.Kind)
		})
	}
}

func TestInitiate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		unset func(c *config.PayFastConfig)
	}{
		{"merchant id", func(c *config.PayFastConfig) { c.MerchantID = "" }},
		{"merchant key", func(c *config.PayFastConfig) { c.MerchantKey = "" }},
		{"passphrase", func(c *config.PayFastConfig) { c.Passphrase = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("http://127.0.0.1:0")
			tt.unset(&cfg)
			r := newTestRouter(newTestHandler(cfg, &fakeStore{}))

			w, resp := postJSON(t, r, `{"amount": 10, "itemName": "x", "licenseType": "sovereign"}`)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "PayFast credentials not configured", resp.Error)
			assert.Equal(t, string(payfast.KindMissingCredentials), resp.Kind)
		})
	}
}

func TestInitiate_MalformedBody(t *testing.T) {
	r := newTestRouter(newTestHandler(testConfig("http://127.0.0.1:0"), &fakeStore{}))

	w, resp := postJSON(t, r, `{"amount": "lots"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(payfast.KindInvalidRequest), resp.Kind)
}

func TestInitiate_Methods(t *testing.T) {
	r := newTestRouter(newTestHandler(testConfig("http://127.0.0.1:0"), &fakeStore{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/payfast-initiate", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payfast-initiate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp initiateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Method not allowed", resp.Error)
	assert.Equal(t, string(payfast.KindMethodNotAllowed), resp.Kind)
}
