package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/test")
	t.Setenv("BASE_URL", "https://api.example.com/")
}

func TestLoadEnv_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PAYFAST_MERCHANT_ID", "10000100")
	t.Setenv("PAYFAST_MERCHANT_KEY", "46f0cd694581a")
	t.Setenv("PAYFAST_PASSPHRASE", "pp")

	LoadEnv()
	pf := PayFast()

	assert.Equal(t, "8080", PORT)
	assert.Equal(t, "https://api.example.com", pf.NotifyBaseURL)
	assert.Equal(t, "https://api.example.com", pf.AppURL)
	assert.Equal(t, sandboxProcessURL, pf.ProcessURL)
	assert.Equal(t, sandboxValidateURL, pf.ValidateURL)
	assert.Equal(t, 10*time.Second, pf.ValidateTimeout)
	assert.Equal(t, "10000100", pf.MerchantID)
	assert.Equal(t, "pp", pf.Passphrase)
	assert.False(t, pf.DedupeByTxID)
}

func TestLoadEnv_Live(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_URL", "https://faa.zone/")
	t.Setenv("PAYFAST_SANDBOX", "false")
	t.Setenv("PAYFAST_VALIDATE_TIMEOUT", "3s")
	t.Setenv("PAYFAST_DEDUPE_TRANSACTIONS", "true")

	LoadEnv()
	pf := PayFast()

	assert.Equal(t, "https://faa.zone", pf.AppURL)
	assert.Equal(t, liveProcessURL, pf.ProcessURL)
	assert.Equal(t, liveValidateURL, pf.ValidateURL)
	assert.Equal(t, 3*time.Second, pf.ValidateTimeout)
	assert.True(t, pf.DedupeByTxID)
}

func TestGetters_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "-1s")
	assert.True(t, getBool("X_BOOL", true))
	assert.Equal(t, time.Minute, getDuration("X_DUR", time.Minute))
	assert.Equal(t, "fb", getEnv("X_UNSET_KEY", "fb"))
}
