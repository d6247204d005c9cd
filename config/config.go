package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	sandboxProcessURL  = "https://sandbox.payfast.co.za/eng/process"
	sandboxValidateURL = "https://sandbox.payfast.co.za/eng/query/validate"
	liveProcessURL     = "https://www.payfast.co.za/eng/process"
	liveValidateURL    = "https://www.payfast.co.za/eng/query/validate"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	BASE_URL   string
	APP_URL    string

	LOG_LEVEL string
	LOG_PATH  string

	PAYFAST_MERCHANT_ID      string
	PAYFAST_MERCHANT_KEY     string
	PAYFAST_PASSPHRASE       string
	PAYFAST_SANDBOX          bool
	PAYFAST_PROCESS_URL      string
	PAYFAST_VALIDATE_URL     string
	PAYFAST_VALIDATE_TIMEOUT time.Duration

	PAYFAST_PLACEHOLDER_EMAIL   string
	PAYFAST_DEDUPE_TRANSACTIONS bool
)

// PayFastConfig is the snapshot of gateway settings handed to the payfast handlers.
type PayFastConfig struct {
	MerchantID       string
	MerchantKey      string
	Passphrase       string
	ProcessURL       string
	ValidateURL      string
	ValidateTimeout  time.Duration
	NotifyBaseURL    string
	AppURL           string
	PlaceholderEmail string
	DedupeByTxID     bool
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	BASE_URL = strings.TrimRight(mustEnv("BASE_URL"), "/")
	APP_URL = strings.TrimRight(getEnv("APP_URL", BASE_URL), "/")
	JWT_SECRET = getEnv("JWT_SECRET", "")

	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_PATH = getEnv("LOG_PATH", "stdout")

	// Merchant credentials are checked per request so the initiator can report them.
	PAYFAST_MERCHANT_ID = getEnv("PAYFAST_MERCHANT_ID", "")
	PAYFAST_MERCHANT_KEY = getEnv("PAYFAST_MERCHANT_KEY", "")
	PAYFAST_PASSPHRASE = getEnv("PAYFAST_PASSPHRASE", "")

	PAYFAST_SANDBOX = getBool("PAYFAST_SANDBOX", true)
	processURL, validateURL := liveProcessURL, liveValidateURL
	if PAYFAST_SANDBOX {
		processURL, validateURL = sandboxProcessURL, sandboxValidateURL
	}
	PAYFAST_PROCESS_URL = getEnv("PAYFAST_PROCESS_URL", processURL)
	PAYFAST_VALIDATE_URL = getEnv("PAYFAST_VALIDATE_URL", validateURL)
	PAYFAST_VALIDATE_TIMEOUT = getDuration("PAYFAST_VALIDATE_TIMEOUT", 10*time.Second)

	PAYFAST_PLACEHOLDER_EMAIL = getEnv("PAYFAST_PLACEHOLDER_EMAIL", "customer@faa.zone")
	PAYFAST_DEDUPE_TRANSACTIONS = getBool("PAYFAST_DEDUPE_TRANSACTIONS", false)
}

func PayFast() PayFastConfig {
	return PayFastConfig{
		MerchantID:       PAYFAST_MERCHANT_ID,
		MerchantKey:      PAYFAST_MERCHANT_KEY,
		Passphrase:       PAYFAST_PASSPHRASE,
		ProcessURL:       PAYFAST_PROCESS_URL,
		ValidateURL:      PAYFAST_VALIDATE_URL,
		ValidateTimeout:  PAYFAST_VALIDATE_TIMEOUT,
		NotifyBaseURL:    BASE_URL,
		AppURL:           APP_URL,
		PlaceholderEmail: PAYFAST_PLACEHOLDER_EMAIL,
		DedupeByTxID:     PAYFAST_DEDUPE_TRANSACTIONS,
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid boolean for %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid duration for %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
