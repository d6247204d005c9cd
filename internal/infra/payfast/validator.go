package payfast

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const validResponse = "VALID"

// Validator confirms a notification with the gateway, server to server.
type Validator interface {
	Validate(ctx context.Context, fields map[string]string) (bool, error)
}

type GatewayClient struct {
	client *resty.Client
	url    string
}

func NewGatewayClient(validateURL string, timeout time.Duration) *GatewayClient {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/x-www-form-urlencoded")
	return &GatewayClient{client: c, url: validateURL}
}

// Validate posts the notification (without its signature) back to the gateway.
// Only a body of exactly "VALID" counts as valid.
func (g *GatewayClient) Validate(ctx context.Context, fields map[string]string) (bool, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(ValidationBody(fields)).
		Post(g.url)
	if err != nil {
		return false, fmt.Errorf("payfast validate request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("payfast validate returned status %d", resp.StatusCode())
	}
	return string(resp.Body()) == validResponse, nil
}
