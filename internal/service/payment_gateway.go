package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rickd091/mti-portal/pkg/config"
)

// PaymentGateway abstracts the external fee collection provider so the
// service can run against a stub in tests and in local development.
type PaymentGateway interface {
	Initiate(ctx context.Context, reference string, amountCents int64, currency string) (checkoutURL string, err error)
	Status(ctx context.Context, reference string) (string, error)
}

// HTTPGateway talks to the gateway's REST API with basic auth credentials.
type HTTPGateway struct {
	baseURL     string
	consumerKey string
	secret      string
	callbackURL string
	client      *http.Client
}

func NewHTTPGateway(cfg config.PaymentConfig) *HTTPGateway {
	return &HTTPGateway{
		baseURL:     cfg.BaseURL,
		consumerKey: cfg.ConsumerKey,
		secret:      cfg.ConsumerSecret,
		callbackURL: cfg.CallbackURL,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

type initiateRequest struct {
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	CallbackURL string `json:"callback_url"`
}

type initiateResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (g *HTTPGateway) Initiate(ctx context.Context, reference string, amountCents int64, currency string) (string, error) {
	body, err := json.Marshal(initiateRequest{
		Reference:   reference,
		AmountCents: amountCents,
		Currency:    currency,
		CallbackURL: g.callbackURL,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/checkout", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.consumerKey, g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var out initiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	return out.CheckoutURL, nil
}

func (g *HTTPGateway) Status(ctx context.Context, reference string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/checkout/"+reference, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.consumerKey, g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	return out.Status, nil
}
