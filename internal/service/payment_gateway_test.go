package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rickd091/mti-portal/pkg/config"
)

func newTestGateway(baseURL string) *HTTPGateway {
	return NewHTTPGateway(config.PaymentConfig{
		BaseURL:        baseURL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		CallbackURL:    "https://portal.example/api/v1/payments/callback",
	})
}

func TestHTTPGatewayInitiate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			t.Errorf("missing or wrong basic auth")
		}

		var req initiateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Reference != "PAY-TEST-1" || req.AmountCents != 250000 || req.Currency != "KES" {
			t.Errorf("unexpected request payload: %+v", req)
		}
		if req.CallbackURL == "" {
			t.Errorf("callback URL not forwarded")
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(initiateResponse{CheckoutURL: "https://pay.example/c/abc"})
	}))
	defer srv.Close()

	gw := newTestGateway(srv.URL)
	url, err := gw.Initiate(context.Background(), "PAY-TEST-1", 250000, "KES")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if url != "https://pay.example/c/abc" {
		t.Fatalf("unexpected checkout url %q", url)
	}
}

func TestHTTPGatewayInitiateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	gw := newTestGateway(srv.URL)
	if _, err := gw.Initiate(context.Background(), "PAY-TEST-2", 100, "KES"); err == nil {
		t.Fatal("expected error for non-2xx gateway response")
	}
}

func TestHTTPGatewayStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/PAY-TEST-3" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(statusResponse{Status: "completed"})
	}))
	defer srv.Close()

	gw := newTestGateway(srv.URL)
	status, err := gw.Status(context.Background(), "PAY-TEST-3")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != "completed" {
		t.Fatalf("expected completed, got %q", status)
	}
}
