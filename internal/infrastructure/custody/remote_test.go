package custody

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"strongbox.dev/internal/infrastructure/logger"
)

func TestRemoteBank_Transfer(t *testing.T) {
	ctx := context.Background()
	party := testAddress(5)

	t.Run("pull posts the transfer payload", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody transferRequest

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		bank := NewRemoteBank(RemoteConfig{
			Endpoint: ts.URL,
			APIKey:   "secret-key",
			Timeout:  2 * time.Second,
		}, logger.NewNop())

		if err := bank.Pull(ctx, "BTC", party, 15); err != nil {
			t.Fatalf("Pull() error = %v", err)
		}
		if gotPath != "/api/transfers/pull" {
			t.Errorf("path = %q, want /api/transfers/pull", gotPath)
		}
		if gotAuth != "Bearer secret-key" {
			t.Errorf("Authorization = %q, want bearer key", gotAuth)
		}
		if gotBody.Asset != "BTC" || gotBody.Party != party.String() || gotBody.Amount != "15" {
			t.Errorf("body = %+v", gotBody)
		}
	})

	t.Run("push uses the push route", func(t *testing.T) {
		var gotPath string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		bank := NewRemoteBank(RemoteConfig{Endpoint: ts.URL, Timeout: 2 * time.Second}, logger.NewNop())
		if err := bank.Push(ctx, "ETH", party, 3); err != nil {
			t.Fatalf("Push() error = %v", err)
		}
		if gotPath != "/api/transfers/push" {
			t.Errorf("path = %q, want /api/transfers/push", gotPath)
		}
	})

	t.Run("provider rejection becomes an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "insufficient funds", http.StatusUnprocessableEntity)
		}))
		defer ts.Close()

		bank := NewRemoteBank(RemoteConfig{Endpoint: ts.URL, Timeout: 2 * time.Second}, logger.NewNop())
		if err := bank.Pull(ctx, "BTC", party, 15); err == nil {
			t.Error("Pull() against rejecting provider expected error, got nil")
		}
	})

	t.Run("unreachable provider becomes an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		bank := NewRemoteBank(RemoteConfig{Endpoint: ts.URL, Timeout: time.Second}, logger.NewNop())
		if err := bank.Push(ctx, "BTC", party, 1); err == nil {
			t.Error("Push() against closed provider expected error, got nil")
		}
	})
}
