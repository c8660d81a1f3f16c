package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
	"strongbox.dev/internal/infrastructure/logger"
)

// NonceStore tracks used nonces to prevent replay attacks
type NonceStore struct {
	mu     sync.Mutex
	nonces map[string]time.Time
}

// NewNonceStore creates a new nonce store
func NewNonceStore() *NonceStore {
	return &NonceStore{
		nonces: make(map[string]time.Time),
	}
}

// IsValid checks if a nonce is valid (not seen before) and records it
func (ns *NonceStore) IsValid(nonce string, timestamp time.Time) bool {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if existingTime, exists := ns.nonces[nonce]; exists {
		// Nonces older than an hour are past every timestamp tolerance,
		// so reusing them cannot replay an accepted request.
		if time.Since(existingTime) > time.Hour {
			delete(ns.nonces, nonce)
		} else {
			return false
		}
	}

	ns.nonces[nonce] = timestamp

	if len(ns.nonces) > 10000 {
		ns.cleanup()
	}

	return true
}

// cleanup removes nonces older than 1 hour
func (ns *NonceStore) cleanup() {
	now := time.Now()
	for nonce, timestamp := range ns.nonces {
		if now.Sub(timestamp) > time.Hour {
			delete(ns.nonces, nonce)
		}
	}
}

// HMACAuthenticator implements the Authenticator port. Every caller owns a
// shared secret; a request carries its account address, a unix timestamp, a
// nonce and the HMAC signature of the three plus the body.
type HMACAuthenticator struct {
	secrets            map[entity.Address]string
	nonceStore         *NonceStore
	timestampTolerance time.Duration
	logger             logger.Logger
}

// NewHMACAuthenticator creates an authenticator over a fixed secret registry
func NewHMACAuthenticator(
	secrets map[entity.Address]string,
	timestampTolerance time.Duration,
	logger logger.Logger,
) port.Authenticator {
	return &HMACAuthenticator{
		secrets:            secrets,
		nonceStore:         NewNonceStore(),
		timestampTolerance: timestampTolerance,
		logger:             logger,
	}
}

// Authenticate resolves the caller identity of a signed request
func (a *HMACAuthenticator) Authenticate(ctx context.Context, r *http.Request, body []byte) (entity.Address, error) {
	account := r.Header.Get("X-Account")
	timestampStr := r.Header.Get("X-Timestamp")
	nonce := r.Header.Get("X-Nonce")
	signature := r.Header.Get("X-Signature")

	if account == "" {
		return "", fmt.Errorf("missing X-Account header")
	}
	if timestampStr == "" {
		return "", fmt.Errorf("missing X-Timestamp header")
	}
	if nonce == "" {
		return "", fmt.Errorf("missing X-Nonce header")
	}
	if signature == "" {
		return "", fmt.Errorf("missing X-Signature header")
	}

	caller, err := entity.ParseAddress(account)
	if err != nil {
		return "", fmt.Errorf("invalid X-Account header: %w", err)
	}

	secret, known := a.secrets[caller]
	if !known {
		a.logger.LogWarning(ctx, "Request from unknown signing account",
			"account", caller.String())
		return "", fmt.Errorf("unknown signing account")
	}

	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid X-Timestamp format: %w", err)
	}
	requestTime := time.Unix(timestamp, 0)

	now := time.Now()
	timeDiff := now.Sub(requestTime)
	if timeDiff < 0 {
		timeDiff = -timeDiff
	}
	if timeDiff > a.timestampTolerance {
		a.logger.LogWarning(ctx, "Request timestamp out of tolerance",
			"account", caller.String(),
			"timestamp", timestamp,
			"current_time", now.Unix(),
			"difference_seconds", timeDiff.Seconds(),
			"tolerance_seconds", a.timestampTolerance.Seconds())
		return "", fmt.Errorf("timestamp out of tolerance: difference is %v, max allowed is %v", timeDiff, a.timestampTolerance)
	}

	expectedSignature := Sign(secret, timestampStr, nonce, body)

	// Constant-time comparison to prevent timing attacks.
	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		a.logger.LogWarning(ctx, "Invalid request signature",
			"account", caller.String())
		return "", fmt.Errorf("invalid signature")
	}

	// Burned only after the signature held, so a forged request cannot void
	// a caller's nonce. Namespacing keeps one caller from burning another's.
	if !a.nonceStore.IsValid(caller.String()+":"+nonce, requestTime) {
		a.logger.LogWarning(ctx, "Duplicate nonce detected (replay attack)",
			"account", caller.String(),
			"nonce", nonce,
			"timestamp", timestamp)
		return "", fmt.Errorf("duplicate nonce detected: possible replay attack")
	}

	return caller, nil
}

// Sign computes the hex HMAC SHA256 request signature.
// Format: X-Timestamp + "\n" + X-Nonce + "\n" + <raw_request_body_bytes_as_string>
func Sign(secret, timestamp, nonce string, body []byte) string {
	message := timestamp + "\n" + nonce + "\n" + string(body)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))

	return hex.EncodeToString(mac.Sum(nil))
}
