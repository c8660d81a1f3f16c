package port

import (
	"context"
	"net/http"

	"strongbox.dev/internal/domain/entity"
)

// Authenticator is the port for resolving the caller identity of a signed
// HTTP request.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request, body []byte) (entity.Address, error)
}
