package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/garrison-vtt/garrison/internal/api/response"
	"github.com/garrison-vtt/garrison/internal/core"
	"github.com/garrison-vtt/garrison/internal/metrics"
	"github.com/garrison-vtt/garrison/internal/model"
)

// credentialLength is the exact length of a bearer secret.
const credentialLength = 32

// Resolver looks up the principal owning a bearer secret. An unknown secret
// is reported as a core not-found error.
type Resolver interface {
	Resolve(ctx context.Context, secret string) (*model.Principal, error)
}

// Gate validates Authorization headers and resolves them to a principal.
type Gate struct {
	resolver Resolver
}

// NewGate creates a Gate backed by resolver.
func NewGate(resolver Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// Authenticate checks the Authorization header values of a request and
// returns the principal they identify. Header shape is fully checked before
// the resolver is consulted.
func (g *Gate) Authenticate(ctx context.Context, values []string) (*model.Principal, error) {
	if len(values) != 1 {
		return nil, reject("header", "Missing or duplicate Authorization Header")
	}
	parts := strings.Split(values[0], " ")
	if len(parts) != 2 {
		return nil, reject("malformed", "Invalid Authorization Header")
	}
	if parts[0] != "Bearer" || len(parts[1]) != credentialLength {
		return nil, reject("malformed", "Invalid Authorization Header")
	}

	principal, err := g.resolver.Resolve(ctx, parts[1])
	if err != nil {
		if core.IsNotFound(err) {
			return nil, reject("unknown", "Invalid Bearer token")
		}
		return nil, err
	}
	return principal, nil
}

// AuthenticateRequest is Authenticate applied to r's Authorization header.
func (g *Gate) AuthenticateRequest(r *http.Request) (*model.Principal, error) {
	return g.Authenticate(r.Context(), r.Header.Values("Authorization"))
}

func reject(reason, detail string) error {
	metrics.AuthFailures.WithLabelValues(reason).Inc()
	return core.Unauthenticated(detail)
}

type contextKey struct{}

var principalKey contextKey

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the principal stored by Auth, if any.
func PrincipalFrom(ctx context.Context) (*model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*model.Principal)
	return p, ok && p != nil
}

// Auth returns a middleware that rejects requests without a valid bearer
// token and stores the resolved principal in the request context.
func Auth(gate *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := gate.AuthenticateRequest(r)
			if err != nil {
				response.WriteServiceError(w, zerolog.Ctx(r.Context()), err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}
