package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/starford/burnote/internal/apperr"
)

const bearerPrefix = "bearer "

// Tenant identifies the owner of private notes. An empty ID means the
// request is authorized but not scoped (single-tenant mode).
type Tenant struct {
	ID string
}

// Resolver authorizes credentials and maps them to tenants.
type Resolver struct {
	keys    Keys
	isolate bool
}

// NewResolver returns a resolver over keys. With isolate set, every
// authorized credential resolves to its own tenant.
func NewResolver(keys Keys, isolate bool) *Resolver {
	return &Resolver{keys: keys, isolate: isolate}
}

// Resolve checks the raw Authorization header value. An optional "Bearer "
// scheme is stripped and the remainder trimmed before comparison. Every
// failure returns apperr.ErrUnauthorized and nothing else.
func (r *Resolver) Resolve(header string) (Tenant, error) {
	if header == "" {
		return Tenant{}, apperr.ErrUnauthorized
	}
	cred := strings.TrimSpace(header)
	if hasBearerPrefix(cred) {
		cred = strings.TrimSpace(cred[len(bearerPrefix):])
	}
	if cred == "" || !r.keys.Contains(cred) {
		return Tenant{}, apperr.ErrUnauthorized
	}
	if !r.isolate {
		return Tenant{}, nil
	}
	return Tenant{ID: TenantID(cred)}, nil
}

func hasBearerPrefix(s string) bool {
	return len(s) >= len(bearerPrefix) && strings.EqualFold(s[:len(bearerPrefix)], bearerPrefix)
}

// TenantID returns the lowercase hex SHA-256 digest of credential.
func TenantID(credential string) string {
	h := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(h[:])
}
