package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eshopsolution/admin-api/internal/core/domain"
)

// RoleDelimiter joins the role names inside the token's role claim.
const RoleDelimiter = ";"

const defaultTokenTTL = 3 * time.Hour

// TokenIssuer builds signed, time-bounded session tokens. The signing key
// and issuer are injected configuration, never ambient state.
type TokenIssuer struct {
	key    []byte
	issuer string
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer signing with HMAC-SHA256. A
// non-positive ttl falls back to the default 3-hour window.
func NewTokenIssuer(key, issuer string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{key: []byte(key), issuer: issuer, ttl: ttl}
}

// Issue produces a token for the user carrying a snapshot of the given
// roles. Claims are fixed at issuance and never updated in place; expiry is
// the only termination path as no revocation mechanism exists.
func (t *TokenIssuer) Issue(user *domain.User, roles []string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":        t.issuer,
		"aud":        t.issuer,
		"email":      user.Email,
		"given_name": user.Name,
		"role":       strings.Join(roles, RoleDelimiter),
		"name":       user.UserName,
		"exp":        now.Add(t.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.key)
}
