package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// Claims is the decoded, unverified payload of a bearer token.
type Claims struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

// Expiry converts the exp claim to a wall-clock time. Zero when absent.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt <= 0 {
		return time.Time{}
	}
	return time.Unix(c.ExpiresAt, 0)
}

// DecodeClaims extracts the claims from the middle segment of a JWT without
// verifying its signature. Malformed input of any kind yields ok=false; this
// function never panics and never returns an error. A payload without a
// subject claim also reports ok=false, since the identity it would establish
// is unusable.
func DecodeClaims(token string) (Claims, bool) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return Claims{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return Claims{}, false
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, false
	}
	claims.Subject = strings.TrimSpace(claims.Subject)
	if claims.Subject == "" {
		return Claims{}, false
	}
	return claims, true
}
