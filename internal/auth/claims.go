package auth

import (
	"strings"
	"time"
)

// IdentityClaims represents the claims stored in a PASETO session token.
// The identity payload is carried exactly as the client presented it at
// login; the standard claims are set server-side.
type IdentityClaims struct {
	Identity map[string]any `json:"identity"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// Email returns the identity's email claim, lowercased. Empty when the
// payload carries no string email.
func (c *IdentityClaims) Email() string {
	v, ok := c.Identity["email"]
	if !ok {
		return ""
	}
	email, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email))
}
