// internal/app/system/identity/tokens.go
package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig holds the signing parameters for access tokens.
type TokenConfig struct {
	Secret string        // HS256 signing secret, required
	Issuer string        // "iss" claim
	TTL    time.Duration // token lifetime
}

// Claims carried by an access token. Subject is the account ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// mintToken signs an HS256 access token for the account.
func mintToken(cfg TokenConfig, acct Account, now time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   acct.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
		Email: acct.Email,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(cfg.Secret))
}

// parseToken validates signature and expiry and returns the claims.
// Any failure maps to ErrInvalidToken; callers never see jwt internals.
func parseToken(cfg TokenConfig, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
