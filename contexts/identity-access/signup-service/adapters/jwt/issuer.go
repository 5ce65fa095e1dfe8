package jwtadapter

import (
	"errors"
	"time"

	"ratehub/contexts/identity-access/signup-service/ports"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed identity snapshot carried by an access token.
// Role and superuser reflect the account at issuance time; later role
// edits do not revoke already-issued tokens.
type Claims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	Superuser bool   `json:"superuser,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the verified requester extracted from a bearer token.
type Identity struct {
	AccountID string
	Username  string
	Role      string
	Superuser bool
}

type Issuer struct {
	Secret []byte
	TTL    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return Issuer{Secret: []byte(secret), TTL: ttl}
}

func (i Issuer) Issue(account ports.Account, now time.Time) (ports.AccessToken, error) {
	if len(i.Secret) == 0 {
		return ports.AccessToken{}, errors.New("token secret is not configured")
	}
	expiresAt := now.Add(i.TTL)
	claims := Claims{
		Username:  account.Username,
		Role:      account.Role,
		Superuser: account.Superuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return ports.AccessToken{}, err
	}
	return ports.AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Parse verifies a bearer token and returns the identity it asserts.
func (i Issuer) Parse(token string) (Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, errors.New("invalid token")
	}
	return Identity{
		AccountID: claims.Subject,
		Username:  claims.Username,
		Role:      claims.Role,
		Superuser: claims.Superuser,
	}, nil
}

var _ ports.TokenIssuer = Issuer{}
