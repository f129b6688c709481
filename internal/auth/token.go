package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed session lifetime. Tokens are never renewed silently;
// after expiry the user must authenticate again.
const TokenTTL = 24 * time.Hour

// SessionClaims is the payload embedded in the signed session token. The
// token is the sole source of truth for the session; the server keeps no
// session store.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// PrincipalID parses the subject user id carried in the claims.
func (c *SessionClaims) PrincipalID() (int64, bool) {
	id, err := strconv.ParseInt(c.UserID, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// TokenCodec signs and verifies session tokens with a single HMAC secret and
// a single signing algorithm.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec constructs a codec around the server signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), now: time.Now}
}

// Create signs a session token for the principal with the fixed expiry.
func (c *TokenCodec) Create(p Principal) (string, error) {
	now := c.now()
	claims := SessionClaims{
		UserID: strconv.FormatInt(p.ID, 10),
		Email:  p.Email,
		Name:   p.Name,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the parsed claims, or nil for any malformed, forged or
// expired token. A token whose expiry equals the current instant is already
// expired. Callers treat nil uniformly as "unauthenticated"; the failure
// mode is deliberately not observable.
func (c *TokenCodec) Verify(tokenString string) *SessionClaims {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
