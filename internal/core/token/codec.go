// Package token signs and verifies the session tokens carried by the
// accessToken and refreshToken cookies. Both flavours share the same claim
// set and signing key and differ only in TTL.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures callers are expected to branch on. Anything that is
// not an expiry (bad signature, malformed payload, wrong algorithm) reports
// ErrTokenInvalid.
var (
	ErrTokenExpired = errors.New("token is expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// ErrMissingKey is returned by NewCodec when no signing secret is
// configured. This is fatal: without a key no token can be issued or
// checked.
var ErrMissingKey = errors.New("token: signing key is empty")

// Claims are the identity attributes embedded in every session token.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ID       string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// Complete reports whether the claims carry all required identity fields.
func (c *Claims) Complete() bool {
	return c.Username != "" && c.Email != "" && c.Role != ""
}

// SameIdentity reports whether two claim sets describe the same identity.
// Expiry and ID are deliberately excluded: a renewed access token compares
// equal to the refresh token it was minted from.
func (c *Claims) SameIdentity(other *Claims) bool {
	return c.Username == other.Username &&
		c.Email == other.Email &&
		c.Role == other.Role
}

// Codec signs and verifies session tokens with a single HS256 key. The key
// is loaded once at process start; rotating it invalidates every
// outstanding token.
type Codec struct {
	key []byte
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}
	return &Codec{key: []byte(secret)}, nil
}

// Sign issues a token for claims expiring ttl from now. The input claims
// are not mutated.
func (c *Codec) Sign(claims Claims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return t.SignedString(c.key)
}

// Verify parses and validates raw. On failure it returns ErrTokenExpired
// for an otherwise well-formed token past its expiry, and ErrTokenInvalid
// for everything else; tampering with either claims or expiry breaks the
// signature and reports ErrTokenInvalid.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
