package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// JWTCodec issues and verifies HS256 tokens whose subject is the user email.
// It is safe for concurrent use.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

// JWTOption customises a JWTCodec.
type JWTOption func(*JWTCodec)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) JWTOption {
	return func(c *JWTCodec) { c.now = now }
}

func NewJWTCodec(secret string, opts ...JWTOption) (*JWTCodec, error) {
	if secret == "" {
		return nil, errors.New("jwt codec: empty signing secret")
	}
	c := &JWTCodec{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for subject that expires ttl from now.
func (c *JWTCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("jwt codec: empty subject")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("jwt codec: non-positive ttl %s", ttl)
	}

	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiryAt(now, ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwt codec: sign: %w", err)
	}
	return signed, nil
}

// expiryAt rounds now+ttl up to a whole second, since NumericDate drops
// the fractional part and would otherwise cut the lifetime short.
func expiryAt(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	if t := exp.Truncate(time.Second); !t.Equal(exp) {
		return t.Add(time.Second)
	}
	return exp
}

// Verify checks signature, algorithm and expiry and returns the subject.
// No leeway is applied: a token is already expired at its exp instant.
func (c *JWTCodec) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
