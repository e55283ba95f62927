package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/twofactor-server/internal/model"
)

// Claims represents JWT claims of a second-factor assertion.
type Claims struct {
	jwt.RegisteredClaims
	Method       string `json:"method"`
	CredentialID string `json:"cid"`
	TokenType    string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

const (
	defaultTTL    = 5 * time.Minute
	typeAssertion = "2fa-assertion"
)

var ErrInvalidToken = errors.New("invalid assertion token")

// NewJWT creates a new JWT token manager. A non-positive ttl falls back to
// five minutes.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWT{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// GenerateAssertionToken signs a short-lived assertion.
func (j *JWT) GenerateAssertionToken(a model.Assertion) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   a.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Method:       a.Method,
		CredentialID: a.CredentialID,
		TokenType:    typeAssertion,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion token: %w", err)
	}

	return tokenString, nil
}

// ParseAssertionToken validates signature, expiry and type of an assertion.
func (j *JWT) ParseAssertionToken(tokenString string) (model.Assertion, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return model.Assertion{}, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.Assertion{}, ErrInvalidToken
	}
	if claims.TokenType != typeAssertion {
		return model.Assertion{}, fmt.Errorf("%w: token type mismatch: %s", ErrInvalidToken, claims.TokenType)
	}
	if claims.Subject == "" {
		return model.Assertion{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	a := model.Assertion{
		AccountID:    claims.Subject,
		Method:       claims.Method,
		CredentialID: claims.CredentialID,
	}
	if claims.IssuedAt != nil {
		a.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		a.ExpiresAt = claims.ExpiresAt.Time
	}
	return a, nil
}
