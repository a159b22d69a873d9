package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// PurposePasswordReset marks short-lived reset tokens.
const PurposePasswordReset = "password-reset"

const issuer = "catat-jualan"

// Claims represents the JWT claims structure. Access tokens carry no purpose.
type Claims struct {
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a shared secret.
type Issuer struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewIssuer(secret string, ttl, resetTTL time.Duration) *Issuer {
	if secret == "" {
		secret = "your-super-secret-key-change-in-production"
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, resetTTL: resetTTL, now: time.Now}
}

// Sign creates an access token for a user id.
func (i *Issuer) Sign(userID string) (string, error) {
	return i.sign(userID, "", i.ttl)
}

// Verify parses an access token and returns its subject. Reset tokens are rejected.
func (i *Issuer) Verify(token string) (string, error) {
	claims, err := i.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Purpose != "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// SignReset creates a password reset token.
func (i *Issuer) SignReset(userID string) (string, error) {
	return i.sign(userID, PurposePasswordReset, i.resetTTL)
}

// VerifyReset accepts only password reset tokens.
func (i *Issuer) VerifyReset(token string) (string, error) {
	claims, err := i.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Purpose != PurposePasswordReset {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (i *Issuer) sign(userID, purpose string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := &Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.Subject != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
