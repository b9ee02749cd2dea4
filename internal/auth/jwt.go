// Package auth issue and verify access tokens and serve login, sign up and logout endpoints.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JwtIssuer is the issuer claim of every token this service sign.
const JwtIssuer = "JobPoster"

// TokenIssuer sign and validate HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates TokenIssuer signing with secret, tokens valid for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// GenerateStandardToken sign access token for account id with the configured lifetime.
func (ti *TokenIssuer) GenerateStandardToken(id uuid.UUID) (string, *jwt.RegisteredClaims, error) {
	return ti.GenerateTokenWithDuration(id, ti.ttl, JwtIssuer)
}

// GenerateTokenWithDuration sign token for account id valid for dur, with given issuer.
// Every token carry random jti so it can be revoked on its own.
func (ti *TokenIssuer) GenerateTokenWithDuration(id uuid.UUID, dur time.Duration, issuer string) (string, *jwt.RegisteredClaims, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(dur)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", nil, fmt.Errorf("Failed to sign token: %s", err)
	}
	return signedToken, claims, nil
}

// ValidatedToken parse encodeToken, verifying signature, expiry and issuer.
func (ti *TokenIssuer) ValidatedToken(encodeToken string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("Invalid access token")
	}
	if !claims.VerifyIssuer(JwtIssuer, true) {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	return claims, nil
}

// SubjectID return account id carried by claims.
func SubjectID(claims *jwt.RegisteredClaims) (uuid.UUID, error) {
	return uuid.Parse(claims.Subject)
}
