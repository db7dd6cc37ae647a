package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the authenticated identity. Subject is the user's email
// because services resolve creators and authors by email.
type Claims struct {
	UserID         string `json:"uid"`
	AuthorityLevel string `json:"lvl"`
	jwt.RegisteredClaims
}

func SignJWT(secret, userID, email, level string, ttl time.Duration) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:         userID,
		AuthorityLevel: level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString([]byte(secret))
}

func ParseJWT(secret, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
