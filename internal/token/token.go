package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs short-lived HS256 access tokens handed out at login.
type Issuer struct {
	Secret []byte
	TTL    time.Duration
}

func (i *Issuer) Issue(userID int, username string) (string, error) {
	ttl := i.TTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.Secret)
}

func (i *Issuer) Parse(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return i.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
