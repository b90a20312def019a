package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/darasa-lms/portal/core"
)

// The browser cookie carries only the session id, signed so a forged id
// cannot address someone else's record.

type cookieClaims struct {
	jwt.RegisteredClaims
	SID string `json:"sid"`
}

// GenerateToken signs a session-id cookie value.
func GenerateToken(sid string) (string, error) {
	now := time.Now()
	claims := &cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    core.Conf.AppName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(core.Conf.Session.TTL)),
		},
		SID: sid,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(core.Conf.SecretKey))
	return ss, errors.Wrap(err, "signing session token")
}

// ParseToken validates a cookie value and returns the session id it names.
func ParseToken(value string) (string, error) {
	claims := new(cookieClaims)
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(core.Conf.SecretKey), nil
	})
	if err != nil {
		return "", errors.Wrap(err, "parsing session token")
	}
	if !token.Valid || claims.SID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.SID, nil
}
