// Package session issues and verifies the signed session cookie. A session
// is a single HS256 token carrying the user id, valid for 24 hours; there is
// no server-side session table, destroying the cookie destroys the session.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "session"
	TTL        = 24 * time.Hour
)

type Manager struct {
	Secret []byte
}

func (m *Manager) Issue(userID string) (string, time.Time, error) {
	exp := time.Now().Add(TTL)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse returns the user id carried by a session token.
func (m *Manager) Parse(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid session claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("invalid subject claim")
	}
	return sub, nil
}

func CreateCookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie overwrites the session cookie with one already in the past.
func ExpiredCookie() *http.Cookie {
	return CreateCookie("", time.Now().Add(-time.Hour))
}
