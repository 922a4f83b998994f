package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email":     "anna@example.com",
		"password":  "password123",
		"firstName": "Anna",
		"lastName":  "Ivanova",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User map[string]any `json:"user"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, "anna@example.com", resp.User["email"])
	require.NotEmpty(t, resp.User["id"])
	require.NotContains(t, resp.User, "password")

	_ = sessionCookie(t, rec)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register("anna@example.com")

	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email":     "Anna@Example.com",
		"password":  "different-pass",
		"firstName": "Another",
		"lastName":  "Person",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// the original account still logs in with its own password
	recLogin := env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "anna@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, recLogin.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email":     "not-an-email",
		"password":  "password123",
		"firstName": "Anna",
		"lastName":  "Ivanova",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email":     "anna@example.com",
		"password":  "short",
		"firstName": "Anna",
		"lastName":  "Ivanova",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register("anna@example.com")

	rec := env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "anna@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "anna@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User map[string]any `json:"user"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, "anna@example.com", resp.User["email"])
	require.NotContains(t, resp.User, "password")
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ck := env.register("anna@example.com")
	rec = env.do(http.MethodGet, "/api/auth/me", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User map[string]any `json:"user"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, "anna@example.com", resp.User["email"])
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ck := env.register("anna@example.com")

	rec := env.do(http.MethodPost, "/api/auth/logout", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	expired := sessionCookie(t, rec)
	require.True(t, expired.Expires.Before(time.Now()))
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPut, "/api/auth/profile", map[string]any{"firstName": "Renamed"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ck := env.register("anna@example.com")
	rec = env.do(http.MethodPut, "/api/auth/profile", map[string]any{
		"firstName": "Renamed",
		"address":   testAddress(),
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User map[string]any `json:"user"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, "Renamed", resp.User["firstName"])
	require.Equal(t, "anna@example.com", resp.User["email"])
	require.NotContains(t, resp.User, "password")
}
