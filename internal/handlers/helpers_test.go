package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/storefront/internal/handlers"
	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/session"
	"github.com/avolkov/storefront/internal/storage"
	httpserver "github.com/avolkov/storefront/internal/transport/http"
	"github.com/avolkov/storefront/internal/validate"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	Store *storage.FileStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	sessions := &session.Manager{Secret: []byte("test-secret")}

	e := echo.New()
	e.Validator = validate.New()

	deps := httpserver.Deps{
		Sessions:       sessions,
		AuthHandler:    &handlers.AuthHandler{Store: store, Sessions: sessions},
		ProductHandler: &handlers.ProductHandler{Store: store},
		CartHandler:    &handlers.CartHandler{Store: store},
		OrderHandler:   &handlers.OrderHandler{Store: store},
		BlogHandler:    &handlers.BlogHandler{Store: store},
		SearchHandler:  &handlers.SearchHandler{},
	}
	httpserver.Register(e, &deps)

	return &testEnv{T: t, E: e, Store: store}
}

func (env *testEnv) do(method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := http.Response{Header: rec.Header()}
	for _, ck := range res.Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// register creates an account and returns its session cookie.
func (env *testEnv) register(email string) *http.Cookie {
	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email":     email,
		"password":  "password123",
		"firstName": "Test",
		"lastName":  "User",
	})
	require.Equal(env.T, http.StatusOK, rec.Code)
	return sessionCookie(env.T, rec)
}

func (env *testEnv) seedProduct(name, category string, price float64, stock int) models.Product {
	p, err := env.Store.CreateProduct(models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    category,
		Stock:       stock,
	})
	require.NoError(env.T, err)
	return p
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func testAddress() map[string]string {
	return map[string]string{
		"street":  "12 Main St",
		"city":    "Springfield",
		"state":   "IL",
		"zipCode": "62701",
		"country": "USA",
	}
}
