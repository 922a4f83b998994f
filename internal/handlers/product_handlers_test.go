package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/storefront/internal/models"
)

type productList struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/products", map[string]any{
		"name": "x", "description": "y", "price": 1, "category": "misc",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodDelete, "/api/admin/products/some-id", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	ck := env.register("admin@example.com")

	rec := env.do(http.MethodPost, "/api/admin/products", map[string]any{
		"name":        "Broken",
		"description": "negative price",
		"price":       -5,
		"category":    "misc",
	}, ck)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/admin/products", map[string]any{
		"name":        "Broken",
		"description": "negative stock",
		"price":       5,
		"category":    "misc",
		"stock":       -1,
	}, ck)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductCRUD(t *testing.T) {
	env := newTestEnv(t)
	ck := env.register("admin@example.com")

	rec := env.do(http.MethodPost, "/api/admin/products", map[string]any{
		"name":        "ThinkBook 14",
		"description": "A sturdy laptop",
		"price":       899.99,
		"category":    "laptops",
		"brand":       "Lenovo",
		"stock":       7,
		"tags":        []string{"laptop", "office"},
	}, ck)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	decodeBody(t, rec, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, 7, created.Stock)

	rec = env.do(http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// partial update: only the price changes
	rec = env.do(http.MethodPut, "/api/admin/products/"+created.ID, map[string]any{
		"price": 799.99,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	decodeBody(t, rec, &updated)
	require.Equal(t, 799.99, updated.Price)
	require.Equal(t, "ThinkBook 14", updated.Name)
	require.Equal(t, []string{"laptop", "office"}, updated.Tags)

	rec = env.do(http.MethodDelete, "/api/admin/products/"+created.ID, nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/api/admin/products/"+created.ID, nil, ck)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/products/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProductsPagination(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 15; i++ {
		env.seedProduct(fmt.Sprintf("Laptop %02d", i), "laptops", float64(500+i), 3)
	}
	for i := 0; i < 5; i++ {
		env.seedProduct(fmt.Sprintf("Phone %02d", i), "phones", float64(300+i), 3)
	}

	rec := env.do(http.MethodGet, "/api/products?category=laptops&page=1&limit=12", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page1 productList
	decodeBody(t, rec, &page1)
	require.Len(t, page1.Products, 12)
	require.Equal(t, 15, page1.Total)

	rec = env.do(http.MethodGet, "/api/products?category=laptops&page=2&limit=12", nil)
	var page2 productList
	decodeBody(t, rec, &page2)
	require.Len(t, page2.Products, 3)
	require.Equal(t, 15, page2.Total)

	// page 2 continues exactly where page 1 stopped
	require.Equal(t, "Laptop 12", page2.Products[0].Name)
}

func TestListProductsFiltersAndSort(t *testing.T) {
	env := newTestEnv(t)

	cheap := env.seedProduct("Budget Phone", "phones", 199, 10)
	mid := env.seedProduct("Solid Phone", "phones", 499, 10)
	env.seedProduct("Gaming Laptop", "laptops", 1999, 2)

	rec := env.do(http.MethodGet, "/api/products?sort=price-low", nil)
	var byPrice productList
	decodeBody(t, rec, &byPrice)
	require.Equal(t, cheap.ID, byPrice.Products[0].ID)

	rec = env.do(http.MethodGet, "/api/products?sort=price-high", nil)
	decodeBody(t, rec, &byPrice)
	require.Equal(t, "Gaming Laptop", byPrice.Products[0].Name)

	rec = env.do(http.MethodGet, "/api/products?minPrice=300&maxPrice=600", nil)
	var ranged productList
	decodeBody(t, rec, &ranged)
	require.Len(t, ranged.Products, 1)
	require.Equal(t, mid.ID, ranged.Products[0].ID)

	rec = env.do(http.MethodGet, "/api/products?search=gaming", nil)
	var searched productList
	decodeBody(t, rec, &searched)
	require.Equal(t, 1, searched.Total)
	require.Equal(t, "Gaming Laptop", searched.Products[0].Name)
}

func TestSearchUnavailableWithoutES(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/search?q=laptop", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
