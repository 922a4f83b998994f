package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/avolkov/storefront/internal/events"
	"github.com/avolkov/storefront/internal/logging"
	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/service/search"
	"github.com/avolkov/storefront/internal/storage"
	"github.com/avolkov/storefront/internal/util"
)

type ProductHandler struct {
	Store    *storage.FileStore
	Producer *events.Producer

	// ES is optional; when nil the catalog is not mirrored to a search index.
	ES      *elasticsearch.Client
	ESIndex string
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	filter := storage.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
		Page:     parseIntDefault(c.QueryParam("page"), 1),
		Limit:    parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}
	if v := c.QueryParam("brands"); v != "" {
		filter.Brands = strings.Split(v, ",")
	}

	products, total, err := h.Store.ListProducts(filter)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"total":    total,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.Store.GetProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"min=0"`
	Category    string   `json:"category" validate:"required"`
	Brand       string   `json:"brand"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock" validate:"min=0"`
	Featured    bool     `json:"featured"`
	Tags        []string `json:"tags"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	prod, err := h.Store.CreateProduct(models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Images:      req.Images,
		Stock:       req.Stock,
		Featured:    req.Featured,
		Tags:        req.Tags,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, events.TopicProductEvents, prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.indexProduct(c, prod)

	return c.JSON(http.StatusCreated, prod)
}

type productPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Category    *string  `json:"category,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Images      []string `json:"images,omitempty"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
	Featured    *bool    `json:"featured,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req productPatch
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	prod, err := h.Store.UpdateProduct(c.Param("id"), storage.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Images:      req.Images,
		Stock:       req.Stock,
		Featured:    req.Featured,
		Tags:        req.Tags,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, events.TopicProductEvents, prod.ID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.indexProduct(c, prod)

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := h.Store.DeleteProduct(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, events.TopicProductEvents, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	h.unindexProduct(c, id)

	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func (h *ProductHandler) indexProduct(c echo.Context, p models.Product) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexProduct(ctx, h.ES, h.ESIndex, p); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index failed",
			"productID", p.ID, "error", err)
	}
}

func (h *ProductHandler) unindexProduct(c echo.Context, id string) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.DeleteProduct(ctx, h.ES, h.ESIndex, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("es delete failed",
			"productID", id, "error", err)
	}
}
