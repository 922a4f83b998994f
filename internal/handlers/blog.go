package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/storage"
	"github.com/avolkov/storefront/internal/util"
)

type BlogHandler struct {
	Store *storage.FileStore
}

func (h *BlogHandler) GetBlogPosts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultBlogPageSize)

	posts, total, err := h.Store.ListBlogPosts(page, limit, c.QueryParam("search"))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts": posts,
		"total": total,
	})
}

func (h *BlogHandler) GetBlogPost(c echo.Context) error {
	post, err := h.Store.GetBlogPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Blog post not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, post)
}

type blogPostRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Excerpt  string `json:"excerpt" validate:"required"`
	Category string `json:"category" validate:"required"`
	Image    string `json:"image" validate:"required"`
	ReadTime int    `json:"readTime" validate:"required,min=1"`
}

func (h *BlogHandler) CreateBlogPost(c echo.Context) error {
	var req blogPostRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.Store.CreateBlogPost(models.BlogPost{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: req.Category,
		Image:    req.Image,
		ReadTime: req.ReadTime,
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusCreated, post)
}
