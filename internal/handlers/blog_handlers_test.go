package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/storefront/internal/models"
)

func seedPost(env *testEnv, title, content string) models.BlogPost {
	post, err := env.Store.CreateBlogPost(models.BlogPost{
		Title:    title,
		Content:  content,
		Excerpt:  content[:10],
		Category: "news",
		Image:    "/img/post.jpg",
		ReadTime: 4,
	})
	require.NoError(env.T, err)
	return post
}

func TestBlogListAndSearch(t *testing.T) {
	env := newTestEnv(t)
	seedPost(env, "Choosing a laptop", "How to pick a laptop that lasts.")
	seedPost(env, "Desk setup", "Cable management and monitor arms.")
	seedPost(env, "Headphones guide", "Closed-back versus open-back models.")

	rec := env.do(http.MethodGet, "/api/blog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Posts []models.BlogPost `json:"posts"`
		Total int               `json:"total"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, 3, resp.Total)
	require.Len(t, resp.Posts, 3)

	rec = env.do(http.MethodGet, "/api/blog?search=laptop", nil)
	decodeBody(t, rec, &resp)
	require.Equal(t, 1, resp.Total)
	require.Equal(t, "Choosing a laptop", resp.Posts[0].Title)

	rec = env.do(http.MethodGet, "/api/blog?page=2&limit=2", nil)
	decodeBody(t, rec, &resp)
	require.Equal(t, 3, resp.Total)
	require.Len(t, resp.Posts, 1)
}

func TestBlogGet(t *testing.T) {
	env := newTestEnv(t)
	post := seedPost(env, "Choosing a laptop", "How to pick a laptop that lasts.")

	rec := env.do(http.MethodGet, "/api/blog/"+post.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/blog/unknown", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBlogPost(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"title":    "New arrivals",
		"content":  "Everything that landed this week.",
		"excerpt":  "This week's drops",
		"category": "news",
		"image":    "/img/new.jpg",
		"readTime": 3,
	}

	rec := env.do(http.MethodPost, "/api/admin/blog", payload)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ck := env.register("editor@example.com")
	rec = env.do(http.MethodPost, "/api/admin/blog", payload, ck)
	require.Equal(t, http.StatusCreated, rec.Code)

	var post models.BlogPost
	decodeBody(t, rec, &post)
	require.NotEmpty(t, post.ID)

	rec = env.do(http.MethodGet, "/api/blog/"+post.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
