package storage

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/util"
)

func (s *FileStore) ListBlogPosts(page, limit int, search string) ([]models.BlogPost, int, error) {
	posts, err := readCollection[models.BlogPost](s, blogFile)
	if err != nil {
		return nil, 0, err
	}

	filtered := posts
	if search != "" {
		term := strings.ToLower(search)
		filtered = make([]models.BlogPost, 0, len(posts))
		for _, p := range posts {
			if strings.Contains(strings.ToLower(p.Title), term) ||
				strings.Contains(strings.ToLower(p.Content), term) ||
				strings.Contains(strings.ToLower(p.Excerpt), term) {
				filtered = append(filtered, p)
			}
		}
	}

	total := len(filtered)

	from, size := util.Calculate(page, limit, util.DefaultBlogPageSize)
	if from >= total {
		return []models.BlogPost{}, total, nil
	}
	end := from + size
	if end > total {
		end = total
	}
	return filtered[from:end], total, nil
}

func (s *FileStore) GetBlogPost(id string) (models.BlogPost, error) {
	posts, err := readCollection[models.BlogPost](s, blogFile)
	if err != nil {
		return models.BlogPost{}, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.BlogPost{}, ErrNotFound
}

func (s *FileStore) CreateBlogPost(p models.BlogPost) (models.BlogPost, error) {
	posts, err := readCollection[models.BlogPost](s, blogFile)
	if err != nil {
		return models.BlogPost{}, err
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	posts = append(posts, p)
	if err := writeCollection(s, blogFile, posts); err != nil {
		return models.BlogPost{}, err
	}
	return p, nil
}
