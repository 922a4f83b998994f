package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/util"
)

const (
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

type ProductFilter struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Brands   []string
	Sort     string
	Page     int
	Limit    int
}

func (f ProductFilter) matches(p models.Product) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		hit := strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
		for _, tag := range p.Tags {
			if hit {
				break
			}
			hit = strings.Contains(strings.ToLower(tag), term)
		}
		if !hit {
			return false
		}
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if len(f.Brands) > 0 {
		found := false
		for _, b := range f.Brands {
			if strings.EqualFold(p.Brand, b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ListProducts returns one page of the filtered catalog plus the total
// number of matches regardless of pagination.
func (s *FileStore) ListProducts(f ProductFilter) ([]models.Product, int, error) {
	products, err := readCollection[models.Product](s, productsFile)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			filtered = append(filtered, p)
		}
	}

	switch f.Sort {
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
		})
	}

	total := len(filtered)

	from, limit := util.Calculate(f.Page, f.Limit, util.DefaultPageSize)
	if from >= total {
		return []models.Product{}, total, nil
	}
	end := from + limit
	if end > total {
		end = total
	}
	return filtered[from:end], total, nil
}

func (s *FileStore) GetProduct(id string) (models.Product, error) {
	products, err := readCollection[models.Product](s, productsFile)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (s *FileStore) CreateProduct(p models.Product) (models.Product, error) {
	products, err := readCollection[models.Product](s, productsFile)
	if err != nil {
		return models.Product{}, err
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	products = append(products, p)
	if err := writeCollection(s, productsFile, products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Brand       *string
	Images      []string
	Stock       *int
	Featured    *bool
	Tags        []string
}

func (s *FileStore) UpdateProduct(id string, patch ProductPatch) (models.Product, error) {
	products, err := readCollection[models.Product](s, productsFile)
	if err != nil {
		return models.Product{}, err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		if patch.Name != nil {
			products[i].Name = *patch.Name
		}
		if patch.Description != nil {
			products[i].Description = *patch.Description
		}
		if patch.Price != nil {
			products[i].Price = *patch.Price
		}
		if patch.Category != nil {
			products[i].Category = *patch.Category
		}
		if patch.Brand != nil {
			products[i].Brand = *patch.Brand
		}
		if patch.Images != nil {
			products[i].Images = patch.Images
		}
		if patch.Stock != nil {
			products[i].Stock = *patch.Stock
		}
		if patch.Featured != nil {
			products[i].Featured = *patch.Featured
		}
		if patch.Tags != nil {
			products[i].Tags = patch.Tags
		}
		products[i].UpdatedAt = time.Now().UTC()

		if err := writeCollection(s, productsFile, products); err != nil {
			return models.Product{}, err
		}
		return products[i], nil
	}
	return models.Product{}, ErrNotFound
}

func (s *FileStore) DeleteProduct(id string) error {
	products, err := readCollection[models.Product](s, productsFile)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return writeCollection(s, productsFile, products)
		}
	}
	return ErrNotFound
}
