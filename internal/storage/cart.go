package storage

import "github.com/avolkov/storefront/internal/models"

// Cart returns a copy of the user's cart lines.
func (s *FileStore) Cart(userID string) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.carts[userID]
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

// AddToCart merges the quantity into an existing line for the same product,
// otherwise appends a new line.
func (s *FileStore) AddToCart(userID string, item models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			s.carts[userID] = items
			return
		}
	}
	s.carts[userID] = append(items, item)
}

// UpdateCartItem sets the quantity of a line; a quantity of zero or below
// removes the line. Unknown products are a no-op, as in the original.
func (s *FileStore) UpdateCartItem(userID, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			s.carts[userID] = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity = quantity
			s.carts[userID] = items
		}
		return
	}
}

func (s *FileStore) RemoveFromCart(userID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	filtered := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			filtered = append(filtered, it)
		}
	}
	s.carts[userID] = filtered
}

func (s *FileStore) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
