package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/storefront/internal/models"
)

func (s *FileStore) OrdersByUser(userID string) ([]models.Order, error) {
	orders, err := readCollection[models.Order](s, ordersFile)
	if err != nil {
		return nil, err
	}
	mine := make([]models.Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

func (s *FileStore) GetOrder(id string) (models.Order, error) {
	orders, err := readCollection[models.Order](s, ordersFile)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrNotFound
}

func (s *FileStore) CreateOrder(o models.Order) (models.Order, error) {
	orders, err := readCollection[models.Order](s, ordersFile)
	if err != nil {
		return models.Order{}, err
	}

	now := time.Now().UTC()
	o.ID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now

	orders = append(orders, o)
	if err := writeCollection(s, ordersFile, orders); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *FileStore) UpdateOrderStatus(id string, status models.OrderStatus) (models.Order, error) {
	orders, err := readCollection[models.Order](s, ordersFile)
	if err != nil {
		return models.Order{}, err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			orders[i].UpdatedAt = time.Now().UTC()
			if err := writeCollection(s, ordersFile, orders); err != nil {
				return models.Order{}, err
			}
			return orders[i], nil
		}
	}
	return models.Order{}, ErrNotFound
}
