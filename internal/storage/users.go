package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/storefront/internal/models"
)

func (s *FileStore) GetUser(id string) (models.User, error) {
	users, err := readCollection[models.User](s, usersFile)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *FileStore) GetUserByEmail(email string) (models.User, error) {
	users, err := readCollection[models.User](s, usersFile)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// CreateUser stores u with a fresh id. The password must already be hashed
// by the caller.
func (s *FileStore) CreateUser(u models.User) (models.User, error) {
	users, err := readCollection[models.User](s, usersFile)
	if err != nil {
		return models.User{}, err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.User{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now

	users = append(users, u)
	if err := writeCollection(s, usersFile, users); err != nil {
		return models.User{}, err
	}
	return u, nil
}

type UserPatch struct {
	Email     *string
	Password  *string // already hashed
	FirstName *string
	LastName  *string
	Address   *models.Address
}

func (s *FileStore) UpdateUser(id string, patch UserPatch) (models.User, error) {
	users, err := readCollection[models.User](s, usersFile)
	if err != nil {
		return models.User{}, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if patch.Email != nil {
			for j := range users {
				if j != i && strings.EqualFold(users[j].Email, *patch.Email) {
					return models.User{}, fmt.Errorf("%w: email already registered", ErrConflict)
				}
			}
			users[i].Email = *patch.Email
		}
		if patch.Password != nil {
			users[i].Password = *patch.Password
		}
		if patch.FirstName != nil {
			users[i].FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			users[i].LastName = *patch.LastName
		}
		if patch.Address != nil {
			users[i].Address = patch.Address
		}
		users[i].UpdatedAt = time.Now().UTC()

		if err := writeCollection(s, usersFile, users); err != nil {
			return models.User{}, err
		}
		return users[i], nil
	}
	return models.User{}, ErrNotFound
}
