package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/storefront/internal/events"
	"github.com/avolkov/storefront/internal/hash"
	authmw "github.com/avolkov/storefront/internal/middleware/auth"
	"github.com/avolkov/storefront/internal/models"
	"github.com/avolkov/storefront/internal/session"
	"github.com/avolkov/storefront/internal/storage"
)

type AuthHandler struct {
	Store    *storage.FileStore
	Sessions *session.Manager
	Producer *events.Producer
}

type registerRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6"`
	FirstName string          `json:"firstName" validate:"required"`
	LastName  string          `json:"lastName" validate:"required"`
	Address   *models.Address `json:"address,omitempty"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.Store.GetUserByEmail(req.Email); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this email")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	user, err := h.Store.CreateUser(models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this email")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if err := h.setSession(c, user.ID); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{"user": user.Sanitized()})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if !hash.CheckPassword(user.Password, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if err := h.setSession(c, user.ID); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{"user": user.Sanitized()})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(session.ExpiredCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.Store.GetUser(authmw.UserID(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.Sanitized()})
}

type profileRequest struct {
	Email     *string         `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string         `json:"password,omitempty" validate:"omitempty,min=6"`
	FirstName *string         `json:"firstName,omitempty"`
	LastName  *string         `json:"lastName,omitempty"`
	Address   *models.Address `json:"address,omitempty"`
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patch := storage.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
	}
	if req.Password != nil {
		hashed, err := hash.HashPassword(*req.Password)
		if err != nil {
			return errorResponse(c, http.StatusInternalServerError, err)
		}
		patch.Password = &hashed
	}

	user, err := h.Store.UpdateUser(authmw.UserID(c), patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		case errors.Is(err, storage.ErrConflict):
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this email")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.Sanitized()})
}

func (h *AuthHandler) setSession(c echo.Context, userID string) error {
	token, exp, err := h.Sessions.Issue(userID)
	if err != nil {
		return err
	}
	c.SetCookie(session.CreateCookie(token, exp))
	return nil
}
