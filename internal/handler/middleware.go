package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/riubs/rental-service/pkg/authgw"
)

const userKey = "authUser"

func (h *Handler) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		user, ok := h.auth.Validate(req.Context(),
			req.Header.Get("Authorization"), req.Header.Get("Cookie"))
		if !ok {
			return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
		}
		c.Set(userKey, user)
		return next(c)
	}
}

func (h *Handler) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return h.authenticate(func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errResp("unauthorized"))
		}
		if user.Role != authgw.RoleAdmin {
			return c.JSON(http.StatusForbidden, errResp("forbidden"))
		}
		return next(c)
	})
}

func currentUser(c echo.Context) (authgw.User, error) {
	user, ok := c.Get(userKey).(authgw.User)
	if !ok {
		return authgw.User{}, errors.New("no authenticated user in context")
	}
	return user, nil
}
