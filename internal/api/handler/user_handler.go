package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ezwallet/wallet-system/internal/core/domain"
	"github.com/ezwallet/wallet-system/internal/core/ports"
)

type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type userResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{Username: u.Username, Email: u.Email, Role: u.Role}
}

// List returns every registered user. Admin capability only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return respond(c, http.StatusOK, out)
}

// Get returns a single user. Guarded by User-or-Admin: users see
// themselves, admins see anyone.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  envelope
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.FindByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toUserResponse(user))
}
