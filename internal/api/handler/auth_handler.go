package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ezwallet/wallet-system/internal/api/session"
	"github.com/ezwallet/wallet-system/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
	cookies  session.Options
}

func NewAuthHandler(sessions ports.SessionService, cookies session.Options) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a Regular user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.sessions.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		return err
	}
	return respond(c, http.StatusOK, messageResponse{Message: "User added successfully"})
}

// RegisterAdmin creates an Admin user account.
//
// @Summary      Register a new admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Admin registration details"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/admin [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.sessions.RegisterAdmin(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		return err
	}
	return respond(c, http.StatusOK, messageResponse{Message: "Admin added successfully"})
}

// Login authenticates a user, issues the token pair, and sets both session
// cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	pair, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	session.SetAccess(c, pair.AccessToken, h.cookies)
	session.SetRefresh(c, pair.RefreshToken, h.cookies)
	return respond(c, http.StatusOK, pair)
}

// Logout revokes the session identified by the refresh cookie and clears
// both session cookies. The paired access token stays valid until its
// natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	refreshToken := session.Read(c, session.RefreshCookie)

	if err := h.sessions.Logout(c.Request().Context(), refreshToken); err != nil {
		return err
	}

	session.Clear(c, h.cookies)
	return respond(c, http.StatusOK, messageResponse{Message: "User logged out"})
}
