package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ezwallet/wallet-system/internal/api/middleware"
)

// envelope is the canonical success payload. RefreshedTokenMessage rides
// along whenever the capability guard silently renewed the access token, so
// clients learn about the new artifact regardless of which endpoint
// triggered the renewal.
type envelope struct {
	Data                  any    `json:"data"`
	RefreshedTokenMessage string `json:"refreshedTokenMessage,omitempty"`
}

// respond renders data in the standard envelope, picking up any renewal
// advisory left by the capability guard.
func respond(c echo.Context, status int, data any) error {
	msg, _ := c.Get(middleware.RefreshedMessageKey).(string)
	return c.JSON(status, envelope{Data: data, RefreshedTokenMessage: msg})
}
