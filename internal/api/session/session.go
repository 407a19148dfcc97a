// Package session owns the transport-level session artifacts: the two
// cookies carrying the access and refresh tokens.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names used as the two token transport slots.
const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// Options are the cookie attributes shared by both artifacts. Both are set
// http-only, secure and SameSite=None with a scoped path, so the only
// per-artifact difference is the TTL.
type Options struct {
	Domain     string
	Path       string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// SetAccess writes the access-token cookie.
func SetAccess(c echo.Context, token string, opts Options) {
	c.SetCookie(cookie(AccessCookie, token, int(opts.AccessTTL.Seconds()), opts))
}

// SetRefresh writes the refresh-token cookie. Only login does this; the
// verifier renews the access artifact alone.
func SetRefresh(c echo.Context, token string, opts Options) {
	c.SetCookie(cookie(RefreshCookie, token, int(opts.RefreshTTL.Seconds()), opts))
}

// Clear expires both artifacts immediately.
func Clear(c echo.Context, opts Options) {
	c.SetCookie(cookie(AccessCookie, "", -1, opts))
	c.SetCookie(cookie(RefreshCookie, "", -1, opts))
}

// Read returns the named token cookie's value, or "" when absent.
func Read(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

func cookie(name, value string, maxAge int, opts Options) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   opts.Domain,
		Path:     opts.Path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
