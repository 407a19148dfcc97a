package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ezwallet/wallet-system/internal/api/session"
	"github.com/ezwallet/wallet-system/internal/core/domain"
	"github.com/ezwallet/wallet-system/internal/core/ports"
	"github.com/ezwallet/wallet-system/internal/core/service"
)

// RefreshedMessageKey is the echo context key under which the advisory
// renewal message is stashed for handlers to echo back to the client.
const RefreshedMessageKey = "refreshedTokenMessage"

// RefreshedTokenMessage is surfaced alongside the substantive response of
// any endpoint whose check silently renewed the access token.
const RefreshedTokenMessage = "Access token has been refreshed. Remember to copy the new one in the headers of subsequent calls"

// GroupKey is the echo context key under which the Group guard stores the
// resolved group, so handlers don't fetch it twice.
const GroupKey = "group"

// Authorizer guards routes with the capability checks of the auth
// verifier. On a transparent access-token renewal it writes the new access
// cookie and stashes the advisory message for the handler envelope.
type Authorizer struct {
	verifier *service.Verifier
	groups   ports.GroupRepository
	cookies  session.Options
}

func NewAuthorizer(verifier *service.Verifier, groups ports.GroupRepository, cookies session.Options) *Authorizer {
	return &Authorizer{verifier: verifier, groups: groups, cookies: cookies}
}

// Simple requires any structurally valid session.
func (a *Authorizer) Simple() echo.MiddlewareFunc {
	return a.guard(func(c echo.Context) (domain.AccessRequest, error) {
		return domain.AccessRequest{Capability: domain.CapabilitySimple}, nil
	})
}

// Admin requires the Admin role.
func (a *Authorizer) Admin() echo.MiddlewareFunc {
	return a.guard(func(c echo.Context) (domain.AccessRequest, error) {
		return domain.AccessRequest{Capability: domain.CapabilityAdmin}, nil
	})
}

// User requires the session to belong to the user named by the route
// parameter.
func (a *Authorizer) User(param string) echo.MiddlewareFunc {
	return a.guard(func(c echo.Context) (domain.AccessRequest, error) {
		return domain.AccessRequest{Capability: domain.CapabilityUser, Username: c.Param(param)}, nil
	})
}

// UserOrAdmin lets a user through to their own resource and admins through
// to anyone's.
func (a *Authorizer) UserOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := a.authorize(c, domain.AccessRequest{
				Capability: domain.CapabilityUser,
				Username:   c.Param(param),
			})
			if !res.Authorized {
				res = a.authorize(c, domain.AccessRequest{Capability: domain.CapabilityAdmin})
			}
			if !res.Authorized {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": res.Reason})
			}
			return next(c)
		}
	}
}

// Group requires membership in the group named by the route parameter, with
// an admin override. The resolved group is stored in the context under
// GroupKey.
func (a *Authorizer) Group(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			group, err := a.groups.FindByName(c.Request().Context(), c.Param(param))
			if err != nil {
				return err
			}
			c.Set(GroupKey, group)

			res := a.authorize(c, domain.AccessRequest{
				Capability: domain.CapabilityGroup,
				Emails:     group.MemberEmails,
			})
			if !res.Authorized {
				res = a.authorize(c, domain.AccessRequest{Capability: domain.CapabilityAdmin})
			}
			if !res.Authorized {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": res.Reason})
			}
			return next(c)
		}
	}
}

func (a *Authorizer) guard(build func(echo.Context) (domain.AccessRequest, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req, err := build(c)
			if err != nil {
				return err
			}
			res := a.authorize(c, req)
			if !res.Authorized {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": res.Reason})
			}
			return next(c)
		}
	}
}

// authorize runs one verifier check against the request's cookies and
// applies the renewal side effects on success.
func (a *Authorizer) authorize(c echo.Context, req domain.AccessRequest) domain.AccessResult {
	res := a.verifier.Verify(
		session.Read(c, session.AccessCookie),
		session.Read(c, session.RefreshCookie),
		req,
	)
	if res.Authorized && res.Refreshed {
		session.SetAccess(c, res.NewAccessToken, a.cookies)
		c.Set(RefreshedMessageKey, RefreshedTokenMessage)
	}
	return res
}
