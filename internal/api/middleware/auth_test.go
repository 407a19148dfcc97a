package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ezwallet/wallet-system/internal/api/session"
	"github.com/ezwallet/wallet-system/internal/core/domain"
	"github.com/ezwallet/wallet-system/internal/core/service"
	"github.com/ezwallet/wallet-system/internal/core/token"
)

type stubGroupRepo struct {
	groups map[string]*domain.Group
}

func (r *stubGroupRepo) FindByName(_ context.Context, name string) (*domain.Group, error) {
	if g, ok := r.groups[name]; ok {
		return g, nil
	}
	return nil, domain.ErrGroupNotFound
}

func testCookieOptions() session.Options {
	return session.Options{
		Domain:     "localhost",
		Path:       "/api",
		AccessTTL:  time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func newTestAuthorizer(t *testing.T, groups map[string]*domain.Group) (*Authorizer, *token.Codec) {
	t.Helper()
	codec, err := token.NewCodec("secret")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	verifier := service.NewVerifier(codec, time.Hour)
	return NewAuthorizer(verifier, &stubGroupRepo{groups: groups}, testCookieOptions()), codec
}

func signClaims(t *testing.T, codec *token.Codec, claims token.Claims, ttl time.Duration) string {
	t.Helper()
	signed, err := codec.Sign(claims, ttl)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return signed
}

func aliceClaims() token.Claims {
	return token.Claims{Username: "alice", Email: "alice@example.com", Role: domain.RoleRegular, ID: "u1"}
}

func rootClaims() token.Claims {
	return token.Claims{Username: "root", Email: "root@example.com", Role: domain.RoleAdmin, ID: "u0"}
}

func newAuthedContext(e *echo.Echo, access, refresh string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if access != "" {
		req.AddCookie(&http.Cookie{Name: session.AccessCookie, Value: access})
	}
	if refresh != "" {
		req.AddCookie(&http.Cookie{Name: session.RefreshCookie, Value: refresh})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthorizer_Simple_ValidSession(t *testing.T) {
	e := echo.New()
	a, codec := newTestAuthorizer(t, nil)

	access := signClaims(t, codec, aliceClaims(), time.Hour)
	refresh := signClaims(t, codec, aliceClaims(), 7*24*time.Hour)
	c, rec := newAuthedContext(e, access, refresh)

	called := false
	handler := a.Simple()(func(c echo.Context) error {
		called = true
		if msg, ok := c.Get(RefreshedMessageKey).(string); ok && msg != "" {
			t.Fatalf("no renewal message expected, got %q", msg)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorizer_Simple_MissingCookies(t *testing.T) {
	e := echo.New()
	a, _ := newTestAuthorizer(t, nil)

	c, rec := newAuthedContext(e, "", "")
	handler := a.Simple()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), domain.ReasonUnauthorized) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthorizer_Simple_RenewsAccessToken(t *testing.T) {
	e := echo.New()
	a, codec := newTestAuthorizer(t, nil)

	access := signClaims(t, codec, aliceClaims(), -time.Second)
	refresh := signClaims(t, codec, aliceClaims(), 7*24*time.Hour)
	c, rec := newAuthedContext(e, access, refresh)

	called := false
	handler := a.Simple()(func(c echo.Context) error {
		called = true
		if msg, _ := c.Get(RefreshedMessageKey).(string); msg != RefreshedTokenMessage {
			t.Fatalf("expected renewal message in context, got %q", msg)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}

	var renewed *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.AccessCookie {
			renewed = ck
		}
	}
	if renewed == nil {
		t.Fatalf("expected a new access cookie")
	}
	if !renewed.HttpOnly || !renewed.Secure || renewed.SameSite != http.SameSiteNoneMode || renewed.Path != "/api" {
		t.Fatalf("renewed cookie has wrong attributes: %+v", renewed)
	}
	claims, err := codec.Verify(renewed.Value)
	if err != nil {
		t.Fatalf("renewed cookie does not verify: %v", err)
	}
	want := aliceClaims()
	if !claims.SameIdentity(&want) {
		t.Fatalf("renewed claims differ: %+v", claims)
	}
}

func TestAuthorizer_Admin_DeniesRegular(t *testing.T) {
	e := echo.New()
	a, codec := newTestAuthorizer(t, nil)

	access := signClaims(t, codec, aliceClaims(), time.Hour)
	refresh := signClaims(t, codec, aliceClaims(), time.Hour)
	c, rec := newAuthedContext(e, access, refresh)

	handler := a.Admin()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), domain.ReasonNotAdmin) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthorizer_UserOrAdmin(t *testing.T) {
	e := echo.New()
	a, codec := newTestAuthorizer(t, nil)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := a.UserOrAdmin("username")

	// Alice reaches her own resource.
	access := signClaims(t, codec, aliceClaims(), time.Hour)
	refresh := signClaims(t, codec, aliceClaims(), time.Hour)
	c, rec := newAuthedContext(e, access, refresh)
	c.SetParamNames("username")
	c.SetParamValues("alice")
	if err := mw(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for own resource, got %d", rec.Code)
	}

	// Alice cannot reach Bob's resource.
	c, rec = newAuthedContext(e, access, refresh)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	if err := mw(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign resource, got %d", rec.Code)
	}

	// An admin reaches anyone's resource.
	access = signClaims(t, codec, rootClaims(), time.Hour)
	refresh = signClaims(t, codec, rootClaims(), time.Hour)
	c, rec = newAuthedContext(e, access, refresh)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	if err := mw(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestAuthorizer_Group(t *testing.T) {
	e := echo.New()
	family := &domain.Group{Name: "family", MemberEmails: []string{"alice@example.com"}}
	a, codec := newTestAuthorizer(t, map[string]*domain.Group{"family": family})

	next := func(c echo.Context) error {
		if g, ok := c.Get(GroupKey).(*domain.Group); !ok || g.Name != "family" {
			t.Fatalf("expected resolved group in context")
		}
		return c.NoContent(http.StatusOK)
	}
	mw := a.Group("name")

	// Member passes.
	access := signClaims(t, codec, aliceClaims(), time.Hour)
	refresh := signClaims(t, codec, aliceClaims(), time.Hour)
	c, rec := newAuthedContext(e, access, refresh)
	c.SetParamNames("name")
	c.SetParamValues("family")
	if err := mw(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for member, got %d", rec.Code)
	}

	// Non-member, non-admin is denied.
	outsider := token.Claims{Username: "zed", Email: "zed@example.com", Role: domain.RoleRegular}
	access = signClaims(t, codec, outsider, time.Hour)
	refresh = signClaims(t, codec, outsider, time.Hour)
	c, rec = newAuthedContext(e, access, refresh)
	c.SetParamNames("name")
	c.SetParamValues("family")
	if err := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for outsider, got %d", rec.Code)
	}

	// Admin override.
	access = signClaims(t, codec, rootClaims(), time.Hour)
	refresh = signClaims(t, codec, rootClaims(), time.Hour)
	c, rec = newAuthedContext(e, access, refresh)
	c.SetParamNames("name")
	c.SetParamValues("family")
	if err := mw(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin override, got %d", rec.Code)
	}
}

func TestAuthorizer_Group_UnknownGroup(t *testing.T) {
	e := echo.New()
	a, codec := newTestAuthorizer(t, nil)

	access := signClaims(t, codec, aliceClaims(), time.Hour)
	refresh := signClaims(t, codec, aliceClaims(), time.Hour)
	c, _ := newAuthedContext(e, access, refresh)
	c.SetParamNames("name")
	c.SetParamValues("ghosts")

	err := a.Group("name")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}
