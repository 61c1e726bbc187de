package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret-test-secret-test-sec"))))

	e.POST("/login", func(c echo.Context) error {
		if err := SignIn(c, domain.User{UserName: c.FormValue("u"), Type: domain.UserType(c.FormValue("t"))}); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.POST("/logout", func(c echo.Context) error {
		id, err := SignOut(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, id)
	})

	app := e.Group("/app", Auth())
	app.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).UserName+"|"+WorkspaceID(c))
	})
	app.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, "admin")
	}, RequireAdmin())
	return e
}

func login(t *testing.T, e *echo.Echo, user, typ string) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login?u="+user+"&t="+typ, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return rec.Result().Cookies()
}

func get(e *echo.Echo, path string, cookies []*http.Cookie, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	e := newTestServer()

	t.Run("unauthenticated user is redirected to login", func(t *testing.T) {
		rec := get(e, "/app/whoami", nil, false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	})

	t.Run("htmx requests get HX-Redirect", func(t *testing.T) {
		rec := get(e, "/app/whoami", nil, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("HX-Redirect"))
	})

	t.Run("signed in user reaches the route with a workspace", func(t *testing.T) {
		cookies := login(t, e, "test", "User")
		rec := get(e, "/app/whoami", cookies, false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Regexp(t, `^test\|[0-9a-f-]{36}$`, rec.Body.String())
	})

	t.Run("admin routes", func(t *testing.T) {
		rec := get(e, "/app/admin", login(t, e, "test", "User"), false)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = get(e, "/app/admin", login(t, e, "Admin", "Admin"), false)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("sign out expires the session", func(t *testing.T) {
		cookies := login(t, e, "test", "User")
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Body.String(), "returns the workspace ID")

		var expired bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == SessionName && c.MaxAge < 0 {
				expired = true
			}
		}
		assert.True(t, expired)
	})
}
