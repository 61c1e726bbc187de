package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/workspace"
)

const (
	// UserContextKey holds the *domain.User of an authenticated request.
	UserContextKey = "user"

	SessionName = "ipadmin-session"

	keyUserName  = "user_name"
	keyUserType  = "user_type"
	keyWorkspace = "workspace_id"

	LoginPath = "/auth/login"
)

// SignIn stores user in a fresh session together with a new workspace ID.
func SignIn(c echo.Context, user domain.User) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   8 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.Scheme() == "https",
	}
	sess.Values[keyUserName] = user.UserName
	sess.Values[keyUserType] = string(user.Type)
	sess.Values[keyWorkspace] = workspace.NewID()
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SignOut expires the session cookie. It returns the workspace ID that was
// attached to the session, if any, so the caller can drop it.
func SignOut(c echo.Context) (string, error) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	id, _ := sess.Values[keyWorkspace].(string)
	sess.Values = map[any]any{}
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return id, fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// SessionUser reads the user stored by SignIn, or nil.
func SessionUser(c echo.Context) *domain.User {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return nil
	}
	name, _ := sess.Values[keyUserName].(string)
	typ, _ := sess.Values[keyUserType].(string)
	if name == "" {
		return nil
	}
	return &domain.User{UserName: name, Type: domain.UserType(typ)}
}

// WorkspaceID is the per-session key of the management workspace.
func WorkspaceID(c echo.Context) string {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return ""
	}
	id, _ := sess.Values[keyWorkspace].(string)
	return id
}

// CurrentUser returns the user placed in the context by Auth.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(UserContextKey).(*domain.User)
	return u
}

// Auth protects routes that require a signed-in user. htmx requests are
// sent to the login page with HX-Redirect so the whole page navigates.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := SessionUser(c)
			if user == nil {
				return toLogin(c)
			}
			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentUser(c).IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Administrator access required")
			}
			return next(c)
		}
	}
}

func toLogin(c echo.Context) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", LoginPath)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, LoginPath)
}
