package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/middleware"
	"github.com/nfrund/ipadmin/internal/view"
	"github.com/nfrund/ipadmin/internal/view/dto/auth"
	"github.com/nfrund/ipadmin/internal/workspace"
	"github.com/nfrund/ipadmin/web/src/templates/pages"
)

// LoginFailedMessage is shown for any failed sign in.
const LoginFailedMessage = "Login Failed"

// Credentials are a fixed user name and password pair.
type Credentials struct {
	UserName string
	Password string
}

func (c Credentials) match(userName, password string) bool {
	return c.UserName != "" && c.UserName == userName && c.Password == password
}

// AuthOptions configures the sign-in rules.
type AuthOptions struct {
	// DevLogin, when enabled, signs in without calling the API.
	DevLogin        Credentials
	DevLoginEnabled bool
	// Admin credentials accepted by the API sign in as an Admin.
	Admin Credentials
}

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	auth       domain.Authenticator
	workspaces *workspace.Workspaces
	layout     *Layout
	opts       AuthOptions
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth domain.Authenticator, workspaces *workspace.Workspaces, layout *Layout, opts AuthOptions) *AuthHandler {
	return &AuthHandler{auth: auth, workspaces: workspaces, layout: layout, opts: opts}
}

// LoginGet renders the login page (GET /auth/login). Signed-in users go
// straight to the home page.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if middleware.SessionUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/app/home")
	}
	return h.render(c, http.StatusOK, auth.LoginData{})
}

// LoginPost signs the user in (POST /auth/login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid login form")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	data := auth.LoginData{UserName: req.UserName}

	if err := c.Validate(&req); err != nil {
		data.Error = "Username and password are required"
		return h.render(c, http.StatusUnprocessableEntity, data)
	}

	logger := middleware.FromContext(c.Request().Context())
	user, err := h.authenticate(c, req)
	if err != nil {
		logger.Warn("Failed login attempt", "user", req.UserName, "error", err)
		data.Error = LoginFailedMessage
		return h.render(c, http.StatusUnauthorized, data)
	}

	if err := middleware.SignIn(c, user); err != nil {
		return err
	}
	logger.Info("User signed in", "user", user.UserName, "type", user.Type)
	view.SetFlashSuccess(c, "Welcome, "+user.UserName+"!")
	return c.Redirect(http.StatusSeeOther, "/app/home")
}

func (h *AuthHandler) authenticate(c echo.Context, req LoginRequest) (domain.User, error) {
	if h.opts.DevLoginEnabled && h.opts.DevLogin.match(req.UserName, req.Password) {
		return domain.User{UserName: req.UserName, Type: domain.UserTypeUser}, nil
	}
	if err := h.auth.Login(c.Request().Context(), req.UserName, req.Password); err != nil {
		return domain.User{}, err
	}
	typ := domain.UserTypeUser
	if h.opts.Admin.match(req.UserName, req.Password) {
		typ = domain.UserTypeAdmin
	}
	return domain.User{UserName: req.UserName, Type: typ}, nil
}

// Logout clears the session and its workspace (POST /auth/logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	id, err := middleware.SignOut(c)
	if err != nil {
		return err
	}
	if err := h.workspaces.Clear(c.Request().Context(), id); err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Failed to clear workspace on logout", "error", err)
	}
	return view.Redirect(c, http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) render(c echo.Context, status int, data auth.LoginData) error {
	data.CSRFToken = CSRFToken(c)
	return h.layout.Page(c, status, "Login", "", pages.Login(data, h.layout.CompanyName()))
}
