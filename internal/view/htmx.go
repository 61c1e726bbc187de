package view

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Toast statuses understood by the client script.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// Toast is a transient notification raised by an htmx response.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// SuccessToast builds a "Success" toast.
func SuccessToast(description string) Toast {
	return Toast{Title: "Success", Description: description, Status: ToastSuccess}
}

// ErrorToast builds an "Error" toast.
func ErrorToast(description string) Toast {
	return Toast{Title: "Error", Description: description, Status: ToastError}
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// TriggerToast asks the client to show t once the response is swapped in.
func TriggerToast(c echo.Context, t Toast) {
	Trigger(c, map[string]any{"showToast": t})
}

// Trigger sets the client events raised by an htmx response. Events without
// a payload map to nil.
func Trigger(c echo.Context, events map[string]any) {
	payload, err := json.Marshal(events)
	if err != nil {
		slog.Error("Failed to encode HX-Trigger", "error", err)
		return
	}
	c.Response().Header().Set("HX-Trigger", string(payload))
}

// Redirect sends the browser to url. htmx requests get a 200 with an
// HX-Redirect header so the whole page navigates instead of swapping the
// target.
func Redirect(c echo.Context, status int, url string) error {
	if IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(status, url)
}
