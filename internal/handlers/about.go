package handlers

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/ipadmin/internal/view/dto/layout"
	"github.com/nfrund/ipadmin/web/src/templates/pages"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ContentHandler serves the static About and Contact pages.
type ContentHandler struct {
	layout *Layout
	about  string
}

// NewContentHandler converts the about markdown in content once.
func NewContentHandler(layout *Layout, content fs.FS, aboutPath string) (*ContentHandler, error) {
	src, err := fs.ReadFile(content, aboutPath)
	if err != nil {
		return nil, fmt.Errorf("read about page: %w", err)
	}
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render about page: %w", err)
	}
	return &ContentHandler{layout: layout, about: buf.String()}, nil
}

// AboutGet renders the about page.
func (h *ContentHandler) AboutGet(c echo.Context) error {
	return h.layout.Page(c, http.StatusOK, "About", layout.NavAbout, pages.About(h.about))
}

// ContactGet renders the contact page.
func (h *ContentHandler) ContactGet(c echo.Context) error {
	content := pages.Contact(h.layout.CompanyName(), h.layout.ContactEmail())
	return h.layout.Page(c, http.StatusOK, "Contact", layout.NavContact, content)
}

// HealthGet reports liveness.
func HealthGet(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
