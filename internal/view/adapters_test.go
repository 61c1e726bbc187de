package view_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/nfrund/ipadmin/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

type ctxKey struct{}

func TestAdapters(t *testing.T) {
	node := html.Span(gomponents.Text("Invite Sent"))

	var buf bytes.Buffer
	require.NoError(t, view.AdaptGomponentToTempl(node).Render(context.Background(), &buf))
	assert.Equal(t, "<span>Invite Sent</span>", buf.String())

	comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		v, _ := ctx.Value(ctxKey{}).(string)
		_, err := io.WriteString(w, "<b>"+v+"</b>")
		return err
	})

	buf.Reset()
	ctx := context.WithValue(context.Background(), ctxKey{}, "ctx")
	require.NoError(t, view.AdaptTemplToGomponentContext(ctx, comp).Render(&buf))
	assert.Equal(t, "<b>ctx</b>", buf.String())

	buf.Reset()
	require.NoError(t, view.AdaptTemplToGomponent(comp).Render(&buf))
	assert.Equal(t, "<b></b>", buf.String())

	buf.Reset()
	require.NoError(t, view.AdaptGomponentToTempl(nil).Render(context.Background(), &buf))
	assert.Empty(t, buf.String())
}
