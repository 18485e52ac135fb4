// Package templates renders the region console pages as templ components.
package templates

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// html accumulates markup and keeps the first write error.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTML(ctx context.Context, w io.Writer) *html {
	return &html{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// text writes escaped user data.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// render writes a nested component.
func (h *html) render(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// pathSegment escapes id for use as one path segment; a "/" becomes %2F.
func pathSegment(id string) string {
	return url.PathEscape(id)
}

// regionPath builds an escaped path under /regions.
func regionPath(id string, suffix string) string {
	return templ.EscapeString("/regions/" + pathSegment(id) + suffix)
}
