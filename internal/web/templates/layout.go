package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the page skeleton.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="/static/app.css"></head><body>`)
		h.render(body)
		h.raw(`</body></html>`)
		return h.err
	})
}

// ErrorAlert renders an inline error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		h.raw(`<div class="notice notice-error" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(` <span class="notice-action">`)
			h.text(action)
			h.raw(`</span>`)
		}
		if code != "" {
			h.raw(` <code class="notice-code">`)
			h.text(code)
			h.raw(`</code>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
