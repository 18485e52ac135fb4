package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/regions/internal/core"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx for
// mutation logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	return core.WithRequestMeta(ctx, core.RequestMeta{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
}
