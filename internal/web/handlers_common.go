package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/regions/internal/console"
	"github.com/JonMunkholm/regions/internal/core"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds JSON and form bodies (1MB).
const maxBodySize = 1 << 20

// errUnknownStatus is returned for a status field other than active/inactive.
var errUnknownStatus = errors.New("invalid request: status must be active or inactive")

// regionID returns the {id} route parameter decoded. chi matches on
// URL.RawPath when it is set, leaving escapes such as %2F in the parameter.
func regionID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

// requestContext returns the request context carrying client metadata.
func requestContext(r *http.Request) context.Context {
	return WithRequestMetadata(r.Context(), r)
}

// decodeJSON decodes a bounded JSON body into v.
// Failures are reported as invalid requests (REQ003).
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("invalid request: empty body")
		}
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// parseRegionForm reads the create/edit form fields.
func parseRegionForm(w http.ResponseWriter, r *http.Request) (console.FormInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := r.ParseForm(); err != nil {
		return console.FormInput{}, fmt.Errorf("invalid request: %w", err)
	}

	active, err := parseStatus(r.PostForm.Get("status"))
	if err != nil {
		return console.FormInput{}, err
	}

	return console.FormInput{
		Name:      r.PostForm.Get("name"),
		Countries: core.DecodeCountries(r.PostForm.Get("countries")),
		IsActive:  active,
	}, nil
}

// parseStatus maps the status select to the active flag. Empty means active.
func parseStatus(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "active":
		return true, nil
	case "inactive":
		return false, nil
	default:
		return false, errUnknownStatus
	}
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, core.ErrMissingID):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case strings.Contains(strings.ToLower(err.Error()), "invalid request"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
