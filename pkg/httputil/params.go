package httputil

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// PathParam returns a decoded chi URL parameter. chi routes on RawPath when
// the request carried escapes Go could not normalise (e.g. %2F), so the
// value is unescaped in that case.
func PathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}
