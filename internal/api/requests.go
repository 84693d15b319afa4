package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// urlParam extracts a chi URL parameter from the request path.
func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
