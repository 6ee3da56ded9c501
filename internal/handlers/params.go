package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. Form values are checked
// last so POST bodies work too.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	if val := r.PathValue(name); val != "" {
		return val
	}

	return r.FormValue(name)
}

// intParam parses a required positive integer parameter.
func intParam(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(getParam(r, name)))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// optionalInt returns nil for a missing, blank or unparsable value.
func optionalInt(r *http.Request, name string) *int {
	raw := strings.TrimSpace(getParam(r, name))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// optionalFloat accepts a decimal comma. NaN and infinities count as absent.
func optionalFloat(r *http.Request, name string) *float64 {
	raw := strings.TrimSpace(getParam(r, name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// pageParam defaults to 1.
func pageParam(r *http.Request, name string) int {
	p, err := strconv.Atoi(getParam(r, name))
	if err != nil || p < 1 {
		return 1
	}
	return p
}
