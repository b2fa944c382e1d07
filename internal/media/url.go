package media

import (
	"strings"
)

// Resolver turns stored image paths into URLs the browser can load.
type Resolver struct {
	BaseURL string
}

// NewResolver creates a Resolver for the given base URL.
// A trailing slash on baseURL is ignored.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// Resolve returns path prefixed with the base URL.
// Absolute URLs (http, https, protocol-relative, data) are returned unchanged
// and an empty path stays empty.
func (r *Resolver) Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || isAbsolute(path) {
		return path
	}

	path = strings.TrimLeft(strings.ReplaceAll(path, "\\", "/"), "/")
	if r == nil || r.BaseURL == "" {
		return "/" + path
	}
	return r.BaseURL + "/" + path
}

// ResolveAll resolves every path, dropping entries that resolve to nothing.
func (r *Resolver) ResolveAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if u := r.Resolve(p); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func isAbsolute(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}
