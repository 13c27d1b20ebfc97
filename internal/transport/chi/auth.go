package chi

import (
	"net/http"
	"strings"
)

const bearerScheme = "Bearer "

// BearerAuthMiddleware validates Bearer tokens against the configured API
// keys. With no keys configured the middleware is a no-op, so local setups
// can run unauthenticated. Probe endpoints stay open either way.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exemptFromAuth(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, msg := bearerToken(r.Header.Get("Authorization"))
			if msg != "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, msg)
				return
			}
			if _, ok := keys[token]; !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// exemptFromAuth reports whether the path is reachable without credentials.
// Liveness probes and the scrape endpoint must work before keys exist.
func exemptFromAuth(path string) bool {
	return path == "/health" || path == "/metrics"
}

// bearerToken extracts the token from an Authorization header value,
// returning a human-readable problem when the header is unusable.
func bearerToken(header string) (token, problem string) {
	switch {
	case header == "":
		return "", "missing authorization header"
	case !strings.HasPrefix(header, bearerScheme):
		return "", "authorization header must use Bearer scheme"
	default:
		return header[len(bearerScheme):], ""
	}
}
