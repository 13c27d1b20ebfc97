package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func authProbe(t *testing.T, keys []string, path, header string) *httptest.ResponseRecorder {
	t.Helper()

	handler := BearerAuthMiddleware(keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestBearerAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		path     string
		header   string
		wantCode int
	}{
		{
			name:     "no keys configured passes through",
			keys:     nil,
			path:     "/api/v1/corpora",
			wantCode: http.StatusOK,
		},
		{
			name:     "blank keys count as unconfigured",
			keys:     []string{"", ""},
			path:     "/api/v1/corpora",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header rejected",
			keys:     []string{"secret"},
			path:     "/api/v1/corpora",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "basic scheme rejected",
			keys:     []string{"secret"},
			path:     "/api/v1/corpora",
			header:   "Basic dXNlcjpwYXNz",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong token rejected",
			keys:     []string{"secret"},
			path:     "/api/v1/corpora/theses/check",
			header:   "Bearer wrong-key",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "valid token accepted",
			keys:     []string{"secret"},
			path:     "/api/v1/corpora/theses/check",
			header:   "Bearer secret",
			wantCode: http.StatusOK,
		},
		{
			name:     "any configured key accepted",
			keys:     []string{"key1", "key2"},
			path:     "/api/v1/corpora",
			header:   "Bearer key2",
			wantCode: http.StatusOK,
		},
		{
			name:     "health exempt",
			keys:     []string{"secret"},
			path:     "/health",
			wantCode: http.StatusOK,
		},
		{
			name:     "metrics exempt",
			keys:     []string{"secret"},
			path:     "/metrics",
			wantCode: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := authProbe(t, tc.keys, tc.path, tc.header)
			if rr.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tc.wantCode)
			}
		})
	}
}

func TestBearerAuthMiddleware_ErrorBody(t *testing.T) {
	rr := authProbe(t, []string{"secret"}, "/api/v1/corpora", "")

	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != codeUnauthorized {
		t.Errorf("error code = %s, want %s", resp.Code, codeUnauthorized)
	}
}
