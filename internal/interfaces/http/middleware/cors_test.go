package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

func serveWithOrigin(h http.Handler, method, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, "/predict", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	if method == http.MethodOptions {
		r.Header.Set("Access-Control-Request-Method", http.MethodPost)
		r.Header.Set("Access-Control-Request-Headers", "Content-Type")
	}
	h.ServeHTTP(w, r)
	return w
}

func TestCORS_DefaultAllowsAnyOrigin(t *testing.T) {
	w := serveWithOrigin(CORS(DefaultCORSConfig())(okHandler()), http.MethodPost, "https://dashboard.example.org")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Request-ID, X-Cache", w.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	w := serveWithOrigin(CORS(DefaultCORSConfig())(okHandler()), http.MethodOptions, "https://dashboard.example.org")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Content-Type, X-Request-ID", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, w.Body.String())
}

func TestCORS_OptionsWithoutPreflightPassesThrough(t *testing.T) {
	h := CORS(DefaultCORSConfig())(okHandler())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/", nil)
	r.Header.Set("Origin", "https://a.com")
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"https://a.com", "https://B.com"}
	h := CORS(config)(okHandler())

	assert.Equal(t, "https://b.com", serveWithOrigin(h, http.MethodGet, "https://b.com").Header().Get("Access-Control-Allow-Origin"))

	w := serveWithOrigin(h, http.MethodGet, "https://evil.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_SubdomainWildcard(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"*.example.com"}
	config.AllowWildcard = true
	h := CORS(config)(okHandler())

	assert.Equal(t, "https://app.example.com", serveWithOrigin(h, http.MethodGet, "https://app.example.com").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, serveWithOrigin(h, http.MethodGet, "https://other.com").Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_CredentialsEchoOrigin(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowCredentials = true
	w := serveWithOrigin(CORS(config)(okHandler()), http.MethodGet, "https://specific.com")

	assert.Equal(t, "https://specific.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_NoOriginHeader(t *testing.T) {
	w := serveWithOrigin(CORS(DefaultCORSConfig())(okHandler()), http.MethodGet, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Values("Vary"))
}

func TestCORS_VaryHeader(t *testing.T) {
	vary := serveWithOrigin(CORS(DefaultCORSConfig())(okHandler()), http.MethodGet, "https://a.com").Header().Values("Vary")
	assert.Equal(t, []string{"Origin", "Access-Control-Request-Method", "Access-Control-Request-Headers"}, vary)
}

//Personal.AI order the ending
