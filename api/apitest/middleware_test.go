package apitest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestChainMiddleware_Order(t *testing.T) {
	var order []string
	mark := func(name string) middleware {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}

	h := chainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mark("first"), mark("second"))

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestRecoverMiddleware(t *testing.T) {
	var buf bytes.Buffer
	s := newServer(WithLogger(zerolog.New(&buf)))
	defer s.Close()

	h := chainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, s.loggingMiddleware, s.recoverMiddleware)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Internal server error")
	require.Contains(t, buf.String(), "recovered from panic")
	require.Contains(t, buf.String(), `"status":500`)
}
