package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name       string
		calls      []int
		wantStatus int
	}{
		{name: "single call", calls: []int{http.StatusCreated}, wantStatus: http.StatusCreated},
		{name: "second call ignored", calls: []int{http.StatusNotFound, http.StatusOK}, wantStatus: http.StatusNotFound},
		{name: "server error kept", calls: []int{http.StatusInternalServerError, http.StatusBadRequest, http.StatusOK}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := newResponseWriter(rr)

			for _, code := range tt.calls {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.wantStatus, w.Status())
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestResponseWriter_Write(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	n, err := w.Write([]byte(`{"message":`))
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	_, err = w.Write([]byte(`"ok"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Status())
	assert.Equal(t, int64(16), w.size)
	assert.Equal(t, `{"message":"ok"}`, rr.Body.String())
}

func TestResponseWriter_StatusDefaultsTo200(t *testing.T) {
	w := newResponseWriter(httptest.NewRecorder())

	assert.Zero(t, w.status)
	assert.Equal(t, http.StatusOK, w.Status())
	assert.False(t, headersSent(w))
}

func TestResponseWriter_HeadersReachUnderlyingWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusTeapot)

	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Same(t, rr, w.Unwrap())
}

type wrappingWriter struct {
	http.ResponseWriter
}

func (w wrappingWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func TestHeadersSent(t *testing.T) {
	rr := httptest.NewRecorder()
	inner := newResponseWriter(rr)
	outer := wrappingWriter{ResponseWriter: inner}

	assert.False(t, headersSent(rr))
	assert.False(t, headersSent(outer))

	_, _ = outer.Write([]byte("x"))

	assert.True(t, headersSent(inner))
	assert.True(t, headersSent(outer))
}

func TestRecoverer_PanicAfterHeadersIsNotRendered(t *testing.T) {
	h := newTestHandler()
	handler := h.withLogging(h.recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		panic("late failure")
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "partial", rr.Body.String())
}
