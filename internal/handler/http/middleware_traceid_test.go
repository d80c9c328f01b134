package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHandler returns a Handler that only carries a silent logger.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

// traceRequest runs a request with the given X-Trace-ID through withTraceID
// and returns the response and the request seen by the next handler.
func traceRequest(h *Handler, headerValue string) (*httptest.ResponseRecorder, *http.Request) {
	var seen *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	if headerValue != "" {
		req.Header.Set(traceIDHeader, headerValue)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, seen
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantEcho  bool
		wantUUIDv bool
	}{
		{name: "client trace id is echoed", header: "req-42", wantEcho: true},
		{name: "uuid from client is echoed", header: "0192f0c8-6d1c-7c2a-9b1e-3f4a5b6c7d8e", wantEcho: true},
		{name: "missing header gets generated id", header: "", wantUUIDv: true},
		{name: "id at length limit is kept", header: strings.Repeat("a", maxTraceIDLength), wantEcho: true},
		{name: "oversized id is replaced", header: strings.Repeat("a", maxTraceIDLength+1), wantUUIDv: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, seen := traceRequest(newTestHandler(), tt.header)

			require.NotNil(t, seen, "next handler must be called")
			assert.Equal(t, http.StatusNoContent, rr.Code)

			got := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)

			if tt.wantEcho {
				assert.Equal(t, tt.header, got)
			}
			if tt.wantUUIDv {
				id, err := uuid.Parse(got)
				require.NoError(t, err)
				assert.Equal(t, uuid.Version(7), id.Version())
			}
		})
	}
}

func TestWithTraceID_TraceIDReachesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.New(&buf, "test", "development")}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(traceIDHeader, "trace-from-client")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-from-client", entry["trace_id"])
	assert.Equal(t, "inside handler", entry["message"])
}

func TestWithTraceID_ParentLoggerUntouched(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.New(&buf, "test", "development")}

	traceRequest(h, "abc")
	h.logger.Info().Msg("after request")

	assert.NotContains(t, buf.String(), "abc")
}

func TestWithTraceID_GeneratedIDsAreUnique(t *testing.T) {
	h := newTestHandler()

	const n = 50
	var (
		mu  sync.Mutex
		ids = make(map[string]struct{}, n)
		wg  sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr, _ := traceRequest(h, "")

			mu.Lock()
			ids[rr.Header().Get(traceIDHeader)] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, n)
}

func TestWithTraceID_OriginalRequestNotMutated(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	origCtx := req.Context()

	var seen *http.Request
	h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
	})).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, origCtx == req.Context(), "original request context must not change")
	assert.NotSame(t, req, seen)
}

func TestNewTraceID_IsTimeOrdered(t *testing.T) {
	first := newTraceID()
	second := newTraceID()

	a, err := uuid.Parse(first)
	require.NoError(t, err)
	b, err := uuid.Parse(second)
	require.NoError(t, err)

	assert.Equal(t, uuid.Version(7), a.Version())
	assert.LessOrEqual(t, int64(a.Time()), int64(b.Time()))
}
