package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "message", data: models.MessageResponse{Message: "User deleted"}, status: http.StatusOK, wantBody: `{"message":"User deleted"}`},
		{name: "not found", data: models.MessageResponse{Message: "Book not found"}, status: http.StatusNotFound, wantBody: `{"message":"Book not found"}`},
		{name: "nil renders null", data: nil, status: http.StatusOK, wantBody: `null`},
		{name: "empty slice", data: []models.Book{}, status: http.StatusOK, wantBody: `[]`},
		{
			name:     "nested page",
			data:     models.BookPage{TotalCount: 1, Limit: 5, Order: "asc", Sort: "name", Books: []models.Book{{ID: "b1", Name: "Dune"}}},
			status:   http.StatusOK,
			wantBody: `{"totalCount":1,"limit":5,"offset":0,"sort":"name","order":"asc","searchKey":"","books":[{"id":"b1","name":"Dune","pages":0,"price":0,"authorId":"","author":null}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			n, err := WriteJSON(rr, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestWriteJSON_UnserializableData(t *testing.T) {
	rr := httptest.NewRecorder()

	n, err := WriteJSON(rr, make(chan int), http.StatusCreated)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		noBody    bool
		wantName  string
		wantErr   bool
		wantEmpty bool
	}{
		{name: "valid body, unknown fields ignored", body: `{"name":"Dune","extra":1}`, wantName: "Dune"},
		{name: "empty body", body: "", wantErr: true, wantEmpty: true},
		{name: "no body at all", noBody: true, wantErr: true, wantEmpty: true},
		{name: "malformed body", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"name":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(tt.body))
			if tt.noBody {
				r.Body = http.NoBody
			}

			var dst models.BookRequest
			err := DecodeJSON(r, &dst)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, dst.Name)
				return
			}
			require.Error(t, err)
			if tt.wantEmpty {
				assert.ErrorIs(t, err, ErrEmptyBody)
			} else {
				assert.NotErrorIs(t, err, ErrEmptyBody)
			}
		})
	}
}
