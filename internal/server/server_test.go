package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookshelf/internal/adapter"
	"github.com/MKhiriev/go-bookshelf/internal/config"
	"github.com/MKhiriev/go-bookshelf/internal/handler"
	httphandler "github.com/MKhiriev/go-bookshelf/internal/handler/http"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/service"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers() *handler.Handlers {
	return &handler.Handlers{
		HTTP: httphandler.NewHandler(&service.Services{}, config.App{}, logger.Nop()),
	}
}

func TestNewServer_NoAddress(t *testing.T) {
	s, err := NewServer(newTestHandlers(), config.Server{}, logger.Nop())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, errNoHTTPHandler)
}

func TestNewServer_BadAddress(t *testing.T) {
	s, err := NewServer(newTestHandlers(), config.Server{HTTPAddress: "not-an-address"}, logger.Nop())

	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestServer_ServesUntilCancelled(t *testing.T) {
	s, err := NewServer(newTestHandlers(), config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunServer(ctx) }()

	client := utils.NewHTTPClient("http://" + s.(*server).httpServer.Addr())
	resp, err := client.R().Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "Hello World from the index route!", resp.String())

	api, err := adapter.NewHTTPServerAdapter(s.(*server).httpServer.Addr(), time.Second, logger.Nop())
	require.NoError(t, err)
	_, err = api.ListBooks(ctx, models.ListParams{})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}
