package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-bookshelf/internal/config"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/service"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotStubbed = errors.New("not stubbed")

const (
	testUserID = "0190c3c4-6d2e-7a51-9a54-3f6b1e2d4c01"
	testBookID = "0190c3c4-6d2e-7a51-9a54-3f6b1e2d4c02"
	testToken  = "signed-token"
)

// ─────────────────────────────────────────────
// Fake services
// ─────────────────────────────────────────────

// fakeAuthService implements service.AuthService. Every method delegates to
// the matching function field; unset fields fail with errNotStubbed.
type fakeAuthService struct {
	registerUserFn func(ctx context.Context, request models.UserRequest) (models.User, error)
	loginFn        func(ctx context.Context, credentials models.Credentials) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	currentUserFn  func(ctx context.Context, userID string) (models.User, error)
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, request models.UserRequest) (models.User, error) {
	if f.registerUserFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.registerUserFn(ctx, request)
}

func (f *fakeAuthService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	if f.loginFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.loginFn(ctx, credentials)
}

func (f *fakeAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if f.createTokenFn == nil {
		return models.Token{SignedString: testToken, UserID: user.ID}, nil
	}
	return f.createTokenFn(ctx, user)
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if f.parseTokenFn == nil {
		if tokenString == testToken {
			return models.Token{SignedString: tokenString, UserID: testUserID}, nil
		}
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return f.parseTokenFn(ctx, tokenString)
}

func (f *fakeAuthService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	if f.currentUserFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.currentUserFn(ctx, userID)
}

type fakeUserService struct {
	listUsersFn    func(ctx context.Context, params models.ListParams) (models.UserPage, error)
	getUserFn      func(ctx context.Context, id string) (models.User, error)
	createUserFn   func(ctx context.Context, request models.UserRequest) (models.User, error)
	updateUserFn   func(ctx context.Context, id string, request models.UserRequest) (models.User, error)
	deleteUserFn   func(ctx context.Context, id string) error
	setSuspendedFn func(ctx context.Context, id string, suspended bool) (models.User, error)
}

func (f *fakeUserService) ListUsers(ctx context.Context, params models.ListParams) (models.UserPage, error) {
	if f.listUsersFn == nil {
		return models.UserPage{}, errNotStubbed
	}
	return f.listUsersFn(ctx, params)
}

func (f *fakeUserService) GetUser(ctx context.Context, id string) (models.User, error) {
	if f.getUserFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.getUserFn(ctx, id)
}

func (f *fakeUserService) CreateUser(ctx context.Context, request models.UserRequest) (models.User, error) {
	if f.createUserFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.createUserFn(ctx, request)
}

func (f *fakeUserService) UpdateUser(ctx context.Context, id string, request models.UserRequest) (models.User, error) {
	if f.updateUserFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.updateUserFn(ctx, id, request)
}

func (f *fakeUserService) DeleteUser(ctx context.Context, id string) error {
	if f.deleteUserFn == nil {
		return errNotStubbed
	}
	return f.deleteUserFn(ctx, id)
}

func (f *fakeUserService) SetSuspended(ctx context.Context, id string, suspended bool) (models.User, error) {
	if f.setSuspendedFn == nil {
		return models.User{}, errNotStubbed
	}
	return f.setSuspendedFn(ctx, id, suspended)
}

type fakeBookService struct {
	listBooksFn  func(ctx context.Context, params models.ListParams) (models.BookPage, error)
	getBookFn    func(ctx context.Context, id string) (models.Book, error)
	createBookFn func(ctx context.Context, request models.BookRequest) (models.Book, error)
	updateBookFn func(ctx context.Context, id string, request models.BookRequest) (models.Book, error)
	deleteBookFn func(ctx context.Context, id string) error
}

func (f *fakeBookService) ListBooks(ctx context.Context, params models.ListParams) (models.BookPage, error) {
	if f.listBooksFn == nil {
		return models.BookPage{}, errNotStubbed
	}
	return f.listBooksFn(ctx, params)
}

func (f *fakeBookService) GetBook(ctx context.Context, id string) (models.Book, error) {
	if f.getBookFn == nil {
		return models.Book{}, errNotStubbed
	}
	return f.getBookFn(ctx, id)
}

func (f *fakeBookService) CreateBook(ctx context.Context, request models.BookRequest) (models.Book, error) {
	if f.createBookFn == nil {
		return models.Book{}, errNotStubbed
	}
	return f.createBookFn(ctx, request)
}

func (f *fakeBookService) UpdateBook(ctx context.Context, id string, request models.BookRequest) (models.Book, error) {
	if f.updateBookFn == nil {
		return models.Book{}, errNotStubbed
	}
	return f.updateBookFn(ctx, id, request)
}

func (f *fakeBookService) DeleteBook(ctx context.Context, id string) error {
	if f.deleteBookFn == nil {
		return errNotStubbed
	}
	return f.deleteBookFn(ctx, id)
}

func (f *fakeBookService) ReconcileAuthors(context.Context) (int64, error) {
	return 0, nil
}

type fakeContentService struct {
	uploadFn   func(ctx context.Context, bookID string, content models.Content) (models.Book, error)
	downloadFn func(ctx context.Context, filename string) (models.Content, error)
}

func (f *fakeContentService) Upload(ctx context.Context, bookID string, content models.Content) (models.Book, error) {
	if f.uploadFn == nil {
		return models.Book{}, errNotStubbed
	}
	return f.uploadFn(ctx, bookID, content)
}

func (f *fakeContentService) Download(ctx context.Context, filename string) (models.Content, error) {
	if f.downloadFn == nil {
		return models.Content{}, errNotStubbed
	}
	return f.downloadFn(ctx, filename)
}

type fakeAppInfoService struct {
	info models.AppBuildInfo
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) models.AppBuildInfo {
	return f.info
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newFakeServices returns services backed by fakes with nothing stubbed.
func newFakeServices() *service.Services {
	return &service.Services{
		AuthService:    &fakeAuthService{},
		UserService:    &fakeUserService{},
		BookService:    &fakeBookService{},
		ContentService: &fakeContentService{},
		AppInfoService: &fakeAppInfoService{info: models.NewAppBuildInfo("v1.0.0", "2026-10-16", "abc123")},
	}
}

func newTestHandlerWith(svcs *service.Services) *Handler {
	return NewHandler(svcs, config.App{Env: config.EnvDevelopment}, logger.Nop())
}

// serve runs the request through the full router.
func serve(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(authTokenHeader, testToken)

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[models.MessageResponse](t, rr).Message
}

// withUserID returns r with the authenticated user id in its context.
func withUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), utils.UserIDCtxKey, userID))
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	svcs := newFakeServices()
	log := logger.Nop()

	h := NewHandler(svcs, config.App{Env: config.EnvDevelopment}, log)

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Same(t, log, h.logger)
	assert.False(t, h.production)
	require.NotNil(t, h.random)

	v := h.random()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestNewHandler_Production(t *testing.T) {
	h := NewHandler(newFakeServices(), config.App{Env: config.EnvProduction}, logger.Nop())

	assert.True(t, h.production)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := newTestHandlerWith(newFakeServices())
	h2 := newTestHandlerWith(newFakeServices())

	assert.NotSame(t, h1, h2)
}

func serveWithoutToken(t *testing.T, h *Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func newRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return httptest.NewRequest(method, path, reader)
}

func serveRequest(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}
