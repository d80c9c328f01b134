package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/go-resty/resty/v2"
)

const authTokenHeader = "X-Auth-Token"

type httpServerAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter]
// talking to the server at address. A zero timeout keeps the client default.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. The token is taken from the response
// body and stored via SetToken.
func (h *httpServerAdapter) Register(ctx context.Context, request models.UserRequest) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&out).
		Post("/auth/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(out.Token)
	return out, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&out).
		Post("/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(out.Token)
	return out, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := h.do(h.authedRequest(ctx).SetResult(&user), resty.MethodGet, "/auth/me")
	return user, err
}

func (h *httpServerAdapter) ListUsers(ctx context.Context, params models.ListParams) (models.UserPage, error) {
	var page models.UserPage
	err := h.do(h.authedRequest(ctx).SetQueryParams(listQuery(params)).SetResult(&page), resty.MethodGet, "/users")
	return page, err
}

func (h *httpServerAdapter) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := h.do(h.authedRequest(ctx).SetPathParam("id", id).SetResult(&user), resty.MethodGet, "/users/{id}")
	return user, err
}

func (h *httpServerAdapter) CreateUser(ctx context.Context, request models.UserRequest) (models.User, error) {
	var user models.User
	err := h.do(h.authedRequest(ctx).SetBody(request).SetResult(&user), resty.MethodPost, "/users")
	return user, err
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, id string, request models.UserRequest) (models.User, error) {
	var user models.User
	err := h.do(h.authedRequest(ctx).SetPathParam("id", id).SetBody(request).SetResult(&user), resty.MethodPut, "/users/{id}")
	return user, err
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, id string) error {
	return h.do(h.authedRequest(ctx).SetPathParam("id", id), resty.MethodDelete, "/users/{id}")
}

func (h *httpServerAdapter) SetSuspended(ctx context.Context, id string, suspended bool) (models.User, error) {
	path := "/users/{id}/restore"
	if suspended {
		path = "/users/{id}/suspend"
	}

	var user models.User
	err := h.do(h.authedRequest(ctx).SetPathParam("id", id).SetResult(&user), resty.MethodPatch, path)
	return user, err
}

func (h *httpServerAdapter) ListBooks(ctx context.Context, params models.ListParams) (models.BookPage, error) {
	var page models.BookPage
	err := h.do(h.authedRequest(ctx).SetQueryParams(listQuery(params)).SetResult(&page), resty.MethodGet, "/books")
	return page, err
}

func (h *httpServerAdapter) GetBook(ctx context.Context, id string) (models.Book, error) {
	var book models.Book
	err := h.do(h.authedRequest(ctx).SetPathParam("id", id).SetResult(&book), resty.MethodGet, "/books/{id}")
	return book, err
}

func (h *httpServerAdapter) CreateBook(ctx context.Context, request models.BookRequest) (models.Book, error) {
	var book models.Book
	err := h.do(h.authedRequest(ctx).SetBody(request).SetResult(&book), resty.MethodPost, "/books")
	return book, err
}

func (h *httpServerAdapter) UpdateBook(ctx context.Context, id string, request models.BookRequest) (models.Book, error) {
	var book models.Book
	err := h.do(h.authedRequest(ctx).SetPathParam("id", id).SetBody(request).SetResult(&book), resty.MethodPut, "/books/{id}")
	return book, err
}

func (h *httpServerAdapter) DeleteBook(ctx context.Context, id string) error {
	return h.do(h.authedRequest(ctx).SetPathParam("id", id), resty.MethodDelete, "/books/{id}")
}

// Upload implements [ServerAdapter]. The file is sent as the "file" part of a
// multipart form.
func (h *httpServerAdapter) Upload(ctx context.Context, bookID, filename string, r io.Reader) (models.UploadResponse, error) {
	var out models.UploadResponse
	req := h.authedRequest(ctx).
		SetPathParam("id", bookID).
		SetFileReader("file", filename, r).
		SetResult(&out)

	err := h.do(req, resty.MethodPatch, "/content/upload/{id}")
	return out, err
}

// Download implements [ServerAdapter]. The response body is streamed to w
// without being buffered.
func (h *httpServerAdapter) Download(ctx context.Context, filename string, w io.Writer) (int64, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetPathParam("filename", filename).
		SetDoNotParseResponse(true).
		Get("/content/download/{filename}")
	if err != nil {
		return 0, fmt.Errorf("download request: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		raw, _ := io.ReadAll(body)
		return 0, mapHTTPError(resp.StatusCode(), raw)
	}

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("download %q: %w", filename, err)
	}

	h.logger.Debug().Str("filename", filename).Int64("size", n).Msg("file downloaded")
	return n, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader(authTokenHeader, h.token)
	}
	return req
}

func (h *httpServerAdapter) do(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", strings.ToLower(method), path, err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		h.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("server returned error")
		return err
	}

	return nil
}

func listQuery(params models.ListParams) map[string]string {
	query := make(map[string]string)
	if params.Limit > 0 {
		query["limit"] = strconv.Itoa(params.Limit)
	}
	if params.Offset > 0 {
		query["offset"] = strconv.Itoa(params.Offset)
	}
	if params.Sort != "" {
		query["sort"] = params.Sort
	}
	if params.Order != "" {
		query["order"] = params.Order
	}
	if params.SearchKey != "" {
		query["searchKey"] = params.SearchKey
	}

	return query
}
