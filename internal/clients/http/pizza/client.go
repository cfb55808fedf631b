// Package pizza is a typed client for the pizza service HTTP API.
package pizza

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds every request unless WithHTTPClient supplies another client.
const DefaultTimeout = 5 * time.Second

// IdempotencyKeyHeader matches the header the API reads on order placement.
const IdempotencyKeyHeader = "Idempotency-Key"

// Client calls the API with an optional bearer token. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout changes the timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// NewClient instantiates the client with an otelhttp transport and a 5s timeout.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("pizza base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse pizza base URL: %w", err)
	}
	c := &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// WithToken returns a copy of the client that sends the bearer token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = strings.TrimSpace(token)
	return &clone
}

// Token returns the bearer token the client sends, if any.
func (c *Client) Token() string {
	return c.token
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Auth, error) {
	var out Auth
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPut, "/api/auth", nil, body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a diner account and logs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Auth, error) {
	var out Auth
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth", nil, body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the client's token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/auth", nil, nil, nil, &message{})
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/user/me", nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUsers lists one page of users matching a `*term*` filter.
func (c *Client) GetUsers(ctx context.Context, page, limit int, name string) (*UserList, error) {
	query, err := listQuery(page, limit, name)
	if err != nil {
		return nil, err
	}
	var out UserList
	if err := c.do(ctx, http.MethodGet, "/api/user", query, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*User, error) {
	path, err := pathWith("/api/user/", id)
	if err != nil {
		return nil, err
	}
	var out User
	if err := c.do(ctx, http.MethodPut, path, nil, update, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path, err := pathWith("/api/user/", id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, nil)
}

// GetFranchises lists one page of franchises matching a `*term*` filter.
func (c *Client) GetFranchises(ctx context.Context, page, limit int, name string) (*FranchiseList, error) {
	query, err := listQuery(page, limit, name)
	if err != nil {
		return nil, err
	}
	var out FranchiseList
	if err := c.do(ctx, http.MethodGet, "/api/franchise", query, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserFranchises lists the franchises administered by userID.
func (c *Client) GetUserFranchises(ctx context.Context, userID int64) ([]Franchise, error) {
	path, err := pathWith("/api/franchise/", userID)
	if err != nil {
		return nil, err
	}
	var out []Franchise
	if err := c.do(ctx, http.MethodGet, path, nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFranchise creates a franchise administered by the given emails.
func (c *Client) CreateFranchise(ctx context.Context, name string, adminEmails ...string) (*Franchise, error) {
	admins := make([]Admin, 0, len(adminEmails))
	for _, email := range adminEmails {
		if email = strings.TrimSpace(email); email != "" {
			admins = append(admins, Admin{Email: email})
		}
	}
	var out Franchise
	body := Franchise{Name: name, Admins: admins}
	if err := c.do(ctx, http.MethodPost, "/api/franchise", nil, body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseFranchise deletes a franchise and its stores.
func (c *Client) CloseFranchise(ctx context.Context, franchiseID int64) error {
	path, err := pathWith("/api/franchise/", franchiseID)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, &message{})
}

func (c *Client) CreateStore(ctx context.Context, franchiseID int64, name string) (*Store, error) {
	path, err := pathWith("/api/franchise/", franchiseID)
	if err != nil {
		return nil, err
	}
	var out Store
	if err := c.do(ctx, http.MethodPost, path+"/store", nil, map[string]string{"name": name}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CloseStore(ctx context.Context, franchiseID, storeID int64) error {
	path, err := pathWith("/api/franchise/", franchiseID)
	if err != nil {
		return err
	}
	if path, err = pathWith(path+"/store/", storeID); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, &message{})
}

func (c *Client) Menu(ctx context.Context) ([]MenuItem, error) {
	var out []MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/order/menu", nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddMenuItem adds a pizza and returns the whole menu.
func (c *Client) AddMenuItem(ctx context.Context, item MenuItem) ([]MenuItem, error) {
	var out []MenuItem
	if err := c.do(ctx, http.MethodPut, "/api/order/menu", nil, item, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Orders returns a one-based page of the caller's order history.
func (c *Client) Orders(ctx context.Context, page int) (*OrderHistory, error) {
	query := url.Values{}
	if err := addQuery(query, "page", page); err != nil {
		return nil, err
	}
	var out OrderHistory
	if err := c.do(ctx, http.MethodGet, "/api/order", query, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceOrder submits an order. A non-empty idempotency key makes retries safe.
func (c *Client) PlaceOrder(ctx context.Context, order Order, idempotencyKey string) (*OrderReceipt, error) {
	var header http.Header
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		header = http.Header{IdempotencyKeyHeader: []string{key}}
	}
	var out OrderReceipt
	if err := c.do(ctx, http.MethodPost, "/api/order", nil, order, header, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, header http.Header, out any) error {
	if c == nil || c.http == nil {
		return errors.New("pizza client not configured")
	}
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	if json.Unmarshal(raw, apiErr) != nil {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}

func listQuery(page, limit int, name string) (url.Values, error) {
	query := url.Values{}
	if err := addQuery(query, "page", page); err != nil {
		return nil, err
	}
	if err := addQuery(query, "limit", limit); err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name == "" {
		name = "*"
	}
	if err := addQuery(query, "name", name); err != nil {
		return nil, err
	}
	return query, nil
}

func addQuery(query url.Values, name string, value any) error {
	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return fmt.Errorf("style %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	for k, values := range parsed {
		for _, v := range values {
			query.Add(k, v)
		}
	}
	return nil
}

func pathWith(prefix string, id int64) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", err
	}
	return prefix + param, nil
}
