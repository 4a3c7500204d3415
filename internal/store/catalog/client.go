package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"meenora.in/store/internal/store/session"
)

// DefaultPageLimit matches the backend listing convention (?page=N&limit=10).
const DefaultPageLimit = 10

var (
	// ErrUnauthorized indicates the token was rejected by the backend.
	ErrUnauthorized = errors.New("catalog: unauthorized")
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("catalog: not found")
)

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client implements Service backed by the REST endpoints of the Meenora
// backend API.
type Client struct {
	base   *url.URL
	client HTTPClient
}

// NewClient constructs a Service that talks to the backend catalog API.
func NewClient(baseURL string, client HTTPClient) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("catalog: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{base: parsed, client: client}, nil
}

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*Auth, error) {
	body := map[string]string{"email": strings.TrimSpace(email), "password": password}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/login", body, "")
	if err != nil {
		return nil, err
	}
	var payload Auth
	if err := c.doJSON(req, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Register creates an account and returns the established identity.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Auth, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/auth/register", input, "")
	if err != nil {
		return nil, err
	}
	var payload Auth
	if err := c.doJSON(req, http.StatusCreated, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Profile fetches the account behind the token. An ErrUnauthorized result
// means the token is stale and the session should be discarded.
func (c *Client) Profile(ctx context.Context, token string) (*session.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/profile", nil, token)
	if err != nil {
		return nil, err
	}
	var payload session.User
	if err := c.doJSON(req, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListProducts fetches one page of the product catalog.
func (c *Client) ListProducts(ctx context.Context, page, limit int) (*ProductPage, error) {
	page, limit = normalisePage(page, limit)
	endpoint := fmt.Sprintf("/products?page=%d&limit=%d", page, limit)
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}
	var items []Product
	total, err := c.doList(req, &items)
	if err != nil {
		return nil, err
	}
	return &ProductPage{
		Items:   items,
		Page:    page,
		Limit:   limit,
		HasNext: hasNextPage(len(items), page, limit, total),
	}, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, join("/products", id), nil, "")
	if err != nil {
		return nil, err
	}
	var payload Product
	if err := c.doJSON(req, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateProduct adds a product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, token string, input ProductInput) (*Product, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/products", input, token)
	if err != nil {
		return nil, err
	}
	var payload Product
	if err := c.doJSON(req, http.StatusCreated, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateProduct replaces a product record.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, input ProductInput) (*Product, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, join("/products", id), input, token)
	if err != nil {
		return nil, err
	}
	var payload Product
	if err := c.doJSON(req, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.delete(ctx, join("/products", id), token)
}

// ListBanners fetches all banner slots.
func (c *Client) ListBanners(ctx context.Context) ([]Banner, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/banners", nil, "")
	if err != nil {
		return nil, err
	}
	var items []Banner
	if _, err := c.doList(req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateBanner adds a banner slot.
func (c *Client) CreateBanner(ctx context.Context, token string, input BannerInput) (*Banner, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/banners", input, token)
	if err != nil {
		return nil, err
	}
	var payload Banner
	if err := c.doJSON(req, http.StatusCreated, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateBanner replaces a banner record.
func (c *Client) UpdateBanner(ctx context.Context, token, id string, input BannerInput) (*Banner, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, join("/banners", id), input, token)
	if err != nil {
		return nil, err
	}
	var payload Banner
	if err := c.doJSON(req, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteBanner removes a banner slot.
func (c *Client) DeleteBanner(ctx context.Context, token, id string) error {
	return c.delete(ctx, join("/banners", id), token)
}

// ListBlogs fetches all blog posts.
func (c *Client) ListBlogs(ctx context.Context) ([]BlogPost, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/blogs", nil, "")
	if err != nil {
		return nil, err
	}
	var items []BlogPost
	if _, err := c.doList(req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetBlog fetches a single blog post by ID.
func (c *Client) GetBlog(ctx context.Context, id string) (*BlogPost, error) {
	req, err := c.newRequest(ctx, http.MethodGet, join("/blogs", id), nil, "")
	if err != nil {
		return nil, err
	}
	var payload BlogPost
	if err := c.doJSON(req, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateBlog publishes a blog post.
func (c *Client) CreateBlog(ctx context.Context, token string, input BlogInput) (*BlogPost, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/blogs", input, token)
	if err != nil {
		return nil, err
	}
	var payload BlogPost
	if err := c.doJSON(req, http.StatusCreated, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateBlog replaces a blog post.
func (c *Client) UpdateBlog(ctx context.Context, token, id string, input BlogInput) (*BlogPost, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, join("/blogs", id), input, token)
	if err != nil {
		return nil, err
	}
	var payload BlogPost
	if err := c.doJSON(req, http.StatusOK, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteBlog removes a blog post.
func (c *Client) DeleteBlog(ctx context.Context, token, id string) error {
	return c.delete(ctx, join("/blogs", id), token)
}

// ListContacts fetches one page of contact messages.
func (c *Client) ListContacts(ctx context.Context, token string, page, limit int) (*ContactPage, error) {
	page, limit = normalisePage(page, limit)
	endpoint := fmt.Sprintf("/contacts?page=%d&limit=%d", page, limit)
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, token)
	if err != nil {
		return nil, err
	}
	var items []ContactMessage
	total, err := c.doList(req, &items)
	if err != nil {
		return nil, err
	}
	return &ContactPage{
		Items:   items,
		Page:    page,
		Limit:   limit,
		HasNext: hasNextPage(len(items), page, limit, total),
	}, nil
}

// CreateContact submits a contact-form message.
func (c *Client) CreateContact(ctx context.Context, input ContactInput) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/contacts", input, "")
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return c.errorFromResponse(resp)
	}
	return nil
}

// DeleteContact removes a contact message.
func (c *Client) DeleteContact(ctx context.Context, token, id string) error {
	return c.delete(ctx, join("/contacts", id), token)
}

// hasNextPage decides whether a further page exists. When the backend reports
// an explicit total the answer is exact; otherwise a full page is taken to
// mean more pages follow. The fallback over-reads by one empty page when the
// total is an exact multiple of the limit, which the total count avoids.
func hasNextPage(count, page, limit int, total *int) bool {
	if total != nil {
		return page*limit < *total
	}
	return limit > 0 && count == limit
}

func normalisePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return page, limit
}

func join(base, id string) string {
	return path.Join(base, url.PathEscape(strings.TrimSpace(id)))
}

func (c *Client) delete(ctx context.Context, endpoint, token string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil, token)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.errorFromResponse(resp)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request failed: %w", err)
	}
	return resp, nil
}

// doJSON executes the request and decodes a single JSON entity, accepting
// either a bare object or a {"data": ...} envelope.
func (c *Client) doJSON(req *http.Request, want int, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want && resp.StatusCode != http.StatusOK {
		return c.errorFromResponse(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("catalog: read response: %w", err)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		body = envelope.Data
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", req.URL.Path, err)
	}
	return nil
}

// doList executes the request and decodes a JSON list, accepting either a
// bare array or a {"data": [...], "total": N} envelope. The returned total is
// nil when the backend does not report one.
func (c *Client) doList(req *http.Request, out any) (*int, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return nil, fmt.Errorf("catalog: read response: %w", err)
	}

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Total *int            `json:"total"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return nil, fmt.Errorf("catalog: decode %s: %w", req.URL.Path, err)
		}
		return envelope.Total, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", req.URL.Path, err)
	}
	return nil, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, endpoint string, payload any, token string) (*http.Request, error) {
	var buf bytes.Buffer
	if payload != nil {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return nil, fmt.Errorf("catalog: encode payload: %w", err)
		}
	}
	req, err := c.newRequest(ctx, method, endpoint, &buf, token)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) resolve(endpoint string) string {
	if endpoint == "" {
		return c.base.String()
	}
	trimmed := strings.TrimPrefix(endpoint, "/")
	ref, err := url.Parse(trimmed)
	if err != nil {
		ref = &url.URL{Path: trimmed}
	}
	return c.base.ResolveReference(ref).String()
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (%d)", ErrUnauthorized, resp.StatusCode)
	case http.StatusNotFound:
		return fmt.Errorf("%w (%d)", ErrNotFound, resp.StatusCode)
	}

	type errorPayload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	var payload errorPayload
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return fmt.Errorf("catalog: backend error (%s): %s", strings.TrimSpace(payload.Code), payload.Message)
		}
		return fmt.Errorf("catalog: backend error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("catalog: backend error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
