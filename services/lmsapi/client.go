package lmsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// defaultErrMessage is shown when an error body carries no message field.
const defaultErrMessage = "API Error"

// APIError is any non-2xx backend response. Message comes from the response
// body's `message` field and is displayed to the user verbatim; transport
// failures and HTTP errors are not otherwise distinguished for callers.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// IsAuthError reports whether err is a backend 401/403.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

type ctxKey int

const credentialsKey ctxKey = iota

// WithCredentials returns a context carrying the backend session Cookie
// header value for the current portal session. Every call attaches it so the
// backend can read its own session cookie.
func WithCredentials(ctx context.Context, cookie string) context.Context {
	return context.WithValue(ctx, credentialsKey, cookie)
}

func credentials(ctx context.Context) string {
	cookie, _ := ctx.Value(credentialsKey).(string)
	return cookie
}

// Client is the shared transport under the role APIs. No retries, no caching,
// no request deduplication: every page load hits the backend afresh.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
}

// call performs a JSON request and returns the raw body plus any cookies the
// backend set (login needs those). A non-2xx status becomes an *APIError.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, payload interface{}) (json.RawMessage, []*http.Cookie, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, errors.Wrap(err, "marshaling request payload")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie := credentials(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: defaultErrMessage}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return nil, nil, apiErr
	}
	return raw, resp.Cookies(), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	raw, _, err := c.call(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, payload, out interface{}) error {
	raw, _, err := c.call(ctx, http.MethodPost, path, query, payload)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, payload, out interface{}) error {
	raw, _, err := c.call(ctx, http.MethodPut, path, query, payload)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	_, _, err := c.call(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func decode(raw json.RawMessage, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return errors.Wrap(unwrap(raw, out), "decoding response")
}

// listQuery builds the standard paging query. Zero/empty values are omitted,
// matching the upstream contract: page 0 and blank filters never appear, and
// size defaults to 10.
func listQuery(page, size int, filters map[string]string) url.Values {
	if size <= 0 {
		size = 10
	}
	q := make(url.Values)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	q.Set("size", strconv.Itoa(size))
	for key, val := range filters {
		if val != "" {
			q.Set(key, val)
		}
	}
	return q
}

// APIs bundles the role-scoped clients over one transport.
type APIs struct {
	Auth   *AuthAPI
	Admin  *AdminAPI
	Mentee *MenteeAPI
	Tutor  *TutorAPI
}

func New(baseURL string) *APIs {
	c := NewClient(baseURL)
	return &APIs{
		Auth:   &AuthAPI{c: c},
		Admin:  &AdminAPI{c: c},
		Mentee: &MenteeAPI{c: c},
		Tutor:  &TutorAPI{c: c},
	}
}
