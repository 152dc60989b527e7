package seeker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/wyrm/internal/item"
)

// Searcher is implemented by *Client and by test doubles used by the collector.
type Searcher interface {
	Name() string
	Search(ctx context.Context, q item.Query) ([]item.Item, error)
}

// DetailFetcher retrieves the long-form description of an item.
type DetailFetcher interface {
	FetchDetails(ctx context.Context, id string) (string, error)
}

// Ensure Client implements both interfaces at compile time.
var (
	_ Searcher      = (*Client)(nil)
	_ DetailFetcher = (*Client)(nil)
)

// Client talks to a seeker's HTTP API.
type Client struct {
	name      string
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBind      = "127.0.0.1:7488"
	defaultUserAgent = "wyrm/0.1"
	defaultTimeout   = 10 * time.Second
)

// NewClient builds a Client for the seeker called name at rawURL. A zero
// timeout uses the default.
func NewClient(name, rawURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = base.Host
	}
	return &Client{
		name:    name,
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Name returns the seeker name used to stamp results.
func (c *Client) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Search asks the seeker for items matching q.
func (c *Client) Search(ctx context.Context, q item.Query) ([]item.Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if title := strings.TrimSpace(q.Title); title != "" {
		values.Set("title", title)
	}
	for _, author := range q.Authors {
		if author = strings.TrimSpace(author); author != "" {
			values.Add("author", author)
		}
	}
	if series := strings.TrimSpace(q.Series); series != "" {
		values.Set("series", series)
	}
	if publisher := strings.TrimSpace(q.Publisher); publisher != "" {
		values.Set("publisher", publisher)
	}
	if q.Year > 0 {
		values.Set("year", strconv.Itoa(q.Year))
	}
	if format := strings.TrimSpace(q.Format); format != "" {
		values.Set("format", format)
	}
	rel := &url.URL{Path: "/api/search", RawQuery: values.Encode()}

	var payload SearchResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	items := make([]item.Item, 0, len(payload.Items))
	for _, r := range payload.Items {
		items = append(items, r.Item(c.name))
	}
	return items, nil
}

// FetchDetails retrieves the description for the item with the given id.
func (c *Client) FetchDetails(ctx context.Context, id string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("item id required")
	}
	values := url.Values{}
	values.Set("id", id)
	rel := &url.URL{Path: "/api/details", RawQuery: values.Encode()}

	var payload DetailsResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return "", err
	}
	return payload.Description, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse seeker url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
