package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Syncer defines the calls the engine makes against the sync endpoint.
// It is implemented by *Client and can be faked in tests.
type Syncer interface {
	FetchSnapshot(ctx context.Context) (*Snapshot, error)
	SendBatch(ctx context.Context, cmds []Command) (StatusMap, error)
}

// Ensure Client implements Syncer at compile time.
var _ Syncer = (*Client)(nil)

// Client talks to the Todoist sync API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const (
	DefaultBaseURL   = "https://todoist.com/API/v6/"
	defaultUserAgent = "todosync/0.1"
	DefaultTimeout   = 10 * time.Second
)

// NewClient builds a Client for baseURL authenticating with token. A zero
// timeout uses DefaultTimeout.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" {
		return nil, &ValidationError{Field: "token", Err: fmt.Errorf("token is empty")}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		token:     strings.TrimSpace(token),
		userAgent: defaultUserAgent,
	}, nil
}

// FetchSnapshot retrieves every project and item in one full sync.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	params := url.Values{}
	params.Set("seq_no", "0")
	params.Set("seq_no_global", "0")
	params.Set("resource_types", `["projects","items"]`)

	var payload Snapshot
	if err := c.post(ctx, "sync", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SendBatch submits cmds in one sync request and returns the per-uuid
// status map.
func (c *Client) SendBatch(ctx context.Context, cmds []Command) (StatusMap, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if len(cmds) == 0 {
		return StatusMap{}, nil
	}
	encoded, err := json.Marshal(cmds)
	if err != nil {
		return nil, fmt.Errorf("encode commands: %w", err)
	}
	params := url.Values{}
	params.Set("commands", string(encoded))

	var payload syncStatusResponse
	if err := c.post(ctx, "sync", params, &payload); err != nil {
		return nil, err
	}
	if payload.SyncStatus == nil {
		payload.SyncStatus = StatusMap{}
	}
	return payload.SyncStatus, nil
}

func (c *Client) post(ctx context.Context, method string, params url.Values, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: method})
	form := url.Values{}
	for k, v := range params {
		form[k] = v
	}
	form.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Kind: KindUnknown, Op: method, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Kind: KindUnknown, Op: method, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		if remote := decodeRemoteError(body); remote != nil {
			return remote
		}
		return &TransportError{Kind: kindForStatus(resp.StatusCode), Op: method, Status: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(dest); err != nil {
		return &TransportError{Kind: KindUnknown, Op: method, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func decodeRemoteError(body []byte) *RemoteError {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil
	}
	if _, ok := obj["error"]; !ok {
		return nil
	}
	return remoteErrorFrom("", obj)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
