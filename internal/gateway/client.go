// Package gateway talks to the remote placeholder todo API.
package gateway

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultBaseURL is the public demo API the app was built against.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

//go:embed todos.schema.json
var listSchemaJSON []byte

var listSchema = mustCompileListSchema()

func mustCompileListSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("todos.schema.json", bytes.NewReader(listSchemaJSON)); err != nil {
		panic(err)
	}
	return c.MustCompile("todos.schema.json")
}

var (
	// ErrStatus is wrapped by *StatusError.
	ErrStatus = errors.New("unexpected status")
	// ErrPayload means the response body did not have the expected shape.
	ErrPayload = errors.New("invalid payload")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Options configures a Client.
type Options struct {
	// HTTPClient defaults to a client without timeout.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client is a CRUD client for /todos.
type Client struct {
	baseURL string
	client  *http.Client
	log     *log.Logger
}

// New creates a client for the given base URL.
func New(baseURL string, opts Options) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	c := &Client{baseURL: baseURL, client: opts.HTTPClient, log: opts.Logger}
	if c.client == nil {
		c.client = &http.Client{}
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches up to limit todos.
func (c *Client) List(ctx context.Context, limit int) ([]model.Item, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("_limit", strconv.Itoa(limit))
	}
	u := c.baseURL + "/todos"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if err := listSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}

	var wire []wireTodo
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	items := make([]model.Item, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.item(model.Item{Origin: model.Seeded}))
	}
	return items, nil
}

// Delete removes the todo with the given id.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, c.todoURL(id), nil)
	return err
}

// Update sends it and returns the server's echo. Fields missing from the
// echo fall back to it; the id is always it.ID.
func (c *Client) Update(ctx context.Context, it model.Item) (model.Item, error) {
	payload, err := json.Marshal(newWireTodo(it))
	if err != nil {
		return model.Item{}, fmt.Errorf("marshal: %w", err)
	}
	body, err := c.do(ctx, http.MethodPut, c.todoURL(it.ID), payload)
	if err != nil {
		return model.Item{}, err
	}
	var echo wireTodo
	if err := json.Unmarshal(body, &echo); err != nil {
		return model.Item{}, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return echo.item(it), nil
}

func (c *Client) todoURL(id int) string {
	return c.baseURL + "/todos/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, u string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "url", u, "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	c.log.Debug("request", "method", method, "url", u, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			URL:    u,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}
