package requiem

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/klmitch/requiem/logger"
)

// Requester constructs request objects. It is implemented by *Client and
// by variants that post-process responses, such as jsclient.Client.
type Requester interface {
	NewRequest(method, path string) (*Request, error)
}

// Client holds the connection configuration shared by all requests a REST
// client issues. A Client is immutable after construction and safe for
// concurrent use; the requests it creates are single-use and are not.
type Client struct {
	config     Config
	httpClient *http.Client
	log        *logger.Logger
	procs      Stack
}

// New creates a client with the given configuration.
func New(cfg Config) (*Client, error) {
	var log *logger.Logger
	if cfg.Debug {
		log = logger.New(&logger.Config{Level: "debug"}, "requiem")
	} else {
		log = logger.Nop()
	}
	return NewWithLogger(cfg, log)
}

// NewWithLogger creates a client with the given configuration and logger.
func NewWithLogger(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Transport: transport,
			// Redirects are followed by Send, under the configured bound.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: log,
	}, nil
}

// Use appends processors to the client's processor stack. Processors
// implement any of RequestProcessor, ResponseProcessor, or ErrorProcessor.
// Use is not safe to call concurrently with in-flight requests; register
// processors during client setup.
func (c *Client) Use(procs ...any) {
	c.procs.Push(procs...)
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// NewRequest constructs a fresh request for the given method and path,
// carrying the client's default headers. The path is resolved against the
// configured base URL; absolute URLs pass through unchanged.
func (c *Client) NewRequest(method, path string) (*Request, error) {
	target := c.resolveURL(path)
	if _, err := url.Parse(target); err != nil {
		return nil, NewValidationError("parse url: " + err.Error())
	}

	header := make(http.Header)
	for k, v := range c.config.Headers {
		header.Set(k, v)
	}
	for k, fn := range c.config.DynamicHeaders {
		if fn == nil {
			continue
		}
		// Headers that evaluate to nothing are not sent.
		if v := fn(); v != "" {
			header.Set(k, v)
		}
	}
	if c.config.RequestID && header.Get("X-Request-Id") == "" {
		header.Set("X-Request-Id", uuid.New().String())
	}

	c.log.Debug("created request", logger.Fields(
		"method", strings.ToUpper(method),
		"url", target,
	))

	return &Request{
		Method: strings.ToUpper(method),
		URL:    target,
		Header: header,
		client: c,
	}, nil
}

// resolveURL joins a request path to the configured base URL.
func (c *Client) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := c.config.baseURL()
	rest := strings.TrimLeft(path, "/")
	if rest == "" {
		return base
	}
	return base + "/" + rest
}
