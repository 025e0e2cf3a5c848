package jsclient

import (
	"encoding/json"
	"fmt"

	"github.com/klmitch/requiem"
)

const contentTypeJSON = "application/json"

// Client is a JSON-aware REST client. Requests it constructs decode the
// response body into Response.Obj after sending.
type Client struct {
	*requiem.Client
}

// New creates a JSON client from the given config, defaulting the Accept
// header to application/json.
func New(cfg requiem.Config) (*Client, error) {
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}
	if _, ok := cfg.Headers["Accept"]; !ok {
		cfg.Headers["Accept"] = contentTypeJSON
	}

	c, err := requiem.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{Client: c}, nil
}

// NewFromClient wraps an existing base client. The Accept header default
// is not applied; the base client's configuration is used as-is.
func NewFromClient(c *requiem.Client) *Client {
	return &Client{Client: c}
}

// NewRequest constructs a request whose final response is decoded as JSON.
func (c *Client) NewRequest(method, path string) (*requiem.Request, error) {
	req, err := c.Client.NewRequest(method, path)
	if err != nil {
		return nil, err
	}
	req.OnResponse(attachObj)
	return req, nil
}

// attachObj decodes the response body into Response.Obj. Malformed JSON
// leaves Obj nil and is not an error.
func attachObj(resp *requiem.Response) error {
	var obj any
	if err := json.Unmarshal(resp.Body, &obj); err != nil {
		return nil
	}
	resp.Obj = obj
	return nil
}

// AttachObj marshals v into the request body as JSON and sets the
// Content-Type header.
func AttachObj(req *requiem.Request, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("jsclient: encode body: %w", err)
	}
	req.SetBody(data)
	req.SetHeader("Content-Type", contentTypeJSON)
	return nil
}

// Decode unmarshals the response body into T. Unlike the automatic
// Response.Obj attachment, a malformed body here is an error, since the
// caller asked for a concrete type.
func Decode[T any](resp *requiem.Response) (T, error) {
	var v T
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return v, fmt.Errorf("jsclient: decode response: %w", err)
	}
	return v, nil
}
