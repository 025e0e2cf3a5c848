package requiem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/klmitch/requiem/logger"
)

// Request describes one outgoing HTTP call. It is mutable until sent and
// consumed exactly once by Send. Endpoint methods receive a fresh Request
// per invocation, populate it, and send it.
type Request struct {
	// Method is the HTTP method, upper-cased.
	Method string
	// URL is the fully resolved target URL.
	URL string
	// Header holds the request headers. Keys are canonicalized by
	// net/http, so header names are case-insensitive.
	Header http.Header

	body     bytes.Buffer
	client   *Client
	respHook func(*Response) error
	sent     bool
}

// Write appends data to the request body, so a Request can be used as the
// destination of an io.Writer pipeline (json.NewEncoder, templates, etc).
func (r *Request) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

// SetBody replaces the request body.
func (r *Request) SetBody(b []byte) {
	r.body.Reset()
	r.body.Write(b)
}

// Body returns the current request body.
func (r *Request) Body() []byte {
	return r.body.Bytes()
}

// SetHeader sets a header, replacing any existing value.
func (r *Request) SetHeader(key, value string) {
	r.Header.Set(key, value)
}

// AddHeader appends a header value.
func (r *Request) AddHeader(key, value string) {
	r.Header.Add(key, value)
}

// GetHeader returns the first value for the given header name.
func (r *Request) GetHeader(key string) string {
	return r.Header.Get(key)
}

// DelHeader removes a header.
func (r *Request) DelHeader(key string) {
	r.Header.Del(key)
}

// SetQuery sets a query parameter on the request URL.
func (r *Request) SetQuery(key, value string) error {
	u, err := neturl.Parse(r.URL)
	if err != nil {
		return NewValidationError("parse url: " + err.Error())
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	r.URL = u.String()
	return nil
}

// OnResponse registers a hook that runs on the final (non-redirect)
// response before status classification. Variants use it to augment the
// response; the base client registers none.
func (r *Request) OnResponse(hook func(*Response) error) {
	r.respHook = hook
}

// Send issues the request, following redirects up to the configured bound,
// and returns the final response. Status codes >= 400 return both the
// response and a classifying *Error; transport failures return only an
// error. Send blocks until the call completes or ctx is done.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	if r.sent {
		return nil, ErrRequestConsumed
	}
	r.sent = true

	if r.client.config.Tracing {
		var span trace.Span
		ctx, span = otel.Tracer("requiem").Start(ctx, "HTTP "+r.Method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.full", r.URL),
			))
		defer span.End()

		resp, err := r.send(ctx)
		if resp != nil {
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		}
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		return resp, err
	}

	return r.send(ctx)
}

func (r *Request) send(ctx context.Context) (*Response, error) {
	r.client.log.Debug("sending request", logger.Fields(
		"method", r.Method,
		"url", r.URL,
		"body_bytes", r.body.Len(),
	))

	// Pre-process; a processor may short-circuit with a synthetic response.
	resp, err := r.client.procs.processRequest(r)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		r.client.log.Debug("request short-circuited by processor")
		return r.finish(resp, false)
	}

	resp, err = r.do(ctx)
	if err != nil {
		r.client.log.Warn("request failed", logger.Fields(
			"method", r.Method,
			"url", r.URL,
			"error", err.Error(),
		))
		if rec := r.client.procs.processError(err); rec != nil {
			return rec, nil
		}
		return nil, err
	}

	return r.finish(resp, true)
}

// finish runs the response hook, post-processing, and status
// classification on a final response.
func (r *Request) finish(resp *Response, postProcess bool) (*Response, error) {
	if r.respHook != nil {
		if err := r.respHook(resp); err != nil {
			return nil, err
		}
	}
	if postProcess {
		if err := r.client.procs.processResponse(resp); err != nil {
			return nil, err
		}
	}

	if herr := ClassifyStatusCode(resp.StatusCode, resp.Body); herr != nil {
		r.client.log.Debug("response was a fault", logger.Fields(
			"status", resp.StatusCode,
			"code", herr.Code.String(),
		))
		if rec := r.client.procs.processError(herr); rec != nil {
			return rec, nil
		}
		return resp, herr
	}

	r.client.log.Debug("received response", logger.Fields(
		"status", resp.StatusCode,
		"body_bytes", len(resp.Body),
	))
	return resp, nil
}

// do issues the HTTP call, chasing redirects manually so the hop bound is
// enforced regardless of transport behavior.
func (r *Request) do(ctx context.Context) (*Response, error) {
	method := r.Method
	target := r.URL
	body := r.body.Bytes()
	header := cloneHeader(r.Header)

	hops := 0
	for {
		var reader io.Reader
		if len(body) > 0 {
			reader = bytes.NewReader(body)
		}
		httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, NewValidationError("create request: " + err.Error())
		}
		for k, vs := range header {
			httpReq.Header[k] = vs
		}

		httpResp, err := r.client.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, NewTimeoutError(err)
			}
			return nil, NewConnectionError(err)
		}
		respBody, err := io.ReadAll(httpResp.Body)
		_ = httpResp.Body.Close()
		if err != nil {
			return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
		}

		if !isRedirect(httpResp.StatusCode) || r.client.config.MaxRedirects < 0 {
			return &Response{
				StatusCode: httpResp.StatusCode,
				Headers:    flattenHeaders(httpResp.Header),
				Body:       respBody,
			}, nil
		}

		location := httpResp.Header.Get("Location")
		if location == "" {
			return nil, NewRedirectError(httpResp.StatusCode)
		}
		if hops >= r.client.config.MaxRedirects {
			return nil, NewRedirectLoopError(r.client.config.MaxRedirects, target)
		}
		hops++

		next, err := httpReq.URL.Parse(location)
		if err != nil {
			return nil, NewValidationError("parse redirect location: " + err.Error())
		}
		target = next.String()

		// 301/302/303 re-issue as GET without the body; 307/308 preserve
		// the method and body.
		if httpResp.StatusCode != http.StatusTemporaryRedirect &&
			httpResp.StatusCode != http.StatusPermanentRedirect &&
			method != http.MethodGet && method != http.MethodHead {
			method = http.MethodGet
			body = nil
			header.Del("Content-Type")
			header.Del("Content-Length")
		}

		r.client.log.Debug("following redirect", logger.Fields(
			"status", httpResp.StatusCode,
			"location", target,
			"hop", hops,
		))
	}
}

// isRedirect reports whether the status code names a followable redirect.
// 300 and 304 carry no mandatory Location and are returned verbatim.
func isRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	}
	return false
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

func cloneHeader(h http.Header) http.Header {
	clone := make(http.Header, len(h))
	for k, vs := range h {
		clone[k] = append([]string(nil), vs...)
	}
	return clone
}
