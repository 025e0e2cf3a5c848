package requiem

import (
	"context"
	"net/url"
	"strings"
)

// RequestOption mutates a freshly constructed request before the endpoint
// handler sees it.
type RequestOption func(*Request)

// WithHeaders sets headers on the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		for k, v := range headers {
			r.Header.Set(k, v)
		}
	}
}

// WithQuery sets query parameters on the request URL.
func WithQuery(params map[string]string) RequestOption {
	return func(r *Request) {
		for k, v := range params {
			_ = r.SetQuery(k, v)
		}
	}
}

// RESTMethod wraps an endpoint handler so that each invocation receives a
// freshly constructed request for the given method and path. The handler
// populates the request (headers, query, body), sends it, and returns
// whatever it likes; the wrapper returns the handler's result unchanged.
// Two sequential calls never share request state.
//
//	getUser := requiem.RESTMethod(c, http.MethodGet, "/users/{id}",
//	    func(ctx context.Context, req *requiem.Request, id string) (*requiem.Response, error) {
//	        req.URL = requiem.ExpandPath(req.URL, map[string]string{"id": id})
//	        return req.Send(ctx)
//	    })
func RESTMethod[A, R any](c Requester, method, path string, fn func(ctx context.Context, req *Request, arg A) (R, error), opts ...RequestOption) func(context.Context, A) (R, error) {
	return func(ctx context.Context, arg A) (R, error) {
		var zero R
		req, err := c.NewRequest(method, path)
		if err != nil {
			return zero, err
		}
		for _, opt := range opts {
			opt(req)
		}
		return fn(ctx, req, arg)
	}
}

// RESTMethod0 is RESTMethod for endpoints that take no argument beyond the
// request itself.
func RESTMethod0[R any](c Requester, method, path string, fn func(ctx context.Context, req *Request) (R, error), opts ...RequestOption) func(context.Context) (R, error) {
	wrapped := RESTMethod(c, method, path, func(ctx context.Context, req *Request, _ struct{}) (R, error) {
		return fn(ctx, req)
	}, opts...)
	return func(ctx context.Context) (R, error) {
		return wrapped(ctx, struct{}{})
	}
}

// ExpandPath substitutes {name} placeholders in a path or URL template
// with path-escaped parameter values. Unknown placeholders are left
// untouched.
func ExpandPath(tmpl string, params map[string]string) string {
	if len(params) == 0 {
		return tmpl
	}
	expanded := tmpl
	for k, v := range params {
		expanded = strings.ReplaceAll(expanded, "{"+k+"}", url.PathEscape(v))
	}
	return expanded
}
