// Package requiem provides building blocks for REST API clients: a base
// Client holding connection configuration, a Request type that endpoint
// methods populate before sending, centralized redirect following and
// error classification, and an endpoint wrapper that injects a fresh
// Request into each call.
//
// A concrete API client embeds or wraps *Client and declares its endpoints
// with RESTMethod:
//
//	type HelloClient struct {
//	    *requiem.Client
//	    Hello func(ctx context.Context) (*requiem.Response, error)
//	}
//
//	func NewHelloClient(baseURL string) (*HelloClient, error) {
//	    c, err := requiem.New(requiem.Config{BaseURL: baseURL})
//	    if err != nil {
//	        return nil, err
//	    }
//	    hc := &HelloClient{Client: c}
//	    hc.Hello = requiem.RESTMethod0(c, http.MethodGet, "/hello",
//	        func(ctx context.Context, req *requiem.Request) (*requiem.Response, error) {
//	            return req.Send(ctx)
//	        })
//	    return hc, nil
//	}
//
// Send blocks until a final response is obtained, following 3xx redirects
// up to a bounded number of hops. Status codes >= 400 are surfaced as a
// typed *Error carrying the status code and response body; transport
// failures propagate without retries.
//
// The jsclient subpackage provides a JSON-aware variant that best-effort
// decodes response bodies into Response.Obj.
package requiem
