// Package jsclient provides a JSON-aware variant of the requiem client.
//
// Requests it constructs carry an Accept: application/json header by
// default, and the final response body is decoded, best effort, into
// Response.Obj. A body that is not valid JSON is not an error: Obj stays
// nil and the raw body remains available.
//
//	type EchoClient struct {
//	    *jsclient.Client
//	    Echo func(ctx context.Context, obj any) (any, error)
//	}
//
//	func NewEchoClient(baseURL string) (*EchoClient, error) {
//	    c, err := jsclient.New(requiem.Config{BaseURL: baseURL})
//	    if err != nil {
//	        return nil, err
//	    }
//	    ec := &EchoClient{Client: c}
//	    ec.Echo = requiem.RESTMethod(c, http.MethodPost, "/echo",
//	        func(ctx context.Context, req *requiem.Request, obj any) (any, error) {
//	            if err := jsclient.AttachObj(req, obj); err != nil {
//	                return nil, err
//	            }
//	            resp, err := req.Send(ctx)
//	            if err != nil {
//	                return nil, err
//	            }
//	            return resp.Obj, nil
//	        })
//	    return ec, nil
//	}
package jsclient
