package requiem

// Processors let applications pre-process requests and post-process
// responses and errors without touching endpoint methods. A processor
// implements any subset of the interfaces below and is registered with
// Client.Use; methods it does not implement are skipped.

// RequestProcessor pre-processes requests before they are sent. The
// request may be modified in place. Returning a non-nil response
// short-circuits the send: the response is post-processed through the
// processors registered before this one and returned to the caller.
type RequestProcessor interface {
	ProcessRequest(req *Request) (*Response, error)
}

// ResponseProcessor post-processes final responses. The response may be
// modified in place.
type ResponseProcessor interface {
	ProcessResponse(resp *Response) error
}

// ErrorProcessor post-processes errors raised during a send. Returning a
// non-nil response halts error propagation and substitutes the response,
// which is post-processed through the remaining processors in the stack.
type ErrorProcessor interface {
	ProcessError(err error) *Response
}

// Stack is an ordered collection of processors. Requests flow through it
// in registration order, responses and errors in reverse.
type Stack struct {
	procs []any
}

// Push appends processors to the stack.
func (s *Stack) Push(procs ...any) {
	s.procs = append(s.procs, procs...)
}

// Len returns the number of registered processors.
func (s *Stack) Len() int {
	return len(s.procs)
}

// processRequest runs request processors in order. A short-circuit
// response is post-processed through the processors preceding the one
// that produced it.
func (s *Stack) processRequest(req *Request) (*Response, error) {
	for i, p := range s.procs {
		rp, ok := p.(RequestProcessor)
		if !ok {
			continue
		}
		resp, err := rp.ProcessRequest(req)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			if err := s.processResponseFrom(resp, i-1); err != nil {
				return nil, err
			}
			return resp, nil
		}
	}
	return nil, nil
}

// processResponse runs response processors in reverse order.
func (s *Stack) processResponse(resp *Response) error {
	return s.processResponseFrom(resp, len(s.procs)-1)
}

func (s *Stack) processResponseFrom(resp *Response, start int) error {
	for i := start; i >= 0; i-- {
		rp, ok := s.procs[i].(ResponseProcessor)
		if !ok {
			continue
		}
		if err := rp.ProcessResponse(resp); err != nil {
			return err
		}
	}
	return nil
}

// processError runs error processors in reverse order. The first
// processor to return a response preempts error propagation; the
// response is post-processed through the processors before it.
func (s *Stack) processError(err error) *Response {
	for i := len(s.procs) - 1; i >= 0; i-- {
		ep, ok := s.procs[i].(ErrorProcessor)
		if !ok {
			continue
		}
		if resp := ep.ProcessError(err); resp != nil {
			_ = s.processResponseFrom(resp, i-1)
			return resp
		}
	}
	return nil
}
