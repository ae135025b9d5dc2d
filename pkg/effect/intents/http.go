package intents

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/intentkit/effect/pkg/effect"
	"github.com/intentkit/effect/pkg/effect/future"
)

// HTTPRequest is an intent to make one HTTP request.
// Its result is an HTTPResponse.
type HTTPRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// DescribeIntent implements effect.Describer.
// The body is elided; only its size is reported.
func (r HTTPRequest) DescribeIntent() any {
	return map[string]any{
		"intent":     "http_request",
		"method":     r.Method,
		"url":        r.URL,
		"body_bytes": len(r.Body),
	}
}

// HTTPResponse is the result of a performed HTTPRequest.
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// NewHTTPHandler returns an HTTPRequest handler backed by the given resty
// client. The request runs on its own goroutine and the handler returns a
// future, so the chain is handed off for the duration of the round trip.
func NewHTTPHandler(client *resty.Client) effect.Handler {
	return func(ctx effect.Context, intent any) (any, error) {
		req := intent.(HTTPRequest)
		return future.Go(func() (any, error) {
			r := client.R().SetContext(ctx)
			if len(req.Headers) > 0 {
				r.SetHeaders(req.Headers)
			}
			if len(req.Body) > 0 {
				r.SetBody(req.Body)
			}

			resp, err := r.Execute(req.Method, req.URL)
			if err != nil {
				return nil, err
			}
			return HTTPResponse{
				StatusCode: resp.StatusCode(),
				Headers:    resp.Header(),
				Body:       resp.Body(),
			}, nil
		}), nil
	}
}
