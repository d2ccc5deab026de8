package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// HeaderKeyRequestID request id header key
	HeaderKeyRequestID = "X-Request-Id"
)

// ResponseError non 2xx response
type ResponseError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, string(e.Body))
}

// New resty client for endpoint
func New(endpoint string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(endpoint).
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(timeout)
}

// Request new resty request bound to ctx
func Request(ctx context.Context, client *resty.Client) *resty.Request {
	return client.R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, client *resty.Client, requestID string) *resty.Request {
	return Request(ctx, client).SetHeader(HeaderKeyRequestID, requestID)
}

// ParseResponse decode the data field of a {"data": ...} body into obj.
// Non 2xx responses come back as *ResponseError.
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return &ResponseError{
			StatusCode: r.StatusCode(),
			Status:     r.Status(),
			Body:       r.Body(),
		}
	}

	if obj == nil {
		return nil
	}

	var body struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(r.Body(), &body); err != nil {
		return err
	}

	if len(body.Data) == 0 {
		return nil
	}

	return json.Unmarshal(body.Data, obj)
}
