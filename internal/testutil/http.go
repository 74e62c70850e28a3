package testutil

import (
	"io"
	"net/http"
	"strings"
	"sync/atomic"
)

// RoundTripperFunc adapts a function into an http.RoundTripper.
type RoundTripperFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// TrackingBody is a response body that records whether it was closed.
type TrackingBody struct {
	io.Reader
	closed atomic.Bool
}

// NewTrackingBody wraps body in a TrackingBody.
func NewTrackingBody(body string) *TrackingBody {
	return &TrackingBody{Reader: strings.NewReader(body)}
}

func (b *TrackingBody) Close() error {
	b.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (b *TrackingBody) Closed() bool {
	return b.closed.Load()
}

// XMLResponse builds an XML response with the given status and body.
func XMLResponse(status int, body string) *http.Response {
	return XMLResponseWithBody(status, io.NopCloser(strings.NewReader(body)))
}

// XMLResponseWithBody builds an XML response around a caller-provided body.
func XMLResponseWithBody(status int, body io.ReadCloser) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/xml; charset=utf-8")
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       body,
	}
}
