package testkit

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	httpclient "github.com/ucqdev/cuahquick/pkg/http"
)

// MockResponse describes a canned response for an outbound HTTP call.
type MockResponse struct {
	URL    string // prefix match against the request URL
	Method string // empty matches any method
	Status int
	Body   string
	calls  int
}

// MockTransport intercepts requests made through pkg/http's default
// client and answers them from a fixed set of responses. Requests with
// no matching mock get a 502 so tests fail loudly instead of reaching
// the network.
type MockTransport struct {
	mu        sync.Mutex
	responses []*MockResponse
}

// InstallMockHTTP replaces the outbound HTTP transport with a mock for
// the duration of the test.
func InstallMockHTTP(t *testing.T, responses ...*MockResponse) *MockTransport {
	t.Helper()

	mt := &MockTransport{responses: responses}
	prev := httpclient.DefaultClient.Transport
	httpclient.DefaultClient.Transport = mt
	t.Cleanup(func() {
		httpclient.DefaultClient.Transport = prev
	})
	return mt
}

func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mock := range m.responses {
		if mock.Method != "" && !strings.EqualFold(mock.Method, req.Method) {
			continue
		}
		if !strings.HasPrefix(req.URL.String(), mock.URL) {
			continue
		}
		mock.calls++
		status := mock.Status
		if status == 0 {
			status = http.StatusOK
		}
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(bytes.NewBufferString(mock.Body)),
			Request:    req,
		}, nil
	}

	return &http.Response{
		StatusCode: http.StatusBadGateway,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(`{"error":"no mock for ` + req.URL.String() + `"}`)),
		Request:    req,
	}, nil
}

// Calls reports how many requests matched the mock at index i.
func (m *MockTransport) Calls(i int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.responses) {
		return 0
	}
	return m.responses[i].calls
}

// AssertAllCalled fails the test if any registered mock was never hit.
func (m *MockTransport) AssertAllCalled(t *testing.T) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mock := range m.responses {
		if mock.calls == 0 {
			t.Errorf("mock for %s %s was never called", mock.Method, mock.URL)
		}
	}
}
