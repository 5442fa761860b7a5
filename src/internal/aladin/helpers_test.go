package aladin

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"aladin/src/internal/config"
	"aladin/src/internal/plugin"
	"aladin/src/internal/schema"
)

// fakeDoer implements httpx.Doer for deterministic responses and records
// every request it sees.
type fakeDoer struct {
	mu      sync.Mutex
	handler func(req *http.Request) (*http.Response, error)
	seen    []*http.Request
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.seen = append(f.seen, req)
	f.mu.Unlock()
	return f.handler(req)
}

func (f *fakeDoer) requests(pathPart string) []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*http.Request
	for _, r := range f.seen {
		if strings.Contains(r.URL.Path, pathPart) {
			out = append(out, r)
		}
	}
	return out
}

func jsonResp(code int, v any) *http.Response {
	b, _ := json.Marshal(v)
	return &http.Response{StatusCode: code, Body: io.NopCloser(bytes.NewReader(b)), Header: http.Header{"Content-Type": {"application/json"}}}
}

func textResp(code int, s string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(s)), Header: http.Header{"Content-Type": {"text/plain"}}}
}

func bytesResp(code int, b []byte) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(bytes.NewReader(b)), Header: make(http.Header)}
}

var errUnreachable = errors.New("dial tcp: connection refused")

func unreachable(*http.Request) (*http.Response, error) { return nil, errUnreachable }

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func testConfig(variant string) config.Config {
	return config.Config{
		APIKey:     "ttb-test",
		Variant:    variant,
		BaseURL:    "http://catalog.test/ttb/api",
		Timeout:    2 * time.Second,
		MaxResults: 10,
	}
}

// abortAfter sets its flag once n records were put.
type abortAfter struct {
	plugin.SliceQueue[schema.Record]
	flag *plugin.AbortFlag
	n    int
}

func (q *abortAfter) Put(r schema.Record) {
	q.SliceQueue.Put(r)
	if len(q.Items()) >= q.n {
		q.flag.Set()
	}
}
