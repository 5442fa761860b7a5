package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

type fakeDoer struct {
	status int
	body   string
	err    error
	seen   []*http.Request
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.seen = append(f.seen, req)
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{StatusCode: f.status, Body: io.NopCloser(strings.NewReader(f.body)), Header: make(http.Header)}, nil
}

func TestSetUA(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if hv := req.Header.Get("User-Agent"); hv != "" {
		t.Fatalf("precondition: UA not empty: %q", hv)
	}
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != ChromeUA {
		t.Fatalf("SetUA: want %q, got %q", ChromeUA, hv)
	}
	// idempotent
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != ChromeUA {
		t.Fatalf("SetUA idempotent: want %q, got %q", ChromeUA, hv)
	}
}

func TestFetcherGet_EncodesParams(t *testing.T) {
	d := &fakeDoer{status: 200, body: "ok"}
	f := NewFetcher(d, 0, "")
	q := url.Values{}
	q.Set("Query", "선자 이민진")
	body, err := f.Get(context.Background(), "http://example.com/api", q, time.Second)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("body: %q", body)
	}
	if len(d.seen) != 1 {
		t.Fatalf("want exactly one request, got %d", len(d.seen))
	}
	got := d.seen[0]
	if got.URL.Query().Get("Query") != "선자 이민진" {
		t.Fatalf("query not encoded: %s", got.URL.String())
	}
	if got.Header.Get("User-Agent") != ChromeUA {
		t.Fatalf("default UA missing")
	}
	if _, ok := got.Context().Deadline(); !ok {
		t.Fatalf("timeout not applied to request context")
	}
}

func TestFetcherGet_Non2xx(t *testing.T) {
	f := NewFetcher(&fakeDoer{status: 503, body: "down"}, 0, "bot/1.0")
	_, err := f.Get(context.Background(), "http://example.com", nil, 0)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("want ErrStatus, got %v", err)
	}
}

func TestFetcherGet_TransportError(t *testing.T) {
	f := NewFetcher(&fakeDoer{err: errors.New("dial tcp: refused")}, 0, "")
	if _, err := f.Get(context.Background(), "http://example.com", nil, 0); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestFetcherGet_CustomUA(t *testing.T) {
	d := &fakeDoer{status: 200}
	f := NewFetcher(d, 5, "aladin-test/1.0")
	if _, err := f.Get(context.Background(), "http://example.com", nil, 0); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ua := d.seen[0].Header.Get("User-Agent"); ua != "aladin-test/1.0" {
		t.Fatalf("UA: %q", ua)
	}
}
