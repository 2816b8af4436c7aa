// internal/fetch/client_test.go
package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vidproxy/vidproxy/internal/utils"
)

func TestFetchHTMLSuccess(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := NewClient(Options{UserAgent: "test-agent/1.0", RateLimit: 100, RateBurst: 10})
	body, err := c.FetchHTML(context.Background(), srv.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("FetchHTML() error = %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotAccept == "" {
		t.Error("expected a browser-like Accept header")
	}
}

func TestFetchHTMLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(Options{RateLimit: 100, RateBurst: 10})
	_, err := c.FetchHTML(context.Background(), srv.URL+"/videos/gone", 2*time.Second)
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := utils.CodeOf(err); code != utils.ErrCodeUpstreamNotFound {
		t.Fatalf("code = %q, want %q", code, utils.ErrCodeUpstreamNotFound)
	}
}

func TestFetchHTMLServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Options{RateLimit: 100, RateBurst: 10})
	_, err := c.FetchHTML(context.Background(), srv.URL, 2*time.Second)
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := utils.CodeOf(err); code != utils.ErrCodeFetchFailed {
		t.Fatalf("code = %q, want %q", code, utils.ErrCodeFetchFailed)
	}
}

func TestFetchHTMLTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Options{RateLimit: 100, RateBurst: 10})
	_, err := c.FetchHTML(context.Background(), srv.URL, 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if code := utils.CodeOf(err); code != utils.ErrCodeFetchFailed {
		t.Fatalf("code = %q, want %q", code, utils.ErrCodeFetchFailed)
	}
}

func TestFetchHTMLContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Options{RateLimit: 100, RateBurst: 10})
	if _, err := c.FetchHTML(ctx, srv.URL, 2*time.Second); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

func TestFetchHTMLDoesNotRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{RateLimit: 100, RateBurst: 10})
	if _, err := c.FetchHTML(context.Background(), srv.URL, 2*time.Second); err == nil {
		t.Fatal("expected an error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("upstream called %d times, want exactly 1", n)
	}
}
