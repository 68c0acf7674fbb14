package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func robotsServer(t *testing.T, policy string, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Write([]byte(policy))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAllowed_RespectsDisallow(t *testing.T) {
	srv := robotsServer(t, "User-agent: *\nDisallow: /private/\n", nil)
	checker := NewRobotsChecker("ivywatch/1.0", 5*time.Second)
	ctx := context.Background()

	if checker.Allowed(ctx, srv.URL+"/private/fees") {
		t.Errorf("expected /private/fees to be disallowed")
	}
	if !checker.Allowed(ctx, srv.URL+"/public/fees") {
		t.Errorf("expected /public/fees to be allowed")
	}
}

func TestAllowed_AgentSpecificGroup(t *testing.T) {
	policy := "User-agent: ivywatch\nDisallow: /\n\nUser-agent: *\nDisallow:\n"
	srv := robotsServer(t, policy, nil)
	ctx := context.Background()

	ours := NewRobotsChecker("ivywatch/1.0 (student project; respectful crawler)", 5*time.Second)
	if ours.Allowed(ctx, srv.URL+"/fees") {
		t.Errorf("expected the named agent group to apply")
	}

	other := NewRobotsChecker("otherbot/2.0", 5*time.Second)
	if !other.Allowed(ctx, srv.URL+"/fees") {
		t.Errorf("expected other agents to fall through to the open group")
	}
}

func TestAllowed_CachesPerHost(t *testing.T) {
	var hits int32
	srv := robotsServer(t, "User-agent: *\nDisallow:\n", &hits)
	checker := NewRobotsChecker("ivywatch/1.0", 5*time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if !checker.Allowed(ctx, srv.URL+"/page") {
			t.Fatalf("unexpected disallow on pass %d", i)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("expected 1 robots.txt fetch, got %d", got)
	}

	checker.Clear()
	checker.Allowed(ctx, srv.URL+"/page")
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("expected a refetch after Clear, got %d", got)
	}
}

func TestAllowed_UnreachableRobotsAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	checker := NewRobotsChecker("ivywatch/1.0", time.Second)
	if !checker.Allowed(context.Background(), srv.URL+"/fees") {
		t.Errorf("expected allow when robots.txt is unreachable")
	}
}

func TestProductToken(t *testing.T) {
	cases := map[string]string{
		"ivywatch/1.0 (student project; respectful crawler)": "ivywatch",
		"plainname": "plainname",
		"":          "",
	}
	for ua, want := range cases {
		if got := productToken(ua); got != want {
			t.Errorf("productToken(%q) = %q, want %q", ua, got, want)
		}
	}
}
