package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DanielaGutierrez38/Fitness-App/internal/config"
	"github.com/DanielaGutierrez38/Fitness-App/internal/events"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(config.Config{ServerPort: ":0", RecentLimit: 5}, nil, nil, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "go_goroutines") {
		t.Fatalf("expected prometheus exposition")
	}
}

func TestRoutesWithoutDatabase(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		path string
		want int
	}{
		{"/workouts/user1", http.StatusServiceUnavailable},
		{"/workouts/user1/dashboard", http.StatusServiceUnavailable},
		{"/advice/user1", http.StatusServiceUnavailable},
		{"/profiles/user1", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		resp, err := s.App.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.want, resp.StatusCode)
		}
	}
}

func TestShareWithoutDatabase(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/social/share", bytes.NewReader([]byte(`{"user_id":"user1","stat_type":"steps","value":10}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestCloseReleasesPublisherWhenHubFails(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	publisher := events.NewKafkaPublisher([]string{"127.0.0.1:1"}, "social.posts.shared", "post.shared")
	s := NewServer(config.Config{ServerPort: ":0"}, nil, rdb, publisher)

	// a second close of the feed subscription fails
	if err := s.Stream.Close(); err != nil {
		t.Fatalf("first hub close: %v", err)
	}
	if err := s.Close(); err == nil {
		t.Fatalf("expected hub close error")
	}

	err := publisher.Publish(context.Background(), "user1", []byte("{}"))
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected closed publisher, got %v", err)
	}
}
