package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.Send:
		return string(msg)
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
	return ""
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("user-1")
	defer hub.Unregister(client)
	other := hub.Register("user-2")
	defer hub.Unregister(other)

	hub.Broadcast("user-1", []byte("hello"))

	if msg := receive(t, client); msg != "hello" {
		t.Fatalf("unexpected message %q", msg)
	}
	select {
	case <-other.Send:
		t.Fatalf("post leaked into another user's feed")
	default:
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("abc")
	if ch != "feed:abc:posts" {
		t.Fatalf("unexpected channel %q", ch)
	}
	if userIDFromChannel(ch) != "abc" {
		t.Fatalf("unexpected user id")
	}
	for _, bad := range []string{"bad", "feed::posts", "tracking:abc:broadcast"} {
		if userIDFromChannel(bad) != "" {
			t.Fatalf("expected empty user id for %q", bad)
		}
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("user-2")
	if hub.Listeners("user-2") != 1 {
		t.Fatalf("expected one listener")
	}
	hub.Unregister(client)
	if _, ok := <-client.Send; ok {
		t.Fatalf("expected channel closed")
	}
	if hub.Listeners("user-2") != 0 {
		t.Fatalf("expected no listeners")
	}
}

func TestHubRedisBroadcastAndSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	defer hub.Close()
	ws := hub.Register("user-redis")
	defer hub.Unregister(ws)

	hub.Broadcast("user-redis", []byte("ping"))
	if msg := receive(t, ws); msg != "ping" {
		t.Fatalf("unexpected message %q", msg)
	}

	// a post published by another instance reaches local listeners
	if err := client.Publish(context.Background(), "feed:user-redis:posts", "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}
	if msg := receive(t, ws); msg != "pong" {
		t.Fatalf("unexpected message from redis %q", msg)
	}
}

func TestHubRedisUnavailable(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	server.Close()
	defer client.Close()

	hub := NewHub(client)
	clientNode := hub.Register("user-bad")
	defer hub.Unregister(clientNode)

	hub.Broadcast("user-bad", []byte("ping"))
	if msg := receive(t, clientNode); msg != "ping" {
		t.Fatalf("expected local delivery, got %q", msg)
	}
}
