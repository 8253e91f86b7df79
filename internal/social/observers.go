package social

import (
	"context"
	"encoding/json"
)

// Broadcaster fans a payload out to live listeners of a key.
type Broadcaster interface {
	Broadcast(key string, payload []byte)
}

// Publisher writes a keyed event to a message broker.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// BroadcastObserver pushes new posts to the author's live feed.
type BroadcastObserver struct {
	Hub Broadcaster
}

func (o BroadcastObserver) PostShared(_ context.Context, post Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return err
	}
	o.Hub.Broadcast(post.AuthorID, payload)
	return nil
}

// PostSharedEvent is the message emitted for every stored post.
type PostSharedEvent struct {
	Type string `json:"type"`
	Post Post   `json:"post"`
}

// EventObserver publishes a post.shared event keyed by author.
type EventObserver struct {
	Publisher Publisher
}

func (o EventObserver) PostShared(ctx context.Context, post Post) error {
	payload, err := json.Marshal(PostSharedEvent{Type: "post.shared", Post: post})
	if err != nil {
		return err
	}
	return o.Publisher.Publish(ctx, post.AuthorID, payload)
}
