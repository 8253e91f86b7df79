package social

import "encoding/json"

// Post is a social-feed entry. Timestamp is already rendered in the feed's timezone.
type Post struct {
	ID        string `json:"post_id"`
	AuthorID  string `json:"author_id"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

type Follow struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}

// ShareRequest is the body of POST /social/share. Value is kept as a JSON
// number so 8000 renders as "8000", not "8000.0".
type ShareRequest struct {
	UserID   string       `json:"user_id"`
	StatType string       `json:"stat_type"`
	Value    *json.Number `json:"value"`
}

const (
	ShareStatusSuccess = "success"
	ShareStatusError   = "error"
)

// ShareResult is what the caller of a share gets back, on success or failure.
type ShareResult struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	PostContent string `json:"post_content"`
}
