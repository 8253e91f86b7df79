package social

import (
	"context"

	"github.com/DanielaGutierrez38/Fitness-App/internal/db"
)

// PostSink persists posts. Inserts carry no dedup key, so a retried share may store twice.
type PostSink interface {
	InsertPost(ctx context.Context, post Post) error
}

// Service is the postgres-backed post store and follow graph.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) InsertPost(ctx context.Context, post Post) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO posts (id, user_id, posted_at, content)
		VALUES ($1,$2,$3,$4)
	`, post.ID, post.AuthorID, post.Timestamp, post.Content)
	return err
}

func (s *Service) Follow(ctx context.Context, followerID, followingID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_follows (follower_id, following_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, followerID, followingID)
	return err
}

// Posts returns the user's own posts, newest first.
func (s *Service) Posts(ctx context.Context, userID string) ([]Post, error) {
	return s.queryPosts(ctx, `
		SELECT id, user_id, to_char(posted_at, 'YYYY-MM-DD HH24:MI:SS'), content
		FROM posts
		WHERE user_id=$1
		ORDER BY posted_at DESC
	`, userID)
}

// Feed returns the user's posts and those of everyone they follow, newest first.
func (s *Service) Feed(ctx context.Context, userID string) ([]Post, error) {
	return s.queryPosts(ctx, `
		SELECT id, user_id, to_char(posted_at, 'YYYY-MM-DD HH24:MI:SS'), content
		FROM posts
		WHERE user_id=$1
		   OR user_id IN (SELECT following_id FROM user_follows WHERE follower_id=$1)
		ORDER BY posted_at DESC
	`, userID)
}

func (s *Service) queryPosts(ctx context.Context, sql, userID string) ([]Post, error) {
	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Timestamp, &p.Content); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
