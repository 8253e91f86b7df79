package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielaGutierrez38/Fitness-App/internal/db"
	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"

	"github.com/jackc/pgx/v5"
)

type Profile struct {
	UserID       string   `json:"user_id"`
	FullName     string   `json:"full_name"`
	Username     string   `json:"username"`
	DateOfBirth  string   `json:"date_of_birth"`
	ProfileImage string   `json:"profile_image"`
	Friends      []string `json:"friends"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Get loads a user and the ids of everyone they follow.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return Profile{}, fmt.Errorf("%w: user_id required", apperr.ErrInvalidArgument)
	}

	p := Profile{UserID: userID}
	err := s.db.QueryRow(ctx, `
		SELECT name, username, COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), ''), COALESCE(image_url, '')
		FROM users
		WHERE id=$1
	`, userID).Scan(&p.FullName, &p.Username, &p.DateOfBirth, &p.ProfileImage)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load user %s: %w: %w", userID, apperr.ErrDataUnavailable, err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT following_id
		FROM user_follows
		WHERE follower_id=$1
		ORDER BY following_id
	`, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("load friends of %s: %w: %w", userID, apperr.ErrDataUnavailable, err)
	}
	defer rows.Close()

	p.Friends = []string{}
	for rows.Next() {
		var friend string
		if err := rows.Scan(&friend); err != nil {
			return Profile{}, err
		}
		p.Friends = append(p.Friends, friend)
	}
	return p, rows.Err()
}
