package follow

import (
	"context"
	"errors"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/apperr"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Toggle removes the follow edge when it exists and creates it otherwise.
// A user can never follow themselves.
func (s *Service) Toggle(ctx context.Context, followerID, followingID string) (ToggleResult, error) {
	if followerID == followingID {
		return ToggleResult{}, apperr.Invalidf("users cannot follow themselves")
	}

	follower, err := s.username(ctx, followerID)
	if err != nil {
		return ToggleResult{}, err
	}
	following, err := s.username(ctx, followingID)
	if err != nil {
		return ToggleResult{}, err
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM user_follows
		WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	if err != nil {
		return ToggleResult{}, apperr.Internal(err)
	}
	if tag.RowsAffected() > 0 {
		return ToggleResult{
			Following: false,
			Message:   follower + " has unfollowed " + following + ".",
		}, nil
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO user_follows (follower_id, following_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, followerID, followingID)
	if err != nil {
		return ToggleResult{}, apperr.Internal(err)
	}
	return ToggleResult{
		Following: true,
		Message:   follower + " is now following " + following + ".",
	}, nil
}

func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) error {
	if uuid.Validate(followerID) != nil || uuid.Validate(followingID) != nil {
		return apperr.NotFoundf("follow relationship does not exist")
	}
	tag, err := s.db.Exec(ctx, `
		DELETE FROM user_follows
		WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	if err != nil {
		return apperr.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("follow relationship does not exist")
	}
	return nil
}

// Followers lists the users following userID, oldest edge first.
func (s *Service) Followers(ctx context.Context, userID string) ([]UserRef, error) {
	if _, err := s.username(ctx, userID); err != nil {
		return nil, err
	}
	return s.edgeUsers(ctx, `
		SELECT u.id, u.username, u.email
		FROM user_follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at
	`, userID)
}

// Followings lists the users that userID follows, oldest edge first.
func (s *Service) Followings(ctx context.Context, userID string) ([]UserRef, error) {
	if _, err := s.username(ctx, userID); err != nil {
		return nil, err
	}
	return s.edgeUsers(ctx, `
		SELECT u.id, u.username, u.email
		FROM user_follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at
	`, userID)
}

func (s *Service) edgeUsers(ctx context.Context, sql, userID string) ([]UserRef, error) {
	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	users := []UserRef{}
	for rows.Next() {
		var u UserRef
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, apperr.Internal(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

func (s *Service) username(ctx context.Context, userID string) (string, error) {
	// Non-uuid ids would make the lookup fail instead of missing.
	if uuid.Validate(userID) != nil {
		return "", apperr.NotFoundf("user with ID %s does not exist", userID)
	}
	var name string
	err := s.db.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, userID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFoundf("user with ID %s does not exist", userID)
		}
		return "", apperr.Internal(err)
	}
	return name, nil
}
