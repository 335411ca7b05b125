package interaction

import (
	"context"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/apperr"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/db"
	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Create records a reaction or comment on a POI. Reactions toggle: a second
// reaction from the same user removes the first. The interaction row and the
// denormalized reaction counter are written in one transaction.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Result, error) {
	if req.InteractionType != TypeReaction && req.InteractionType != TypeComment {
		return Result{}, apperr.Invalidf("invalid interactionType: must be 'reaction' or 'comment'")
	}
	if req.InteractionType == TypeComment && req.Content == "" {
		return Result{}, apperr.Invalidf("content is required for comments")
	}

	if err := s.userExists(ctx, req.UserID); err != nil {
		return Result{}, err
	}
	if err := s.poiExists(ctx, req.PoiID); err != nil {
		return Result{}, err
	}

	if req.InteractionType == TypeComment {
		return s.createComment(ctx, req)
	}
	return s.toggleReaction(ctx, req)
}

func (s *Service) createComment(ctx context.Context, req CreateRequest) (Result, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO poi_interactions (id, user_id, poi_id, interaction_type, content)
		VALUES ($1,$2,$3,'comment',$4)
	`, id, req.UserID, req.PoiID, req.Content)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}
	return Result{
		Status:        StatusCreated,
		InteractionID: id,
		Message:       "interaction created successfully",
	}, nil
}

func (s *Service) toggleReaction(ctx context.Context, req CreateRequest) (Result, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		DELETE FROM poi_interactions
		WHERE user_id = $1 AND poi_id = $2 AND interaction_type = 'reaction'
	`, req.UserID, req.PoiID)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}

	if tag.RowsAffected() > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE pois SET reactions = GREATEST(reactions - 1, 0) WHERE id = $1
		`, req.PoiID)
		if err != nil {
			return Result{}, apperr.Internal(err)
		}
		if err := tx.Commit(ctx); err != nil {
			return Result{}, apperr.Internal(err)
		}
		return Result{Status: StatusRemoved, Message: "reaction removed successfully"}, nil
	}

	id := uuid.NewString()
	_, err = tx.Exec(ctx, `
		INSERT INTO poi_interactions (id, user_id, poi_id, interaction_type)
		VALUES ($1,$2,$3,'reaction')
	`, id, req.UserID, req.PoiID)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE pois SET reactions = reactions + 1 WHERE id = $1
	`, req.PoiID)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Result{}, apperr.Internal(err)
	}
	return Result{
		Status:        StatusAdded,
		InteractionID: id,
		Message:       "reaction added successfully",
	}, nil
}

// List returns a POI's interactions, newest first.
func (s *Service) List(ctx context.Context, poiID string) ([]Interaction, error) {
	if err := s.poiExists(ctx, poiID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, poi_id, interaction_type, content, created_at, updated_at
		FROM poi_interactions
		WHERE poi_id = $1
		ORDER BY created_at DESC
	`, poiID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	interactions := []Interaction{}
	for rows.Next() {
		var in Interaction
		if err := rows.Scan(&in.ID, &in.UserID, &in.PoiID, &in.InteractionType, &in.Content, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, apperr.Internal(err)
		}
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}
	return interactions, nil
}

func (s *Service) userExists(ctx context.Context, userID string) error {
	if uuid.Validate(userID) != nil {
		return apperr.NotFoundf("user with ID %s does not exist", userID)
	}
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return apperr.Internal(err)
	}
	if !exists {
		return apperr.NotFoundf("user with ID %s does not exist", userID)
	}
	return nil
}

func (s *Service) poiExists(ctx context.Context, poiID string) error {
	if uuid.Validate(poiID) != nil {
		return apperr.NotFoundf("poi %s does not exist", poiID)
	}
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pois WHERE id = $1 AND NOT is_deleted)`, poiID).Scan(&exists)
	if err != nil {
		return apperr.Internal(err)
	}
	if !exists {
		return apperr.NotFoundf("poi %s does not exist", poiID)
	}
	return nil
}
