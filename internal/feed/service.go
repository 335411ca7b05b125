package feed

import (
	"context"
	"fmt"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/apperr"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/db"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/shared/geo"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/shared/paging"
	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

const itemColumns = `p.id, p.title, p.description, p.latitude, p.longitude, p.tag, p.reactions, p.content,
		COALESCE(u.username, 'Unknown User'), p.created_at, p.updated_at`

// feedWhere scopes the feed to public, non-deleted POIs authored by users
// the requester follows.
const feedWhere = `WHERE p.user_id IN (SELECT following_id FROM user_follows WHERE follower_id = $1)
		AND p.is_public AND NOT p.is_deleted`

// GetFeed builds the personalized feed: POIs from followed users, newest
// first, as a paginated list or a bounding-box map view.
func (s *Service) GetFeed(ctx context.Context, userID string, f Filters) (Result, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return Result{}, err
	}

	switch f.ViewType {
	case ViewList:
		return s.feedList(ctx, userID, f)
	case ViewMap:
		return s.feedMap(ctx, userID, f)
	default:
		return Result{}, apperr.Invalidf("invalid viewType %q: allowed values are 'list' or 'map'", f.ViewType)
	}
}

func (s *Service) feedList(ctx context.Context, userID string, f Filters) (Result, error) {
	where := feedWhere
	args := []any{userID}
	if len(f.Tags) > 0 {
		where += ` AND p.tag = ANY($2)`
		args = append(args, f.Tags)
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM pois p `+where, args...).Scan(&total); err != nil {
		return Result{}, apperr.Internal(err)
	}

	page := paging.Resolve(f.Page, f.PageSize, total)
	sql := fmt.Sprintf(`
		SELECT %s
		FROM pois p
		LEFT JOIN users u ON u.id = p.user_id
		%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, itemColumns, where, len(args)+1, len(args)+2)
	args = append(args, page.PageSize, page.Offset())

	items, err := s.queryItems(ctx, sql, args...)
	if err != nil {
		return Result{}, err
	}
	return Result{Items: items, Pagination: &page}, nil
}

func (s *Service) feedMap(ctx context.Context, userID string, f Filters) (Result, error) {
	bounds, err := geo.ParseBounds(f.MinLat, f.MaxLat, f.MinLon, f.MaxLon)
	if err != nil {
		return Result{}, err
	}

	where := feedWhere + `
		AND p.latitude BETWEEN $2 AND $3
		AND p.longitude BETWEEN $4 AND $5`
	args := []any{userID, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon}
	if len(f.Tags) > 0 {
		where += ` AND p.tag = ANY($6)`
		args = append(args, f.Tags)
	}

	items, err := s.queryItems(ctx, fmt.Sprintf(`
		SELECT %s
		FROM pois p
		LEFT JOIN users u ON u.id = p.user_id
		%s
		ORDER BY p.created_at DESC
	`, itemColumns, where), args...)
	if err != nil {
		return Result{}, err
	}
	return Result{Items: items}, nil
}

func (s *Service) queryItems(ctx context.Context, sql string, args ...any) ([]Item, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Latitude, &it.Longitude,
			&it.Tag, &it.Reactions, &it.Content, &it.User, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, apperr.Internal(err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}
	return items, nil
}

func (s *Service) userExists(ctx context.Context, userID string) error {
	// Non-uuid ids would make the query fail before the EXISTS check runs.
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
