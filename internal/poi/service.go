package poi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/apperr"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/db"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/shared/geo"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/shared/paging"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ContentStore stages uploaded blobs before the POI row is written and
// discards them when that write fails.
type ContentStore interface {
	Stage(ctx context.Context, userID, filename string, data []byte) (storage.StagedObject, error)
	Discard(ctx context.Context, objs []storage.StagedObject)
}

type Service struct {
	db      db.Querier
	content ContentStore
}

func NewService(db db.Querier, content ContentStore) *Service {
	return &Service{db: db, content: content}
}

const poiColumns = `id, user_id, latitude, longitude, title, tag, description, is_public, reactions, content, created_at, updated_at`

// Create validates the payload, stages content uploads, then writes the POI
// in a single insert carrying the final URLs. Staged blobs are removed if
// the insert fails, so no half-written POI survives.
func (s *Service) Create(ctx context.Context, req CreateRequest) (POI, error) {
	if err := validateCreate(req); err != nil {
		return POI{}, err
	}
	if err := s.userExists(ctx, req.UserID); err != nil {
		return POI{}, err
	}

	staged := make([]storage.StagedObject, 0, len(req.Content))
	urls := make([]string, 0, len(req.Content))
	for _, f := range req.Content {
		data, err := base64.StdEncoding.DecodeString(f.Data)
		if err != nil {
			s.content.Discard(ctx, staged)
			return POI{}, apperr.Invalidf("content file %q is not valid base64", f.Filename)
		}
		obj, err := s.content.Stage(ctx, req.UserID, f.Filename, data)
		if err != nil {
			s.content.Discard(ctx, staged)
			return POI{}, apperr.Internal(fmt.Errorf("stage content: %w", err))
		}
		staged = append(staged, obj)
		urls = append(urls, obj.URL)
	}

	p := POI{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Latitude:    geo.Round6(*req.Latitude),
		Longitude:   geo.Round6(*req.Longitude),
		Title:       req.Title,
		Tag:         req.Tag,
		Description: req.Description,
		IsPublic:    true,
		Content:     urls,
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO pois (id, user_id, latitude, longitude, title, tag, description, is_public, content)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.Latitude, p.Longitude, p.Title, p.Tag, p.Description, p.IsPublic, p.Content)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		s.content.Discard(ctx, staged)
		return POI{}, apperr.Internal(err)
	}
	return p, nil
}

// Update applies an isPublic replace and/or a signed reactions delta. The
// delta and its floor of zero are applied in SQL, so concurrent updates
// never lose increments or drive the counter negative.
func (s *Service) Update(ctx context.Context, poiID string, req UpdateRequest) (UpdateResult, error) {
	if uuid.Validate(poiID) != nil {
		return UpdateResult{}, apperr.NotFoundf("poi %s does not exist", poiID)
	}
	row := s.db.QueryRow(ctx, `
		UPDATE pois SET
			is_public = COALESCE($2, is_public),
			reactions = GREATEST(reactions + COALESCE($3, 0), 0),
			updated_at = now()
		WHERE id = $1 AND NOT is_deleted
		RETURNING is_public, reactions
	`, poiID, req.IsPublic, req.ReactionsChange)

	var res UpdateResult
	if err := row.Scan(&res.IsPublic, &res.Reactions); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UpdateResult{}, apperr.NotFoundf("poi %s does not exist", poiID)
		}
		return UpdateResult{}, apperr.Internal(err)
	}
	return res, nil
}

// SoftDelete hides the POI from every query path except Recover.
func (s *Service) SoftDelete(ctx context.Context, poiID string) error {
	if uuid.Validate(poiID) != nil {
		return apperr.NotFoundf("poi %s does not exist", poiID)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE pois SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
	`, poiID)
	if err != nil {
		return apperr.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("poi %s does not exist", poiID)
	}
	return nil
}

func (s *Service) Recover(ctx context.Context, poiID string) error {
	if uuid.Validate(poiID) != nil {
		return apperr.NotFoundf("poi %s cannot be recovered", poiID)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE pois SET is_deleted = false, updated_at = now()
		WHERE id = $1 AND is_deleted
	`, poiID)
	if err != nil {
		return apperr.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("poi %s cannot be recovered", poiID)
	}
	return nil
}

// Query returns the owner's POIs as a paginated list or a bounding-box map
// view. Soft-deleted rows are always excluded.
func (s *Service) Query(ctx context.Context, ownerID string, f QueryFilters) (QueryResult, error) {
	if uuid.Validate(ownerID) != nil {
		return QueryResult{}, apperr.NotFoundf("user with ID %s does not exist", ownerID)
	}
	switch f.View {
	case ViewList:
		return s.queryList(ctx, ownerID, f)
	case ViewMap:
		return s.queryMap(ctx, ownerID, f)
	default:
		return QueryResult{}, apperr.Invalidf("invalid view %q: allowed values are 'list' or 'map'", f.View)
	}
}

func (s *Service) queryList(ctx context.Context, ownerID string, f QueryFilters) (QueryResult, error) {
	where := `WHERE user_id = $1 AND NOT is_deleted`
	args := []any{ownerID}
	if len(f.Tags) > 0 {
		where += ` AND tag = ANY($2)`
		args = append(args, f.Tags)
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM pois `+where, args...).Scan(&total); err != nil {
		return QueryResult{}, apperr.Internal(err)
	}

	page := paging.Resolve(f.Page, f.PageSize, total)
	sql := fmt.Sprintf(`
		SELECT %s FROM pois %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, poiColumns, where, len(args)+1, len(args)+2)
	args = append(args, page.PageSize, page.Offset())

	items, err := s.queryPois(ctx, sql, args...)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Items: items, Pagination: &page}, nil
}

func (s *Service) queryMap(ctx context.Context, ownerID string, f QueryFilters) (QueryResult, error) {
	bounds, err := geo.ParseBounds(f.MinLat, f.MaxLat, f.MinLon, f.MaxLon)
	if err != nil {
		return QueryResult{}, err
	}

	where := `WHERE user_id = $1 AND NOT is_deleted
		AND latitude BETWEEN $2 AND $3
		AND longitude BETWEEN $4 AND $5`
	args := []any{ownerID, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon}
	if len(f.Tags) > 0 {
		where += ` AND tag = ANY($6)`
		args = append(args, f.Tags)
	}

	items, err := s.queryPois(ctx, fmt.Sprintf(`
		SELECT %s FROM pois %s
		ORDER BY created_at DESC
	`, poiColumns, where), args...)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Items: items}, nil
}

func (s *Service) queryPois(ctx context.Context, sql string, args ...any) ([]POI, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	pois := []POI{}
	for rows.Next() {
		var p POI
		if err := rows.Scan(&p.ID, &p.UserID, &p.Latitude, &p.Longitude, &p.Title, &p.Tag,
			&p.Description, &p.IsPublic, &p.Reactions, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, apperr.Internal(err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}
	return pois, nil
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

func validateCreate(req CreateRequest) error {
	switch {
	case req.UserID == "":
		return apperr.Invalidf("missing required field: userId")
	case req.Latitude == nil:
		return apperr.Invalidf("missing required field: latitude")
	case req.Longitude == nil:
		return apperr.Invalidf("missing required field: longitude")
	case req.Title == "":
		return apperr.Invalidf("missing required field: title")
	case req.Tag == "":
		return apperr.Invalidf("missing required field: tag")
	case req.Description == "":
		return apperr.Invalidf("missing required field: description")
	}
	return nil
}
