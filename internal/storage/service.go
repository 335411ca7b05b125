package storage

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/db"
	"github.com/google/uuid"
)

// StagedObject is an uploaded blob that has not yet been attached to a POI.
type StagedObject struct {
	ID  string
	Key string
	URL string
}

type Service struct {
	db    db.Querier
	store ObjectStore
}

func NewService(db db.Querier, store ObjectStore) *Service {
	return &Service{db: db, store: store}
}

// Stage uploads the payload and records an audit row. The caller attaches
// the returned URL to a POI, or discards the object if that write fails.
func (s *Service) Stage(ctx context.Context, userID, filename string, data []byte) (StagedObject, error) {
	if s.store == nil {
		return StagedObject{}, errors.New("object store is not configured")
	}
	obj := StagedObject{
		ID:  uuid.NewString(),
		Key: userID + "/" + uuid.NewString() + "-" + filename,
	}

	url, err := s.store.Put(ctx, obj.Key, data, http.DetectContentType(data))
	if err != nil {
		return StagedObject{}, err
	}
	obj.URL = url

	_, err = s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, object_key, url, kind)
		VALUES ($1,$2,$3,$4,'poi-content')
	`, obj.ID, userID, obj.Key, obj.URL)
	if err != nil {
		if rmErr := s.store.Remove(ctx, obj.Key); rmErr != nil {
			log.Printf("remove staged object %s: %v", obj.Key, rmErr)
		}
		return StagedObject{}, err
	}
	return obj, nil
}

// Discard removes staged blobs and their audit rows, best effort.
func (s *Service) Discard(ctx context.Context, objs []StagedObject) {
	if s.store == nil {
		return
	}
	for _, obj := range objs {
		if err := s.store.Remove(ctx, obj.Key); err != nil {
			log.Printf("discard object %s: %v", obj.Key, err)
		}
		if _, err := s.db.Exec(ctx, `DELETE FROM storage_objects WHERE id=$1`, obj.ID); err != nil {
			log.Printf("discard object row %s: %v", obj.ID, err)
		}
	}
}
