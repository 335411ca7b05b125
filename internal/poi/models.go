package poi

import (
	"time"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/shared/paging"
)

type POI struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Title       string    `json:"title"`
	Tag         string    `json:"tag"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	Reactions   int       `json:"reactions"`
	Content     []string  `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ContentFile is an inline upload: a filename and base64 payload.
type ContentFile struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

type CreateRequest struct {
	UserID      string        `json:"userId"`
	Latitude    *float64      `json:"latitude"`
	Longitude   *float64      `json:"longitude"`
	Title       string        `json:"title"`
	Tag         string        `json:"tag"`
	Description string        `json:"description"`
	IsPublic    *bool         `json:"isPublic"`
	Content     []ContentFile `json:"content"`
}

type UpdateRequest struct {
	IsPublic        *bool `json:"isPublic"`
	ReactionsChange *int  `json:"reactionsChange"`
}

type UpdateResult struct {
	IsPublic  bool `json:"isPublic"`
	Reactions int  `json:"reactions"`
}

const (
	ViewList = "list"
	ViewMap  = "map"
)

// QueryFilters carries raw query-string values; bounds stay strings so the
// service can distinguish omitted from unparsable.
type QueryFilters struct {
	Tags     []string
	View     string
	Page     int
	PageSize int
	MinLat   string
	MaxLat   string
	MinLon   string
	MaxLon   string
}

type QueryResult struct {
	Items      []POI        `json:"pois"`
	Pagination *paging.Page `json:"pagination,omitempty"`
}
