package feed

import (
	"time"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/shared/paging"
)

const (
	ViewList = "list"
	ViewMap  = "map"
)

// Item is a feed entry: a POI plus the display name of its owner.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Tag         string    `json:"tag"`
	Reactions   int       `json:"reactions"`
	Content     []string  `json:"content"`
	User        string    `json:"user"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Filters struct {
	ViewType string
	Tags     []string
	Page     int
	PageSize int
	MinLat   string
	MaxLat   string
	MinLon   string
	MaxLon   string
}

type Result struct {
	Items      []Item       `json:"feed"`
	Pagination *paging.Page `json:"pagination,omitempty"`
}
