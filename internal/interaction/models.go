package interaction

import "time"

const (
	TypeReaction = "reaction"
	TypeComment  = "comment"
)

type Interaction struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	PoiID           string    `json:"poiId"`
	InteractionType string    `json:"interactionType"`
	Content         *string   `json:"content"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	UserID          string `json:"userId"`
	PoiID           string `json:"poiId"`
	InteractionType string `json:"interactionType"`
	Content         string `json:"content"`
}

// Result reports what the create call did: reactions toggle on and off,
// comments always append.
type Result struct {
	Status        string `json:"status"`
	InteractionID string `json:"interactionId,omitempty"`
	Message       string `json:"message"`
}

const (
	StatusAdded   = "added"
	StatusRemoved = "removed"
	StatusCreated = "created"
)
