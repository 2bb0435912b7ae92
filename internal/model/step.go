package model

import (
	"time"

	"github.com/google/uuid"
)

type Step struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TourID    uuid.UUID `db:"tour_id" json:"tourId"`
	Title     string    `db:"title" json:"title"`
	Body      *string   `db:"body" json:"body,omitempty"`
	ImageURL  *string   `db:"image_url" json:"imageUrl,omitempty"`
	Order     int       `db:"step_order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
