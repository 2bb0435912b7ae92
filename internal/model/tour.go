package model

import (
	"time"

	"github.com/google/uuid"
)

type Tour struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"userId"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	IsPublic    bool      `db:"is_public" json:"isPublic"`
	Views       int       `db:"views" json:"views"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	Steps       []Step    `db:"-" json:"steps"`
}

// TourSummary is the trimmed projection used by the dashboard aggregates.
type TourSummary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Views     int       `db:"views" json:"views"`
	IsPublic  bool      `db:"is_public" json:"isPublic"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type DashboardStats struct {
	TotalTours     int          `json:"totalTours"`
	PublicTours    int          `json:"publicTours"`
	PrivateTours   int          `json:"privateTours"`
	TotalViews     int          `json:"totalViews"`
	MostViewedTour *TourSummary `json:"mostViewedTour"`
	LatestTour     *TourSummary `json:"latestTour"`
}
