package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/model"
)

type EventPublisher interface {
	PublishTourCreated(tour *model.Tour) error
	PublishTourViewed(tourID uuid.UUID, views int) error
	PublishMediaUploaded(userID uuid.UUID, url, resourceType string) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type TourCreatedEvent struct {
	EventType string    `json:"event_type"`
	TourID    uuid.UUID `json:"tour_id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

type TourViewedEvent struct {
	EventType string    `json:"event_type"`
	TourID    uuid.UUID `json:"tour_id"`
	Views     int       `json:"views"`
	ViewedAt  time.Time `json:"viewed_at"`
}

type MediaUploadedEvent struct {
	EventType    string    `json:"event_type"`
	UserID       uuid.UUID `json:"user_id"`
	URL          string    `json:"url"`
	ResourceType string    `json:"resource_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func (p *NatsPublisher) PublishTourCreated(tour *model.Tour) error {
	event := TourCreatedEvent{
		EventType: "tour.created",
		TourID:    tour.ID,
		UserID:    tour.UserID,
		Title:     tour.Title,
		IsPublic:  tour.IsPublic,
		CreatedAt: tour.CreatedAt,
	}

	return p.publish("tour.created", event)
}

func (p *NatsPublisher) PublishTourViewed(tourID uuid.UUID, views int) error {
	event := TourViewedEvent{
		EventType: "tour.viewed",
		TourID:    tourID,
		Views:     views,
		ViewedAt:  time.Now(),
	}

	return p.publish("tour.viewed", event)
}

func (p *NatsPublisher) PublishMediaUploaded(userID uuid.UUID, url, resourceType string) error {
	event := MediaUploadedEvent{
		EventType:    "media.uploaded",
		UserID:       userID,
		URL:          url,
		ResourceType: resourceType,
		UploadedAt:   time.Now(),
	}

	return p.publish("media.uploaded", event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", "subject", subject, "error", err)
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Debug("Published event to NATS", "subject", subject)

	return nil
}
