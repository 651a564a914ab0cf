package service

import (
	"context"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"go.uber.org/zap"
)

// EventPublisher delivers booking lifecycle events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type BookingEvent struct {
	BookingID  uint                 `json:"booking_id"`
	Status     models.BookingStatus `json:"status"`
	MemberID   string               `json:"member_id"`
	WorkerID   *string              `json:"worker_id,omitempty"`
	ActorID    string               `json:"actor_id"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// publish runs after commit and is best effort: a broker outage never undoes
// a transition.
func (s *bookingService) publish(ctx context.Context, routingKey string, b *models.Booking, actor models.Actor) {
	if s.publisher == nil {
		return
	}
	evt := BookingEvent{
		BookingID:  b.ID,
		Status:     b.Status,
		MemberID:   b.MemberID,
		WorkerID:   b.WorkerID,
		ActorID:    actor.ID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, routingKey, evt); err != nil {
		s.logger.Warn("publish booking event failed",
			zap.String("routing_key", routingKey),
			zap.Uint("booking_id", b.ID),
			zap.Error(err))
	}
}
