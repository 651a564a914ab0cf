package service

import (
	"context"
	"errors"

	"github.com/Eursukkul/helper-marketplace/internal/lifecycle"
	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/repository"
	"go.uber.org/zap"
)

// step describes one transition. validate checks caller input once role and
// ownership are known to be fine; apply performs the dependent writes and any
// field changes. Both run inside the transaction that holds the booking lock.
type step struct {
	tr       lifecycle.Transition
	validate func(b *models.Booking) error
	apply    func(ctx context.Context, tx repository.Store, b *models.Booking) error
}

// wrongState is the rejection each transition reports when the booking's
// status does not permit it.
var wrongState = map[lifecycle.Transition]*Error{
	lifecycle.Accept:         ErrAlreadyProcessed,
	lifecycle.CounterOffer:   ErrAlreadyProcessed,
	lifecycle.AcceptCounter:  ErrNoCounterOffer,
	lifecycle.Start:          ErrNotAccepted,
	lifecycle.Complete:       ErrNotReadyToComplete,
	lifecycle.ConfirmPayment: ErrNotPayable,
	lifecycle.Cancel:         ErrNotCancellable,
}

var eventKeys = map[lifecycle.Transition]string{
	lifecycle.Accept:         "booking.accepted",
	lifecycle.CounterOffer:   "booking.counter_offered",
	lifecycle.AcceptCounter:  "booking.counter_accepted",
	lifecycle.Start:          "booking.started",
	lifecycle.Complete:       "booking.completed",
	lifecycle.ConfirmPayment: "booking.paid",
	lifecycle.Cancel:         "booking.cancelled",
}

// transition runs a step as a single read-modify-write: lock the booking row,
// check guards, apply, persist. Nothing is written unless every guard passes.
func (s *bookingService) transition(ctx context.Context, actor models.Actor, bookingID uint, st step) (*models.Booking, error) {
	var (
		result *models.Booking
		from   models.BookingStatus
	)

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return storageError("load booking", err)
		}

		if err := authorize(b, actor, st.tr); err != nil {
			return err
		}
		if st.validate != nil {
			if err := st.validate(b); err != nil {
				return err
			}
		}

		to, err := lifecycle.Next(b.Status, actor.Role, st.tr)
		if err != nil {
			return wrongState[st.tr]
		}

		if st.apply != nil {
			if err := st.apply(ctx, tx, b); err != nil {
				return err
			}
		}

		from = b.Status
		b.Status = to
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return storageError("save booking", err)
		}
		result = b
		return nil
	})
	if err != nil {
		err = asServiceError("booking transition", err)
		fields := []zap.Field{
			zap.Uint("booking_id", bookingID),
			zap.String("transition", string(st.tr)),
			zap.String("actor_id", actor.ID),
			zap.Error(err),
		}
		if KindOf(err) == KindStorage {
			s.logger.Error("booking transition failed", fields...)
		} else {
			s.logger.Debug("booking transition rejected", fields...)
		}
		return nil, err
	}

	s.logger.Info("booking transition",
		zap.Uint("booking_id", result.ID),
		zap.String("transition", string(st.tr)),
		zap.String("actor_id", actor.ID),
		zap.String("actor_role", string(actor.Role)),
		zap.String("from", string(from)),
		zap.String("to", string(result.Status)))
	s.publish(ctx, eventKeys[st.tr], result, actor)
	return result, nil
}

// authorize checks that the caller's role may perform the transition at all
// and, where the transition belongs to one party of the booking, that the
// caller is that party.
func authorize(b *models.Booking, actor models.Actor, tr lifecycle.Transition) error {
	if !lifecycle.PermittedBy(actor.Role, tr) {
		switch tr {
		case lifecycle.Accept, lifecycle.CounterOffer:
			return ErrWorkersOnly
		default:
			return ErrNotAuthorized
		}
	}

	switch tr {
	case lifecycle.AcceptCounter, lifecycle.ConfirmPayment:
		if !b.IsMember(actor.ID) {
			return ErrNotAuthorized
		}
	case lifecycle.Start, lifecycle.Complete:
		if !b.IsWorker(actor.ID) {
			return ErrNotAuthorized
		}
	case lifecycle.Cancel:
		if actor.Role == models.RoleMember && !b.IsMember(actor.ID) {
			return ErrNotAuthorized
		}
		if actor.Role == models.RoleWorker && !b.IsWorker(actor.ID) {
			return ErrNotAuthorized
		}
	}
	return nil
}
