package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/lifecycle"
	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/repository"
	"go.uber.org/zap"
)

const (
	mineLimit      = 500
	availableLimit = 100
)

type CreateBookingInput struct {
	CatalogItemID     *uint
	CustomTitle       string
	CustomDescription string
	Location          string
	OfferedPriceCents *int64
	ScheduledAt       *time.Time
}

type ConfirmPaymentInput struct {
	TransactionID string
	AmountCents   int64
	Provider      string
}

type CompletionResult struct {
	Booking  *models.Booking
	Payment  *models.Payment
	Earnings *models.Earnings
}

type PaymentResult struct {
	Booking *models.Booking
	Payment *models.Payment
}

type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, in CreateBookingInput) (*models.Booking, error)
	Accept(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error)
	CounterOffer(ctx context.Context, actor models.Actor, bookingID uint, amountCents int64) (*models.Booking, error)
	AcceptCounter(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error)
	Start(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error)
	Complete(ctx context.Context, actor models.Actor, bookingID uint) (*CompletionResult, error)
	ConfirmPayment(ctx context.Context, actor models.Actor, bookingID uint, in ConfirmPaymentInput) (*PaymentResult, error)
	Cancel(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error)
	ListMine(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	ListAvailable(ctx context.Context, actor models.Actor) ([]models.Booking, error)
	ListPayments(ctx context.Context, actor models.Actor, bookingID uint) ([]models.Payment, error)
}

type bookingService struct {
	store     repository.Store
	ledger    *ScheduleLedger
	settle    SettlementRecorder
	publisher EventPublisher
	logger    *zap.Logger
}

// NewBookingService wires the booking state machine. publisher may be nil.
func NewBookingService(store repository.Store, ledger *ScheduleLedger, publisher EventPublisher, logger *zap.Logger) BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bookingService{
		store:     store,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor models.Actor, in CreateBookingInput) (*models.Booking, error) {
	if actor.Role != models.RoleMember {
		return nil, ErrMembersOnly
	}

	title := strings.TrimSpace(in.CustomTitle)
	switch {
	case in.CatalogItemID == nil && title == "":
		return nil, ErrServiceOrCustomRequired
	case in.CatalogItemID != nil && title != "":
		return nil, ErrServiceAndCustom
	}
	if in.OfferedPriceCents != nil && *in.OfferedPriceCents < 0 {
		return nil, ErrInvalidPrice
	}

	booking := &models.Booking{
		MemberID:    actor.ID,
		Location:    in.Location,
		ScheduledAt: in.ScheduledAt,
		Status:      models.StatusPending,
	}
	if in.OfferedPriceCents != nil {
		booking.OfferedPriceCents = *in.OfferedPriceCents
	}

	if in.CatalogItemID != nil {
		ownerID, price, err := s.resolveCatalog(ctx, *in.CatalogItemID)
		if err != nil {
			return nil, err
		}
		booking.CatalogItemID = in.CatalogItemID
		booking.WorkerID = &ownerID
		if in.OfferedPriceCents == nil {
			booking.OfferedPriceCents = price
		}
	} else {
		booking.CustomTitle = &title
		if d := strings.TrimSpace(in.CustomDescription); d != "" {
			booking.CustomDescription = &d
		}
	}

	if err := s.store.Bookings().Create(ctx, booking); err != nil {
		s.logger.Error("create booking failed", zap.String("member_id", actor.ID), zap.Error(err))
		return nil, storageError("create booking", err)
	}

	s.logger.Info("booking created",
		zap.Uint("booking_id", booking.ID),
		zap.String("member_id", actor.ID),
		zap.Bool("catalog", booking.CatalogItemID != nil))
	s.publish(ctx, "booking.created", booking, actor)
	return booking, nil
}

// resolveCatalog is the catalog lookup: the owning worker and list price of an item.
func (s *bookingService) resolveCatalog(ctx context.Context, catalogID uint) (string, int64, error) {
	item, err := s.store.Catalog().FindByID(ctx, catalogID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", 0, ErrCatalogItemNotFound
		}
		return "", 0, storageError("resolve catalog item", err)
	}
	return item.OwnerID, item.PriceCents, nil
}

func (s *bookingService) Accept(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, step{
		tr: lifecycle.Accept,
		apply: func(ctx context.Context, tx repository.Store, b *models.Booking) error {
			if err := s.checkWorkerReady(ctx, tx, actor.ID); err != nil {
				return err
			}

			var window SlotWindow
			if b.ScheduledAt != nil {
				window = s.ledger.Window(*b.ScheduledAt)
				conflict, err := s.ledger.HasConflict(ctx, tx.Schedules(), actor.ID, window)
				if err != nil {
					return err
				}
				if conflict {
					return ErrScheduleConflict
				}
			}

			workerID := actor.ID
			agreed := b.OfferedPriceCents
			b.WorkerID = &workerID
			b.AgreedPriceCents = &agreed
			b.CounterOfferCents = nil

			if b.ScheduledAt != nil {
				if _, err := s.ledger.Reserve(ctx, tx.Schedules(), actor.ID, window, b.ID); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// checkWorkerReady enforces the onboarding guards of a direct accept. The
// profile row stays locked until the transaction ends.
func (s *bookingService) checkWorkerReady(ctx context.Context, tx repository.Store, workerID string) error {
	profile, err := tx.Workers().FindByIDForUpdate(ctx, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileIncomplete
		}
		return storageError("load worker profile", err)
	}
	if !profile.ProfileCompleted {
		return ErrProfileIncomplete
	}
	if !profile.Verified {
		return ErrAccountNotVerified
	}
	return nil
}

func (s *bookingService) CounterOffer(ctx context.Context, actor models.Actor, bookingID uint, amountCents int64) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, step{
		tr: lifecycle.CounterOffer,
		validate: func(*models.Booking) error {
			if amountCents <= 0 {
				return ErrInvalidCounterOffer
			}
			return nil
		},
		apply: func(_ context.Context, _ repository.Store, b *models.Booking) error {
			workerID := actor.ID
			amount := amountCents
			b.WorkerID = &workerID
			b.CounterOfferCents = &amount
			return nil
		},
	})
}

func (s *bookingService) AcceptCounter(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, step{
		tr: lifecycle.AcceptCounter,
		apply: func(_ context.Context, _ repository.Store, b *models.Booking) error {
			if b.CounterOfferCents == nil {
				return ErrNoCounterOffer
			}
			agreed := *b.CounterOfferCents
			b.AgreedPriceCents = &agreed
			return nil
		},
	})
}

func (s *bookingService) Start(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, step{tr: lifecycle.Start})
}

// Complete moves the booking to completed, records its settlement and frees
// the worker's slot in one transaction.
func (s *bookingService) Complete(ctx context.Context, actor models.Actor, bookingID uint) (*CompletionResult, error) {
	result := &CompletionResult{}
	booking, err := s.transition(ctx, actor, bookingID, step{
		tr: lifecycle.Complete,
		apply: func(ctx context.Context, tx repository.Store, b *models.Booking) error {
			payment, earnings, err := s.settle.RecordCompletion(ctx, tx.Settlements(), b, actor.ID)
			if err != nil {
				return err
			}
			result.Payment = payment
			result.Earnings = earnings

			if b.ScheduledAt != nil {
				return s.ledger.Release(ctx, tx.Schedules(), actor.ID, b.ID)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	result.Booking = booking
	return result, nil
}

func (s *bookingService) ConfirmPayment(ctx context.Context, actor models.Actor, bookingID uint, in ConfirmPaymentInput) (*PaymentResult, error) {
	result := &PaymentResult{}
	booking, err := s.transition(ctx, actor, bookingID, step{
		tr: lifecycle.ConfirmPayment,
		validate: func(*models.Booking) error {
			if in.AmountCents < 0 {
				return ErrInvalidAmount
			}
			return nil
		},
		apply: func(ctx context.Context, tx repository.Store, b *models.Booking) error {
			var txID *string
			if id := strings.TrimSpace(in.TransactionID); id != "" {
				txID = &id
			}
			payment, err := s.settle.RecordPaymentConfirmation(ctx, tx.Settlements(), b, in.AmountCents, in.Provider, txID, actor.ID)
			if err != nil {
				return err
			}
			result.Payment = payment

			// Paying before completion ends the booking, so the slot must not
			// stay held.
			if b.Status != models.StatusCompleted && b.ScheduledAt != nil && b.WorkerID != nil {
				return s.ledger.Release(ctx, tx.Schedules(), *b.WorkerID, b.ID)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	result.Booking = booking
	return result, nil
}

func (s *bookingService) Cancel(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, step{
		tr: lifecycle.Cancel,
		apply: func(ctx context.Context, tx repository.Store, b *models.Booking) error {
			if b.Status == models.StatusAccepted && b.ScheduledAt != nil && b.WorkerID != nil {
				if err := s.ledger.Release(ctx, tx.Schedules(), *b.WorkerID, b.ID); err != nil {
					return err
				}
			}
			b.AgreedPriceCents = nil
			return nil
		},
	})
}

func (s *bookingService) GetBooking(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error) {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canView(booking, actor) {
		return nil, ErrNotAuthorized
	}
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	var (
		bookings []models.Booking
		err      error
	)
	if actor.Role == models.RoleMember {
		bookings, err = s.store.Bookings().ListByMember(ctx, actor.ID, mineLimit)
	} else {
		bookings, err = s.store.Bookings().ListByWorker(ctx, actor.ID, mineLimit)
	}
	if err != nil {
		return nil, storageError("list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListAvailable(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	if actor.Role != models.RoleWorker {
		return nil, ErrWorkersOnly
	}
	bookings, err := s.store.Bookings().ListOpen(ctx, availableLimit)
	if err != nil {
		return nil, storageError("list available bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListPayments(ctx context.Context, actor models.Actor, bookingID uint) ([]models.Payment, error) {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsMember(actor.ID) && !booking.IsWorker(actor.ID) {
		return nil, ErrNotAuthorized
	}
	payments, err := s.store.Settlements().PaymentsByBooking(ctx, bookingID)
	if err != nil {
		return nil, storageError("list payments", err)
	}
	return payments, nil
}

func (s *bookingService) load(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.store.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, storageError("load booking", err)
	}
	return booking, nil
}

// canView lets the parties of a booking see it, and any worker see it while
// it is still open for offers.
func canView(b *models.Booking, actor models.Actor) bool {
	if b.IsMember(actor.ID) || b.IsWorker(actor.ID) {
		return true
	}
	return actor.Role == models.RoleWorker && b.Status.Open()
}
