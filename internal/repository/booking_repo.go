package repository

import (
	"context"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error
	ListByMember(ctx context.Context, memberID string, limit int) ([]models.Booking, error)
	ListByWorker(ctx context.Context, workerID string, limit int) ([]models.Booking, error)
	ListOpen(ctx context.Context, limit int) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Create(booking).Error)
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the current transaction.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (r *bookingRepository) Save(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Save(booking).Error)
}

func (r *bookingRepository) ListByMember(ctx context.Context, memberID string, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, translate(err)
}

func (r *bookingRepository) ListByWorker(ctx context.Context, workerID string, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, translate(err)
}

// ListOpen returns bookings still waiting for a worker: pending or counter-offered.
func (r *bookingRepository) ListOpen(ctx context.Context, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status IN ?", []models.BookingStatus{models.StatusPending, models.StatusCounterOffered}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, translate(err)
}
