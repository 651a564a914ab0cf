package repository

import (
	"context"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"gorm.io/gorm"
)

// SettlementRepository only appends; payment and earnings rows are never updated here.
type SettlementRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	CreateEarnings(ctx context.Context, earnings *models.Earnings) error
	PaymentsByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error)
	EarningsByWorker(ctx context.Context, workerID string) ([]models.Earnings, error)
}

type settlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return translate(r.db.WithContext(ctx).Create(payment).Error)
}

func (r *settlementRepository) CreateEarnings(ctx context.Context, earnings *models.Earnings) error {
	return translate(r.db.WithContext(ctx).Create(earnings).Error)
}

func (r *settlementRepository) PaymentsByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&payments).Error
	return payments, translate(err)
}

func (r *settlementRepository) EarningsByWorker(ctx context.Context, workerID string) ([]models.Earnings, error) {
	var earnings []models.Earnings
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC, id DESC").
		Find(&earnings).Error
	return earnings, translate(err)
}
