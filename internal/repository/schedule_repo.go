package repository

import (
	"context"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(ctx context.Context, slot *models.ScheduleSlot) error
	FindUnavailable(ctx context.Context, workerID, date string) ([]models.ScheduleSlot, error)
	ReleaseByBooking(ctx context.Context, workerID string, bookingID uint) (int64, error)
	ListByWorker(ctx context.Context, workerID, fromDate, toDate string) ([]models.ScheduleSlot, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	return translate(r.db.WithContext(ctx).Create(slot).Error)
}

func (r *scheduleRepository) FindUnavailable(ctx context.Context, workerID, date string) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND date = ? AND is_available = ?", workerID, date, false).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, translate(err)
}

// ReleaseByBooking frees the slot the booking holds for the worker and returns
// how many were released.
func (r *scheduleRepository) ReleaseByBooking(ctx context.Context, workerID string, bookingID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ScheduleSlot{}).
		Where("worker_id = ? AND booking_id = ?", workerID, bookingID).
		Updates(map[string]any{"is_available": true, "booking_id": nil})
	return res.RowsAffected, translate(res.Error)
}

// ListByWorker returns slots with fromDate <= date <= toDate.
func (r *scheduleRepository) ListByWorker(ctx context.Context, workerID, fromDate, toDate string) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND date BETWEEN ? AND ?", workerID, fromDate, toDate).
		Order("date ASC, start_time ASC").
		Find(&slots).Error
	return slots, translate(err)
}
