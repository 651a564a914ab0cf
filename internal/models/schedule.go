package models

import "time"

// ScheduleSlot is a worker's committed or free time window on one calendar day.
// Date is YYYY-MM-DD and StartTime/EndTime are HH:MM in the schedule timezone.
type ScheduleSlot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkerID    string    `gorm:"type:varchar(64);not null;index:idx_schedule_worker_date" json:"worker_id"`
	Date        string    `gorm:"type:varchar(10);not null;index:idx_schedule_worker_date" json:"date"`
	StartTime   string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`
	BookingID   *uint     `gorm:"index" json:"booking_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Overlaps reports whether the slot's time range intersects [start, end).
func (s *ScheduleSlot) Overlaps(start, end string) bool {
	return s.StartTime < end && start < s.EndTime
}
