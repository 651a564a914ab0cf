package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type EarningsStatus string

const (
	EarningsPending   EarningsStatus = "pending"
	EarningsPaid      EarningsStatus = "paid"
	EarningsCancelled EarningsStatus = "cancelled"
)

// Payment and Earnings rows are append-only.
type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	BookingID     uint          `gorm:"not null;index" json:"booking_id"`
	AmountCents   int64         `gorm:"not null" json:"amount_cents"`
	Provider      string        `gorm:"type:varchar(32);not null" json:"provider"`
	TransactionID *string       `gorm:"type:varchar(128)" json:"transaction_id,omitempty"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	RecordedBy    string        `gorm:"type:varchar(64)" json:"recorded_by"`
	CreatedAt     time.Time     `json:"created_at"`
}

type Earnings struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorkerID    string         `gorm:"type:varchar(64);not null;index" json:"worker_id"`
	BookingID   uint           `gorm:"not null;index" json:"booking_id"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	Status      EarningsStatus `gorm:"type:varchar(20);not null" json:"status"`
	PayoutDate  *time.Time     `json:"payout_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (Earnings) TableName() string { return "earnings" }
