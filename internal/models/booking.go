package models

import "time"

type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"
	StatusCounterOffered BookingStatus = "counter_offered"
	StatusAccepted       BookingStatus = "accepted"
	StatusInProgress     BookingStatus = "in_progress"
	StatusCompleted      BookingStatus = "completed"
	StatusPaid           BookingStatus = "paid"
	StatusCancelled      BookingStatus = "cancelled"
)

// HasAgreedPrice reports whether a booking in this status must carry an agreed price.
func (s BookingStatus) HasAgreedPrice() bool {
	switch s {
	case StatusAccepted, StatusInProgress, StatusCompleted, StatusPaid:
		return true
	}
	return false
}

// Open reports whether workers may still pick the booking up.
func (s BookingStatus) Open() bool {
	return s == StatusPending || s == StatusCounterOffered
}

type Booking struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	CatalogItemID     *uint         `gorm:"index" json:"catalog_item_id,omitempty"`
	CustomTitle       *string       `gorm:"type:varchar(200)" json:"custom_title,omitempty"`
	CustomDescription *string       `gorm:"type:text" json:"custom_description,omitempty"`
	MemberID          string        `gorm:"type:varchar(64);not null;index" json:"member_id"`
	WorkerID          *string       `gorm:"type:varchar(64);index" json:"worker_id,omitempty"`
	Location          string        `json:"location"`
	OfferedPriceCents int64         `gorm:"not null" json:"offered_price_cents"`
	CounterOfferCents *int64        `json:"counter_offer_cents,omitempty"`
	AgreedPriceCents  *int64        `json:"agreed_price_cents,omitempty"`
	ScheduledAt       *time.Time    `json:"scheduled_at,omitempty"`
	Status            BookingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// SettlementAmount is the price owed for the booking: the agreed price when
// one exists, the member's offer otherwise.
func (b *Booking) SettlementAmount() int64 {
	if b.AgreedPriceCents != nil {
		return *b.AgreedPriceCents
	}
	return b.OfferedPriceCents
}

func (b *Booking) IsMember(userID string) bool {
	return b.MemberID == userID
}

func (b *Booking) IsWorker(userID string) bool {
	return b.WorkerID != nil && *b.WorkerID == userID
}
