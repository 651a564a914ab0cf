package dto

import "time"

type CreateBookingRequest struct {
	CatalogItemID     *uint      `json:"catalog_item_id" validate:"omitempty,gt=0"`
	CustomTitle       string     `json:"custom_title" validate:"max=200"`
	CustomDescription string     `json:"custom_description" validate:"max=2000"`
	Location          string     `json:"location" validate:"max=500"`
	OfferedPriceCents *int64     `json:"offered_price_cents"`
	ScheduledAt       *time.Time `json:"scheduled_at"`
}

// CounterOfferRequest leaves the amount check to the service so a
// non-positive offer reports invalid_counter_offer.
type CounterOfferRequest struct {
	CounterOfferCents int64 `json:"counter_offer_cents"`
}

type ConfirmPaymentRequest struct {
	PaymentID   string `json:"payment_id" validate:"max=128"`
	AmountCents int64  `json:"amount_cents"`
	Provider    string `json:"provider" validate:"omitempty,max=32,alphanum"`
}
