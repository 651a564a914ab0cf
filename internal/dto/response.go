package dto

import (
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/service"
)

type BookingResponse struct {
	ID                uint                 `json:"id"`
	CatalogItemID     *uint                `json:"catalog_item_id,omitempty"`
	CustomTitle       *string              `json:"custom_title,omitempty"`
	CustomDescription *string              `json:"custom_description,omitempty"`
	MemberID          string               `json:"member_id"`
	WorkerID          *string              `json:"worker_id,omitempty"`
	Location          string               `json:"location"`
	OfferedPriceCents int64                `json:"offered_price_cents"`
	CounterOfferCents *int64               `json:"counter_offer_cents,omitempty"`
	AgreedPriceCents  *int64               `json:"agreed_price_cents,omitempty"`
	ScheduledAt       *time.Time           `json:"scheduled_at,omitempty"`
	Status            models.BookingStatus `json:"status"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

type CompletionResponse struct {
	Booking  BookingResponse  `json:"booking"`
	Payment  *models.Payment  `json:"payment"`
	Earnings *models.Earnings `json:"earnings"`
}

type PaymentResponse struct {
	Booking BookingResponse `json:"booking"`
	Payment *models.Payment `json:"payment"`
}

type EarningsResponse struct {
	Earnings     []models.Earnings `json:"earnings"`
	PendingCents int64             `json:"pending_cents"`
	PaidCents    int64             `json:"paid_cents"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                b.ID,
		CatalogItemID:     b.CatalogItemID,
		CustomTitle:       b.CustomTitle,
		CustomDescription: b.CustomDescription,
		MemberID:          b.MemberID,
		WorkerID:          b.WorkerID,
		Location:          b.Location,
		OfferedPriceCents: b.OfferedPriceCents,
		CounterOfferCents: b.CounterOfferCents,
		AgreedPriceCents:  b.AgreedPriceCents,
		ScheduledAt:       b.ScheduledAt,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}

func ToCompletionResponse(r *service.CompletionResult) CompletionResponse {
	return CompletionResponse{
		Booking:  ToBookingResponse(r.Booking),
		Payment:  r.Payment,
		Earnings: r.Earnings,
	}
}

func ToPaymentResponse(r *service.PaymentResult) PaymentResponse {
	return PaymentResponse{
		Booking: ToBookingResponse(r.Booking),
		Payment: r.Payment,
	}
}

func ToEarningsResponse(s *service.EarningsSummary) EarningsResponse {
	earnings := s.Earnings
	if earnings == nil {
		earnings = []models.Earnings{}
	}
	return EarningsResponse{
		Earnings:     earnings,
		PendingCents: s.PendingCents,
		PaidCents:    s.PaidCents,
	}
}
