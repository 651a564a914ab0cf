package service

import (
	"context"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/repository"
)

const (
	completionProvider   = "stripe"
	confirmationProvider = "razorpay"
)

// SettlementRecorder appends payment and earnings rows. It never reads prior
// settlement rows; the booking row lock held by the caller is what keeps each
// transition from recording twice.
type SettlementRecorder struct{}

// RecordCompletion writes the paid Payment and the pending Earnings owed for a
// completed booking, both for the booking's settlement amount.
func (SettlementRecorder) RecordCompletion(ctx context.Context, repo repository.SettlementRepository, b *models.Booking, workerID string) (*models.Payment, *models.Earnings, error) {
	amount := b.SettlementAmount()

	payment := &models.Payment{
		BookingID:   b.ID,
		AmountCents: amount,
		Provider:    completionProvider,
		Status:      models.PaymentPaid,
		RecordedBy:  workerID,
	}
	if err := repo.CreatePayment(ctx, payment); err != nil {
		return nil, nil, storageError("record completion payment", err)
	}

	earnings := &models.Earnings{
		WorkerID:    workerID,
		BookingID:   b.ID,
		AmountCents: amount,
		Status:      models.EarningsPending,
	}
	if err := repo.CreateEarnings(ctx, earnings); err != nil {
		return nil, nil, storageError("record earnings", err)
	}
	return payment, earnings, nil
}

// RecordPaymentConfirmation writes the Payment a member reports after paying
// through the gateway. No earnings row is produced on this path.
func (SettlementRecorder) RecordPaymentConfirmation(ctx context.Context, repo repository.SettlementRepository, b *models.Booking, amount int64, provider string, transactionID *string, paidBy string) (*models.Payment, error) {
	if amount <= 0 {
		amount = b.SettlementAmount()
	}
	if provider == "" {
		provider = confirmationProvider
	}
	payment := &models.Payment{
		BookingID:     b.ID,
		AmountCents:   amount,
		Provider:      provider,
		TransactionID: transactionID,
		Status:        models.PaymentPaid,
		RecordedBy:    paidBy,
	}
	if err := repo.CreatePayment(ctx, payment); err != nil {
		return nil, storageError("record payment confirmation", err)
	}
	return payment, nil
}

// EarningsSummary totals a worker's earnings by status.
type EarningsSummary struct {
	Earnings     []models.Earnings
	PendingCents int64
	PaidCents    int64
}

func summarizeEarnings(rows []models.Earnings) EarningsSummary {
	sum := EarningsSummary{Earnings: rows}
	for _, e := range rows {
		switch e.Status {
		case models.EarningsPending:
			sum.PendingCents += e.AmountCents
		case models.EarningsPaid:
			sum.PaidCents += e.AmountCents
		}
	}
	return sum
}
