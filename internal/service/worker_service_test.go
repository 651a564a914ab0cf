package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWorkerService_ScheduleAndEarnings(t *testing.T) {
	store := newMemStore()
	store.addWorker(workerW.ID, true, true)
	ledger := NewScheduleLedger(time.UTC, 0, ConflictByDate)
	bookings := NewBookingService(store, ledger, nil, zap.NewNop())
	workers := NewWorkerService(store, ledger)
	ctx := context.Background()

	first := createCustom(t, bookings, 5000, &scheduledD)
	_, err := bookings.Accept(ctx, workerW, first.ID)
	require.NoError(t, err)

	nextDay := scheduledD.AddDate(0, 0, 1)
	second := createCustom(t, bookings, 3000, &nextDay)
	_, err = bookings.Accept(ctx, workerW, second.ID)
	require.NoError(t, err)
	_, err = bookings.Complete(ctx, workerW, second.ID)
	require.NoError(t, err)

	slots, err := workers.Schedule(ctx, workerW, scheduledD)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].IsAvailable)
	assert.True(t, slots[1].IsAvailable)

	summary, err := workers.Earnings(ctx, workerW)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), summary.PendingCents)
	assert.Zero(t, summary.PaidCents)
	assert.Len(t, summary.Earnings, 1)
}

func TestWorkerService_MembersRejected(t *testing.T) {
	workers := NewWorkerService(newMemStore(), NewScheduleLedger(time.UTC, 0, ConflictByDate))

	_, err := workers.Schedule(context.Background(), models.Member("m1"), time.Now())
	assert.ErrorIs(t, err, ErrWorkersOnly)

	_, err = workers.Earnings(context.Background(), models.Member("m1"))
	assert.ErrorIs(t, err, ErrWorkersOnly)
}

func TestWorkerService_StorageFailure(t *testing.T) {
	store := newMemStore()
	store.failOn("settlements.list", errors.New("timeout"))
	workers := NewWorkerService(store, NewScheduleLedger(time.UTC, 0, ConflictByDate))

	_, err := workers.Earnings(context.Background(), workerW)

	assert.Equal(t, KindStorage, KindOf(err))
}
