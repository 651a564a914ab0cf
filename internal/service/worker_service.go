package service

import (
	"context"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/repository"
)

// WorkerService answers a worker's questions about their own calendar and pay.
type WorkerService interface {
	Schedule(ctx context.Context, actor models.Actor, weekOf time.Time) ([]models.ScheduleSlot, error)
	Earnings(ctx context.Context, actor models.Actor) (*EarningsSummary, error)
}

type workerService struct {
	store  repository.Store
	ledger *ScheduleLedger
}

func NewWorkerService(store repository.Store, ledger *ScheduleLedger) WorkerService {
	return &workerService{store: store, ledger: ledger}
}

func (s *workerService) Schedule(ctx context.Context, actor models.Actor, weekOf time.Time) ([]models.ScheduleSlot, error) {
	if actor.Role != models.RoleWorker {
		return nil, ErrWorkersOnly
	}
	return s.ledger.Week(ctx, s.store.Schedules(), actor.ID, weekOf)
}

func (s *workerService) Earnings(ctx context.Context, actor models.Actor) (*EarningsSummary, error) {
	if actor.Role != models.RoleWorker {
		return nil, ErrWorkersOnly
	}
	rows, err := s.store.Settlements().EarningsByWorker(ctx, actor.ID)
	if err != nil {
		return nil, storageError("list earnings", err)
	}
	sum := summarizeEarnings(rows)
	return &sum, nil
}
