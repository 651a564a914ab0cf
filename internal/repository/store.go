package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories. Inside Transaction every repository handed to
// fn shares one database transaction.
type Store interface {
	Bookings() BookingRepository
	Schedules() ScheduleRepository
	Settlements() SettlementRepository
	Catalog() CatalogRepository
	Workers() WorkerRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Bookings() BookingRepository       { return NewBookingRepository(s.db) }
func (s *gormStore) Schedules() ScheduleRepository     { return NewScheduleRepository(s.db) }
func (s *gormStore) Settlements() SettlementRepository { return NewSettlementRepository(s.db) }
func (s *gormStore) Catalog() CatalogRepository        { return NewCatalogRepository(s.db) }
func (s *gormStore) Workers() WorkerRepository         { return NewWorkerRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
