package repository

import (
	"context"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	FindByID(ctx context.Context, id uint) (*models.CatalogItem, error)
	Upsert(ctx context.Context, item *models.CatalogItem) error
}

type WorkerRepository interface {
	FindByID(ctx context.Context, id string) (*models.WorkerProfile, error)
	FindByIDForUpdate(ctx context.Context, id string) (*models.WorkerProfile, error)
	Upsert(ctx context.Context, profile *models.WorkerProfile) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) FindByID(ctx context.Context, id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// Upsert inserts or updates on conflict (same ID from the catalog owner).
func (r *catalogRepository) Upsert(ctx context.Context, item *models.CatalogItem) error {
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner_id", "title", "price_cents", "updated_at"}),
	}).Create(item).Error)
}

type workerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) FindByID(ctx context.Context, id string) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// FindByIDForUpdate locks the worker's profile row, serializing the worker's
// concurrent accepts so their schedule checks cannot interleave.
func (r *workerRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *workerRepository) Upsert(ctx context.Context, profile *models.WorkerProfile) error {
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"profile_completed", "verified", "updated_at"}),
	}).Create(profile).Error)
}
