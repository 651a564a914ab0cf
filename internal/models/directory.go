package models

import "time"

// CatalogItem is the local read model of a listed service offering, kept in
// sync from the catalog owner's events.
type CatalogItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OwnerID    string    `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	Title      string    `gorm:"not null" json:"title"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WorkerProfile carries the onboarding flags the accept guard needs.
type WorkerProfile struct {
	ID               string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	ProfileCompleted bool      `gorm:"not null" json:"profile_completed"`
	Verified         bool      `gorm:"not null" json:"verified"`
	UpdatedAt        time.Time `json:"updated_at"`
}
