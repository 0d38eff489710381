package models

import "time"

type PackageModel struct {
	ID        string  `gorm:"primaryKey;type:uuid"`
	UserID    string  `gorm:"not null;index:idx_packages_user"`
	Amount    float64 `gorm:"not null"`
	Status    string  `gorm:"not null;index:idx_packages_status"`
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
