package models

import "time"

type WalletModel struct {
	UserID    string  `gorm:"primaryKey"`
	Balance   float64 `gorm:"not null;default:0"`
	Version   int64   `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
