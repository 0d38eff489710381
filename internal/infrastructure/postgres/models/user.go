package models

import "time"

type UserModel struct {
	UserID    string `gorm:"primaryKey"`
	FullName  string
	Referrer  string `gorm:"index:idx_users_referrer"`
	Verified  bool
	Status    string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
