package models

import "time"

type TransactionModel struct {
	ID                string `gorm:"primaryKey"`
	UserID            string `gorm:"not null;index:idx_tx_user_created,priority:1"`
	CreditedAmount    float64
	DebitedAmount     float64
	Category          string `gorm:"not null;index:idx_tx_category"`
	Remark            string
	Status            string  `gorm:"not null"`
	BalanceAfter      float64 `gorm:"not null"`
	ExternalReference *string `gorm:"uniqueIndex:uniq_tx_external_reference"`
	DedupeKey         *string `gorm:"uniqueIndex:uniq_tx_dedupe_key"`
	CreatedAt         time.Time `gorm:"index:idx_tx_user_created,priority:2"`
	UpdatedAt         time.Time
}
