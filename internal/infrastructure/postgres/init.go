package postgres

import (
	"log"

	"github.com/Danish0929x/eurobytebackend/internal/config"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.LedgerConfig) *gorm.DB {
	dsn := cfg.LedgerDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.UserModel{}, &models.WalletModel{}, &models.TransactionModel{}, &models.PackageModel{})

	return db
}
