package setup

import (
	"fmt"

	"github.com/Danish0929x/eurobytebackend/internal/config"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/kafka"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/metrics"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/postgres/repository"
	"github.com/Danish0929x/eurobytebackend/internal/usecase"
	"gorm.io/gorm"
)

type Dependencies struct {
	LedgerUsecase     usecase.LedgerUsecase
	ReferralUsecase   usecase.ReferralUsecase
	BonusUsecase      usecase.BonusUsecase
	YieldUsecase      usecase.YieldUsecase
	InvestmentUsecase usecase.InvestmentUsecase
	AccountUsecase    usecase.AccountUsecase
	Metrics           *metrics.LedgerMetrics
}

func NewDependencies(cfg *config.LedgerConfig, db *gorm.DB) *Dependencies {
	// Init repos
	ledgerRepo := repository.NewDefaultLedgerRepository(db)
	userRepo := repository.NewDefaultUserRepository(db)
	packageRepo := repository.NewDefaultPackageRepository(db)

	// Init kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewLedgerPublisher(brokers, cfg.KafkaService.Topic)

	// Init metrics
	ledgerMetrics := metrics.NewLedgerMetrics()

	// Init usecases
	ledgerUsecase := usecase.NewDefaultLedgerUsecase(ledgerRepo, publisher, ledgerMetrics, cfg.Withdrawals)
	referralUsecase := usecase.NewDefaultReferralUsecase(userRepo, packageRepo, cfg.Rewards.ReferralMaxDepth)
	bonusUsecase := usecase.NewDefaultBonusUsecase(userRepo, packageRepo, ledgerUsecase, ledgerMetrics, cfg.Rewards.DirectBonusRate)
	yieldUsecase := usecase.NewDefaultYieldUsecase(packageRepo, ledgerUsecase, publisher, ledgerMetrics, cfg.Rewards.DailyYieldRate)
	investmentUsecase := usecase.NewDefaultInvestmentUsecase(packageRepo, userRepo, bonusUsecase)
	accountUsecase := usecase.NewDefaultAccountUsecase(userRepo, ledgerRepo)

	return &Dependencies{
		LedgerUsecase:     ledgerUsecase,
		ReferralUsecase:   referralUsecase,
		BonusUsecase:      bonusUsecase,
		YieldUsecase:      yieldUsecase,
		InvestmentUsecase: investmentUsecase,
		AccountUsecase:    accountUsecase,
		Metrics:           ledgerMetrics,
	}
}
