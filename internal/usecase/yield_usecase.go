package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/domain"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/kafka"
	"github.com/Danish0929x/eurobytebackend/internal/infrastructure/metrics"
	ledgerdto "github.com/Danish0929x/eurobytebackend/internal/usecase/dto/ledger"
)

type DistributionSummary struct {
	Processed int
	Skipped   int
	Failed    int
}

type DistributionEventPublisher interface {
	PublishDistribution(event kafka.DistributionEvent) error
}

type YieldUsecase interface {
	RunDailyDistribution(ctx context.Context, asOfDate time.Time) (*DistributionSummary, error)
}

type DefaultYieldUsecase struct {
	PackageRepo    domain.PackageRepository
	Ledger         LedgerUsecase
	Publisher      DistributionEventPublisher
	Metrics        *metrics.LedgerMetrics
	DailyYieldRate float64
}

func NewDefaultYieldUsecase(
	packageRepo domain.PackageRepository,
	ledger LedgerUsecase,
	publisher DistributionEventPublisher,
	ledgerMetrics *metrics.LedgerMetrics,
	dailyYieldRate float64) *DefaultYieldUsecase {

	return &DefaultYieldUsecase{
		PackageRepo:    packageRepo,
		Ledger:         ledger,
		Publisher:      publisher,
		Metrics:        ledgerMetrics,
		DailyYieldRate: dailyYieldRate,
	}
}

// RunDailyDistribution credits every active package its daily yield. Each
// credit is keyed on (package id, date), so re-running the job for the same
// date skips packages already credited. One package failing is logged and
// counted, never fatal to the rest of the batch.
func (uc *DefaultYieldUsecase) RunDailyDistribution(ctx context.Context, asOfDate time.Time) (*DistributionSummary, error) {
	started := time.Now()
	day := asOfDate.UTC().Format("2006-01-02")
	slog.Info("starting daily yield distribution", "as_of", day)

	packages, err := uc.PackageRepo.ListActive(ctx)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordDistributionRun("error", time.Since(started).Seconds(), 0, 0, 0)
		}
		return nil, fmt.Errorf("listing active packages: %w", err)
	}

	summary := &DistributionSummary{}
	for _, pkg := range packages {
		dedupeKey := fmt.Sprintf("daily_profit:%s:%s", pkg.ID, day)

		credited, err := uc.Ledger.HasDedupeKey(ctx, dedupeKey)
		if err != nil {
			slog.Error("daily yield: dedupe check failed",
				"package_id", pkg.ID, "error", err.Error())
			summary.Failed++
			continue
		}
		if credited {
			summary.Skipped++
			continue
		}

		yield := roundCents(pkg.Amount * uc.DailyYieldRate)
		_, err = uc.Ledger.ApplyTransaction(ctx, &ledgerdto.ApplyTransactionInput{
			UserID:    pkg.UserID,
			Amount:    yield,
			Category:  domain.CategoryDailyProfit,
			Remark:    "daily_profit",
			Status:    domain.StatusCompleted,
			DedupeKey: dedupeKey,
		})
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			// lost the race against a concurrent run for the same date
			summary.Skipped++
			continue
		}
		if err != nil {
			slog.Error("daily yield: credit failed",
				"package_id", pkg.ID,
				"user_id", pkg.UserID,
				"error", err.Error())
			summary.Failed++
			continue
		}

		if uc.Metrics != nil {
			uc.Metrics.RecordDailyProfit(yield)
		}
		summary.Processed++
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordDistributionRun("ok", time.Since(started).Seconds(),
			summary.Processed, summary.Skipped, summary.Failed)
	}
	if uc.Publisher != nil {
		event := kafka.DistributionEvent{
			Date:      day,
			Processed: summary.Processed,
			Skipped:   summary.Skipped,
			Failed:    summary.Failed,
		}
		if err := uc.Publisher.PublishDistribution(event); err != nil {
			slog.Error("failed to publish distribution event", "error", err.Error())
		}
	}

	slog.Info("daily yield distribution completed",
		"as_of", day,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return summary, nil
}
