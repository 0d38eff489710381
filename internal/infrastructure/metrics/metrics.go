package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics covers wallet mutations and distribution runs.
type LedgerMetrics struct {
	TransactionsAppliedTotal  prometheus.CounterVec
	TransactionsAmountTotal   prometheus.CounterVec
	TransactionErrorsTotal    prometheus.CounterVec
	DepositsDuplicateTotal    prometheus.Counter
	DistributionRunsTotal     prometheus.CounterVec
	DistributionPackagesTotal prometheus.CounterVec
	DistributionRunDuration   prometheus.Histogram
	DirectBonusAmountTotal    prometheus.Counter
	DailyProfitAmountTotal    prometheus.Counter
}

func NewLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		TransactionsAppliedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_applied_total",
				Help: "Total number of ledger transactions applied",
			},
			[]string{"category", "status"},
		),

		TransactionsAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_amount_total",
				Help: "Total absolute amount of applied ledger transactions",
			},
			[]string{"category", "direction"},
		),

		TransactionErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transaction_errors_total",
				Help: "Total number of rejected ledger mutations",
			},
			[]string{"category", "error_type"},
		),

		DepositsDuplicateTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_deposits_duplicate_total",
				Help: "Total number of replayed deposit verifications deduplicated by external reference",
			},
		),

		DistributionRunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "distribution_runs_total",
				Help: "Total number of daily yield distribution runs",
			},
			[]string{"result"},
		),

		DistributionPackagesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "distribution_packages_total",
				Help: "Per-package outcomes of daily yield distribution runs",
			},
			[]string{"outcome"},
		),

		DistributionRunDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "distribution_run_duration_seconds",
				Help:    "Duration of a daily yield distribution run in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),

		DirectBonusAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "direct_bonus_amount_total",
				Help: "Total direct referral bonus amount credited",
			},
		),

		DailyProfitAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "daily_profit_amount_total",
				Help: "Total daily yield amount credited",
			},
		),
	}
}

func (m *LedgerMetrics) RecordTransactionApplied(category, status, direction string, amount float64) {
	m.TransactionsAppliedTotal.WithLabelValues(category, status).Inc()
	m.TransactionsAmountTotal.WithLabelValues(category, direction).Add(amount)
}

func (m *LedgerMetrics) RecordTransactionError(category, errorType string) {
	m.TransactionErrorsTotal.WithLabelValues(category, errorType).Inc()
}

func (m *LedgerMetrics) RecordDuplicateDeposit() {
	m.DepositsDuplicateTotal.Inc()
}

func (m *LedgerMetrics) RecordDistributionRun(result string, durationSeconds float64, processed, skipped, failed int) {
	m.DistributionRunsTotal.WithLabelValues(result).Inc()
	m.DistributionRunDuration.Observe(durationSeconds)
	m.DistributionPackagesTotal.WithLabelValues("processed").Add(float64(processed))
	m.DistributionPackagesTotal.WithLabelValues("skipped").Add(float64(skipped))
	m.DistributionPackagesTotal.WithLabelValues("failed").Add(float64(failed))
}

func (m *LedgerMetrics) RecordDirectBonus(amount float64) {
	m.DirectBonusAmountTotal.Add(amount)
}

func (m *LedgerMetrics) RecordDailyProfit(amount float64) {
	m.DailyProfitAmountTotal.Add(amount)
}
