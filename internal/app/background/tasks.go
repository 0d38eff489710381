package background

import (
	"context"
	"log"
	"time"

	"github.com/Danish0929x/eurobytebackend/internal/usecase"
	"github.com/robfig/cron/v3"
)

type BackgroundTasks struct {
	YieldUsecase usecase.YieldUsecase
	CronSpec     string
}

func NewBackgroundTasks(yieldUC usecase.YieldUsecase, cronSpec string) *BackgroundTasks {
	return &BackgroundTasks{
		YieldUsecase: yieldUC,
		CronSpec:     cronSpec,
	}
}

// Start schedules the daily yield distribution. The job is idempotent per
// date, so an overlapping or repeated trigger cannot double-credit.
func (bt *BackgroundTasks) Start(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(bt.CronSpec, func() {
		summary, err := bt.YieldUsecase.RunDailyDistribution(ctx, time.Now().UTC())
		if err != nil {
			log.Printf("Daily distribution error: %v\n", err)
			return
		}
		log.Printf("Daily distribution done: processed=%d skipped=%d failed=%d\n",
			summary.Processed, summary.Skipped, summary.Failed)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	return c, nil
}
