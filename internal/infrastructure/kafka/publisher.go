package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type LedgerPublisher struct {
	writer *kafka.Writer
}

func NewLedgerPublisher(brokers []string, topic string) *LedgerPublisher {
	return &LedgerPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *LedgerPublisher) PublishTransaction(event TransactionEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.UserID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *LedgerPublisher) PublishDistribution(event DistributionEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.Date),
		Value: msg,
		Time:  time.Now(),
	})
}
