package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// NotificationConsumer drains the order notification topic and hands each
// message to a mail worker.
type NotificationConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeout    time.Duration
	HeartbeatInterval time.Duration
	MaxProcessingTime time.Duration
	CommitInterval    time.Duration
	OffsetOldest      bool

	// Per-message SMTP retry budget, used when a message arrives without
	// its own.
	SendRetries int
	SendBackoff time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "skyport-notifications",
		Topics:            []string{"skyport.orders"},
		SessionTimeout:    30 * time.Second,
		HeartbeatInterval: 3 * time.Second,
		MaxProcessingTime: 5 * time.Minute,
		CommitInterval:    time.Second,
		OffsetOldest:      false,
		SendRetries:       3,
		SendBackoff:       time.Second,
	}
}

// KafkaNotificationConsumer consumes EmailNotification messages from Kafka
// and delivers them through the configured EmailService.
type KafkaNotificationConsumer struct {
	group        sarama.ConsumerGroup
	config       *ConsumerConfig
	emailService EmailService

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewKafkaNotificationConsumer(config *ConsumerConfig, emailService EmailService) (NotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.HeartbeatInterval
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = config.CommitInterval

	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group %s: %w", config.GroupID, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaNotificationConsumer{
		group:        group,
		config:       config,
		emailService: emailService,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// StartConsumers launches numWorkers consume loops. Each loop rejoins the
// group after a rebalance and exits when the consumer is stopped.
func (knc *KafkaNotificationConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("📥 Starting %d mail workers for topics %v", numWorkers, knc.config.Topics)

	go func() {
		for err := range knc.group.Errors() {
			log.Printf("📥 Consumer group error: %v", err)
		}
	}()

	for i := 0; i < numWorkers; i++ {
		knc.wg.Add(1)
		go func(workerID int) {
			defer knc.wg.Done()
			knc.consumeLoop(ctx, workerID)
		}(i)
	}

	return nil
}

func (knc *KafkaNotificationConsumer) consumeLoop(ctx context.Context, workerID int) {
	worker := &mailWorker{
		workerID:     workerID,
		emailService: knc.emailService,
		sendRetries:  knc.config.SendRetries,
		sendBackoff:  knc.config.SendBackoff,
	}

	for {
		if err := knc.group.Consume(ctx, knc.config.Topics, worker); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			log.Printf("📥 Worker %d consume error: %v", workerID, err)
		}

		select {
		case <-ctx.Done():
			return
		case <-knc.ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (knc *KafkaNotificationConsumer) Stop() error {
	log.Println("📥 Stopping mail workers...")
	knc.cancel()

	if err := knc.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	knc.wg.Wait()
	log.Println("📥 Mail workers stopped")
	return nil
}

func (knc *KafkaNotificationConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-knc.ctx.Done():
		return fmt.Errorf("consumer is stopped")
	default:
	}

	if knc.emailService == nil {
		return fmt.Errorf("email service not configured")
	}
	return nil
}

// mailWorker is the sarama.ConsumerGroupHandler for one consume loop.
type mailWorker struct {
	workerID     int
	emailService EmailService
	sendRetries  int
	sendBackoff  time.Duration
}

func (w *mailWorker) Setup(session sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d joined group, claims: %v", w.workerID, session.Claims())
	return nil
}

func (w *mailWorker) Cleanup(sarama.ConsumerGroupSession) error {
	log.Printf("📥 Worker %d left group", w.workerID)
	return nil
}

func (w *mailWorker) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			// A message that exhausts its retries is logged and dropped.
			// Leaving it unmarked would wedge the partition behind one
			// undeliverable email.
			if err := w.deliver(session.Context(), message); err != nil {
				log.Printf("📥 Worker %d: dropping message at %s/%d/%d: %v",
					w.workerID, message.Topic, message.Partition, message.Offset, err)
			}
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (w *mailWorker) deliver(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification EmailNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("malformed notification payload: %w", err)
	}

	if notification.MaxRetries <= 0 {
		notification.MaxRetries = w.sendRetries
	}
	notification.Status = NotificationStatusSending

	for {
		err := w.emailService.SendNotification(ctx, &notification)
		if err == nil {
			notification.MarkSent()
			log.Printf("📧 Worker %d: %s notification delivered to %s",
				w.workerID, notification.Type, notification.RecipientEmail)
			return nil
		}

		notification.MarkFailed(err)
		notification.IncrementRetry()
		if notification.Status != NotificationStatusRetrying {
			return fmt.Errorf("giving up after %d attempts: %w", notification.RetryCount, err)
		}

		delay := w.sendBackoff * time.Duration(1<<(notification.RetryCount-1))
		log.Printf("📥 Worker %d: send attempt %d failed, retrying in %v: %v",
			w.workerID, notification.RetryCount, delay, err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
