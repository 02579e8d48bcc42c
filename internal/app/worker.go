package app

import (
	"context"

	"go-hrm/internal/config"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/messaging/kafka/producer"
	"go-hrm/internal/shared/connection"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const kafkaMaxRetries = 5

// RunWorker relays outbox rows to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka, kafkaMaxRetries, logger)
	if err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		producer.ProcessOutboxEvents(gctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.PollInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("worker shutting down")
		return kafkaWriter.Close()
	})

	return g.Wait()
}
