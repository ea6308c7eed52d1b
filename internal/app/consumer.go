package app

import (
	"context"
	"fmt"
	"go-attend/internal/attendance"
	"go-attend/internal/events"
	"go-attend/internal/imagestore"
	"go-attend/internal/messaging/kafka"
	"go-attend/internal/messaging/kafka/consumer"
	"go-attend/internal/shared/connection"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	imageStore := imagestore.NewB2Store(imagestore.B2Config{
		KeyID:       os.Getenv("B2_KEY_ID"),
		Key:         os.Getenv("B2_APPLICATION_KEY"),
		BucketName:  os.Getenv("B2_BUCKET_NAME"),
		CDNEndpoint: os.Getenv("B2_CDN_ENDPOINT"),
	})
	attendanceService := attendance.NewService(sqlDB, attendanceRepo, outboxRepo, imageStore, officeFromEnv())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.DiscordAbsenceTopic,
		GroupID:        "go-attend-discord-absence",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeDiscordAbsence(ctx, reader, attendanceService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
