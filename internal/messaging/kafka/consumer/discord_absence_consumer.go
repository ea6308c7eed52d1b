package consumer

import (
	"context"
	"encoding/json"
	"go-attend/internal/attendance"
	"go-attend/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeDiscordAbsence membaca event absen dari bot Discord dan
// mencatatnya sebagai record discord-absent. Service-nya idempotent,
// jadi redelivery aman.
func ConsumeDiscordAbsence(
	ctx context.Context,
	reader *kafkago.Reader,
	attendanceService attendance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.discord_absence")
	log.Info("discord absence consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("discord absence consumer stopped")
				return
			}
			log.Error("fetch discord absence message failed", zap.Error(err))
			continue
		}

		var event events.DiscordAbsenceEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode discord_absence event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := attendanceService.LogDiscordAbsence(ctx, event.UserID, event.Date); err != nil {
			log.Error("log discord absence failed",
				zap.String("user_id", event.UserID),
				zap.String("date", event.Date),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit discord absence message failed", zap.Error(err))
			continue
		}

		log.Info("discord absence recorded",
			zap.String("user_id", event.UserID),
			zap.String("date", event.Date),
		)
	}
}
