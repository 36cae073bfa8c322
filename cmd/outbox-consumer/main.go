// Command outbox-consumer subscribes to the published progress events and
// logs them. It is the attachment point for downstream consumers such as
// push notifications or analytics.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/studyforge/platform/internal/domain"
	"github.com/studyforge/platform/internal/infra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("outbox consumer failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.KafkaEnabled {
		return fmt.Errorf("KAFKA_ENABLED must be true for the outbox consumer")
	}

	topic := os.Getenv("OUTBOX_CONSUMER_TOPIC")
	if topic == "" {
		topic = "studyforge.profile." + string(domain.EventAchievementUnlocked)
	}
	groupID := os.Getenv("OUTBOX_CONSUMER_GROUP")
	if groupID == "" {
		groupID = "studyforge-progress-consumer"
	}

	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, topic, groupID, true, logger)
	defer consumer.Close()

	logger.Info("outbox consumer starting", "topic", topic, "group", groupID)

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("outbox consumer shutting down")
				return nil
			}
			logger.Error("read message", "error", err)
			continue
		}

		var draft domain.OutboxDraft
		if err := json.Unmarshal(msg.Value, &draft); err != nil {
			logger.Error("decode event", "error", err, "offset", msg.Offset)
			continue
		}

		logger.Info("progress event",
			"event_type", draft.EventType,
			"aggregate_id", draft.AggregateID,
			"payload", strings.TrimSpace(string(draft.Payload)),
			"partition", msg.Partition,
			"offset", msg.Offset,
		)
	}
}
