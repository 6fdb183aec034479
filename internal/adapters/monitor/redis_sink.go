package monitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// RedisSink broadcasts scanned messages and alerts over Redis pub/sub.
type RedisSink struct {
	client       *redis.Client
	scanChannel  string
	alertChannel string
	logger       *zap.Logger
}

// NewRedisSink creates a new Redis broadcast sink
func NewRedisSink(client *redis.Client, scanChannel, alertChannel string, logger *zap.Logger) *RedisSink {
	return &RedisSink{
		client:       client,
		scanChannel:  scanChannel,
		alertChannel: alertChannel,
		logger:       logger,
	}
}

// PublishScan broadcasts a scanned message to all subscribers.
func (s *RedisSink) PublishScan(ctx context.Context, msg *core.ScannedMessage) error {
	return s.publish(ctx, s.scanChannel, msg)
}

// PublishAlert broadcasts a non-Safe verdict on the alert channel.
func (s *RedisSink) PublishAlert(ctx context.Context, msg *core.ScannedMessage) error {
	return s.publish(ctx, s.alertChannel, msg)
}

func (s *RedisSink) publish(ctx context.Context, channel string, msg *core.ScannedMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal scanned message: %w", err)
	}
	if err := s.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

// LogSink writes scanned messages to the log. It stands in for the broadcast
// sink when Redis is disabled.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a new log sink
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// PublishScan logs a scanned message.
func (s *LogSink) PublishScan(ctx context.Context, msg *core.ScannedMessage) error {
	s.logger.Info("Message scanned",
		zap.String("platform", msg.Platform),
		zap.String("channel", msg.Channel),
		zap.String("prediction", msg.Prediction),
		zap.String("confidence", msg.Confidence))
	return nil
}

// PublishAlert logs an alert.
func (s *LogSink) PublishAlert(ctx context.Context, msg *core.ScannedMessage) error {
	s.logger.Warn("Suspicious message detected",
		zap.String("platform", msg.Platform),
		zap.String("channel", msg.Channel),
		zap.String("author", msg.Author),
		zap.String("prediction", msg.Prediction),
		zap.Strings("keywords", msg.Keywords))
	return nil
}
