package monitor

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// RedisSource consumes inbound messages from a Redis pub/sub channel.
// External platform bridges (chat bots, mail hooks) publish JSON-encoded
// messages to the ingest channel.
type RedisSource struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisSource creates a new Redis pub/sub message source
func NewRedisSource(client *redis.Client, channel string, logger *zap.Logger) *RedisSource {
	return &RedisSource{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Name identifies the source in logs.
func (s *RedisSource) Name() string {
	return "redis:" + s.channel
}

// Run subscribes to the ingest channel and forwards decoded messages until
// ctx is cancelled. Malformed payloads are logged and dropped.
func (s *RedisSource) Run(ctx context.Context, out chan<- core.Message) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-ch:
			if !ok {
				return nil
			}
			var msg core.Message
			if err := json.Unmarshal([]byte(payload.Payload), &msg); err != nil {
				s.logger.Warn("Dropping malformed inbound message",
					zap.String("channel", s.channel),
					zap.Error(err))
				continue
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
