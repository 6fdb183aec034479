package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// RedisStore is a Redis implementation of the SignatureStore interface.
// Each token maps to a hash with "safe" and "phish" fields; HINCRBY gives
// the per-token atomicity the increment contract requires.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStore creates a new Redis signature store
func NewRedisStore(redisURL, keyPrefix string, logger *zap.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("Redis connection failed: %w", err)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}, nil
}

func (s *RedisStore) tokenKey(token string) string {
	return s.keyPrefix + ":" + token
}

// Increment atomically bumps the safe or phish counter for token.
func (s *RedisStore) Increment(ctx context.Context, token string, safe bool) error {
	field := "phish"
	if safe {
		field = "safe"
	}
	if err := s.client.HIncrBy(ctx, s.tokenKey(token), field, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment signature record: %w", err)
	}
	return nil
}

// LookupMany returns the records for the tokens present in the store.
// Reads are pipelined; a hash missing entirely means the token was never
// reported and is omitted.
func (s *RedisStore) LookupMany(ctx context.Context, tokens []string) ([]core.SignatureRecord, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(tokens))
	for i, token := range tokens {
		cmds[i] = pipe.HGetAll(ctx, s.tokenKey(token))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to look up signature records: %w", err)
	}

	var records []core.SignatureRecord
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		safeCount, _ := strconv.ParseInt(fields["safe"], 10, 64)
		phishCount, _ := strconv.ParseInt(fields["phish"], 10, 64)
		records = append(records, core.SignatureRecord{
			Token:      tokens[i],
			SafeCount:  safeCount,
			PhishCount: phishCount,
		})
	}
	return records, nil
}

// Stop closes the Redis connection
func (s *RedisStore) Stop() {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis client", zap.Error(err))
	}
}
