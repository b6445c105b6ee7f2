package messaging

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/2003dinijay/ChatStack/internal/logging"
)

const (
	// DefaultStream is the single logical topic for OTP delivery requests.
	DefaultStream = "chatstack:otp"
	// DefaultGroup is the consumer group processing each message at-least-once.
	DefaultGroup = "email-workers"

	readBlock      = 5 * time.Second
	readCount      = 10
	reclaimMinIdle = time.Minute
)

// NewRedisClient creates a plain go-redis client from an address.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisStream implements Publisher and Consumer over a Redis stream with a
// consumer group. Messages are XACKed only after the handler succeeds, so a
// crash or handler failure leaves them in the pending entries list and they
// are reclaimed on the next pass.
type RedisStream struct {
	rdb      *redis.Client
	stream   string
	group    string
	consumer string
	logger   logging.Logger
}

func NewRedisStream(rdb *redis.Client, stream, group string, logger logging.Logger) *RedisStream {
	return &RedisStream{
		rdb:      rdb,
		stream:   stream,
		group:    group,
		consumer: "consumer-" + uuid.NewString(),
		logger:   logger.With("module", "messaging"),
	}
}

func (s *RedisStream) Publish(ctx context.Context, msg OtpDelivery) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	return s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":    msg.ID,
			"type":  string(msg.Type),
			"email": msg.Email,
			"otp":   msg.Otp,
		},
	}).Err()
}

// Consume blocks until ctx is cancelled, dispatching each stream entry to h.
// Entries abandoned by dead consumers are reclaimed once their idle time
// exceeds reclaimMinIdle.
func (s *RedisStream) Consume(ctx context.Context, h Handler) error {
	if err := s.ensureGroup(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.reclaimPending(ctx, h)

		streams, err := s.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    s.group,
			Consumer: s.consumer,
			Streams:  []string{s.stream, ">"},
			Count:    readCount,
			Block:    readBlock,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			s.logger.Error(ctx, "stream read failed", "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, entry := range stream.Messages {
				s.handle(ctx, h, entry)
			}
		}
	}
}

func (s *RedisStream) handle(ctx context.Context, h Handler, entry redis.XMessage) {
	msg := decodeEntry(entry)
	if err := h(ctx, msg); err != nil {
		// No ack: the entry stays pending and is redelivered.
		s.logger.Warn(ctx, "handler failed, message left for redelivery",
			"entry_id", entry.ID, "msg_id", msg.ID, "error", err)
		return
	}
	if err := s.rdb.XAck(ctx, s.stream, s.group, entry.ID).Err(); err != nil {
		// The handler already succeeded; a failed ack means one more
		// delivery, which the at-least-once contract allows.
		s.logger.Warn(ctx, "ack failed", "entry_id", entry.ID, "error", err)
	}
}

func (s *RedisStream) reclaimPending(ctx context.Context, h Handler) {
	entries, _, err := s.rdb.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   s.stream,
		Group:    s.group,
		Consumer: s.consumer,
		MinIdle:  reclaimMinIdle,
		Start:    "0-0",
		Count:    readCount,
	}).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			s.logger.Warn(ctx, "pending reclaim failed", "error", err)
		}
		return
	}

	for _, entry := range entries {
		s.handle(ctx, h, entry)
	}
}

func (s *RedisStream) ensureGroup(ctx context.Context) error {
	err := s.rdb.XGroupCreateMkStream(ctx, s.stream, s.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func decodeEntry(entry redis.XMessage) OtpDelivery {
	str := func(key string) string {
		if v, ok := entry.Values[key].(string); ok {
			return v
		}
		return ""
	}
	return OtpDelivery{
		ID:    str("id"),
		Type:  DeliveryType(str("type")),
		Email: str("email"),
		Otp:   str("otp"),
	}
}
