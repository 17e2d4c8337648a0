// Package adapter wraps the external clients of the archive pipeline:
// the Redis queue that carries settled media names and the S3 endpoint
// that receives the cold copies.
package adapter

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const (
	QueueNew        = "archive:new"
	QueueInProgress = "archive:in-progress"
	QueueCompleted  = "archive:completed"

	// completedKeep bounds the recent-activity list.
	completedKeep = 50

	ttlInfinite  = 0
	blockTimeout = 5 * time.Second
)

type FileName = string

// ArchiveQueue is the queue discipline of the archive pipeline: names
// enter queue:new, move to in-progress while a worker holds them, and
// end in a bounded completed list that doubles as recent activity.
type ArchiveQueue interface {
	Enqueue(ctx context.Context, name FileName) error
	DequeueInProgress(ctx context.Context) (FileName, error)
	DequeueStale(ctx context.Context) (FileName, error)
	MarkCompleted(ctx context.Context, name FileName) error
	RecentCompleted(ctx context.Context, n int64) ([]string, error)
	Close() error
}

type RedisClientImpl struct {
	redisClient *redis.Client
}

func NewRedisClientImpl() *RedisClientImpl {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	password := os.Getenv("REDIS_PASSWORD")
	db := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsed, err := strconv.Atoi(dbStr); err == nil {
			db = parsed
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Error("Failed to connect to Redis", "addr", addr, "err", err)
	}

	return &RedisClientImpl{
		redisClient: client,
	}
}

// Enqueue pushes name onto the new queue, first dropping any queued
// duplicate so a re-uploaded file is archived once.
func (r *RedisClientImpl) Enqueue(ctx context.Context, name FileName) error {
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.LRem(ctx, QueueNew, 0, name).Err(); err != nil {
			return err
		}
		return pipe.LPush(ctx, QueueNew, name).Err()
	})
	slog.Debug("Enqueued for archive", "file", name, "err", err)
	return err
}

// DequeueInProgress blocks for up to blockTimeout waiting for the next
// name, moving it to the in-progress queue. Returns redis.Nil on
// timeout so workers can poll their shutdown signal.
func (r *RedisClientImpl) DequeueInProgress(ctx context.Context) (FileName, error) {
	return r.redisClient.BLMove(ctx, QueueNew, QueueInProgress, "RIGHT", "LEFT", blockTimeout).Result()
}

// DequeueStale pops a name abandoned in the in-progress queue by a
// previous run. Returns redis.Nil when the queue is drained.
func (r *RedisClientImpl) DequeueStale(ctx context.Context) (FileName, error) {
	return r.redisClient.RPop(ctx, QueueInProgress).Result()
}

// MarkCompleted moves name from in-progress to the completed list and
// trims the list to its bound.
func (r *RedisClientImpl) MarkCompleted(ctx context.Context, name FileName) error {
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := pipe.LRem(ctx, QueueInProgress, 1, name).Err(); err != nil {
			return err
		}
		if err := pipe.LPush(ctx, QueueCompleted, name).Err(); err != nil {
			return err
		}
		return pipe.LTrim(ctx, QueueCompleted, 0, completedKeep-1).Err()
	})
	return err
}

// RecentCompleted returns up to n most recently archived names, newest
// first.
func (r *RedisClientImpl) RecentCompleted(ctx context.Context, n int64) ([]string, error) {
	if n <= 0 || n > completedKeep {
		n = completedKeep
	}
	return r.redisClient.LRange(ctx, QueueCompleted, 0, n-1).Result()
}

func (r *RedisClientImpl) Close() error {
	return r.redisClient.Close()
}
