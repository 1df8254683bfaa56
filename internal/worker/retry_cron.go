package worker

// retry_cron.go
// Background goroutine that moves due entries from the retry sorted set back
// into the notification queue. Skips whole ticks while the circuit breaker is
// open to avoid hammering a downed sidecar.

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"barberpos/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// RetryZSet holds rescheduled jobs scored by their due unix timestamp.
	RetryZSet = "retry:notificaciones"

	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-enqueues due retries. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, rdb, cb)
			}
		}
	}()
}

func processRetries(ctx context.Context, rdb *redis.Client, cb *infra.CircuitBreaker) {
	// If CB is open, skip entirely — don't hammer a downed sidecar
	if cb.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now().Unix()
	due, err := rdb.ZRangeByScore(ctx, RetryZSet, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now, 10),
		Count: retryBatchSize,
	}).Result()
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query retry set")
		return
	}
	if len(due) == 0 {
		return
	}

	log.Info().Int("count", len(due)).Msg("retry_cron: re-enqueueing due notifications")

	for _, member := range due {
		// Remove first so a crashed tick never duplicates a job
		removed, err := rdb.ZRem(ctx, RetryZSet, member).Result()
		if err != nil || removed == 0 {
			continue
		}

		job := Job{Type: "notificacion", Payload: []byte(member)}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to marshal job")
			continue
		}
		if err := rdb.LPush(ctx, QueueNotificaciones, encoded).Err(); err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to re-enqueue job")
		}
	}
}
