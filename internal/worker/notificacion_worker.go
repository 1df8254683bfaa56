package worker

// notificacion_worker.go
// Processes notification jobs from QueueNotificaciones.
// Delivery is delegated to the notification sidecar through the circuit
// breaker; transient failures are rescheduled with exponential backoff and
// exhausted jobs land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"barberpos/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxNotificacionRetries caps delivery attempts before a job goes to the DLQ.
const MaxNotificacionRetries = 3

// NotificacionJobPayload is the job envelope sent to QueueNotificaciones.
type NotificacionJobPayload struct {
	TenantID string         `json:"tenant_id"`
	Tipo     string         `json:"tipo"`
	Datos    map[string]any `json:"datos"`
	Attempts int            `json:"attempts"`
}

// NotificacionWorker delivers notification jobs via the sidecar.
type NotificacionWorker struct {
	client *infra.NotificadorClient
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewNotificacionWorker(client *infra.NotificadorClient, cb *infra.CircuitBreaker, rdb *redis.Client) *NotificacionWorker {
	return &NotificacionWorker{client: client, cb: cb, rdb: rdb}
}

// Process handles a single notification job:
//  1. Parse NotificacionJobPayload from the job envelope
//  2. Call the sidecar through the circuit breaker
//  3. On failure, reschedule with backoff; after MaxNotificacionRetries → DLQ
func (w *NotificacionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notificacion_worker: invalid payload")
		return
	}
	if payload.Tipo == "" {
		log.Warn().Msg("notificacion_worker: empty tipo — skipping")
		return
	}

	var result *infra.NotificacionResult
	cbErr := w.cb.Execute(func() error {
		resp, err := w.client.Enviar(ctx, infra.NotificacionPayload{
			TenantID: payload.TenantID,
			Tipo:     payload.Tipo,
			Datos:    payload.Datos,
		})
		if err != nil {
			return err
		}
		result = resp
		return nil
	})

	if cbErr != nil {
		payload.Attempts++
		if payload.Attempts >= MaxNotificacionRetries {
			body, _ := json.Marshal(payload)
			SendToDLQ(ctx, w.rdb, QueueNotificaciones, "notificacion", body,
				fmt.Sprintf("max retries (%d) exceeded: %v", MaxNotificacionRetries, cbErr),
				payload.Attempts)
			return
		}
		w.scheduleRetry(ctx, payload, cbErr)
		return
	}

	log.Info().
		Str("tipo", payload.Tipo).
		Str("tenant_id", payload.TenantID).
		Bool("entregada", result.Entregada).
		Str("canal", result.Canal).
		Msg("notificacion_worker: delivered")
}

// scheduleRetry parks the job in the retry sorted set; the retry cron
// re-enqueues it once the backoff elapses.
func (w *NotificacionWorker) scheduleRetry(ctx context.Context, payload NotificacionJobPayload, cause error) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("notificacion_worker: failed to marshal retry payload")
		return
	}

	dueAt := time.Now().Add(computeRetryBackoff(payload.Attempts))
	if err := w.rdb.ZAdd(ctx, RetryZSet, redis.Z{
		Score:  float64(dueAt.Unix()),
		Member: body,
	}).Err(); err != nil {
		log.Error().Err(err).Msg("notificacion_worker: failed to schedule retry")
		return
	}

	log.Warn().
		Err(cause).
		Str("tipo", payload.Tipo).
		Int("attempt", payload.Attempts).
		Time("next_retry_at", dueAt).
		Msg("notificacion_worker: delivery failed, retry scheduled")
}

// computeRetryBackoff returns the wait before the next attempt: 1s, 2s, 4s …
func computeRetryBackoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(1<<uint(attempts-1)) * time.Second
}
