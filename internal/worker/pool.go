package worker

import (
	"context"
	"encoding/json"
	"time"

	"smartpos/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueuePush = "jobs:push"

	maxPushAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// PushReminderPayload is the payload of a push_reminder job.
type PushReminderPayload struct {
	BusinessID uint   `json:"business_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueuePushReminder pushes a notification fan-out job to Redis.
func (d *Dispatcher) EnqueuePushReminder(ctx context.Context, businessID uint, title, body string) error {
	return d.enqueue(ctx, QueuePush, "push_reminder", PushReminderPayload{
		BusinessID: businessID,
		Title:      title,
		Body:       body,
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the push queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, pushSvc service.PushService) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, pushSvc)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, pushSvc service.PushService) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueuePush).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, result[0], result[1], pushSvc)
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, queue, raw string, pushSvc service.PushService) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "push_reminder":
		processPushReminder(ctx, rdb, queue, job, pushSvc)
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type, dropping")
	}
}

func processPushReminder(ctx context.Context, rdb *redis.Client, queue string, job Job, pushSvc service.PushService) {
	var payload PushReminderPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("push_reminder: invalid payload")
		return
	}

	sent, err := pushSvc.Broadcast(ctx, payload.BusinessID, payload.Title, payload.Body)
	if err != nil {
		job.Attempts++
		if job.Attempts >= maxPushAttempts {
			moveToDeadLetter(ctx, rdb, queue, job, err)
			return
		}
		// Re-enqueue for another attempt.
		if encoded, mErr := json.Marshal(job); mErr == nil {
			if pushErr := rdb.LPush(ctx, queue, encoded).Err(); pushErr != nil {
				log.Error().Err(pushErr).Msg("push_reminder: re-enqueue failed")
			}
		}
		log.Warn().Err(err).
			Uint("business_id", payload.BusinessID).
			Int("attempts", job.Attempts).
			Msg("push_reminder: broadcast failed, re-enqueued")
		return
	}

	log.Info().
		Uint("business_id", payload.BusinessID).
		Int("sent", sent).
		Msg("push_reminder: delivered")
}
