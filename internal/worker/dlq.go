package worker

// Push jobs that exhaust their retries are parked in a per-queue dead letter
// list (Redis key dead:{queue}) so an operator can inspect and replay them
// once the gateway outage clears. Replay is manual.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const deadLetterPrefix = "dead:"

// FailedJob is the dead-letter envelope: the job exactly as it last ran,
// plus the failure cause and timestamp.
type FailedJob struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Cause    string          `json:"cause"`
	FailedAt time.Time       `json:"failed_at"`
	Attempts int             `json:"attempts"`
}

func deadLetterKey(queue string) string { return deadLetterPrefix + queue }

// moveToDeadLetter parks a job that ran out of attempts. Errors here are
// logged and swallowed: a broken Redis must not crash the worker loop.
func moveToDeadLetter(ctx context.Context, rdb *redis.Client, queue string, job Job, cause error) {
	entry := FailedJob{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Cause:    cause.Error(),
		FailedAt: time.Now().UTC(),
		Attempts: job.Attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead letter: marshal failed")
		return
	}

	if err := rdb.LPush(ctx, deadLetterKey(queue), data).Err(); err != nil {
		log.Error().Err(err).Str("key", deadLetterKey(queue)).Msg("dead letter: push failed")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("type", job.Type).
		Str("cause", entry.Cause).
		Int("attempts", job.Attempts).
		Msg("job moved to dead letter queue")
}

// DeadLetterDepth reports how many jobs are parked for a queue.
func DeadLetterDepth(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, deadLetterKey(queue)).Result()
}
