package queue

import (
	"time"

	"github.com/google/uuid"
)

// Job names the worker dispatches on.
const (
	JobOrchestrate = "orchestrate"
	JobRenderHires = "render-hires"
)

// Retry policy: a job is attempted up to MaxAttempts times, with
// exponentially growing delays between attempts.
const (
	MaxAttempts  = 3
	backoffBase  = 2000 * time.Millisecond
	attemptStart = 1
)

// JobPayload is the body of a pipeline job. Step optionally names a single
// stage to run instead of the full pipeline; SlideIDs optionally restricts
// a hi-res job to specific slides.
type JobPayload struct {
	CarouselID uuid.UUID   `json:"carouselId"`
	SlideIDs   []uuid.UUID `json:"slideIds,omitempty"`
	Step       string      `json:"step,omitempty"`
}

// Message is the wire envelope for a job.
type Message struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Payload   JobPayload `json:"payload"`
	Timestamp time.Time  `json:"timestamp"`
}

// BackoffDelay returns the delay before the given retry attempt:
// 2s, 4s, 8s, ... for attempts 1, 2, 3, ...
func BackoffDelay(attempt int) time.Duration {
	if attempt < attemptStart {
		attempt = attemptStart
	}
	return backoffBase << (attempt - 1)
}
