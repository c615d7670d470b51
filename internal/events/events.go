// Package events carries background jobs from the API to the worker.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// JobType names a background job.
type JobType string

// JobCyclePrediction refreshes a user's predicted cycle.
const JobCyclePrediction JobType = "cycle_prediction"

// ErrClosed is returned when publishing to a closed queue.
var ErrClosed = errors.New("publisher closed")

// Job is the message body on the job queue.
type Job struct {
	JobType     JobType   `json:"job_type"`
	UserID      string    `json:"user_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewJob creates a job stamped with the current time.
func NewJob(jobType JobType, userID string) Job {
	return Job{JobType: jobType, UserID: userID, RequestedAt: time.Now().UTC()}
}

// Encode serialises a job for the wire.
func (j Job) Encode() ([]byte, error) {
	return json.Marshal(j)
}

// Decode parses a job from the wire.
func Decode(data []byte) (Job, error) {
	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("decoding job: %w", err)
	}
	return j, nil
}

// Publisher enqueues jobs.
type Publisher interface {
	Publish(ctx context.Context, job Job) error
	Close() error
}
