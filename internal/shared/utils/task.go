package utils

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// NewJSONTask builds an asynq task with a JSON payload
func NewJSONTask(taskType string, payload interface{}, opts ...asynq.Option) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, b, opts...), nil
}

// UnmarshalTask decodes a task payload. A malformed payload will never
// succeed on retry, so it is wrapped with asynq.SkipRetry.
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
