package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskTeacherChanged is the job type name stored in Redis.
	TaskTeacherChanged = "teacher:changed"
)

// Events carried by TaskTeacherChanged.
const (
	EventTeacherCreated = "created"
	EventTeacherUpdated = "updated"
	EventTeacherDeleted = "deleted"
)

// TeacherChangedPayload is the JSON payload of a teacher:changed task.
// Names are empty for deletions.
type TeacherChangedPayload struct {
	Event      string    `json:"event"`
	TeacherID  int64     `json:"teacher_id"`
	Firstname  string    `json:"firstname,omitempty"`
	Lastname   string    `json:"lastname,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewTeacherChangedTask builds a task on the default queue, retried up to 3 times.
func NewTeacherChangedTask(p TeacherChangedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskTeacherChanged,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
