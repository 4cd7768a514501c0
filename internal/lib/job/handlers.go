package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/schoolapp/internal/config"
	"github.com/deppfellow/schoolapp/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends the registry notification.
type Mailer interface {
	SendTeacherChangedEmail(to string, change email.TeacherChange) error
}

// InitHandlers wires the dependencies task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
	j.recipient = cfg.Integration.NotificationEmail
}

// handleTeacherChangedTask mails the registry recipient about a teacher write.
// Without a recipient the task is logged and acknowledged.
func (j *JobService) handleTeacherChangedTask(ctx context.Context, t *asynq.Task) error {
	var p TeacherChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal teacher changed payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskTeacherChanged).
		Str("event", p.Event).
		Int64("teacher_id", p.TeacherID).
		Logger()

	if j.recipient == "" || j.mailer == nil {
		logger.Info().Msg("No notification recipient configured, skipping teacher changed email")
		return nil
	}

	logger.Info().Str("to", j.recipient).Msg("Processing teacher changed task")

	err := j.mailer.SendTeacherChangedEmail(j.recipient, email.TeacherChange{
		Event:      p.Event,
		TeacherID:  p.TeacherID,
		Firstname:  p.Firstname,
		Lastname:   p.Lastname,
		OccurredAt: p.OccurredAt,
	})
	if err != nil {
		logger.Error().Err(err).Str("to", j.recipient).Msg("Failed to send teacher changed email")
		return err
	}

	logger.Info().Str("to", j.recipient).Msg("Successfully sent teacher changed email")
	return nil
}
