package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/schoolapp/internal/lib/job"
	"github.com/deppfellow/schoolapp/internal/model/teacher"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ErrTeacherNotFound is returned when no teacher has the requested id.
var ErrTeacherNotFound = errors.New("teacher not found")

// TeacherRepository is the persistence the teacher service needs.
type TeacherRepository interface {
	ListByLastname(ctx context.Context, lastname string) ([]teacher.Teacher, error)
	GetByID(ctx context.Context, id int64) (*teacher.Teacher, error)
	Create(ctx context.Context, firstname, lastname string) (*teacher.Teacher, error)
	Update(ctx context.Context, t teacher.Teacher) (*teacher.Teacher, error)
	Delete(ctx context.Context, id int64) error
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type TeacherService struct {
	repo   TeacherRepository
	jobs   TaskEnqueuer
	logger *zerolog.Logger
	now    func() time.Time
}

// NewTeacherService builds the service. jobs may be nil, in which case no
// teacher:changed tasks are enqueued.
func NewTeacherService(repo TeacherRepository, jobs TaskEnqueuer, logger *zerolog.Logger) *TeacherService {
	return &TeacherService{
		repo:   repo,
		jobs:   jobs,
		logger: logger,
		now:    time.Now,
	}
}

// GetTeachersByLastname never reports ErrTeacherNotFound; no match is an empty slice.
func (s *TeacherService) GetTeachersByLastname(ctx context.Context, lastname string) ([]teacher.Teacher, error) {
	teachers, err := s.repo.ListByLastname(ctx, lastname)
	if err != nil {
		return nil, err
	}
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return teachers, nil
}

func (s *TeacherService) GetTeacherByID(ctx context.Context, id int64) (*teacher.Teacher, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return t, nil
}

func (s *TeacherService) InsertTeacher(ctx context.Context, dto teacher.TeacherInsertDTO) (*teacher.Teacher, error) {
	t, err := s.repo.Create(ctx, dto.Firstname, dto.Lastname)
	if err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, job.EventTeacherCreated, *t)
	return t, nil
}

func (s *TeacherService) UpdateTeacher(ctx context.Context, dto teacher.TeacherUpdateDTO) (*teacher.Teacher, error) {
	t, err := s.repo.Update(ctx, teacher.Teacher{
		ID:        dto.ID,
		Firstname: dto.Firstname,
		Lastname:  dto.Lastname,
	})
	if err != nil {
		return nil, notFound(err, dto.ID)
	}

	s.notifyChanged(ctx, job.EventTeacherUpdated, *t)
	return t, nil
}

func (s *TeacherService) DeleteTeacher(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, id)
	}

	s.notifyChanged(ctx, job.EventTeacherDeleted, teacher.Teacher{ID: id})
	return nil
}

// notFound marks a missing row with ErrTeacherNotFound, keeping the driver
// error in the chain for logs. Other errors are left alone.
func notFound(err error, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("teacher %d: %w: %w", id, ErrTeacherNotFound, err)
	}
	return err
}

// notifyChanged enqueues a teacher:changed task. Failures are logged only;
// the write has already been committed.
func (s *TeacherService) notifyChanged(ctx context.Context, event string, t teacher.Teacher) {
	if s.jobs == nil {
		return
	}

	logger := s.loggerFrom(ctx).With().
		Str("event", event).
		Int64("teacher_id", t.ID).
		Logger()

	task, err := job.NewTeacherChangedTask(job.TeacherChangedPayload{
		Event:      event,
		TeacherID:  t.ID,
		Firstname:  t.Firstname,
		Lastname:   t.Lastname,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to build teacher changed task")
		return
	}

	info, err := s.jobs.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error().Err(err).Msg("failed to enqueue teacher changed task")
		return
	}

	logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued teacher changed task")
}

// loggerFrom prefers the request-scoped logger carried by ctx.
func (s *TeacherService) loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	if s.logger != nil {
		return s.logger
	}
	nop := zerolog.Nop()
	return &nop
}
