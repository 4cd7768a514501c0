// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/schoolapp/internal/lib/job"
	"github.com/deppfellow/schoolapp/internal/repository"
	"github.com/deppfellow/schoolapp/internal/server"
)

type Services struct {
	Teacher *TeacherService
	Job     *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var enqueuer TaskEnqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Teacher: NewTeacherService(repos.Teacher, enqueuer, s.Logger),
		Job:     s.Job,
	}, nil
}
