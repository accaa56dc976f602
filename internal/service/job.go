package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/events"
	"job-marketplace-api/internal/repo"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/logger"

	"github.com/shopspring/decimal"
)

type JobService struct {
	txRunner        repo.TxRunner
	companyRepo     repo.Company
	jobRepo         repo.Job
	applicationRepo repo.Application

	notifier notifier
	logger   *logger.Logger
	now      func() time.Time
}

func NewJobService(repos *repo.Repositories, deps Dependencies) *JobService {
	deps = deps.withDefaults()

	return &JobService{
		txRunner:        repos.TxRunner,
		companyRepo:     repos.Company,
		jobRepo:         repos.Job,
		applicationRepo: repos.Application,
		notifier:        newNotifier(deps),
		logger:          deps.Logger.With("service", "job"),
		now:             deps.Now,
	}
}

func (s *JobService) CreateJob(ctx context.Context, input *entity.CreateJobInput) (*entity.JobOutputModel, error) {
	if err := validTitle(input.Title); err != nil {
		return nil, err
	}
	if err := required(input.Description, "description"); err != nil {
		return nil, err
	}
	jobType := entity.JobType(input.JobType)
	if !jobType.Valid() {
		return nil, ErrInvalidJobType
	}
	if input.Salary != nil && input.Salary.IsNegative() {
		return nil, ErrInvalidSalary
	}
	companyId, err := parseId(input.CompanyId, "company")
	if err != nil {
		return nil, err
	}

	job := &entity.Job{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    input.Location,
		JobType:     jobType,
		Status:      entity.JobActive,
		CompanyId:   companyId,
		CreatedAt:   s.now(),
	}
	if input.Salary != nil {
		job.Salary = decimal.NewNullDecimal(*input.Salary)
	}

	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		if err := companyMustExist(dbc, s.companyRepo, companyId); err != nil {
			return err
		}

		id, err := s.jobRepo.CreateJob(dbc, job)
		if err != nil {
			return storeError(err)
		}

		job, err = s.jobRepo.GetJobById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("job created", "jobId", job.Id, "companyId", job.CompanyId)
	s.notifier.publish(ctx, events.JobCreated, map[string]string{
		"jobId":     job.Id.String(),
		"companyId": job.CompanyId.String(),
	})

	return mapJob(job), nil
}

func (s *JobService) GetJob(ctx context.Context, jobId string) (*entity.JobOutputModel, error) {
	id, err := parseId(jobId, "job")
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetJobById(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	return mapJob(job), nil
}

func (s *JobService) UpdateJob(ctx context.Context, jobId string, input *entity.UpdateJobInput) (*entity.JobOutputModel, error) {
	id, err := parseId(jobId, "job")
	if err != nil {
		return nil, err
	}
	if input.Title != "" {
		if err := validTitle(input.Title); err != nil {
			return nil, err
		}
	}
	if input.JobType != "" && !entity.JobType(input.JobType).Valid() {
		return nil, ErrInvalidJobType
	}
	if input.Status != "" && !entity.JobStatus(input.Status).Valid() {
		return nil, ErrInvalidJobStatus
	}
	if input.Salary != nil && input.Salary.IsNegative() {
		return nil, ErrInvalidSalary
	}

	var (
		job     *entity.Job
		deleted bool
	)
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		job, err = s.jobRepo.LockJobForUpdate(dbc, id)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrJobNotFound
			}

			return err
		}

		if strings.TrimSpace(input.Title) != "" {
			job.Title = strings.TrimSpace(input.Title)
		}
		if strings.TrimSpace(input.Description) != "" {
			job.Description = input.Description
		}
		if input.Salary != nil {
			job.Salary = decimal.NewNullDecimal(*input.Salary)
		}
		if strings.TrimSpace(input.Location) != "" {
			job.Location = input.Location
		}
		if input.JobType != "" {
			job.JobType = entity.JobType(input.JobType)
		}
		if input.Status != "" {
			deleted = job.Status != entity.JobDeleted && entity.JobStatus(input.Status) == entity.JobDeleted
			job.Status = entity.JobStatus(input.Status)
		}
		now := s.now()
		job.UpdatedAt = &now

		if err := s.jobRepo.UpdateJob(dbc, job); err != nil {
			return storeError(err)
		}

		job, err = s.jobRepo.GetJobById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("job updated", "jobId", job.Id)
	if deleted {
		s.notifier.publish(ctx, events.JobDeleted, map[string]string{"jobId": id.String()})
	}

	return mapJob(job), nil
}

// DeleteJob is a soft delete. Applications of the job are kept.
func (s *JobService) DeleteJob(ctx context.Context, jobId string) error {
	id, err := parseId(jobId, "job")
	if err != nil {
		return err
	}

	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		job, err := s.jobRepo.LockJobForUpdate(dbc, id)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrJobNotFound
			}

			return err
		}

		job.Status = entity.JobDeleted
		now := s.now()
		job.UpdatedAt = &now

		return storeError(s.jobRepo.UpdateJob(dbc, job))
	})
	if err != nil {
		return err
	}

	s.logger.Info("job deleted", "jobId", id)
	s.notifier.publish(ctx, events.JobDeleted, map[string]string{"jobId": id.String()})

	return nil
}

func (s *JobService) ApplyForJob(ctx context.Context, jobId string, input *entity.CreateApplicationInput) (*entity.ApplicationOutputModel, error) {
	id, err := parseId(jobId, "job")
	if err != nil {
		return nil, err
	}
	applicantId, err := parseId(input.ApplicantId, "applicant")
	if err != nil {
		return nil, err
	}
	if err := required(input.ResumeUrl, "resume url"); err != nil {
		return nil, err
	}

	var application *entity.Application
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		// the share lock keeps a concurrent delete out until the insert commits
		job, err := s.jobRepo.LockJobById(dbc, id)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrJobNotActive
			}

			return err
		}
		if job.Status != entity.JobActive {
			return ErrJobNotActive
		}

		exists, err := s.applicationRepo.DoesApplicationExist(dbc, id, applicantId)
		if err != nil {
			return err
		}
		if exists {
			return ErrApplicationAlreadyExists
		}

		applicationId, err := s.applicationRepo.CreateApplication(dbc, &entity.Application{
			JobId:       id,
			ApplicantId: applicantId,
			CoverLetter: input.CoverLetter,
			ResumeUrl:   strings.TrimSpace(input.ResumeUrl),
			Status:      entity.ApplicationApplied,
			AppliedAt:   s.now(),
		})
		if err != nil {
			if errors.Is(err, repo_errors.ErrDuplicate) {
				return ErrApplicationAlreadyExists
			}

			return storeError(err)
		}

		application, err = s.applicationRepo.GetApplicationById(dbc, applicationId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("application created", "applicationId", application.Id, "jobId", id, "applicantId", applicantId)
	s.notifier.publish(ctx, events.ApplicationCreated, map[string]string{
		"applicationId": application.Id.String(),
		"jobId":         id.String(),
		"applicantId":   applicantId.String(),
	})

	return mapApplication(application), nil
}

func (s *JobService) ListApplications(ctx context.Context, jobId string) ([]entity.ApplicationOutputModel, error) {
	id, err := parseId(jobId, "job")
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.GetJobApplications(dbctx.New(ctx), id)
	if err != nil {
		return nil, err
	}

	return mapApplications(applications), nil
}

func (s *JobService) ListJobs(ctx context.Context, pg *entity.PaginationInput) ([]entity.JobOutputModel, error) {
	if err := validPagination(pg); err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.GetActiveJobs(dbctx.New(ctx), pg)
	if err != nil {
		return nil, err
	}

	return mapJobs(jobs), nil
}

func (s *JobService) ListCompanyJobs(ctx context.Context, companyId string, pg *entity.PaginationInput) ([]entity.JobOutputModel, error) {
	id, err := parseId(companyId, "company")
	if err != nil {
		return nil, err
	}
	if err := validPagination(pg); err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.GetCompanyActiveJobs(dbctx.New(ctx), id, pg)
	if err != nil {
		return nil, err
	}

	return mapJobs(jobs), nil
}
