package pgdb

import (
	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

const applicationColumns = "application.id, application.job_id, job.title, application.applicant_id, " +
	"application.cover_letter, application.resume_url, application.status, application.applied_at"

type ApplicationRepo struct {
	*postgres.Postgres
}

func NewApplicationRepo(pgdb *postgres.Postgres) *ApplicationRepo {
	return &ApplicationRepo{pgdb}
}

func scanApplication(row rowScanner) (*entity.Application, error) {
	var application entity.Application
	err := row.Scan(&application.Id, &application.JobId, &application.JobTitle, &application.ApplicantId,
		&application.CoverLetter, &application.ResumeUrl, &application.Status, &application.AppliedAt)
	if err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *ApplicationRepo) CreateApplication(dbc dbctx.Context, application *entity.Application) (uuid.UUID, error) {
	if !application.Status.Valid() {
		return uuid.Nil, repo_errors.ErrInvalidValue
	}

	createApplicationSql, args, _ := r.SqlBuilder.
		Insert("application").
		Columns("job_id", "applicant_id", "cover_letter", "resume_url", "status", "applied_at").
		Values(application.JobId, application.ApplicantId, application.CoverLetter, application.ResumeUrl,
			string(application.Status), application.AppliedAt).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), createApplicationSql, args...).Scan(&id); err != nil {
		return uuid.Nil, translateError(err)
	}

	return id, nil
}

func (r *ApplicationRepo) GetApplicationById(dbc dbctx.Context, id uuid.UUID) (*entity.Application, error) {
	getApplicationSql, args, _ := r.SqlBuilder.
		Select(applicationColumns).
		From("application").
		InnerJoin("job on job.id = application.job_id").
		Where("application.id = ?", id).
		ToSql()

	application, err := scanApplication(runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getApplicationSql, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return application, nil
}

func (r *ApplicationRepo) DoesApplicationExist(dbc dbctx.Context, jobId uuid.UUID, applicantId uuid.UUID) (bool, error) {
	return exists(r.Postgres, dbc, r.SqlBuilder.
		Select("1").
		From("application").
		Where("job_id = ?", jobId).
		Where("applicant_id = ?", applicantId))
}

func (r *ApplicationRepo) GetJobApplications(dbc dbctx.Context, jobId uuid.UUID) ([]entity.Application, error) {
	getApplicationsSql, args, _ := r.SqlBuilder.
		Select(applicationColumns).
		From("application").
		InnerJoin("job on job.id = application.job_id").
		Where("application.job_id = ?", jobId).
		OrderBy("application.applied_at DESC").
		ToSql()

	rows, err := runner(r.Postgres, dbc).QueryContext(ctxOf(dbc), getApplicationsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := make([]entity.Application, 0)
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return applications, err
		}
		applications = append(applications, *application)
	}
	if err = rows.Err(); err != nil {
		return applications, err
	}

	return applications, nil
}
