package pgdb

import (
	"database/sql"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const jobColumns = "job.id, job.title, job.description, job.salary, job.location, job.job_type, job.status, " +
	"job.company_id, company.name, job.created_at, job.updated_at"

type JobRepo struct {
	*postgres.Postgres
}

func NewJobRepo(pgdb *postgres.Postgres) *JobRepo {
	return &JobRepo{pgdb}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*entity.Job, error) {
	var job entity.Job
	err := row.Scan(&job.Id, &job.Title, &job.Description, &job.Salary, &job.Location, &job.JobType,
		&job.Status, &job.CompanyId, &job.CompanyName, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func validJob(job *entity.Job) bool {
	return job.Status.Valid() && job.JobType.Valid()
}

func (r *JobRepo) selectJobs() squirrel.SelectBuilder {
	return r.SqlBuilder.
		Select(jobColumns).
		From("job").
		InnerJoin("company on company.id = job.company_id")
}

func (r *JobRepo) CreateJob(dbc dbctx.Context, job *entity.Job) (uuid.UUID, error) {
	if !validJob(job) {
		return uuid.Nil, repo_errors.ErrInvalidValue
	}

	createJobSql, args, _ := r.SqlBuilder.
		Insert("job").
		Columns("title", "description", "salary", "location", "job_type", "status", "company_id", "created_at").
		Values(job.Title, job.Description, job.Salary, job.Location, string(job.JobType), string(job.Status),
			job.CompanyId, job.CreatedAt).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), createJobSql, args...).Scan(&id); err != nil {
		return uuid.Nil, translateError(err)
	}

	return id, nil
}

func (r *JobRepo) GetJobById(dbc dbctx.Context, id uuid.UUID) (*entity.Job, error) {
	getJobSql, args, _ := r.selectJobs().
		Where("job.id = ?", id).
		ToSql()

	job, err := scanJob(runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getJobSql, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return job, nil
}

func (r *JobRepo) LockJobById(dbc dbctx.Context, id uuid.UUID) (*entity.Job, error) {
	return r.lockJob(dbc, id, "FOR SHARE OF job")
}

func (r *JobRepo) LockJobForUpdate(dbc dbctx.Context, id uuid.UUID) (*entity.Job, error) {
	return r.lockJob(dbc, id, "FOR UPDATE OF job")
}

func (r *JobRepo) lockJob(dbc dbctx.Context, id uuid.UUID, lock string) (*entity.Job, error) {
	getJobSql, args, _ := r.selectJobs().
		Where("job.id = ?", id).
		Suffix(lock).
		ToSql()

	job, err := scanJob(runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getJobSql, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return job, nil
}

func (r *JobRepo) UpdateJob(dbc dbctx.Context, job *entity.Job) error {
	if !validJob(job) {
		return repo_errors.ErrInvalidValue
	}

	updateJobSql, args, _ := r.SqlBuilder.
		Update("job").
		Set("title", job.Title).
		Set("description", job.Description).
		Set("salary", job.Salary).
		Set("location", job.Location).
		Set("job_type", string(job.JobType)).
		Set("status", string(job.Status)).
		Set("updated_at", job.UpdatedAt).
		Where("id = ?", job.Id).
		ToSql()

	res, err := runner(r.Postgres, dbc).ExecContext(ctxOf(dbc), updateJobSql, args...)
	if err != nil {
		return translateError(err)
	}

	return requireAffected(res)
}

func (r *JobRepo) GetActiveJobs(dbc dbctx.Context, pg *entity.PaginationInput) ([]entity.Job, error) {
	getJobsSql, args, _ := paginate(r.selectJobs().
		Where("job.status = ?", string(entity.JobActive)).
		OrderBy("job.created_at DESC"), pg).
		ToSql()

	return r.queryJobs(dbc, getJobsSql, args)
}

func (r *JobRepo) GetCompanyActiveJobs(dbc dbctx.Context, companyId uuid.UUID, pg *entity.PaginationInput) ([]entity.Job, error) {
	getJobsSql, args, _ := paginate(r.selectJobs().
		Where("job.company_id = ?", companyId).
		Where("job.status = ?", string(entity.JobActive)).
		OrderBy("job.created_at DESC"), pg).
		ToSql()

	return r.queryJobs(dbc, getJobsSql, args)
}

func (r *JobRepo) queryJobs(dbc dbctx.Context, query string, args []any) ([]entity.Job, error) {
	rows, err := runner(r.Postgres, dbc).QueryContext(ctxOf(dbc), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]entity.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, *job)
	}
	if err = rows.Err(); err != nil {
		return jobs, err
	}

	return jobs, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}
