package service

import (
	"context"
	"errors"
	"testing"

	"job-marketplace-api/internal/apperr"
	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func createCompany(t *testing.T, env *testEnv) *entity.CompanyOutputModel {
	t.Helper()

	company, err := env.services.Company.CreateCompany(context.Background(), &entity.CreateCompanyInput{
		Name:  "Acme",
		Email: "jobs@acme.test",
	})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	return company
}

func createJob(t *testing.T, env *testEnv, companyId string, title string) *entity.JobOutputModel {
	t.Helper()

	salary := decimal.NewFromInt(85000)
	job, err := env.services.Job.CreateJob(context.Background(), &entity.CreateJobInput{
		Title:       title,
		Description: "Build and run services",
		Salary:      &salary,
		Location:    "Berlin",
		JobType:     string(entity.FullTime),
		CompanyId:   companyId,
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	return job
}

func TestCreateJob(t *testing.T) {
	env := newTestEnv()
	company := createCompany(t, env)

	job := createJob(t, env, company.Id, "Backend Engineer")

	if job.Status != string(entity.JobActive) {
		t.Fatalf("expected Active, got %q", job.Status)
	}
	if job.CompanyName != "Acme" {
		t.Fatalf("expected company name to be joined, got %q", job.CompanyName)
	}
	if job.Salary == nil || !job.Salary.Equal(decimal.NewFromInt(85000)) {
		t.Fatalf("unexpected salary %v", job.Salary)
	}
	if job.UpdatedAt != "" {
		t.Fatalf("new job must not carry updatedAt, got %q", job.UpdatedAt)
	}
	if got := env.events.Subjects(); len(got) != 1 || got[0] != events.JobCreated {
		t.Fatalf("unexpected events %v", got)
	}
}

func TestCreateJobValidation(t *testing.T) {
	env := newTestEnv()
	company := createCompany(t, env)
	negative := decimal.NewFromInt(-1)

	cases := []struct {
		name  string
		input entity.CreateJobInput
		want  apperr.Kind
	}{
		{"missing company", entity.CreateJobInput{Title: "t", Description: "d", JobType: "Contract", CompanyId: uuid.NewString()}, apperr.KindNotFound},
		{"malformed company id", entity.CreateJobInput{Title: "t", Description: "d", JobType: "Contract", CompanyId: "acme"}, apperr.KindInvalidArgument},
		{"bad job type", entity.CreateJobInput{Title: "t", Description: "d", JobType: "Freelance", CompanyId: company.Id}, apperr.KindInvalidArgument},
		{"blank title", entity.CreateJobInput{Title: "  ", Description: "d", JobType: "Contract", CompanyId: company.Id}, apperr.KindInvalidArgument},
		{"negative salary", entity.CreateJobInput{Title: "t", Description: "d", JobType: "Contract", Salary: &negative, CompanyId: company.Id}, apperr.KindInvalidArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tc.input
			_, err := env.services.Job.CreateJob(context.Background(), &input)
			if got := apperr.KindOf(err); got != tc.want {
				t.Fatalf("kind = %q, want %q (err %v)", got, tc.want, err)
			}
		})
	}

	if n := len(env.store.jobs); n != 0 {
		t.Fatalf("no job should have been stored, got %d", n)
	}
}

func TestApplyDeleteScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	company := createCompany(t, env)
	job := createJob(t, env, company.Id, "Backend Engineer")
	applicant := uuid.NewString()

	application, err := env.services.Job.ApplyForJob(ctx, job.Id, &entity.CreateApplicationInput{
		ApplicantId: applicant,
		CoverLetter: "hello",
		ResumeUrl:   "https://cv.test/me.pdf",
	})
	if err != nil {
		t.Fatalf("ApplyForJob: %v", err)
	}
	if application.Status != string(entity.ApplicationApplied) || application.JobTitle != "Backend Engineer" {
		t.Fatalf("unexpected application %+v", application)
	}

	_, err = env.services.Job.ApplyForJob(ctx, job.Id, &entity.CreateApplicationInput{
		ApplicantId: applicant,
		ResumeUrl:   "https://cv.test/me.pdf",
	})
	if !errors.Is(err, ErrApplicationAlreadyExists) {
		t.Fatalf("expected duplicate application conflict, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict kind, got %q", apperr.KindOf(err))
	}

	applications, err := env.services.Job.ListApplications(ctx, job.Id)
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
	if len(applications) != 1 {
		t.Fatalf("expected exactly one application, got %d", len(applications))
	}

	if err := env.services.Job.DeleteJob(ctx, job.Id); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}

	jobs, err := env.services.Job.ListJobs(ctx, entity.NewPaginationInput(0, 0))
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	for _, j := range jobs {
		if j.Id == job.Id {
			t.Fatal("deleted job must not be listed")
		}
	}

	deleted, err := env.services.Job.GetJob(ctx, job.Id)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if deleted.Status != string(entity.JobDeleted) || deleted.UpdatedAt == "" {
		t.Fatalf("expected Deleted with updatedAt, got %+v", deleted)
	}

	applications, err = env.services.Job.ListApplications(ctx, job.Id)
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
	if len(applications) != 1 || applications[0].Id != application.Id {
		t.Fatalf("applications must survive deletion, got %+v", applications)
	}

	_, err = env.services.Job.ApplyForJob(ctx, job.Id, &entity.CreateApplicationInput{
		ApplicantId: uuid.NewString(),
		ResumeUrl:   "https://cv.test/other.pdf",
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("applying to a deleted job should be NotFound, got %v", err)
	}

	want := []string{events.JobCreated, events.ApplicationCreated, events.JobDeleted}
	got := env.events.Subjects()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestApplyForJobDuplicateCaughtByConstraint(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	company := createCompany(t, env)
	job := createJob(t, env, company.Id, "SRE")
	input := &entity.CreateApplicationInput{ApplicantId: uuid.NewString(), ResumeUrl: "https://cv.test/a.pdf"}

	if _, err := env.services.Job.ApplyForJob(ctx, job.Id, input); err != nil {
		t.Fatalf("ApplyForJob: %v", err)
	}

	env.store.hideExisting = true
	_, err := env.services.Job.ApplyForJob(ctx, job.Id, input)
	if !errors.Is(err, ErrApplicationAlreadyExists) {
		t.Fatalf("expected conflict from unique constraint, got %v", err)
	}
	if n := len(env.store.applications); n != 1 {
		t.Fatalf("expected 1 stored application, got %d", n)
	}
}

func TestApplyForJobMissingJob(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Job.ApplyForJob(context.Background(), uuid.NewString(), &entity.CreateApplicationInput{
		ApplicantId: uuid.NewString(),
		ResumeUrl:   "https://cv.test/a.pdf",
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUpdateJobPartial(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	company := createCompany(t, env)
	job := createJob(t, env, company.Id, "Backend Engineer")

	updated, err := env.services.Job.UpdateJob(ctx, job.Id, &entity.UpdateJobInput{
		Location: "Remote",
		JobType:  string(entity.Contract),
	})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if updated.Title != job.Title || updated.Description != job.Description {
		t.Fatalf("absent fields must be kept: %+v", updated)
	}
	if updated.Location != "Remote" || updated.JobType != string(entity.Contract) {
		t.Fatalf("present fields must be applied: %+v", updated)
	}
	if updated.UpdatedAt == "" {
		t.Fatal("updatedAt must be stamped")
	}

	_, err = env.services.Job.UpdateJob(ctx, job.Id, &entity.UpdateJobInput{Status: "Archived"})
	if !errors.Is(err, ErrInvalidJobStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}

	_, err = env.services.Job.UpdateJob(ctx, uuid.NewString(), &entity.UpdateJobInput{Title: "x"})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestJobWritesTakeExclusiveLock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	company := createCompany(t, env)
	job := createJob(t, env, company.Id, "Backend Engineer")
	env.store.takeJobLocks()

	if _, err := env.services.Job.UpdateJob(ctx, job.Id, &entity.UpdateJobInput{Title: "Staff Engineer"}); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if err := env.services.Job.DeleteJob(ctx, job.Id); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	_, _ = env.services.Job.ApplyForJob(ctx, job.Id, &entity.CreateApplicationInput{
		ApplicantId: uuid.NewString(),
		ResumeUrl:   "https://cv.test/1.pdf",
	})

	locks := env.store.takeJobLocks()
	want := []string{"update", "update", "share"}
	if len(locks) != len(want) {
		t.Fatalf("locks = %v, want %v", locks, want)
	}
	for i := range want {
		if locks[i] != want[i] {
			t.Fatalf("locks = %v, want %v", locks, want)
		}
	}
}

func TestUpdateJobToDeletedPublishesEvent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	company := createCompany(t, env)
	job := createJob(t, env, company.Id, "Backend Engineer")

	countDeleted := func() int {
		n := 0
		for _, subject := range env.events.Subjects() {
			if subject == events.JobDeleted {
				n++
			}
		}
		return n
	}

	if _, err := env.services.Job.UpdateJob(ctx, job.Id, &entity.UpdateJobInput{Title: "Renamed"}); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if n := countDeleted(); n != 0 {
		t.Fatalf("title change published %d delete events", n)
	}

	updated, err := env.services.Job.UpdateJob(ctx, job.Id, &entity.UpdateJobInput{Status: string(entity.JobDeleted)})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if updated.Status != string(entity.JobDeleted) {
		t.Fatalf("status = %s", updated.Status)
	}
	if n := countDeleted(); n != 1 {
		t.Fatalf("delete events = %d, want 1", n)
	}

	if _, err := env.services.Job.UpdateJob(ctx, job.Id, &entity.UpdateJobInput{Status: string(entity.JobDeleted)}); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if n := countDeleted(); n != 1 {
		t.Fatalf("repeated delete status published again, events = %d", n)
	}
}

func TestListJobsOrderAndPagination(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	company := createCompany(t, env)
	other := createCompany(t, env)

	first := createJob(t, env, company.Id, "first")
	second := createJob(t, env, other.Id, "second")
	third := createJob(t, env, company.Id, "third")

	jobs, err := env.services.Job.ListJobs(ctx, entity.NewPaginationInput(2, 0))
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 2 || jobs[0].Id != third.Id || jobs[1].Id != second.Id {
		t.Fatalf("expected newest first, got %+v", jobs)
	}

	companyJobs, err := env.services.Job.ListCompanyJobs(ctx, company.Id, nil)
	if err != nil {
		t.Fatalf("ListCompanyJobs: %v", err)
	}
	if len(companyJobs) != 2 || companyJobs[0].Id != third.Id || companyJobs[1].Id != first.Id {
		t.Fatalf("unexpected company jobs %+v", companyJobs)
	}

	if _, err := env.services.Job.ListJobs(ctx, entity.NewPaginationInput(101, 0)); !errors.Is(err, ErrInvalidPagination) {
		t.Fatalf("expected pagination error, got %v", err)
	}
}

func TestPublishFailureDoesNotUndoCommit(t *testing.T) {
	env := newTestEnv()
	company := createCompany(t, env)
	env.events.FailWith(errors.New("nats: connection closed"))

	job := createJob(t, env, company.Id, "Backend Engineer")

	if _, err := env.services.Job.GetJob(context.Background(), job.Id); err != nil {
		t.Fatalf("job must be stored despite the publish failure: %v", err)
	}
}

func TestGetCompany(t *testing.T) {
	env := newTestEnv()
	company := createCompany(t, env)

	got, err := env.services.Company.GetCompany(context.Background(), company.Id)
	if err != nil || got.Name != "Acme" {
		t.Fatalf("GetCompany = %+v, %v", got, err)
	}

	if _, err := env.services.Company.GetCompany(context.Background(), uuid.NewString()); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := env.services.Company.CreateCompany(context.Background(), &entity.CreateCompanyInput{}); apperr.KindOf(err) != apperr.KindInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
