package repo

import (
	"context"
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/pgdb"
	"job-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping(ctx context.Context) error
}

// TxRunner runs fn inside one storage transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type Company interface {
	CreateCompany(dbc dbctx.Context, company *entity.Company) (uuid.UUID, error)
	GetCompanyById(dbc dbctx.Context, id uuid.UUID) (*entity.Company, error)
	DoesCompanyExistById(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type Job interface {
	CreateJob(dbc dbctx.Context, job *entity.Job) (uuid.UUID, error)
	GetJobById(dbc dbctx.Context, id uuid.UUID) (*entity.Job, error)
	// LockJobById reads the job and holds a share lock on it until the
	// surrounding transaction ends.
	LockJobById(dbc dbctx.Context, id uuid.UUID) (*entity.Job, error)
	// LockJobForUpdate reads the job and holds an exclusive lock on it until
	// the surrounding transaction ends.
	LockJobForUpdate(dbc dbctx.Context, id uuid.UUID) (*entity.Job, error)
	UpdateJob(dbc dbctx.Context, job *entity.Job) error
	GetActiveJobs(dbc dbctx.Context, pg *entity.PaginationInput) ([]entity.Job, error)
	GetCompanyActiveJobs(dbc dbctx.Context, companyId uuid.UUID, pg *entity.PaginationInput) ([]entity.Job, error)
}

type Application interface {
	CreateApplication(dbc dbctx.Context, application *entity.Application) (uuid.UUID, error)
	GetApplicationById(dbc dbctx.Context, id uuid.UUID) (*entity.Application, error)
	DoesApplicationExist(dbc dbctx.Context, jobId uuid.UUID, applicantId uuid.UUID) (bool, error)
	GetJobApplications(dbc dbctx.Context, jobId uuid.UUID) ([]entity.Application, error)
}

type Client interface {
	CreateClient(dbc dbctx.Context, client *entity.Client) (uuid.UUID, error)
	GetClientById(dbc dbctx.Context, id uuid.UUID) (*entity.Client, error)
	DoesClientExistById(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type Freelancer interface {
	CreateFreelancer(dbc dbctx.Context, freelancer *entity.Freelancer) (uuid.UUID, error)
	GetFreelancerById(dbc dbctx.Context, id uuid.UUID) (*entity.Freelancer, error)
	GetFreelancerByUserId(dbc dbctx.Context, userId string) (*entity.Freelancer, error)
	DoesFreelancerExistById(dbc dbctx.Context, id uuid.UUID) (bool, error)
	UpdateFreelancer(dbc dbctx.Context, freelancer *entity.Freelancer) error
	SearchFreelancers(dbc dbctx.Context, filter *entity.SearchFreelancersInput) ([]entity.Freelancer, error)

	CreatePortfolioItem(dbc dbctx.Context, item *entity.PortfolioItem) (uuid.UUID, error)
	GetPortfolioItemById(dbc dbctx.Context, id uuid.UUID) (*entity.PortfolioItem, error)
	GetFreelancerPortfolio(dbc dbctx.Context, freelancerId uuid.UUID) ([]entity.PortfolioItem, error)
}

type Project interface {
	CreateProject(dbc dbctx.Context, project *entity.Project) (uuid.UUID, error)
	GetProjectById(dbc dbctx.Context, id uuid.UUID) (*entity.Project, error)
	// LockProjectById reads the project row and holds an exclusive lock on it
	// until the surrounding transaction ends. Joined names are not loaded.
	LockProjectById(dbc dbctx.Context, id uuid.UUID) (*entity.Project, error)
	UpdateProject(dbc dbctx.Context, project *entity.Project) error
	GetProjectsByStatus(dbc dbctx.Context, status entity.ProjectStatus, pg *entity.PaginationInput) ([]entity.Project, error)
	GetClientProjects(dbc dbctx.Context, clientId uuid.UUID, pg *entity.PaginationInput) ([]entity.Project, error)
}

type Bid interface {
	CreateBid(dbc dbctx.Context, bid *entity.Bid) (uuid.UUID, error)
	GetBidById(dbc dbctx.Context, id uuid.UUID) (*entity.Bid, error)
	DoesBidExist(dbc dbctx.Context, projectId uuid.UUID, freelancerId uuid.UUID) (bool, error)
	UpdateBidStatus(dbc dbctx.Context, id uuid.UUID, status entity.BidStatus, acceptedAt *time.Time) error
	// RejectOtherProjectBids marks every bid of the project except keepBidId
	// as Rejected and returns how many rows changed.
	RejectOtherProjectBids(dbc dbctx.Context, projectId uuid.UUID, keepBidId uuid.UUID) (int64, error)
	GetProjectBids(dbc dbctx.Context, projectId uuid.UUID) ([]entity.Bid, error)
}

type Repositories struct {
	Diagnostics
	TxRunner
	Company
	Job
	Application
	Client
	Freelancer
	Project
	Bid
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		TxRunner:    pgdb.NewTxRunner(p),
		Company:     pgdb.NewCompanyRepo(p),
		Job:         pgdb.NewJobRepo(p),
		Application: pgdb.NewApplicationRepo(p),
		Client:      pgdb.NewClientRepo(p),
		Freelancer:  pgdb.NewFreelancerRepo(p),
		Project:     pgdb.NewProjectRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}
