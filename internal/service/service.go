package service

import (
	"context"
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/events"
	"job-marketplace-api/internal/repo"
	"job-marketplace-api/pkg/logger"
)

type Diagnostics interface {
	Ping(ctx context.Context) error
}

type Company interface {
	CreateCompany(ctx context.Context, input *entity.CreateCompanyInput) (*entity.CompanyOutputModel, error)
	GetCompany(ctx context.Context, companyId string) (*entity.CompanyOutputModel, error)
}

type Job interface {
	CreateJob(ctx context.Context, input *entity.CreateJobInput) (*entity.JobOutputModel, error)
	GetJob(ctx context.Context, jobId string) (*entity.JobOutputModel, error)
	UpdateJob(ctx context.Context, jobId string, input *entity.UpdateJobInput) (*entity.JobOutputModel, error)
	DeleteJob(ctx context.Context, jobId string) error

	ApplyForJob(ctx context.Context, jobId string, input *entity.CreateApplicationInput) (*entity.ApplicationOutputModel, error)
	ListApplications(ctx context.Context, jobId string) ([]entity.ApplicationOutputModel, error)

	ListJobs(ctx context.Context, pg *entity.PaginationInput) ([]entity.JobOutputModel, error)
	ListCompanyJobs(ctx context.Context, companyId string, pg *entity.PaginationInput) ([]entity.JobOutputModel, error)
}

type Client interface {
	CreateClient(ctx context.Context, input *entity.CreateClientInput) (*entity.ClientOutputModel, error)
	GetClient(ctx context.Context, clientId string) (*entity.ClientOutputModel, error)
}

type Freelancer interface {
	CreateFreelancer(ctx context.Context, input *entity.CreateFreelancerInput) (*entity.FreelancerOutputModel, error)
	GetFreelancer(ctx context.Context, freelancerId string) (*entity.FreelancerOutputModel, error)
	GetFreelancerByUser(ctx context.Context, userId string) (*entity.FreelancerOutputModel, error)
	UpdateFreelancer(ctx context.Context, freelancerId string, input *entity.UpdateFreelancerInput) (*entity.FreelancerOutputModel, error)
	SearchFreelancers(ctx context.Context, filter *entity.SearchFreelancersInput) ([]entity.FreelancerOutputModel, error)

	AddPortfolioItem(ctx context.Context, freelancerId string, input *entity.CreatePortfolioItemInput) (*entity.PortfolioItemOutputModel, error)
	ListPortfolio(ctx context.Context, freelancerId string) ([]entity.PortfolioItemOutputModel, error)
}

type Project interface {
	CreateProject(ctx context.Context, input *entity.CreateProjectInput) (*entity.ProjectOutputModel, error)
	GetProject(ctx context.Context, projectId string) (*entity.ProjectOutputModel, error)
	UpdateProject(ctx context.Context, projectId string, input *entity.UpdateProjectInput) (*entity.ProjectOutputModel, error)
	CloseProject(ctx context.Context, projectId string) error

	ListOpenProjects(ctx context.Context, pg *entity.PaginationInput) ([]entity.ProjectOutputModel, error)
	ListClientProjects(ctx context.Context, clientId string, pg *entity.PaginationInput) ([]entity.ProjectOutputModel, error)
	ListProjectsByStatus(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.ProjectOutputModel, error)

	SubmitBid(ctx context.Context, projectId string, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	AcceptBid(ctx context.Context, bidId string) (*entity.BidOutputModel, error)
	ListBids(ctx context.Context, projectId string) ([]entity.BidOutputModel, error)
}

// Dependencies are shared by every workflow service.
type Dependencies struct {
	Publisher events.Publisher
	Logger    *logger.Logger
	Now       func() time.Time
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Publisher == nil {
		d.Publisher = events.NewNopPublisher()
	}
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}

	return d
}

type Services struct {
	Diagnostics Diagnostics
	Company     Company
	Job         Job
	Client      Client
	Freelancer  Freelancer
	Project     Project
}

func NewServices(repos *repo.Repositories, deps Dependencies) *Services {
	deps = deps.withDefaults()

	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Company:     NewCompanyService(repos, deps),
		Job:         NewJobService(repos, deps),
		Client:      NewClientService(repos, deps),
		Freelancer:  NewFreelancerService(repos, deps),
		Project:     NewProjectService(repos, deps),
	}
}

// notifier publishes events for operations that already committed. A failed
// publish is logged and otherwise ignored.
type notifier struct {
	publisher events.Publisher
	logger    *logger.Logger
	now       func() time.Time
}

func newNotifier(deps Dependencies) notifier {
	return notifier{publisher: deps.Publisher, logger: deps.Logger, now: deps.Now}
}

func (n notifier) publish(ctx context.Context, subject string, attrs map[string]string) {
	err := n.publisher.Publish(ctx, events.Event{
		Subject:    subject,
		OccurredAt: n.now(),
		Attributes: attrs,
	})
	if err != nil {
		n.logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}
