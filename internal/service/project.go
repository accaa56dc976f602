package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/events"
	"job-marketplace-api/internal/repo"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProjectService struct {
	txRunner       repo.TxRunner
	clientRepo     repo.Client
	freelancerRepo repo.Freelancer
	projectRepo    repo.Project
	bidRepo        repo.Bid

	notifier notifier
	logger   *logger.Logger
	now      func() time.Time
}

func NewProjectService(repos *repo.Repositories, deps Dependencies) *ProjectService {
	deps = deps.withDefaults()

	return &ProjectService{
		txRunner:       repos.TxRunner,
		clientRepo:     repos.Client,
		freelancerRepo: repos.Freelancer,
		projectRepo:    repos.Project,
		bidRepo:        repos.Bid,
		notifier:       newNotifier(deps),
		logger:         deps.Logger.With("service", "project"),
		now:            deps.Now,
	}
}

func validBudget(budget decimal.Decimal) error {
	if budget.LessThan(decimal.NewFromInt(1)) || budget.GreaterThan(maxBudget) {
		return ErrInvalidBudget
	}

	return nil
}

func (s *ProjectService) CreateProject(ctx context.Context, input *entity.CreateProjectInput) (*entity.ProjectOutputModel, error) {
	if err := validTitle(input.Title); err != nil {
		return nil, err
	}
	if err := required(input.Description, "description"); err != nil {
		return nil, err
	}
	if err := validBudget(input.Budget); err != nil {
		return nil, err
	}
	skillLevel := entity.SkillLevel(input.SkillLevel)
	if !skillLevel.Valid() {
		return nil, ErrInvalidSkillLevel
	}
	if input.Deadline.IsZero() {
		return nil, ErrDeadlineRequired
	}
	clientId, err := parseId(input.ClientId, "client")
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	project := &entity.Project{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Budget:         input.Budget,
		Currency:       currency,
		Status:         entity.ProjectOpen,
		SkillLevel:     skillLevel,
		RequiredSkills: nonNil(input.RequiredSkills),
		Deadline:       input.Deadline.UTC(),
		ClientId:       clientId,
		CreatedAt:      s.now(),
	}

	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		exists, err := s.clientRepo.DoesClientExistById(dbc, clientId)
		if err != nil {
			return err
		}
		if !exists {
			return ErrClientNotFound
		}

		id, err := s.projectRepo.CreateProject(dbc, project)
		if err != nil {
			return storeError(err)
		}

		project, err = s.projectRepo.GetProjectById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created", "projectId", project.Id, "clientId", clientId)
	s.notifier.publish(ctx, events.ProjectCreated, map[string]string{
		"projectId": project.Id.String(),
		"clientId":  clientId.String(),
	})

	return mapProject(project), nil
}

func (s *ProjectService) GetProject(ctx context.Context, projectId string) (*entity.ProjectOutputModel, error) {
	id, err := parseId(projectId, "project")
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetProjectById(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}

	return mapProject(project), nil
}

func (s *ProjectService) ListOpenProjects(ctx context.Context, pg *entity.PaginationInput) ([]entity.ProjectOutputModel, error) {
	if err := validPagination(pg); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.GetProjectsByStatus(dbctx.New(ctx), entity.ProjectOpen, pg)
	if err != nil {
		return nil, err
	}

	return mapProjects(projects), nil
}

func (s *ProjectService) ListClientProjects(ctx context.Context, clientId string, pg *entity.PaginationInput) ([]entity.ProjectOutputModel, error) {
	id, err := parseId(clientId, "client")
	if err != nil {
		return nil, err
	}
	if err := validPagination(pg); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.GetClientProjects(dbctx.New(ctx), id, pg)
	if err != nil {
		return nil, err
	}

	return mapProjects(projects), nil
}

func (s *ProjectService) ListProjectsByStatus(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.ProjectOutputModel, error) {
	projectStatus := entity.ProjectStatus(status)
	if !projectStatus.Valid() {
		return nil, ErrInvalidProjectStatus
	}
	if err := validPagination(pg); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.GetProjectsByStatus(dbctx.New(ctx), projectStatus, pg)
	if err != nil {
		return nil, err
	}

	return mapProjects(projects), nil
}

func (s *ProjectService) lockProject(dbc dbctx.Context, id uuid.UUID, notFound error) (*entity.Project, error) {
	project, err := s.projectRepo.LockProjectById(dbc, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, notFound
		}

		return nil, err
	}

	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectId string, input *entity.UpdateProjectInput) (*entity.ProjectOutputModel, error) {
	id, err := parseId(projectId, "project")
	if err != nil {
		return nil, err
	}
	if input.Title != "" {
		if err := validTitle(input.Title); err != nil {
			return nil, err
		}
	}
	if input.Budget != nil {
		if err := validBudget(*input.Budget); err != nil {
			return nil, err
		}
	}
	if input.SkillLevel != "" && !entity.SkillLevel(input.SkillLevel).Valid() {
		return nil, ErrInvalidSkillLevel
	}
	nextStatus := entity.ProjectStatus(input.Status)
	if input.Status != "" && !nextStatus.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	var (
		project *entity.Project
		closed  bool
	)
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		project, err = s.lockProject(dbc, id, ErrProjectNotFound)
		if err != nil {
			return err
		}

		if input.Status != "" && nextStatus != project.Status {
			// assignment to a freelancer only happens through AcceptBid
			if nextStatus == entity.ProjectInProgress || !project.Status.CanTransitionTo(nextStatus) {
				return ErrIllegalProjectTransition
			}
			project.Status = nextStatus
			closed = nextStatus == entity.ProjectClosed
		}
		if strings.TrimSpace(input.Title) != "" {
			project.Title = strings.TrimSpace(input.Title)
		}
		if strings.TrimSpace(input.Description) != "" {
			project.Description = input.Description
		}
		if input.Budget != nil {
			project.Budget = *input.Budget
		}
		if input.SkillLevel != "" {
			project.SkillLevel = entity.SkillLevel(input.SkillLevel)
		}
		if input.RequiredSkills != nil {
			project.RequiredSkills = input.RequiredSkills
		}
		if input.Deadline != nil {
			project.Deadline = input.Deadline.UTC()
		}
		now := s.now()
		project.UpdatedAt = &now

		if err := s.projectRepo.UpdateProject(dbc, project); err != nil {
			return storeError(err)
		}

		project, err = s.projectRepo.GetProjectById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "projectId", id, "status", project.Status)
	if closed {
		s.notifier.publish(ctx, events.ProjectClosed, map[string]string{"projectId": id.String()})
	}

	return mapProject(project), nil
}

// CloseProject moves an Open project to Closed. Closing a Closed project is a
// no-op. Projects already in progress or completed cannot be closed.
func (s *ProjectService) CloseProject(ctx context.Context, projectId string) error {
	id, err := parseId(projectId, "project")
	if err != nil {
		return err
	}

	var closed bool
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		project, err := s.lockProject(dbc, id, ErrProjectNotFound)
		if err != nil {
			return err
		}

		switch project.Status {
		case entity.ProjectClosed:
			return nil
		case entity.ProjectOpen:
		default:
			return ErrProjectNotClosable
		}

		project.Status = entity.ProjectClosed
		now := s.now()
		project.UpdatedAt = &now
		if err := s.projectRepo.UpdateProject(dbc, project); err != nil {
			return storeError(err)
		}
		closed = true

		return nil
	})
	if err != nil {
		return err
	}

	if closed {
		s.logger.Info("project closed", "projectId", id)
		s.notifier.publish(ctx, events.ProjectClosed, map[string]string{"projectId": id.String()})
	}

	return nil
}

func (s *ProjectService) SubmitBid(ctx context.Context, projectId string, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidBidAmount
	}
	if input.DeliveryDays < entity.MinDeliveryDays || input.DeliveryDays > entity.MaxDeliveryDays {
		return nil, ErrInvalidDeliveryDays
	}
	if err := required(input.Proposal, "proposal"); err != nil {
		return nil, err
	}
	id, err := parseId(projectId, "project")
	if err != nil {
		return nil, err
	}
	freelancerId, err := parseId(input.FreelancerId, "freelancer")
	if err != nil {
		return nil, err
	}

	var bid *entity.Bid
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		project, err := s.lockProject(dbc, id, ErrProjectNotBiddable)
		if err != nil {
			return err
		}
		if project.Status != entity.ProjectOpen {
			return ErrProjectNotBiddable
		}

		exists, err := s.freelancerRepo.DoesFreelancerExistById(dbc, freelancerId)
		if err != nil {
			return err
		}
		if !exists {
			return ErrFreelancerNotFound
		}

		exists, err = s.bidRepo.DoesBidExist(dbc, id, freelancerId)
		if err != nil {
			return err
		}
		if exists {
			return ErrBidAlreadyExists
		}

		bidId, err := s.bidRepo.CreateBid(dbc, &entity.Bid{
			ProjectId:    id,
			FreelancerId: freelancerId,
			Amount:       input.Amount,
			Proposal:     input.Proposal,
			DeliveryDays: input.DeliveryDays,
			Status:       entity.BidSubmitted,
			SubmittedAt:  s.now(),
		})
		if err != nil {
			if errors.Is(err, repo_errors.ErrDuplicate) {
				return ErrBidAlreadyExists
			}

			return storeError(err)
		}

		bid, err = s.bidRepo.GetBidById(dbc, bidId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bid submitted", "bidId", bid.Id, "projectId", id, "freelancerId", freelancerId)
	s.notifier.publish(ctx, events.BidSubmitted, map[string]string{
		"bidId":        bid.Id.String(),
		"projectId":    id.String(),
		"freelancerId": freelancerId.String(),
	})

	return mapBid(bid), nil
}

// AcceptBid accepts one bid, assigns its freelancer to the project and rejects
// every other bid of the project in a single transaction. The project row lock
// serializes concurrent acceptances; the loser sees a project that is no
// longer Open.
func (s *ProjectService) AcceptBid(ctx context.Context, bidId string) (*entity.BidOutputModel, error) {
	id, err := parseId(bidId, "bid")
	if err != nil {
		return nil, err
	}

	var (
		bid      *entity.Bid
		rejected int64
	)
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		bid, err = s.bidRepo.GetBidById(dbc, id)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrBidNotFound
			}

			return err
		}

		project, err := s.lockProject(dbc, bid.ProjectId, ErrProjectNotFound)
		if err != nil {
			return err
		}
		if project.Status != entity.ProjectOpen {
			return ErrProjectNotOpen
		}

		// re-read under the lock: the first read may predate a concurrent decision
		bid, err = s.bidRepo.GetBidById(dbc, id)
		if err != nil {
			return err
		}
		if bid.Status != entity.BidSubmitted {
			return ErrBidNotSubmitted
		}

		now := s.now()
		if err := s.bidRepo.UpdateBidStatus(dbc, id, entity.BidAccepted, &now); err != nil {
			return err
		}

		project.Status = entity.ProjectInProgress
		project.AssignedFreelancerId = &bid.FreelancerId
		project.UpdatedAt = &now
		if err := s.projectRepo.UpdateProject(dbc, project); err != nil {
			return storeError(err)
		}

		rejected, err = s.bidRepo.RejectOtherProjectBids(dbc, project.Id, id)
		if err != nil {
			return err
		}

		bid, err = s.bidRepo.GetBidById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bid accepted", "bidId", id, "projectId", bid.ProjectId, "rejectedBids", rejected)
	s.notifier.publish(ctx, events.BidAccepted, map[string]string{
		"bidId":        id.String(),
		"projectId":    bid.ProjectId.String(),
		"freelancerId": bid.FreelancerId.String(),
		"rejectedBids": strconv.FormatInt(rejected, 10),
	})

	return mapBid(bid), nil
}

func (s *ProjectService) ListBids(ctx context.Context, projectId string) ([]entity.BidOutputModel, error) {
	id, err := parseId(projectId, "project")
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.GetProjectBids(dbctx.New(ctx), id)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}
