package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/logger"

	"github.com/shopspring/decimal"
)

type FreelancerService struct {
	txRunner       repo.TxRunner
	freelancerRepo repo.Freelancer

	logger *logger.Logger
	now    func() time.Time
}

func NewFreelancerService(repos *repo.Repositories, deps Dependencies) *FreelancerService {
	deps = deps.withDefaults()

	return &FreelancerService{
		txRunner:       repos.TxRunner,
		freelancerRepo: repos.Freelancer,
		logger:         deps.Logger.With("service", "freelancer"),
		now:            deps.Now,
	}
}

func validHourlyRate(rate decimal.Decimal) error {
	if rate.LessThan(minHourlyRate) || rate.GreaterThan(maxHourlyRate) {
		return ErrInvalidHourlyRate
	}

	return nil
}

func (s *FreelancerService) CreateFreelancer(ctx context.Context, input *entity.CreateFreelancerInput) (*entity.FreelancerOutputModel, error) {
	if err := required(input.UserId, "user id"); err != nil {
		return nil, err
	}
	if err := required(input.FullName, "full name"); err != nil {
		return nil, err
	}
	if err := validHourlyRate(input.HourlyRate); err != nil {
		return nil, err
	}

	userId := strings.TrimSpace(input.UserId)
	var freelancer *entity.Freelancer
	err := s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		_, err := s.freelancerRepo.GetFreelancerByUserId(dbc, userId)
		if err == nil {
			return ErrFreelancerAlreadyExists
		}
		if !errors.Is(err, repo_errors.ErrNotFound) {
			return err
		}

		id, err := s.freelancerRepo.CreateFreelancer(dbc, &entity.Freelancer{
			UserId:          userId,
			FullName:        strings.TrimSpace(input.FullName),
			Title:           input.Title,
			Description:     input.Description,
			HourlyRate:      input.HourlyRate,
			Skills:          nonNil(input.Skills),
			Country:         input.Country,
			ProfileImageUrl: input.ProfileImageUrl,
			CreatedAt:       s.now(),
		})
		if err != nil {
			if errors.Is(err, repo_errors.ErrDuplicate) {
				return ErrFreelancerAlreadyExists
			}

			return storeError(err)
		}

		freelancer, err = s.freelancerRepo.GetFreelancerById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("freelancer created", "freelancerId", freelancer.Id)

	return mapFreelancer(freelancer), nil
}

func (s *FreelancerService) GetFreelancer(ctx context.Context, freelancerId string) (*entity.FreelancerOutputModel, error) {
	id, err := parseId(freelancerId, "freelancer")
	if err != nil {
		return nil, err
	}

	freelancer, err := s.freelancerRepo.GetFreelancerById(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrFreelancerNotFound
		}

		return nil, err
	}

	return mapFreelancer(freelancer), nil
}

func (s *FreelancerService) GetFreelancerByUser(ctx context.Context, userId string) (*entity.FreelancerOutputModel, error) {
	if err := required(userId, "user id"); err != nil {
		return nil, err
	}

	freelancer, err := s.freelancerRepo.GetFreelancerByUserId(dbctx.New(ctx), strings.TrimSpace(userId))
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrFreelancerNotFound
		}

		return nil, err
	}

	return mapFreelancer(freelancer), nil
}

func (s *FreelancerService) UpdateFreelancer(ctx context.Context, freelancerId string, input *entity.UpdateFreelancerInput) (*entity.FreelancerOutputModel, error) {
	id, err := parseId(freelancerId, "freelancer")
	if err != nil {
		return nil, err
	}
	if input.HourlyRate != nil {
		if err := validHourlyRate(*input.HourlyRate); err != nil {
			return nil, err
		}
	}

	var freelancer *entity.Freelancer
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		freelancer, err = s.freelancerRepo.GetFreelancerById(dbc, id)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrFreelancerNotFound
			}

			return err
		}

		if strings.TrimSpace(input.FullName) != "" {
			freelancer.FullName = strings.TrimSpace(input.FullName)
		}
		if strings.TrimSpace(input.Title) != "" {
			freelancer.Title = input.Title
		}
		if strings.TrimSpace(input.Description) != "" {
			freelancer.Description = input.Description
		}
		if input.HourlyRate != nil {
			freelancer.HourlyRate = *input.HourlyRate
		}
		if input.Skills != nil {
			freelancer.Skills = input.Skills
		}
		if strings.TrimSpace(input.Country) != "" {
			freelancer.Country = input.Country
		}
		if strings.TrimSpace(input.ProfileImageUrl) != "" {
			freelancer.ProfileImageUrl = input.ProfileImageUrl
		}

		if err := s.freelancerRepo.UpdateFreelancer(dbc, freelancer); err != nil {
			return storeError(err)
		}

		freelancer, err = s.freelancerRepo.GetFreelancerById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("freelancer updated", "freelancerId", id)

	return mapFreelancer(freelancer), nil
}

func (s *FreelancerService) SearchFreelancers(ctx context.Context, filter *entity.SearchFreelancersInput) ([]entity.FreelancerOutputModel, error) {
	normalized := &entity.SearchFreelancersInput{}
	if filter != nil {
		if filter.MaxHourlyRate != nil && filter.MaxHourlyRate.IsNegative() {
			return nil, ErrInvalidMaxHourlyRate
		}
		normalized.Skill = strings.TrimSpace(filter.Skill)
		normalized.Country = strings.TrimSpace(filter.Country)
		normalized.MaxHourlyRate = filter.MaxHourlyRate
	}

	freelancers, err := s.freelancerRepo.SearchFreelancers(dbctx.New(ctx), normalized)
	if err != nil {
		return nil, err
	}

	return mapFreelancers(freelancers), nil
}

func (s *FreelancerService) AddPortfolioItem(ctx context.Context, freelancerId string, input *entity.CreatePortfolioItemInput) (*entity.PortfolioItemOutputModel, error) {
	id, err := parseId(freelancerId, "freelancer")
	if err != nil {
		return nil, err
	}
	if err := validTitle(input.Title); err != nil {
		return nil, err
	}

	var item *entity.PortfolioItem
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		exists, err := s.freelancerRepo.DoesFreelancerExistById(dbc, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrFreelancerNotFound
		}

		itemId, err := s.freelancerRepo.CreatePortfolioItem(dbc, &entity.PortfolioItem{
			FreelancerId: id,
			Title:        strings.TrimSpace(input.Title),
			Description:  input.Description,
			Technologies: nonNil(input.Technologies),
			ProjectUrl:   input.ProjectUrl,
			ImageUrl:     input.ImageUrl,
			CreatedAt:    s.now(),
		})
		if err != nil {
			return storeError(err)
		}

		item, err = s.freelancerRepo.GetPortfolioItemById(dbc, itemId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("portfolio item added", "freelancerId", id, "itemId", item.Id)

	return mapPortfolioItem(item), nil
}

func (s *FreelancerService) ListPortfolio(ctx context.Context, freelancerId string) ([]entity.PortfolioItemOutputModel, error) {
	id, err := parseId(freelancerId, "freelancer")
	if err != nil {
		return nil, err
	}

	items, err := s.freelancerRepo.GetFreelancerPortfolio(dbctx.New(ctx), id)
	if err != nil {
		return nil, err
	}

	return mapPortfolioItems(items), nil
}
