package service

import (
	"context"
	"errors"
	"strings"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/logger"

	"github.com/google/uuid"
)

type CompanyService struct {
	txRunner    repo.TxRunner
	companyRepo repo.Company
	logger      *logger.Logger
}

func NewCompanyService(repos *repo.Repositories, deps Dependencies) *CompanyService {
	deps = deps.withDefaults()

	return &CompanyService{
		txRunner:    repos.TxRunner,
		companyRepo: repos.Company,
		logger:      deps.Logger.With("service", "company"),
	}
}

func (s *CompanyService) CreateCompany(ctx context.Context, input *entity.CreateCompanyInput) (*entity.CompanyOutputModel, error) {
	if err := required(input.Name, "name"); err != nil {
		return nil, err
	}

	var company *entity.Company
	err := s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		id, err := s.companyRepo.CreateCompany(dbc, &entity.Company{
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			Website:     input.Website,
			Email:       input.Email,
			Phone:       input.Phone,
		})
		if err != nil {
			return storeError(err)
		}

		company, err = s.companyRepo.GetCompanyById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("company created", "companyId", company.Id)

	return mapCompany(company), nil
}

func (s *CompanyService) GetCompany(ctx context.Context, companyId string) (*entity.CompanyOutputModel, error) {
	id, err := parseId(companyId, "company")
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetCompanyById(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}

		return nil, err
	}

	return mapCompany(company), nil
}

func companyMustExist(dbc dbctx.Context, companyRepo repo.Company, id uuid.UUID) error {
	exists, err := companyRepo.DoesCompanyExistById(dbc, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCompanyNotFound
	}

	return nil
}
