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
)

type ClientService struct {
	txRunner   repo.TxRunner
	clientRepo repo.Client

	logger *logger.Logger
	now    func() time.Time
}

func NewClientService(repos *repo.Repositories, deps Dependencies) *ClientService {
	deps = deps.withDefaults()

	return &ClientService{
		txRunner:   repos.TxRunner,
		clientRepo: repos.Client,
		logger:     deps.Logger.With("service", "client"),
		now:        deps.Now,
	}
}

func (s *ClientService) CreateClient(ctx context.Context, input *entity.CreateClientInput) (*entity.ClientOutputModel, error) {
	if err := required(input.UserId, "user id"); err != nil {
		return nil, err
	}
	if err := required(input.CompanyName, "company name"); err != nil {
		return nil, err
	}

	var client *entity.Client
	err := s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		id, err := s.clientRepo.CreateClient(dbc, &entity.Client{
			UserId:      strings.TrimSpace(input.UserId),
			CompanyName: strings.TrimSpace(input.CompanyName),
			Description: input.Description,
			Website:     input.Website,
			Email:       input.Email,
			Phone:       input.Phone,
			CreatedAt:   s.now(),
		})
		if err != nil {
			return storeError(err)
		}

		client, err = s.clientRepo.GetClientById(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client created", "clientId", client.Id)

	return mapClient(client), nil
}

func (s *ClientService) GetClient(ctx context.Context, clientId string) (*entity.ClientOutputModel, error) {
	id, err := parseId(clientId, "client")
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetClientById(dbctx.New(ctx), id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrClientNotFound
		}

		return nil, err
	}

	return mapClient(client), nil
}
