package pgdb

import (
	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type ClientRepo struct {
	*postgres.Postgres
}

func NewClientRepo(pgdb *postgres.Postgres) *ClientRepo {
	return &ClientRepo{pgdb}
}

func (r *ClientRepo) CreateClient(dbc dbctx.Context, client *entity.Client) (uuid.UUID, error) {
	createClientSql, args, _ := r.SqlBuilder.
		Insert("client").
		Columns("user_id", "company_name", "description", "website", "email", "phone", "created_at").
		Values(client.UserId, client.CompanyName, client.Description, client.Website, client.Email,
			client.Phone, client.CreatedAt).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), createClientSql, args...).Scan(&id); err != nil {
		return uuid.Nil, translateError(err)
	}

	return id, nil
}

func (r *ClientRepo) GetClientById(dbc dbctx.Context, id uuid.UUID) (*entity.Client, error) {
	getClientSql, args, _ := r.SqlBuilder.
		Select("id, user_id, company_name, description, website, email, phone, total_spent, total_projects, created_at").
		From("client").
		Where("id = ?", id).
		ToSql()

	var client entity.Client
	err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getClientSql, args...).
		Scan(&client.Id, &client.UserId, &client.CompanyName, &client.Description, &client.Website,
			&client.Email, &client.Phone, &client.TotalSpent, &client.TotalProjects, &client.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	return &client, nil
}

func (r *ClientRepo) DoesClientExistById(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	return exists(r.Postgres, dbc, r.SqlBuilder.Select("1").From("client").Where("id = ?", id))
}
