package pgdb

import (
	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type CompanyRepo struct {
	*postgres.Postgres
}

func NewCompanyRepo(pgdb *postgres.Postgres) *CompanyRepo {
	return &CompanyRepo{pgdb}
}

func (r *CompanyRepo) CreateCompany(dbc dbctx.Context, company *entity.Company) (uuid.UUID, error) {
	createCompanySql, args, _ := r.SqlBuilder.
		Insert("company").
		Columns("name", "description", "website", "email", "phone").
		Values(company.Name, company.Description, company.Website, company.Email, company.Phone).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), createCompanySql, args...).Scan(&id); err != nil {
		return uuid.Nil, translateError(err)
	}

	return id, nil
}

func (r *CompanyRepo) GetCompanyById(dbc dbctx.Context, id uuid.UUID) (*entity.Company, error) {
	getCompanySql, args, _ := r.SqlBuilder.
		Select("id, name, description, website, email, phone").
		From("company").
		Where("id = ?", id).
		ToSql()

	var company entity.Company
	err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getCompanySql, args...).
		Scan(&company.Id, &company.Name, &company.Description, &company.Website, &company.Email, &company.Phone)
	if err != nil {
		return nil, translateError(err)
	}

	return &company, nil
}

func (r *CompanyRepo) DoesCompanyExistById(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	return exists(r.Postgres, dbc, r.SqlBuilder.Select("1").From("company").Where("id = ?", id))
}
