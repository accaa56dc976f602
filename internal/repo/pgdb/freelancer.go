package pgdb

import (
	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const freelancerColumns = "freelancer.id, freelancer.user_id, freelancer.full_name, freelancer.title, " +
	"freelancer.description, freelancer.hourly_rate, freelancer.skills, freelancer.country, freelancer.rating, " +
	"freelancer.total_projects, freelancer.success_rate, freelancer.profile_image_url, freelancer.created_at, " +
	"(SELECT count(*) FROM portfolio_item WHERE portfolio_item.freelancer_id = freelancer.id)"

const portfolioColumns = "id, freelancer_id, title, description, technologies, project_url, image_url, created_at"

type FreelancerRepo struct {
	*postgres.Postgres
}

func NewFreelancerRepo(pgdb *postgres.Postgres) *FreelancerRepo {
	return &FreelancerRepo{pgdb}
}

func scanFreelancer(row rowScanner) (*entity.Freelancer, error) {
	var f entity.Freelancer
	err := row.Scan(&f.Id, &f.UserId, &f.FullName, &f.Title, &f.Description, &f.HourlyRate,
		pq.Array(&f.Skills), &f.Country, &f.Rating, &f.TotalProjects, &f.SuccessRate, &f.ProfileImageUrl,
		&f.CreatedAt, &f.PortfolioCount)
	if err != nil {
		return nil, err
	}
	if f.Skills == nil {
		f.Skills = []string{}
	}

	return &f, nil
}

func scanPortfolioItem(row rowScanner) (*entity.PortfolioItem, error) {
	var item entity.PortfolioItem
	err := row.Scan(&item.Id, &item.FreelancerId, &item.Title, &item.Description, pq.Array(&item.Technologies),
		&item.ProjectUrl, &item.ImageUrl, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	if item.Technologies == nil {
		item.Technologies = []string{}
	}

	return &item, nil
}

func (r *FreelancerRepo) CreateFreelancer(dbc dbctx.Context, f *entity.Freelancer) (uuid.UUID, error) {
	createFreelancerSql, args, _ := r.SqlBuilder.
		Insert("freelancer").
		Columns("user_id", "full_name", "title", "description", "hourly_rate", "skills", "country",
			"profile_image_url", "created_at").
		Values(f.UserId, f.FullName, f.Title, f.Description, f.HourlyRate, pq.Array(f.Skills), f.Country,
			f.ProfileImageUrl, f.CreatedAt).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), createFreelancerSql, args...).Scan(&id); err != nil {
		return uuid.Nil, translateError(err)
	}

	return id, nil
}

func (r *FreelancerRepo) getFreelancer(dbc dbctx.Context, where squirrel.Sqlizer) (*entity.Freelancer, error) {
	getFreelancerSql, args, _ := r.SqlBuilder.
		Select(freelancerColumns).
		From("freelancer").
		Where(where).
		ToSql()

	f, err := scanFreelancer(runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getFreelancerSql, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return f, nil
}

func (r *FreelancerRepo) GetFreelancerById(dbc dbctx.Context, id uuid.UUID) (*entity.Freelancer, error) {
	return r.getFreelancer(dbc, squirrel.Eq{"freelancer.id": id})
}

func (r *FreelancerRepo) GetFreelancerByUserId(dbc dbctx.Context, userId string) (*entity.Freelancer, error) {
	return r.getFreelancer(dbc, squirrel.Eq{"freelancer.user_id": userId})
}

func (r *FreelancerRepo) DoesFreelancerExistById(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	return exists(r.Postgres, dbc, r.SqlBuilder.Select("1").From("freelancer").Where("id = ?", id))
}

func (r *FreelancerRepo) UpdateFreelancer(dbc dbctx.Context, f *entity.Freelancer) error {
	updateFreelancerSql, args, _ := r.SqlBuilder.
		Update("freelancer").
		Set("full_name", f.FullName).
		Set("title", f.Title).
		Set("description", f.Description).
		Set("hourly_rate", f.HourlyRate).
		Set("skills", pq.Array(f.Skills)).
		Set("country", f.Country).
		Set("profile_image_url", f.ProfileImageUrl).
		Where("id = ?", f.Id).
		ToSql()

	res, err := runner(r.Postgres, dbc).ExecContext(ctxOf(dbc), updateFreelancerSql, args...)
	if err != nil {
		return translateError(err)
	}

	return requireAffected(res)
}

func (r *FreelancerRepo) SearchFreelancers(dbc dbctx.Context, filter *entity.SearchFreelancersInput) ([]entity.Freelancer, error) {
	b := r.SqlBuilder.
		Select(freelancerColumns).
		From("freelancer")

	if filter != nil {
		if filter.Skill != "" {
			b = b.Where("? = ANY(freelancer.skills)", filter.Skill)
		}
		if filter.Country != "" {
			b = b.Where("freelancer.country = ?", filter.Country)
		}
		if filter.MaxHourlyRate != nil {
			b = b.Where("freelancer.hourly_rate <= ?", *filter.MaxHourlyRate)
		}
	}

	searchSql, args, _ := b.
		OrderBy("freelancer.rating DESC", "freelancer.success_rate DESC").
		ToSql()

	rows, err := runner(r.Postgres, dbc).QueryContext(ctxOf(dbc), searchSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	freelancers := make([]entity.Freelancer, 0)
	for rows.Next() {
		f, err := scanFreelancer(rows)
		if err != nil {
			return freelancers, err
		}
		freelancers = append(freelancers, *f)
	}
	if err = rows.Err(); err != nil {
		return freelancers, err
	}

	return freelancers, nil
}

func (r *FreelancerRepo) CreatePortfolioItem(dbc dbctx.Context, item *entity.PortfolioItem) (uuid.UUID, error) {
	createItemSql, args, _ := r.SqlBuilder.
		Insert("portfolio_item").
		Columns("freelancer_id", "title", "description", "technologies", "project_url", "image_url", "created_at").
		Values(item.FreelancerId, item.Title, item.Description, pq.Array(item.Technologies), item.ProjectUrl,
			item.ImageUrl, item.CreatedAt).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), createItemSql, args...).Scan(&id); err != nil {
		return uuid.Nil, translateError(err)
	}

	return id, nil
}

func (r *FreelancerRepo) GetPortfolioItemById(dbc dbctx.Context, id uuid.UUID) (*entity.PortfolioItem, error) {
	getItemSql, args, _ := r.SqlBuilder.
		Select(portfolioColumns).
		From("portfolio_item").
		Where("id = ?", id).
		ToSql()

	item, err := scanPortfolioItem(runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getItemSql, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return item, nil
}

func (r *FreelancerRepo) GetFreelancerPortfolio(dbc dbctx.Context, freelancerId uuid.UUID) ([]entity.PortfolioItem, error) {
	getItemsSql, args, _ := r.SqlBuilder.
		Select(portfolioColumns).
		From("portfolio_item").
		Where("freelancer_id = ?", freelancerId).
		OrderBy("created_at DESC").
		ToSql()

	rows, err := runner(r.Postgres, dbc).QueryContext(ctxOf(dbc), getItemsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.PortfolioItem, 0)
	for rows.Next() {
		item, err := scanPortfolioItem(rows)
		if err != nil {
			return items, err
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return items, err
	}

	return items, nil
}
