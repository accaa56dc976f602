package pgdb

import (
	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const projectColumns = "project.id, project.title, project.description, project.budget, project.currency, " +
	"project.status, project.skill_level, project.required_skills, project.deadline, project.client_id, " +
	"project.assigned_freelancer_id, project.created_at, project.updated_at"

const projectViewColumns = projectColumns + ", client.company_name, COALESCE(freelancer.full_name, ''), " +
	"(SELECT count(*) FROM bid WHERE bid.project_id = project.id)"

type ProjectRepo struct {
	*postgres.Postgres
}

func NewProjectRepo(pgdb *postgres.Postgres) *ProjectRepo {
	return &ProjectRepo{pgdb}
}

func projectDest(p *entity.Project) []any {
	return []any{&p.Id, &p.Title, &p.Description, &p.Budget, &p.Currency, &p.Status, &p.SkillLevel,
		pq.Array(&p.RequiredSkills), &p.Deadline, &p.ClientId, &p.AssignedFreelancerId, &p.CreatedAt, &p.UpdatedAt}
}

func scanProjectView(row rowScanner) (*entity.Project, error) {
	var p entity.Project
	dest := append(projectDest(&p), &p.ClientName, &p.AssignedFreelancerName, &p.BidCount)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if p.RequiredSkills == nil {
		p.RequiredSkills = []string{}
	}

	return &p, nil
}

func validProject(p *entity.Project) bool {
	return p.Status.Valid() && p.SkillLevel.Valid()
}

func (r *ProjectRepo) selectProjects() squirrel.SelectBuilder {
	return r.SqlBuilder.
		Select(projectViewColumns).
		From("project").
		InnerJoin("client on client.id = project.client_id").
		LeftJoin("freelancer on freelancer.id = project.assigned_freelancer_id")
}

func (r *ProjectRepo) CreateProject(dbc dbctx.Context, p *entity.Project) (uuid.UUID, error) {
	if !validProject(p) {
		return uuid.Nil, repo_errors.ErrInvalidValue
	}

	createProjectSql, args, _ := r.SqlBuilder.
		Insert("project").
		Columns("title", "description", "budget", "currency", "status", "skill_level", "required_skills",
			"deadline", "client_id", "created_at").
		Values(p.Title, p.Description, p.Budget, p.Currency, string(p.Status), string(p.SkillLevel),
			pq.Array(p.RequiredSkills), p.Deadline, p.ClientId, p.CreatedAt).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), createProjectSql, args...).Scan(&id); err != nil {
		return uuid.Nil, translateError(err)
	}

	return id, nil
}

func (r *ProjectRepo) GetProjectById(dbc dbctx.Context, id uuid.UUID) (*entity.Project, error) {
	getProjectSql, args, _ := r.selectProjects().
		Where("project.id = ?", id).
		ToSql()

	p, err := scanProjectView(runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getProjectSql, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return p, nil
}

// Row locks cannot be taken on the nullable side of an outer join, so the
// locking read touches the project table only.
func (r *ProjectRepo) LockProjectById(dbc dbctx.Context, id uuid.UUID) (*entity.Project, error) {
	lockProjectSql, args, _ := r.SqlBuilder.
		Select(projectColumns).
		From("project").
		Where("project.id = ?", id).
		Suffix("FOR UPDATE").
		ToSql()

	var p entity.Project
	err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), lockProjectSql, args...).Scan(projectDest(&p)...)
	if err != nil {
		return nil, translateError(err)
	}
	if p.RequiredSkills == nil {
		p.RequiredSkills = []string{}
	}

	return &p, nil
}

func (r *ProjectRepo) UpdateProject(dbc dbctx.Context, p *entity.Project) error {
	if !validProject(p) {
		return repo_errors.ErrInvalidValue
	}

	updateProjectSql, args, _ := r.SqlBuilder.
		Update("project").
		Set("title", p.Title).
		Set("description", p.Description).
		Set("budget", p.Budget).
		Set("skill_level", string(p.SkillLevel)).
		Set("required_skills", pq.Array(p.RequiredSkills)).
		Set("deadline", p.Deadline).
		Set("status", string(p.Status)).
		Set("assigned_freelancer_id", p.AssignedFreelancerId).
		Set("updated_at", p.UpdatedAt).
		Where("id = ?", p.Id).
		ToSql()

	res, err := runner(r.Postgres, dbc).ExecContext(ctxOf(dbc), updateProjectSql, args...)
	if err != nil {
		return translateError(err)
	}

	return requireAffected(res)
}

func (r *ProjectRepo) GetProjectsByStatus(dbc dbctx.Context, status entity.ProjectStatus, pg *entity.PaginationInput) ([]entity.Project, error) {
	getProjectsSql, args, _ := paginate(r.selectProjects().
		Where("project.status = ?", string(status)).
		OrderBy("project.created_at DESC"), pg).
		ToSql()

	return r.queryProjects(dbc, getProjectsSql, args)
}

func (r *ProjectRepo) GetClientProjects(dbc dbctx.Context, clientId uuid.UUID, pg *entity.PaginationInput) ([]entity.Project, error) {
	getProjectsSql, args, _ := paginate(r.selectProjects().
		Where("project.client_id = ?", clientId).
		OrderBy("project.created_at DESC"), pg).
		ToSql()

	return r.queryProjects(dbc, getProjectsSql, args)
}

func (r *ProjectRepo) queryProjects(dbc dbctx.Context, query string, args []any) ([]entity.Project, error) {
	rows, err := runner(r.Postgres, dbc).QueryContext(ctxOf(dbc), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]entity.Project, 0)
	for rows.Next() {
		p, err := scanProjectView(rows)
		if err != nil {
			return projects, err
		}
		projects = append(projects, *p)
	}
	if err = rows.Err(); err != nil {
		return projects, err
	}

	return projects, nil
}
