package service

import (
	"time"

	"job-marketplace-api/internal/entity"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}

	return formatTime(*t)
}

func mapCompany(c *entity.Company) *entity.CompanyOutputModel {
	return &entity.CompanyOutputModel{
		Id:          c.Id.String(),
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		Email:       c.Email,
		Phone:       c.Phone,
	}
}

func mapJob(j *entity.Job) *entity.JobOutputModel {
	out := &entity.JobOutputModel{
		Id:          j.Id.String(),
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		JobType:     string(j.JobType),
		Status:      string(j.Status),
		CompanyId:   j.CompanyId.String(),
		CompanyName: j.CompanyName,
		CreatedAt:   formatTime(j.CreatedAt),
		UpdatedAt:   formatOptionalTime(j.UpdatedAt),
	}
	if j.Salary.Valid {
		salary := j.Salary.Decimal
		out.Salary = &salary
	}

	return out
}

func mapJobs(j []entity.Job) []entity.JobOutputModel {
	s := make([]entity.JobOutputModel, 0)
	for _, job := range j {
		s = append(s, *mapJob(&job))
	}

	return s
}

func mapApplication(a *entity.Application) *entity.ApplicationOutputModel {
	return &entity.ApplicationOutputModel{
		Id:          a.Id.String(),
		JobId:       a.JobId.String(),
		JobTitle:    a.JobTitle,
		ApplicantId: a.ApplicantId.String(),
		CoverLetter: a.CoverLetter,
		ResumeUrl:   a.ResumeUrl,
		Status:      string(a.Status),
		AppliedAt:   formatTime(a.AppliedAt),
	}
}

func mapApplications(a []entity.Application) []entity.ApplicationOutputModel {
	s := make([]entity.ApplicationOutputModel, 0)
	for _, application := range a {
		s = append(s, *mapApplication(&application))
	}

	return s
}

func mapClient(c *entity.Client) *entity.ClientOutputModel {
	return &entity.ClientOutputModel{
		Id:            c.Id.String(),
		UserId:        c.UserId,
		CompanyName:   c.CompanyName,
		Description:   c.Description,
		Website:       c.Website,
		Email:         c.Email,
		Phone:         c.Phone,
		TotalSpent:    c.TotalSpent,
		TotalProjects: c.TotalProjects,
		CreatedAt:     formatTime(c.CreatedAt),
	}
}

func mapFreelancer(f *entity.Freelancer) *entity.FreelancerOutputModel {
	return &entity.FreelancerOutputModel{
		Id:              f.Id.String(),
		UserId:          f.UserId,
		FullName:        f.FullName,
		Title:           f.Title,
		Description:     f.Description,
		HourlyRate:      f.HourlyRate,
		Skills:          nonNil(f.Skills),
		Country:         f.Country,
		Rating:          f.Rating,
		TotalProjects:   f.TotalProjects,
		SuccessRate:     f.SuccessRate,
		ProfileImageUrl: f.ProfileImageUrl,
		CreatedAt:       formatTime(f.CreatedAt),
		PortfolioCount:  f.PortfolioCount,
	}
}

func mapFreelancers(f []entity.Freelancer) []entity.FreelancerOutputModel {
	s := make([]entity.FreelancerOutputModel, 0)
	for _, freelancer := range f {
		s = append(s, *mapFreelancer(&freelancer))
	}

	return s
}

func mapPortfolioItem(p *entity.PortfolioItem) *entity.PortfolioItemOutputModel {
	return &entity.PortfolioItemOutputModel{
		Id:           p.Id.String(),
		FreelancerId: p.FreelancerId.String(),
		Title:        p.Title,
		Description:  p.Description,
		Technologies: nonNil(p.Technologies),
		ProjectUrl:   p.ProjectUrl,
		ImageUrl:     p.ImageUrl,
		CreatedAt:    formatTime(p.CreatedAt),
	}
}

func mapPortfolioItems(p []entity.PortfolioItem) []entity.PortfolioItemOutputModel {
	s := make([]entity.PortfolioItemOutputModel, 0)
	for _, item := range p {
		s = append(s, *mapPortfolioItem(&item))
	}

	return s
}

func mapProject(p *entity.Project) *entity.ProjectOutputModel {
	out := &entity.ProjectOutputModel{
		Id:                     p.Id.String(),
		Title:                  p.Title,
		Description:            p.Description,
		Budget:                 p.Budget,
		Currency:               p.Currency,
		Status:                 string(p.Status),
		SkillLevel:             string(p.SkillLevel),
		RequiredSkills:         nonNil(p.RequiredSkills),
		Deadline:               formatTime(p.Deadline),
		CreatedAt:              formatTime(p.CreatedAt),
		UpdatedAt:              formatOptionalTime(p.UpdatedAt),
		ClientId:               p.ClientId.String(),
		ClientName:             p.ClientName,
		AssignedFreelancerName: p.AssignedFreelancerName,
		BidCount:               p.BidCount,
	}
	if p.AssignedFreelancerId != nil {
		out.AssignedFreelancerId = p.AssignedFreelancerId.String()
	}

	return out
}

func mapProjects(p []entity.Project) []entity.ProjectOutputModel {
	s := make([]entity.ProjectOutputModel, 0)
	for _, project := range p {
		s = append(s, *mapProject(&project))
	}

	return s
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:             b.Id.String(),
		ProjectId:      b.ProjectId.String(),
		FreelancerId:   b.FreelancerId.String(),
		FreelancerName: b.FreelancerName,
		Amount:         b.Amount,
		Proposal:       b.Proposal,
		DeliveryDays:   b.DeliveryDays,
		Status:         string(b.Status),
		SubmittedAt:    formatTime(b.SubmittedAt),
		AcceptedAt:     formatOptionalTime(b.AcceptedAt),
	}
}

func mapBids(b []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range b {
		s = append(s, *mapBid(&bid))
	}

	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
