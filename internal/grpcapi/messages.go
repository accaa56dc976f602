package grpcapi

import (
	"time"

	"job-marketplace-api/internal/entity"

	"github.com/shopspring/decimal"
)

type JobRequest struct {
	JobId string `json:"jobId"`
}

type CreateJobRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	Location    string           `json:"location"`
	JobType     string           `json:"jobType"`
	CompanyId   string           `json:"companyId"`
}

type ListRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type JobListResponse struct {
	Jobs []entity.JobOutputModel `json:"jobs"`
}

type ApplyForJobRequest struct {
	JobId       string `json:"jobId"`
	ApplicantId string `json:"applicantId"`
	CoverLetter string `json:"coverLetter"`
	ResumeUrl   string `json:"resumeUrl"`
}

type ApplyForJobResponse struct {
	Message       string `json:"message"`
	ApplicationId string `json:"applicationId"`
}

type ProjectRequest struct {
	ProjectId string `json:"projectId"`
}

type CreateProjectRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Budget         decimal.Decimal `json:"budget"`
	Currency       string          `json:"currency"`
	SkillLevel     string          `json:"skillLevel"`
	RequiredSkills []string        `json:"requiredSkills"`
	Deadline       time.Time       `json:"deadline"`
	ClientId       string          `json:"clientId"`
}

type ProjectListResponse struct {
	Projects []entity.ProjectOutputModel `json:"projects"`
}

type SubmitBidRequest struct {
	ProjectId    string          `json:"projectId"`
	FreelancerId string          `json:"freelancerId"`
	Amount       decimal.Decimal `json:"amount"`
	Proposal     string          `json:"proposal"`
	DeliveryDays int             `json:"deliveryDays"`
}

type AcceptBidRequest struct {
	BidId string `json:"bidId"`
}

type BidResponse struct {
	Message string                `json:"message"`
	Bid     entity.BidOutputModel `json:"bid"`
}
