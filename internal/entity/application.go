package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationApplied ApplicationStatus = "Applied"
)

func (s ApplicationStatus) Valid() bool {
	return s == ApplicationApplied
}

// db model
type Application struct {
	Id          uuid.UUID         `json:"id" db:"id"`
	JobId       uuid.UUID         `json:"jobId" db:"job_id"`
	JobTitle    string            `json:"jobTitle" db:"job_title"`
	ApplicantId uuid.UUID         `json:"applicantId" db:"applicant_id"`
	CoverLetter string            `json:"coverLetter" db:"cover_letter"`
	ResumeUrl   string            `json:"resumeUrl" db:"resume_url"`
	Status      ApplicationStatus `json:"status" db:"status"`
	AppliedAt   time.Time         `json:"appliedAt" db:"applied_at"`
}

// service input model
type CreateApplicationInput struct {
	ApplicantId string // given
	CoverLetter string // optional
	ResumeUrl   string // given
}

// controller model
type ApplicationOutputModel struct {
	Id          string `json:"id"`
	JobId       string `json:"jobId"`
	JobTitle    string `json:"jobTitle,omitempty"`
	ApplicantId string `json:"applicantId"`
	CoverLetter string `json:"coverLetter"`
	ResumeUrl   string `json:"resumeUrl"`
	Status      string `json:"status"`
	AppliedAt   string `json:"appliedAt"`
}
