package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JobType string

const (
	FullTime JobType = "Full-time"
	PartTime JobType = "Part-time"
	Contract JobType = "Contract"
)

func (t JobType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract:
		return true
	default:
		return false
	}
}

type JobStatus string

const (
	JobActive  JobStatus = "Active"
	JobDeleted JobStatus = "Deleted"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobActive, JobDeleted:
		return true
	default:
		return false
	}
}

// db model
type Job struct {
	Id          uuid.UUID           `json:"id" db:"id"`
	Title       string              `json:"title" db:"title"`
	Description string              `json:"description" db:"description"`
	Salary      decimal.NullDecimal `json:"salary" db:"salary"`
	Location    string              `json:"location" db:"location"`
	JobType     JobType             `json:"jobType" db:"job_type"`
	Status      JobStatus           `json:"status" db:"status"`
	CompanyId   uuid.UUID           `json:"companyId" db:"company_id"`
	CompanyName string              `json:"companyName" db:"company_name"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time          `json:"updatedAt" db:"updated_at"`
}

// service + repo input model
type CreateJobInput struct {
	Title       string           // given
	Description string           // given
	Salary      *decimal.Decimal // optional
	Location    string           // given
	JobType     string           // given, one of JobType
	CompanyId   string           // given
	// Status is set to Active
	// Id and CreatedAt are set by the store
}

// Only non-blank strings and non-nil optionals are applied.
type UpdateJobInput struct {
	Title       string
	Description string
	Salary      *decimal.Decimal
	Location    string
	JobType     string
	Status      string
}

// controller model
type JobOutputModel struct {
	Id          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	Location    string           `json:"location"`
	JobType     string           `json:"jobType"`
	Status      string           `json:"status"`
	CompanyId   string           `json:"companyId"`
	CompanyName string           `json:"companyName"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt,omitempty"`
}
