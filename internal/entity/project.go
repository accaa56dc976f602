package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "Open"
	ProjectInProgress ProjectStatus = "InProgress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectClosed     ProjectStatus = "Closed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectOpen, ProjectInProgress, ProjectCompleted, ProjectClosed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Open -> InProgress happens only through bid acceptance.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	switch s {
	case ProjectOpen:
		return next == ProjectInProgress || next == ProjectClosed
	case ProjectInProgress:
		return next == ProjectCompleted
	default:
		return false
	}
}

type SkillLevel string

const (
	Beginner     SkillLevel = "Beginner"
	Intermediate SkillLevel = "Intermediate"
	Expert       SkillLevel = "Expert"
)

func (l SkillLevel) Valid() bool {
	switch l {
	case Beginner, Intermediate, Expert:
		return true
	default:
		return false
	}
}

// db model
type Project struct {
	Id                     uuid.UUID       `json:"id" db:"id"`
	Title                  string          `json:"title" db:"title"`
	Description            string          `json:"description" db:"description"`
	Budget                 decimal.Decimal `json:"budget" db:"budget"`
	Currency               string          `json:"currency" db:"currency"`
	Status                 ProjectStatus   `json:"status" db:"status"`
	SkillLevel             SkillLevel      `json:"skillLevel" db:"skill_level"`
	RequiredSkills         []string        `json:"requiredSkills" db:"required_skills"`
	Deadline               time.Time       `json:"deadline" db:"deadline"`
	ClientId               uuid.UUID       `json:"clientId" db:"client_id"`
	ClientName             string          `json:"clientName" db:"client_name"`
	AssignedFreelancerId   *uuid.UUID      `json:"assignedFreelancerId" db:"assigned_freelancer_id"`
	AssignedFreelancerName string          `json:"assignedFreelancerName" db:"assigned_freelancer_name"`
	BidCount               int             `json:"bidCount" db:"bid_count"`
	CreatedAt              time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt              *time.Time      `json:"updatedAt" db:"updated_at"`
}

// service + repo input model
type CreateProjectInput struct {
	Title          string          // given
	Description    string          // given
	Budget         decimal.Decimal // given, positive
	Currency       string          // defaults to USD
	SkillLevel     string          // given, one of SkillLevel
	RequiredSkills []string        // optional
	Deadline       time.Time       // given
	ClientId       string          // given
	// Status is set to Open
}

// Only non-blank strings and non-nil optionals are applied.
type UpdateProjectInput struct {
	Title          string
	Description    string
	Budget         *decimal.Decimal
	SkillLevel     string
	RequiredSkills []string
	Deadline       *time.Time
	Status         string
}

// controller model
type ProjectOutputModel struct {
	Id                     string          `json:"id"`
	Title                  string          `json:"title"`
	Description            string          `json:"description"`
	Budget                 decimal.Decimal `json:"budget"`
	Currency               string          `json:"currency"`
	Status                 string          `json:"status"`
	SkillLevel             string          `json:"skillLevel"`
	RequiredSkills         []string        `json:"requiredSkills"`
	Deadline               string          `json:"deadline"`
	CreatedAt              string          `json:"createdAt"`
	UpdatedAt              string          `json:"updatedAt,omitempty"`
	ClientId               string          `json:"clientId"`
	ClientName             string          `json:"clientName"`
	AssignedFreelancerId   string          `json:"assignedFreelancerId,omitempty"`
	AssignedFreelancerName string          `json:"assignedFreelancerName,omitempty"`
	BidCount               int             `json:"bidCount"`
}
