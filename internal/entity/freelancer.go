package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Freelancer struct {
	Id              uuid.UUID       `json:"id" db:"id"`
	UserId          string          `json:"userId" db:"user_id"`
	FullName        string          `json:"fullName" db:"full_name"`
	Title           string          `json:"title" db:"title"`
	Description     string          `json:"description" db:"description"`
	HourlyRate      decimal.Decimal `json:"hourlyRate" db:"hourly_rate"`
	Skills          []string        `json:"skills" db:"skills"`
	Country         string          `json:"country" db:"country"`
	Rating          decimal.Decimal `json:"rating" db:"rating"`
	TotalProjects   int             `json:"totalProjects" db:"total_projects"`
	SuccessRate     int             `json:"successRate" db:"success_rate"`
	ProfileImageUrl string          `json:"profileImageUrl" db:"profile_image_url"`
	PortfolioCount  int             `json:"portfolioCount" db:"portfolio_count"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

type CreateFreelancerInput struct {
	UserId          string
	FullName        string
	Title           string
	Description     string
	HourlyRate      decimal.Decimal
	Skills          []string
	Country         string
	ProfileImageUrl string
}

// Only non-blank strings and non-nil optionals are applied.
type UpdateFreelancerInput struct {
	FullName        string
	Title           string
	Description     string
	HourlyRate      *decimal.Decimal
	Skills          []string
	Country         string
	ProfileImageUrl string
}

// Blank strings and a nil rate mean "no filter".
type SearchFreelancersInput struct {
	Skill         string
	Country       string
	MaxHourlyRate *decimal.Decimal
}

type FreelancerOutputModel struct {
	Id              string          `json:"id"`
	UserId          string          `json:"userId"`
	FullName        string          `json:"fullName"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	HourlyRate      decimal.Decimal `json:"hourlyRate"`
	Skills          []string        `json:"skills"`
	Country         string          `json:"country"`
	Rating          decimal.Decimal `json:"rating"`
	TotalProjects   int             `json:"totalProjects"`
	SuccessRate     int             `json:"successRate"`
	ProfileImageUrl string          `json:"profileImageUrl"`
	CreatedAt       string          `json:"createdAt"`
	PortfolioCount  int             `json:"portfolioCount"`
}

type PortfolioItem struct {
	Id           uuid.UUID `json:"id" db:"id"`
	FreelancerId uuid.UUID `json:"freelancerId" db:"freelancer_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Technologies []string  `json:"technologies" db:"technologies"`
	ProjectUrl   string    `json:"projectUrl" db:"project_url"`
	ImageUrl     string    `json:"imageUrl" db:"image_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type CreatePortfolioItemInput struct {
	Title        string
	Description  string
	Technologies []string
	ProjectUrl   string
	ImageUrl     string
}

type PortfolioItemOutputModel struct {
	Id           string   `json:"id"`
	FreelancerId string   `json:"freelancerId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	ProjectUrl   string   `json:"projectUrl"`
	ImageUrl     string   `json:"imageUrl"`
	CreatedAt    string   `json:"createdAt"`
}
