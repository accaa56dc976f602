package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Client struct {
	Id            uuid.UUID       `json:"id" db:"id"`
	UserId        string          `json:"userId" db:"user_id"`
	CompanyName   string          `json:"companyName" db:"company_name"`
	Description   string          `json:"description" db:"description"`
	Website       string          `json:"website" db:"website"`
	Email         string          `json:"email" db:"email"`
	Phone         string          `json:"phone" db:"phone"`
	TotalSpent    decimal.Decimal `json:"totalSpent" db:"total_spent"`
	TotalProjects int             `json:"totalProjects" db:"total_projects"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

type CreateClientInput struct {
	UserId      string
	CompanyName string
	Description string
	Website     string
	Email       string
	Phone       string
}

type ClientOutputModel struct {
	Id            string          `json:"id"`
	UserId        string          `json:"userId"`
	CompanyName   string          `json:"companyName"`
	Description   string          `json:"description"`
	Website       string          `json:"website"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	TotalProjects int             `json:"totalProjects"`
	CreatedAt     string          `json:"createdAt"`
}
