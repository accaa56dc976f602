package entity

import "github.com/google/uuid"

type Company struct {
	Id          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Website     string    `json:"website" db:"website"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
}

type CreateCompanyInput struct {
	Name        string
	Description string
	Website     string
	Email       string
	Phone       string
}

type CompanyOutputModel struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}
