package service

import (
	"errors"
	"strings"

	"job-marketplace-api/internal/apperr"
	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxTitleLength = 200
	maxPageLimit   = 100
)

var (
	maxBudget     = decimal.NewFromInt(1_000_000)
	minHourlyRate = decimal.NewFromInt(1)
	maxHourlyRate = decimal.NewFromInt(1000)
)

func parseId(id string, what string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, apperr.InvalidArgument("invalid "+what+" id", err)
	}

	return parsed, nil
}

func required(value string, field string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.InvalidArgument(field+" is required", nil)
	}

	return nil
}

func validTitle(title string) error {
	if err := required(title, "title"); err != nil {
		return err
	}
	if len([]rune(title)) > maxTitleLength {
		return apperr.InvalidArgument("title must be at most 200 characters", nil)
	}

	return nil
}

func validPagination(pg *entity.PaginationInput) error {
	if pg == nil {
		return nil
	}
	if pg.Limit < 0 || pg.Limit > maxPageLimit || pg.Offset < 0 {
		return ErrInvalidPagination
	}

	return nil
}

// storeError maps storage failures that carry a client-facing meaning.
func storeError(err error) error {
	if errors.Is(err, repo_errors.ErrInvalidValue) {
		return ErrInvalidStoredValue
	}

	return err
}
