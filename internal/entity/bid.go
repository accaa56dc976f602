package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinDeliveryDays = 1
	MaxDeliveryDays = 365
)

type BidStatus string

const (
	BidSubmitted BidStatus = "Submitted"
	BidAccepted  BidStatus = "Accepted"
	BidRejected  BidStatus = "Rejected"
)

func (s BidStatus) Valid() bool {
	switch s {
	case BidSubmitted, BidAccepted, BidRejected:
		return true
	default:
		return false
	}
}

// db model
type Bid struct {
	Id             uuid.UUID       `json:"id" db:"id"`
	ProjectId      uuid.UUID       `json:"projectId" db:"project_id"`
	FreelancerId   uuid.UUID       `json:"freelancerId" db:"freelancer_id"`
	FreelancerName string          `json:"freelancerName" db:"freelancer_name"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Proposal       string          `json:"proposal" db:"proposal"`
	DeliveryDays   int             `json:"deliveryDays" db:"delivery_days"`
	Status         BidStatus       `json:"status" db:"status"`
	SubmittedAt    time.Time       `json:"submittedAt" db:"submitted_at"`
	AcceptedAt     *time.Time      `json:"acceptedAt" db:"accepted_at"`
}

// service input model
type CreateBidInput struct {
	FreelancerId string          // given
	Amount       decimal.Decimal // given, positive
	Proposal     string          // given
	DeliveryDays int             // given, 1..365
	// Status is set to Submitted
}

// controller model
type BidOutputModel struct {
	Id             string          `json:"id"`
	ProjectId      string          `json:"projectId"`
	FreelancerId   string          `json:"freelancerId"`
	FreelancerName string          `json:"freelancerName,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Proposal       string          `json:"proposal"`
	DeliveryDays   int             `json:"deliveryDays"`
	Status         string          `json:"status"`
	SubmittedAt    string          `json:"submittedAt"`
	AcceptedAt     string          `json:"acceptedAt,omitempty"`
}
