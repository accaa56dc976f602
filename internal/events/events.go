package events

import (
	"context"
	"time"
)

const (
	JobCreated         = "jobportal.job.created"
	JobDeleted         = "jobportal.job.deleted"
	ApplicationCreated = "jobportal.application.created"

	ProjectCreated = "marketplace.project.created"
	ProjectClosed  = "marketplace.project.closed"
	BidSubmitted   = "marketplace.bid.submitted"
	BidAccepted    = "marketplace.bid.accepted"
)

// Event is the JSON envelope published for every committed state change.
type Event struct {
	Subject    string            `json:"subject"`
	OccurredAt time.Time         `json:"occurredAt"`
	Attributes map[string]string `json:"attributes"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type NopPublisher struct{}

func NewNopPublisher() NopPublisher {
	return NopPublisher{}
}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
