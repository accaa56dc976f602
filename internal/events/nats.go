package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"job-marketplace-api/internal/apperr"
	"job-marketplace-api/pkg/logger"

	"github.com/nats-io/nats.go"
)

type NatsPublisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

func NewNatsPublisher(natsURL string, connectTimeout time.Duration, l *logger.Logger) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Timeout(connectTimeout),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return &NatsPublisher{
		nc:     nc,
		logger: l,
	}, nil
}

func (p *NatsPublisher) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return apperr.Internal("marshaling event", err)
	}

	if err := p.nc.Publish(event.Subject, data); err != nil {
		return apperr.Internal("publishing event", err)
	}

	p.logger.Debug("published event", "subject", event.Subject, "size", len(data))

	return nil
}

func (p *NatsPublisher) Close() error {
	if p.nc != nil {
		return p.nc.Drain()
	}

	return nil
}
