package publishers

import (
	"context"
	"fmt"
)

// queueSender hands one encoded event to a cloud messaging service.
type queueSender interface {
	Send(ctx context.Context, evt Event) error
}

type senderBuilder func(ctx context.Context, q *QueuePublisherConfig, log Logger) (queueSender, error)

var queueSenders = map[string]senderBuilder{
	QueueProviderAWSSQS: func(ctx context.Context, q *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newAWSSQSSender(ctx, q.AWS, log)
	},
	QueueProviderAWSSNS: func(ctx context.Context, q *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newAWSSNSSender(ctx, q.SNS, log)
	},
	QueueProviderGCP: func(ctx context.Context, q *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newGCPPubSubSender(ctx, q.GCP, log)
	},
}

// queuePublisher adapts a provider sender to the Publisher interface.
type queuePublisher struct {
	id       string
	provider string
	sender   queueSender
}

func newQueuePublisher(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.Queue == nil {
		return nil, fmt.Errorf("publisher %q missing queue configuration", cfg.ID)
	}
	build, ok := queueSenders[cfg.Queue.Provider]
	if !ok {
		return nil, fmt.Errorf("queue provider %q is not supported", cfg.Queue.Provider)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sender, err := build(ctx, cfg.Queue, ensureLogger(log))
	if err != nil {
		return nil, err
	}
	return &queuePublisher{id: cfg.ID, provider: cfg.Queue.Provider, sender: sender}, nil
}

func (p *queuePublisher) ID() string   { return p.id }
func (p *queuePublisher) Type() string { return TypeQueue }

func (p *queuePublisher) Publish(ctx context.Context, evt Event) error {
	if err := p.sender.Send(ctx, evt); err != nil {
		return fmt.Errorf("%s: %w", p.provider, err)
	}
	return nil
}
