package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Adda-Baaj/newsq/internal/domain"
	"github.com/Adda-Baaj/newsq/internal/logger"
)

// Event is the payload delivered to every publisher after a search.
type Event struct {
	ID        string           `json:"id"`
	Source    string           `json:"source"`
	Query     string           `json:"query"`
	Articles  []domain.Article `json:"articles"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// NewEvent stamps a search result with a fresh id and the current time.
func NewEvent(source, query string, articles []domain.Article) Event {
	return Event{
		ID:        uuid.NewString(),
		Source:    source,
		Query:     query,
		Articles:  articles,
		FetchedAt: time.Now().UTC(),
	}
}

// Publisher delivers events to one sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the structured logger used by publishers.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger {
	return logger.Ensure(log)
}

// encode returns the JSON body and the routing attributes shared by every sink.
func (e Event) encode() ([]byte, map[string]string, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal event %s: %w", e.ID, err)
	}
	return payload, map[string]string{
		"event_id": e.ID,
		"source":   e.Source,
		"query":    e.Query,
	}, nil
}
