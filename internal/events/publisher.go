package events

import (
	"context"
	"encoding/json"

	"chairduel/internal/domain"
	"chairduel/internal/logger"
	"chairduel/internal/repository"
	"chairduel/internal/ws"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// Publisher delivers match notifications to off-chain observers. Publishing
// happens after the owning operation commits and is best-effort: a delivery
// failure is logged, never propagated into the match core.
type Publisher interface {
	Publish(ctx context.Context, e *domain.Event)
}

// New builds an event with a fresh id.
func New(matchID, eventType string, details map[string]interface{}) *domain.Event {
	return &domain.Event{
		ID:      uuid.New().String(),
		MatchID: matchID,
		Type:    eventType,
		Details: details,
	}
}

// StorePublisher persists events to the events table for the audit/query API.
type StorePublisher struct {
	repo *repository.EventRepository
}

func NewStorePublisher(repo *repository.EventRepository) *StorePublisher {
	return &StorePublisher{repo: repo}
}

func (p *StorePublisher) Publish(ctx context.Context, e *domain.Event) {
	if err := p.repo.Create(ctx, e); err != nil {
		logger.Error("failed to store event", "error", err, "type", e.Type, "match_id", e.MatchID)
	}
}

// RedisPublisher pushes events onto a per-match pub/sub channel.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, e *domain.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logger.Error("failed to marshal event", "error", err, "type", e.Type)
		return
	}
	if err := p.client.Publish(ctx, "events:"+e.MatchID, payload).Err(); err != nil {
		logger.Error("failed to publish event to redis", "error", err, "type", e.Type, "match_id", e.MatchID)
	}
}

// HubPublisher streams events to connected websocket observers.
type HubPublisher struct {
	hub *ws.Hub
}

func NewHubPublisher(hub *ws.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(_ context.Context, e *domain.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logger.Error("failed to marshal event", "error", err, "type", e.Type)
		return
	}
	p.hub.Broadcast(e.MatchID, payload)
}

// Fanout publishes to every configured sink in order.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e *domain.Event) {
	for _, p := range f {
		p.Publish(ctx, e)
	}
}
