// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// Pipeline moves interaction events from the ingestion endpoint to the store
// through an in-process pub/sub channel. Decoupling ingestion from storage
// keeps the HTTP handler latency flat and gives failed events retry and
// poison-queue handling instead of a dropped request.
type Pipeline struct {
	pubsub *gochannel.GoChannel
	router *message.Router
	store  Store
	cfg    config.EventsConfig
}

// NewPipeline wires the pub/sub channel, the consumer router and its
// middleware. Call Run to start consuming.
func NewPipeline(cfg config.EventsConfig, store Store) (*Pipeline, error) {
	logger := logging.NewWatermillAdapter()

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
	}, logger)

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create event router: %w", err)
	}

	p := &Pipeline{
		pubsub: pubsub,
		router: router,
		store:  store,
		cfg:    cfg,
	}

	router.AddMiddleware(middleware.Recoverer)

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryCount,
		InitialInterval: cfg.RetryInterval,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	poison, err := middleware.PoisonQueue(pubsub, cfg.PoisonTopic)
	if err != nil {
		return nil, fmt.Errorf("create poison queue: %w", err)
	}
	router.AddMiddleware(poison)

	router.AddConsumerHandler("event-store", cfg.Topic, pubsub, p.storeEvent)
	router.AddConsumerHandler("event-poison", cfg.PoisonTopic, pubsub, p.recordPoisoned)

	return p, nil
}

// Publish serializes one validated event onto the ingestion topic.
func (p *Pipeline) Publish(event models.InteractionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if err := p.pubsub.Publish(p.cfg.Topic, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// storeEvent is the consuming handler: decode and append. Errors propagate to
// the retry middleware and, after exhaustion, to the poison topic.
func (p *Pipeline) storeEvent(msg *message.Message) error {
	var event models.InteractionEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}

	if err := p.store.Append(event); err != nil {
		return fmt.Errorf("append event %s: %w", msg.UUID, err)
	}

	metrics.RecordEventStored()
	logging.Trace().
		Str("message_id", msg.UUID).
		Str("user_id", event.UserID).
		Str("kind", string(event.Kind)).
		Msg("Interaction event stored")
	return nil
}

// recordPoisoned drains the poison topic so dead events are at least counted
// and logged instead of accumulating unread.
func (p *Pipeline) recordPoisoned(msg *message.Message) error {
	metrics.RecordEventPoisoned()
	logging.Warn().
		Str("message_id", msg.UUID).
		Str("reason", msg.Metadata.Get(middleware.ReasonForPoisonedKey)).
		Msg("Interaction event poisoned")
	return nil
}

// Run starts the consumer router and blocks until ctx is cancelled or the
// router stops. The pub/sub channel closes with the router.
func (p *Pipeline) Run(ctx context.Context) error {
	return p.router.Run(ctx)
}

// Running closes once the router's handlers are consuming.
func (p *Pipeline) Running() <-chan struct{} {
	return p.router.Running()
}

// Close stops the router and the pub/sub channel.
func (p *Pipeline) Close() error {
	if err := p.router.Close(); err != nil {
		return fmt.Errorf("close event router: %w", err)
	}
	return nil
}
