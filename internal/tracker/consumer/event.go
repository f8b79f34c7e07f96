package consumer

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"pump-radar/internal/tracker/config"
	"pump-radar/internal/tracker/model"
	"pump-radar/internal/tracker/monitor"
	"pump-radar/internal/tracker/pipeline"
)

// EventConsumer feeds webhook-delivered transaction events into the
// pipeline. Webhook relays publish either a batch (JSON array) or a
// single event object per message; both shapes are accepted.
type EventConsumer struct {
	*Consumer
	id     string
	pipe   *pipeline.Pipeline
	logger *zap.Logger
}

func NewEventConsumer(conf config.Config, logger *zap.Logger, pipe *pipeline.Pipeline) *EventConsumer {
	return &EventConsumer{
		id:       "event_consumer",
		Consumer: NewConsumer(conf.Kafka, logger, conf.Kafka.TopicEvents),
		pipe:     pipe,
		logger:   logger,
	}
}

func (ec *EventConsumer) Run(ctx context.Context) {
	ec.Consumer.Start(ctx, &ctxHandler{ctx: ctx, ec: ec})
}

func (ec *EventConsumer) ID() string {
	return ec.id
}

func (ec *EventConsumer) Stop() error {
	return ec.Consumer.Stop()
}

// ctxHandler carries the run context into HandleMessage so downstream
// RPC calls stay cancellable.
type ctxHandler struct {
	ctx context.Context
	ec  *EventConsumer
}

func (h *ctxHandler) HandleMessage(msg kafka.Message) {
	h.ec.handle(h.ctx, msg)
}

func (ec *EventConsumer) handle(ctx context.Context, msg kafka.Message) {
	events, err := decodeEvents(msg.Value)
	if err != nil {
		ec.logger.Warn("❌ event decode error",
			zap.String("consumerID", ec.id),
			zap.Error(err),
			zap.String("raw", string(msg.Value)))
		return
	}

	monitor.EventsReceived.WithLabelValues("webhook").Add(float64(len(events)))
	ec.pipe.Process(ctx, events)
}

func decodeEvents(raw []byte) ([]model.RawEvent, error) {
	var events []model.RawEvent
	if err := sonic.Unmarshal(raw, &events); err == nil {
		return events, nil
	}

	var single model.RawEvent
	if err := sonic.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []model.RawEvent{single}, nil
}
