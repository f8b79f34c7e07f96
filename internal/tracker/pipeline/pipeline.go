package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"pump-radar/internal/tracker/alert"
	"pump-radar/internal/tracker/extractor"
	"pump-radar/internal/tracker/filter"
	"pump-radar/internal/tracker/model"
	"pump-radar/internal/tracker/monitor"
)

// Validator confirms a candidate address denotes a token mint.
type Validator interface {
	ValidateMint(ctx context.Context, addr string) (bool, error)
}

// Enricher assembles the token record for a validated mint.
type Enricher interface {
	Enrich(ctx context.Context, address string) model.TokenRecord
}

// AlertStore persists the dispatched-alert trail. May be nil when
// persistence is disabled.
type AlertStore interface {
	Save(ctx context.Context, a *model.Alert) error
}

// Pipeline drives one event through extract → validate → enrich →
// evaluate → dispatch. Events are isolated from each other: a panic or
// failure in one never aborts its batch siblings.
type Pipeline struct {
	validator Validator
	enricher  Enricher
	notifier  alert.Notifier
	store     AlertStore
	filters   func() model.FilterConfig
	governor  *rate.Limiter
	records   *cache.Cache
	logger    *zap.Logger
}

// New builds a pipeline. eventsPerMinute caps how many events may enter the
// pipeline per rolling 60-second window; excess events are dropped, not
// queued. cacheTTL bounds how long enriched records stay available for the
// recap job.
func New(validator Validator, enricher Enricher, notifier alert.Notifier, store AlertStore,
	filters func() model.FilterConfig, eventsPerMinute int, cacheTTL time.Duration, logger *zap.Logger) *Pipeline {

	if eventsPerMinute <= 0 {
		eventsPerMinute = 5
	}

	return &Pipeline{
		validator: validator,
		enricher:  enricher,
		notifier:  notifier,
		store:     store,
		filters:   filters,
		governor:  rate.NewLimiter(rate.Limit(float64(eventsPerMinute)/60.0), eventsPerMinute),
		records:   cache.New(cacheTTL, 5*time.Minute),
		logger:    logger,
	}
}

// Process runs every event of the batch through the pipeline
// independently.
func (p *Pipeline) Process(ctx context.Context, events []model.RawEvent) {
	for _, ev := range events {
		p.processEvent(ctx, ev)
	}
}

func (p *Pipeline) processEvent(ctx context.Context, ev model.RawEvent) {
	defer func() {
		if r := recover(); r != nil {
			monitor.EventsSkipped.WithLabelValues("panic").Inc()
			p.logger.Error("event processing panicked",
				zap.String("signature", ev.Signature), zap.Any("panic", r))
		}
	}()

	if !p.governor.Allow() {
		monitor.EventsThrottled.Inc()
		p.logger.Warn("event dropped by rate governor", zap.String("signature", ev.Signature))
		return
	}

	mint, ok := extractor.Extract(ev)
	if !ok {
		monitor.EventsSkipped.WithLabelValues("no_mint").Inc()
		p.logger.Debug("no mint candidate in event", zap.String("signature", ev.Signature))
		return
	}

	valid, err := p.validator.ValidateMint(ctx, mint)
	if err != nil || !valid {
		// fail closed: an unconfirmed mint never reaches enrichment
		monitor.EventsSkipped.WithLabelValues("validation").Inc()
		p.logger.Debug("mint validation failed",
			zap.String("mint", mint), zap.Error(err))
		return
	}

	start := time.Now()
	record := p.enricher.Enrich(ctx, mint)
	monitor.EnrichDuration.Observe(time.Since(start).Seconds())

	p.records.Set(record.Address, record, cache.DefaultExpiration)

	verdict := filter.Evaluate(record, p.filters())

	var message string
	if verdict.Passed {
		message = alert.Format(record)
	} else {
		message = alert.FormatRejection(record.Address, verdict.Reasons)
	}

	if err := p.notifier.Notify(ctx, message); err != nil {
		monitor.DispatchFailures.Inc()
		p.logger.Warn("alert dispatch failed",
			zap.String("mint", mint), zap.Error(err))
	}
	monitor.AlertsDispatched.WithLabelValues(verdictLabel(verdict.Passed)).Inc()

	p.saveAlert(ctx, ev, record, verdict)
}

func (p *Pipeline) saveAlert(ctx context.Context, ev model.RawEvent, record model.TokenRecord, verdict filter.Verdict) {
	if p.store == nil {
		return
	}

	snapshot, err := sonic.Marshal(record)
	if err != nil {
		p.logger.Warn("marshal record snapshot failed", zap.Error(err))
		return
	}

	a := &model.Alert{
		Address:   record.Address,
		Name:      record.Name,
		Signature: ev.Signature,
		Passed:    verdict.Passed,
		Reasons:   verdict.Reasons,
		Record:    snapshot,
	}
	if err := p.store.Save(ctx, a); err != nil {
		p.logger.Warn("persist alert failed",
			zap.String("mint", record.Address), zap.Error(err))
	}
}

// CachedRecords returns the enriched records still in the cache, ordered by
// market cap descending. Used by the recap job.
func (p *Pipeline) CachedRecords() []model.TokenRecord {
	items := p.records.Items()
	out := make([]model.TokenRecord, 0, len(items))
	for _, item := range items {
		if rec, ok := item.Object.(model.TokenRecord); ok {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MarketCap > out[j].MarketCap
	})
	return out
}

func verdictLabel(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}
