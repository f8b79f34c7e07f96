package job

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"pump-radar/internal/tracker/alert"
	"pump-radar/internal/tracker/model"
)

// RecordSource exposes the cached records the digest is built from.
type RecordSource interface {
	CachedRecords() []model.TokenRecord
}

// Recap periodically posts a digest of the highest-cap tokens still in the
// record cache. Quiet windows produce no message.
type Recap struct {
	pipe     RecordSource
	notifier alert.Notifier
	topN     int
	logger   *zap.Logger
}

func NewRecap(pipe RecordSource, notifier alert.Notifier, topN int, logger *zap.Logger) *Recap {
	return &Recap{
		pipe:     pipe,
		notifier: notifier,
		topN:     topN,
		logger:   logger,
	}
}

// Run builds and dispatches one digest. Registered as a periodic job.
func (r *Recap) Run(ctx context.Context) error {
	records := r.pipe.CachedRecords()
	if len(records) == 0 {
		r.logger.Debug("no records cached, skipping recap")
		return nil
	}
	if len(records) > r.topN {
		records = records[:r.topN]
	}

	sections := make([]string, 0, len(records)+1)
	sections = append(sections, alert.FormatRecapHeader(len(records)))
	for _, rec := range records {
		sections = append(sections, alert.Format(rec))
	}

	return r.notifier.Notify(ctx, strings.Join(sections, "\n\n"))
}
