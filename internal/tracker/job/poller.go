package job

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pump-radar/internal/tracker/config"
	"pump-radar/internal/tracker/model"
	"pump-radar/internal/tracker/monitor"
	"pump-radar/internal/tracker/pipeline"
	"pump-radar/pkg/chain"
)

const (
	seenKeyPrefix = "tracker:seen:"
	seenKeyTTL    = 24 * time.Hour
)

// Poller scans the program's recent transaction history on each tick and
// feeds unseen, successful transactions into the pipeline. Signature dedup
// lives in Redis so restarts do not replay the window; without Redis a
// process-local set takes over.
type Poller struct {
	chain  *chain.Client
	rdb    redis.UniversalClient
	pipe   *pipeline.Pipeline
	cfg    config.TrackerConfig
	logger *zap.Logger
	seen   map[string]struct{}
}

func NewPoller(chainClient *chain.Client, rdb redis.UniversalClient, pipe *pipeline.Pipeline,
	cfg config.TrackerConfig, logger *zap.Logger) *Poller {
	return &Poller{
		chain:  chainClient,
		rdb:    rdb,
		pipe:   pipe,
		cfg:    cfg,
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Poll runs one scan cycle. Registered with the scheduler as a periodic job.
func (p *Poller) Poll(ctx context.Context) error {
	sigs, err := p.chain.RecentSignatures(ctx, p.cfg.ProgramAddress, p.cfg.PollLimit)
	if err != nil {
		return err
	}

	// oldest first, so alerts come out in chain order
	events := make([]model.RawEvent, 0, len(sigs))
	for i := len(sigs) - 1; i >= 0; i-- {
		sig := sigs[i]
		if !p.markSeen(ctx, sig) {
			continue
		}

		detail, err := p.chain.GetTransactionDetail(ctx, sig)
		if err != nil {
			p.logger.Warn("transaction fetch failed, skipping",
				zap.String("signature", sig), zap.Error(err))
			continue
		}
		if detail.Failed {
			continue
		}

		events = append(events, toRawEvent(p.cfg.ProgramAddress, detail))
	}

	if len(events) == 0 {
		return nil
	}

	monitor.EventsReceived.WithLabelValues("poller").Add(float64(len(events)))
	p.pipe.Process(ctx, events)
	return nil
}

// markSeen returns true exactly once per signature.
func (p *Poller) markSeen(ctx context.Context, sig string) bool {
	if p.rdb != nil {
		fresh, err := p.rdb.SetNX(ctx, seenKeyPrefix+sig, 1, seenKeyTTL).Result()
		if err == nil {
			return fresh
		}
		p.logger.Warn("redis dedup unavailable, using local set", zap.Error(err))
	}

	if _, ok := p.seen[sig]; ok {
		return false
	}
	p.seen[sig] = struct{}{}
	return true
}

func toRawEvent(program string, detail *chain.TransactionDetail) model.RawEvent {
	ev := model.RawEvent{
		Signature: detail.Signature,
		ProgramID: program,
		Accounts:  detail.AccountKeys,
	}
	for _, mint := range detail.PostTokenBalanceMints {
		ev.PostTokenBalances = append(ev.PostTokenBalances, model.TokenBalance{Mint: mint})
	}
	return ev
}
