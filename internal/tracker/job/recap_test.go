package job

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"pump-radar/internal/tracker/model"
)

type fakeSource struct {
	records []model.TokenRecord
}

func (f *fakeSource) CachedRecords() []model.TokenRecord {
	return f.records
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) error {
	f.messages = append(f.messages, message)
	return nil
}

func recapRecord(addr string, marketCap float64) model.TokenRecord {
	rec := model.NewTokenRecord(addr)
	rec.Name = "Token-" + addr[:4]
	rec.MarketCap = marketCap
	return rec
}

func TestRecapSkipsEmptyCache(t *testing.T) {
	n := &fakeNotifier{}
	r := NewRecap(&fakeSource{}, n, 10, zap.NewNop())

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("recap failed: %v", err)
	}
	if len(n.messages) != 0 {
		t.Errorf("empty cache must not dispatch a digest, got %d messages", len(n.messages))
	}
}

func TestRecapLimitsToTopN(t *testing.T) {
	src := &fakeSource{records: []model.TokenRecord{
		recapRecord(strings.Repeat("A", 44), 300000),
		recapRecord(strings.Repeat("B", 44), 200000),
		recapRecord(strings.Repeat("C", 44), 100000),
	}}
	n := &fakeNotifier{}
	r := NewRecap(src, n, 2, zap.NewNop())

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("recap failed: %v", err)
	}
	if len(n.messages) != 1 {
		t.Fatalf("expected one digest message, got %d", len(n.messages))
	}

	msg := n.messages[0]
	if !strings.Contains(msg, strings.Repeat("A", 44)) || !strings.Contains(msg, strings.Repeat("B", 44)) {
		t.Errorf("digest must include the top records: %s", msg)
	}
	if strings.Contains(msg, strings.Repeat("C", 44)) {
		t.Errorf("digest must cut below top N: %s", msg)
	}
}
