package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"pump-radar/internal/tracker/model"
)

var (
	mintA = strings.Repeat("A", 44)
	mintB = strings.Repeat("B", 44)
)

type fakeValidator struct {
	valid bool
	err   error
	calls int
}

func (f *fakeValidator) ValidateMint(ctx context.Context, addr string) (bool, error) {
	f.calls++
	return f.valid, f.err
}

type fakeEnricher struct {
	records map[string]model.TokenRecord
	panicOn string
	calls   int
}

func (f *fakeEnricher) Enrich(ctx context.Context, address string) model.TokenRecord {
	f.calls++
	if address == f.panicOn {
		panic("enricher blew up")
	}
	if rec, ok := f.records[address]; ok {
		return rec
	}
	return model.NewTokenRecord(address)
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

type fakeStore struct {
	saved []*model.Alert
	err   error
}

func (f *fakeStore) Save(ctx context.Context, a *model.Alert) error {
	f.saved = append(f.saved, a)
	return f.err
}

func passingRecord(addr string) model.TokenRecord {
	rec := model.NewTokenRecord(addr)
	rec.Name = "Pumpy"
	rec.Liquidity = 5000
	rec.PoolSupply = 80
	rec.DevHolding = 5
	rec.Price = 3e-9
	rec.MarketCap = 90000
	rec.MintAuthRevoked = true
	rec.FreezeAuthRevoked = true
	return rec
}

func defaultFilters() func() model.FilterConfig {
	return func() model.FilterConfig { return model.DefaultFilterConfig() }
}

func newTestPipeline(v Validator, e Enricher, n *fakeNotifier, s AlertStore, perMinute int) *Pipeline {
	return New(v, e, n, s, defaultFilters(), perMinute, time.Hour, zap.NewNop())
}

func eventWithMint(mint string) model.RawEvent {
	return model.RawEvent{Signature: "sig-" + mint[:4], TokenMint: mint}
}

func TestProcessDispatchesPassingAlert(t *testing.T) {
	v := &fakeValidator{valid: true}
	e := &fakeEnricher{records: map[string]model.TokenRecord{mintA: passingRecord(mintA)}}
	n := &fakeNotifier{}
	s := &fakeStore{}
	p := newTestPipeline(v, e, n, s, 5)

	p.Process(context.Background(), []model.RawEvent{eventWithMint(mintA)})

	if len(n.messages) != 1 {
		t.Fatalf("expected 1 dispatched message, got %d", len(n.messages))
	}
	if !strings.Contains(n.messages[0], "New Token Alert") {
		t.Errorf("passing record must produce the alert format, got: %s", n.messages[0])
	}
	if len(s.saved) != 1 || !s.saved[0].Passed {
		t.Errorf("passing alert not persisted: %+v", s.saved)
	}
}

func TestProcessDispatchesRejection(t *testing.T) {
	rec := passingRecord(mintA)
	rec.Liquidity = 100 // below range
	v := &fakeValidator{valid: true}
	e := &fakeEnricher{records: map[string]model.TokenRecord{mintA: rec}}
	n := &fakeNotifier{}
	s := &fakeStore{}
	p := newTestPipeline(v, e, n, s, 5)

	p.Process(context.Background(), []model.RawEvent{eventWithMint(mintA)})

	if len(n.messages) != 1 {
		t.Fatalf("expected 1 dispatched message, got %d", len(n.messages))
	}
	if !strings.Contains(n.messages[0], "did not pass filters") {
		t.Errorf("failing record must produce the rejection format, got: %s", n.messages[0])
	}
	if len(s.saved) != 1 || s.saved[0].Passed || len(s.saved[0].Reasons) == 0 {
		t.Errorf("rejection not persisted with reasons: %+v", s.saved)
	}
}

func TestGovernorDropsExcessEvents(t *testing.T) {
	v := &fakeValidator{valid: true}
	e := &fakeEnricher{records: map[string]model.TokenRecord{mintA: passingRecord(mintA)}}
	n := &fakeNotifier{}
	p := newTestPipeline(v, e, n, nil, 5)

	events := make([]model.RawEvent, 6)
	for i := range events {
		events[i] = eventWithMint(mintA)
	}
	p.Process(context.Background(), events)

	if len(n.messages) != 5 {
		t.Errorf("governor must drop the sixth event in a burst of six, dispatched %d", len(n.messages))
	}
}

func TestInvalidMintNeverReachesEnrichment(t *testing.T) {
	v := &fakeValidator{valid: false, err: errors.New("rpc down")}
	e := &fakeEnricher{}
	n := &fakeNotifier{}
	p := newTestPipeline(v, e, n, nil, 5)

	p.Process(context.Background(), []model.RawEvent{eventWithMint(mintA)})

	if e.calls != 0 {
		t.Errorf("enricher must not run for an unvalidated mint, ran %d times", e.calls)
	}
	if len(n.messages) != 0 {
		t.Errorf("no message expected for an unvalidated mint, got %d", len(n.messages))
	}
}

func TestEventWithoutMintIsSkipped(t *testing.T) {
	v := &fakeValidator{valid: true}
	e := &fakeEnricher{}
	n := &fakeNotifier{}
	p := newTestPipeline(v, e, n, nil, 5)

	p.Process(context.Background(), []model.RawEvent{{Signature: "sig-empty"}})

	if v.calls != 0 || e.calls != 0 || len(n.messages) != 0 {
		t.Errorf("empty event must stop at extraction: validator=%d enricher=%d messages=%d",
			v.calls, e.calls, len(n.messages))
	}
}

func TestPanicInOneEventDoesNotAbortBatch(t *testing.T) {
	v := &fakeValidator{valid: true}
	e := &fakeEnricher{
		records: map[string]model.TokenRecord{mintB: passingRecord(mintB)},
		panicOn: mintA,
	}
	n := &fakeNotifier{}
	p := newTestPipeline(v, e, n, nil, 5)

	p.Process(context.Background(), []model.RawEvent{eventWithMint(mintA), eventWithMint(mintB)})

	if len(n.messages) != 1 {
		t.Fatalf("second event must still be dispatched after a panic, got %d messages", len(n.messages))
	}
	if !strings.Contains(n.messages[0], mintB) {
		t.Errorf("dispatched message should be for the surviving event, got: %s", n.messages[0])
	}
}

func TestNotifierFailureDoesNotAbortEvent(t *testing.T) {
	v := &fakeValidator{valid: true}
	e := &fakeEnricher{records: map[string]model.TokenRecord{mintA: passingRecord(mintA)}}
	n := &fakeNotifier{err: errors.New("telegram down")}
	s := &fakeStore{}
	p := newTestPipeline(v, e, n, s, 5)

	p.Process(context.Background(), []model.RawEvent{eventWithMint(mintA)})

	if len(s.saved) != 1 {
		t.Errorf("alert must still be persisted after a dispatch failure, saved %d", len(s.saved))
	}
}

func TestCachedRecordsOrderedByMarketCap(t *testing.T) {
	small := passingRecord(mintA)
	small.MarketCap = 10000
	big := passingRecord(mintB)
	big.MarketCap = 500000

	v := &fakeValidator{valid: true}
	e := &fakeEnricher{records: map[string]model.TokenRecord{mintA: small, mintB: big}}
	n := &fakeNotifier{}
	p := newTestPipeline(v, e, n, nil, 5)

	p.Process(context.Background(), []model.RawEvent{eventWithMint(mintA), eventWithMint(mintB)})

	records := p.CachedRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 cached records, got %d", len(records))
	}
	if records[0].Address != mintB {
		t.Errorf("records must be ordered by market cap descending, first was %s", records[0].Address)
	}
}
