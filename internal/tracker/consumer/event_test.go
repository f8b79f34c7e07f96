package consumer

import (
	"strings"
	"testing"
)

func TestDecodeEventsArray(t *testing.T) {
	mint := strings.Repeat("A", 44)
	raw := `[{"signature":"sig-1","tokenMint":"` + mint + `"},{"signature":"sig-2"}]`

	events, err := decodeEvents([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].TokenMint != mint {
		t.Errorf("tokenMint not decoded: %+v", events[0])
	}
}

func TestDecodeEventsSingleObject(t *testing.T) {
	raw := `{"signature":"sig-1","accounts":["a","b"]}`

	events, err := decodeEvents([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(events) != 1 || events[0].Signature != "sig-1" {
		t.Fatalf("single object not wrapped: %+v", events)
	}
}

func TestDecodeEventsRejectsGarbage(t *testing.T) {
	if _, err := decodeEvents([]byte("not json")); err == nil {
		t.Fatal("expected decode error for malformed payload")
	}
}
