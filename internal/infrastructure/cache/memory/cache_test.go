package memory

import (
	"context"
	"testing"
	"time"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	c := New()
	ctx := context.Background()
	result := &domain.AnalysisResult{ATSScore: 25.0}

	c.Set(ctx, "fp-1", result, time.Hour)

	got, ok := c.Get(ctx, "fp-1")
	if !ok {
		t.Fatalf("expected hit for fp-1")
	}
	if got != result {
		t.Fatalf("expected the stored pointer back")
	}
}

func TestCacheMissForUnknownFingerprint(t *testing.T) {
	c := New()

	if _, ok := c.Get(context.Background(), "missing"); ok {
		t.Fatalf("expected miss for unknown fingerprint")
	}
}

func TestCacheEntryExpires(t *testing.T) {
	c := New()
	ctx := context.Background()
	current := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return current }

	c.Set(ctx, "fp-1", &domain.AnalysisResult{}, time.Hour)

	if _, ok := c.Get(ctx, "fp-1"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	current = current.Add(time.Hour + time.Second)
	if _, ok := c.Get(ctx, "fp-1"); ok {
		t.Fatalf("expected miss after expiry")
	}

	// The expired entry is removed, not resurrected by a later clock.
	current = current.Add(-2 * time.Hour)
	if _, ok := c.Get(ctx, "fp-1"); ok {
		t.Fatalf("expected the expired entry to be gone")
	}
}

func TestCacheIgnoresNilResultAndZeroTTL(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.Set(ctx, "fp-nil", nil, time.Hour)
	if _, ok := c.Get(ctx, "fp-nil"); ok {
		t.Fatalf("nil results must not be stored")
	}

	c.Set(ctx, "fp-zero", &domain.AnalysisResult{}, 0)
	if _, ok := c.Get(ctx, "fp-zero"); ok {
		t.Fatalf("entries with non-positive TTL must not be stored")
	}
}

func TestCacheOverwriteRefreshesEntry(t *testing.T) {
	c := New()
	ctx := context.Background()

	first := &domain.AnalysisResult{ATSScore: 10.0}
	second := &domain.AnalysisResult{ATSScore: 20.0}
	c.Set(ctx, "fp-1", first, time.Hour)
	c.Set(ctx, "fp-1", second, time.Hour)

	got, ok := c.Get(ctx, "fp-1")
	if !ok || got.ATSScore != 20.0 {
		t.Fatalf("expected the second write to win, got %+v ok=%v", got, ok)
	}
}
