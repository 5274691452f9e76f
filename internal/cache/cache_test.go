package cache

import (
	"context"
	"errors"
	"testing"
)

func TestGetOrComputeMissThenHit(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	computes := 0

	compute := func() (string, error) {
		computes++
		return "payload", nil
	}

	got, err := GetOrCompute(ctx, mem, "k", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "payload" || computes != 1 {
		t.Fatalf("miss should compute once, got %q computes=%d", got, computes)
	}

	got, err = GetOrCompute(ctx, mem, "k", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "payload" || computes != 1 {
		t.Errorf("hit should not recompute, got %q computes=%d", got, computes)
	}
}

func TestGetOrComputeErrorNotCached(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	boom := errors.New("store down")

	if _, err := GetOrCompute(ctx, mem, "k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected compute error, got %v", err)
	}
	if mem.Len() != 0 {
		t.Error("a failed compute must not be cached")
	}

	got, err := GetOrCompute(ctx, mem, "k", func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("recovery compute should run, got %d err=%v", got, err)
	}
}

func TestDeleteEvicts(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	mem.Set(ctx, "k", "v")

	if err := mem.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var out string
	if mem.Get(ctx, "k", &out) {
		t.Error("deleted key should miss")
	}
}
