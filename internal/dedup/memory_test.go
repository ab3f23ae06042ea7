package dedup

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreMarkAndCheck(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	seen, err := store.HasSeen(ctx, "a1")
	if err != nil {
		t.Fatalf("HasSeen returned error: %v", err)
	}
	if seen {
		t.Error("expected fresh ID to be unseen")
	}

	if err := store.MarkSeen(ctx, "a1"); err != nil {
		t.Fatalf("MarkSeen returned error: %v", err)
	}

	seen, err = store.HasSeen(ctx, "a1")
	if err != nil {
		t.Fatalf("HasSeen returned error: %v", err)
	}
	if !seen {
		t.Error("expected marked ID to be seen")
	}
}

func TestMemoryStoreNoEvictionByDefault(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }
	if err := store.MarkSeen(ctx, "a1"); err != nil {
		t.Fatalf("MarkSeen returned error: %v", err)
	}

	// Far in the future the ID must still be seen: ttl zero never evicts.
	store.now = func() time.Time { return base.Add(1000 * time.Hour) }
	seen, err := store.HasSeen(ctx, "a1")
	if err != nil {
		t.Fatalf("HasSeen returned error: %v", err)
	}
	if !seen {
		t.Error("expected ID to stay seen without a TTL")
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }
	if err := store.MarkSeen(ctx, "a1"); err != nil {
		t.Fatalf("MarkSeen returned error: %v", err)
	}

	store.now = func() time.Time { return base.Add(30 * time.Minute) }
	if seen, _ := store.HasSeen(ctx, "a1"); !seen {
		t.Error("expected ID to still be seen within the TTL")
	}

	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	if seen, _ := store.HasSeen(ctx, "a1"); seen {
		t.Error("expected ID to expire after the TTL")
	}
}
