package alerts

import (
	"context"
	"errors"
	"testing"
)

func TestCursorLoadAbsent(t *testing.T) {
	cursor := NewCursor(newFakeParams(), "last_tweet_id")

	value, found, err := cursor.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("found = true, want false on first run")
	}
	if value != "" {
		t.Errorf("value = %q, want empty", value)
	}
}

func TestCursorSaveThenLoad(t *testing.T) {
	params := newFakeParams()
	cursor := NewCursor(params, "last_tweet_id")

	if err := cursor.Save(context.Background(), "123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	value, found, err := cursor.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found || value != "123" {
		t.Errorf("Load() = (%q, %v), want (%q, true)", value, found, "123")
	}
}

func TestCursorLoadStoreFailure(t *testing.T) {
	params := newFakeParams()
	params.getErr = errors.New("connection refused")
	cursor := NewCursor(params, "last_tweet_id")

	if _, _, err := cursor.Load(context.Background()); err == nil {
		t.Fatal("Load() expected error when the store fails")
	}
}
