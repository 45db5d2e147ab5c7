package postgres

import (
	"context"
	"testing"
	"time"

	"golang.org/x/sync/semaphore"
)

func TestAcquireCapsConcurrentWork(t *testing.T) {
	db := &DB{sem: semaphore.NewWeighted(2)}

	if err := db.acquire(t.Context()); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := db.acquire(t.Context()); err != nil {
		t.Fatalf("second acquire: %v", err)
	}

	// At capacity the next caller blocks until a slot frees up or its
	// context runs out.
	short, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	if err := db.acquire(short); err == nil {
		t.Fatal("acquire succeeded past the concurrency cap")
	}

	db.release()
	if err := db.acquire(t.Context()); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}
