package memory

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/brandlens/brandlens/internal/db"
)

func TestGetSet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("got %q, want %q", got, "v")
	}
}

func TestSetWithTTL_Expiry(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected expired key, got %v", err)
	}
	ok, err := s.Exists(ctx, "k")
	if err != nil || ok {
		t.Fatalf("expected exists=false, got ok=%v err=%v", ok, err)
	}
}

func TestScan(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, k := range []string{"app:answer:1", "app:answer:2", "app:metric:1"} {
		if err := s.Set(ctx, k, []byte("x")); err != nil {
			t.Fatalf("set: %v", err)
		}
	}

	keys, err := s.Scan(ctx, "app:answer:*")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "app:answer:1" || keys[1] != "app:answer:2" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestDel(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_ = s.Set(ctx, "k", []byte("v"))
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after del, got %v", err)
	}
}
