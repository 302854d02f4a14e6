package db

import (
	"context"
	"testing"
)

func TestNewPool_RejectsBadURL(t *testing.T) {
	_, err := NewPool(context.Background(), "://not-a-url", 10, 2)
	if err == nil {
		t.Fatal("expected error for malformed database url")
	}
}

func TestNewPool_RejectsInvertedBounds(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://localhost/clinic", 2, 10)
	if err == nil {
		t.Fatal("expected error when min connections exceed max")
	}
}
