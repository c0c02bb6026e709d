package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDFromHeader(t *testing.T) {
	t.Run("valid inbound id is kept", func(t *testing.T) {
		in := "7f1c0f9e-2b53-4c1e-9a43-5d9b3a0e6d11"
		if got := RequestIDFrom(in); got != in {
			t.Fatalf("expected %q, got %q", in, got)
		}
	})

	for _, in := range []string{"", "not-a-uuid", "req-123"} {
		t.Run("replaced "+in, func(t *testing.T) {
			got := RequestIDFrom(in)
			if got == in {
				t.Fatalf("expected %q to be replaced", in)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected valid UUID, got %q: %v", got, err)
			}
		})
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := "abc-123"

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}
