package ctxutil

import (
	"context"
	"testing"

	"github.com/yungbote/contactbook-backend/internal/domain"
)

func TestLogFields(t *testing.T) {
	if got := LogFields(context.Background()); got != nil {
		t.Fatalf("expected no fields, got %v", got)
	}
	ctx := WithTraceData(context.Background(), &TraceData{RequestID: "req-1"})
	got := LogFields(ctx)
	if len(got) != 2 || got[0] != "request_id" || got[1] != "req-1" {
		t.Fatalf("unexpected fields: %v", got)
	}
	ctx = WithTraceData(ctx, &TraceData{TraceID: "t", RequestID: "r"})
	if got := LogFields(ctx); len(got) != 4 || got[1] != "t" || got[3] != "r" {
		t.Fatalf("unexpected fields: %v", got)
	}
}

func TestCurrentUser(t *testing.T) {
	if CurrentUser(nil) != nil || CurrentUser(context.Background()) != nil {
		t.Fatalf("expected no user")
	}
	u := &domain.User{Username: "alice"}
	if got := CurrentUser(WithCurrentUser(context.Background(), u)); got != u {
		t.Fatalf("got %v want %v", got, u)
	}
}
