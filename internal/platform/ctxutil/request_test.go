package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestDataRoundTrip(t *testing.T) {
	if GetRequestData(context.Background()) != nil {
		t.Fatalf("expected nil request data on empty context")
	}
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id, SessionID: "s1", Role: "ADMIN"})
	rd := GetRequestData(ctx)
	if rd == nil || rd.UserID != id || rd.Role != "ADMIN" {
		t.Fatalf("unexpected request data: %+v", rd)
	}
}

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t", RequestID: "r"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "t" || td.RequestID != "r" {
		t.Fatalf("unexpected trace data: %+v", td)
	}
}
