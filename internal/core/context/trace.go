// Package context carries request-scoped values (trace and request ids)
// through the domain layer without coupling it to HTTP.
package context

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TraceContext identifies one inbound request.
type TraceContext struct {
	TraceID   string
	RequestID string
	StartedAt time.Time
}

type traceContextKey struct{}

// NewTraceContext builds a TraceContext, generating any id that is empty.
func NewTraceContext(traceID, requestID string) *TraceContext {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &TraceContext{
		TraceID:   traceID,
		RequestID: requestID,
		StartedAt: time.Now().UTC(),
	}
}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetRequestID returns request ID from context or empty string.
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}

// LogFields returns the trace ids as logger key-value pairs.
func (t *TraceContext) LogFields() []any {
	if t == nil {
		return nil
	}
	return []any{"trace_id", t.TraceID, "request_id", t.RequestID}
}
