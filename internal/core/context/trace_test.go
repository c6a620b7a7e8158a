package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTraceContext_GeneratesMissingIDs(t *testing.T) {
	tc := NewTraceContext("", "req-1")

	assert.NotEmpty(t, tc.TraceID)
	assert.Equal(t, "req-1", tc.RequestID)
	assert.False(t, tc.StartedAt.IsZero())
}

func TestTraceRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetTrace(ctx))
	assert.Empty(t, GetRequestID(ctx))

	tc := NewTraceContext("trace-1", "req-1")
	ctx = WithTrace(ctx, tc)

	got := GetTrace(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, []any{"trace_id", "trace-1", "request_id", "req-1"}, got.LogFields())

	var nilTrace *TraceContext
	assert.Nil(t, nilTrace.LogFields())
}
