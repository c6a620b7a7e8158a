package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appctx "storefront/internal/core/context"
)

func TestFromContext_AddsTraceFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := &Logger{zap.New(core).Sugar()}

	ctx := WithLogger(context.Background(), log)
	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext("trace-1", "req-1"))

	Info(ctx, "association created", "relation", "cart_item")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "trace-1", fields["trace_id"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "cart_item", fields["relation"])
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	log, err := New(Config{Level: "nope", OutputPaths: []string{"stdout"}})
	assert.NoError(t, err)
	assert.NotNil(t, log)
	assert.NotNil(t, NewNop().Named("test"))
}

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		level   zapcore.Level
		service any
	}{
		{"production with service", Config{Level: "warn", Service: "storefront-api"}, zapcore.WarnLevel, "storefront-api"},
		{"development without service", Config{Level: "debug", Development: true}, zapcore.DebugLevel, nil},
		{"bad level", Config{Level: "loud"}, zapcore.InfoLevel, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := buildConfig(tt.cfg)
			assert.Equal(t, tt.level, config.Level.Level())
			assert.Equal(t, tt.cfg.Development, config.Development)
			assert.Equal(t, tt.service, config.InitialFields["service"])
		})
	}
}
