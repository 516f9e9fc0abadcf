package metrics

import (
	"context"
	"errors"
	"testing"

	"go-prime/cfg"

	"github.com/stretchr/testify/assert"
)

func TestJoinShutdownFunc(t *testing.T) {
	var calls []string
	first := func(context.Context) error { calls = append(calls, "first"); return nil }
	failing := func(context.Context) error { calls = append(calls, "failing"); return errors.New("boom") }

	err := JoinShutdownFunc(first, nil, failing)(context.Background())

	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, []string{"first", "failing"}, calls)
}

func TestJoinShutdownFunc_NoFunctions(t *testing.T) {
	assert.NoError(t, JoinShutdownFunc()(context.Background()))
}

func TestSetupOTelMetricExporters_WithoutPrometheus(t *testing.T) {
	ctx := context.Background()

	shutdown := SetupOTelMetricExporters(ctx, &cfg.Config{})

	assert.NotNil(t, shutdown)
	assert.NoError(t, shutdown(ctx))
}
