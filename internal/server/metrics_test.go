package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/instrumentation"
)

func TestNewMetricsServer_RequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "instrumentation provider is required")
}

func TestNewMetricsServer_RequiresEnabledProvider(t *testing.T) {
	config := instrumentation.DefaultConfig()
	config.Enabled = false
	provider, err := instrumentation.NewProvider(t.Context(), config)
	require.NoError(t, err)

	_, err = NewMetricsServer(MetricsServerConfig{InstrumentationProvider: provider})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enabled")
}

func TestMetricsServer_ShutdownBeforeStart(t *testing.T) {
	s := &MetricsServer{addr: DefaultMetricsAddr}

	assert.NoError(t, s.Shutdown(t.Context()))
	assert.Equal(t, DefaultMetricsAddr, s.Addr())
}
