package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "taskboard", config.ServiceName)
	assert.True(t, config.Enabled)
	assert.Equal(t, ExporterPrometheus, config.MetricsExporter)
	assert.Equal(t, ExporterNone, config.TracingExporter)
	assert.Equal(t, "/metrics", config.PrometheusEndpoint)
	require.NoError(t, config.Validate())
}

func TestDefaultConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "custom-board")
	t.Setenv("METRICS_EXPORTER", ExporterStdout)
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	config := DefaultConfig()

	assert.Equal(t, "custom-board", config.ServiceName)
	assert.Equal(t, ExporterStdout, config.MetricsExporter)
	assert.False(t, config.Enabled)
	assert.InDelta(t, 0.5, config.TraceSamplingRate, 1e-9)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default is valid",
			mutate: func(*Config) {},
		},
		{
			name:    "sampling rate out of range",
			mutate:  func(c *Config) { c.TraceSamplingRate = 1.5 },
			wantErr: "sampling rate",
		},
		{
			name:    "unknown metrics exporter",
			mutate:  func(c *Config) { c.MetricsExporter = "statsd" },
			wantErr: "invalid metrics exporter",
		},
		{
			name:    "unknown tracing exporter",
			mutate:  func(c *Config) { c.TracingExporter = "jaeger" },
			wantErr: "invalid tracing exporter",
		},
		{
			name: "otlp tracing without endpoint",
			mutate: func(c *Config) {
				c.TracingExporter = ExporterOTLP
				c.OTLPEndpoint = ""
			},
			wantErr: "OTLP endpoint is required",
		},
		{
			name: "otlp metrics without endpoint",
			mutate: func(c *Config) {
				c.MetricsExporter = ExporterOTLP
				c.OTLPEndpoint = ""
			},
			wantErr: "OTLP endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMetrics_ZeroValueIsNoOp(t *testing.T) {
	m := &Metrics{}

	// None of these may panic without initialized instruments
	assert.NotPanics(t, func() {
		ctx := t.Context()
		m.RecordHTTPRequest(ctx, "GET", "/", 200, 0)
		m.RecordStoreOperation(ctx, BackendFirestore, "list", StatusSuccess, 0)
		m.RecordOAuthAuth(ctx, OAuthResultSuccess)
		m.IncrementActiveSessions(ctx)
		m.DecrementActiveSessions(ctx)
	})
}

func TestNewProvider_Disabled(t *testing.T) {
	config := DefaultConfig()
	config.Enabled = false

	provider, err := NewProvider(t.Context(), config)
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.NotNil(t, provider.Metrics())
	assert.NotNil(t, provider.Tracer("test"))
	assert.NoError(t, provider.Shutdown(t.Context()))
}
