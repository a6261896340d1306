package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/store/firestore"
)

func TestResolveServeEnv(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "env-client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "env-client-secret")
	t.Setenv("BOARD_BASE_URL", "https://board.example.com")
	t.Setenv("FIRESTORE_PROJECT_ID", "env-project")
	t.Setenv("FIRESTORE_COLLECTION", "env-todos")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("METRICS_ADDR", ":9999")

	opts := serveOptions{
		firestoreCollection: firestore.DefaultCollection,
		metricsEnabled:      true,
		sessionTimeout:      time.Hour,
	}
	resolveServeEnv(&opts)

	assert.Equal(t, "env-client-id", opts.googleClientID)
	assert.Equal(t, "env-client-secret", opts.googleClientSecret)
	assert.Equal(t, "https://board.example.com", opts.baseURL)
	assert.Equal(t, "env-project", opts.firestoreProject)
	assert.Equal(t, "env-todos", opts.firestoreCollection)
	assert.False(t, opts.metricsEnabled)
	assert.Equal(t, ":9999", opts.metricsAddr)
}

func TestResolveServeEnv_FlagsWin(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "env-client-id")
	t.Setenv("FIRESTORE_PROJECT_ID", "env-project")

	opts := serveOptions{
		googleClientID:   "flag-client-id",
		firestoreProject: "flag-project",
	}
	resolveServeEnv(&opts)

	assert.Equal(t, "flag-client-id", opts.googleClientID)
	assert.Equal(t, "flag-project", opts.firestoreProject)
}

func TestResolveServeEnv_ProjectFallsBackToGoogleCloudProject(t *testing.T) {
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "gcp-project")

	var opts serveOptions
	resolveServeEnv(&opts)

	assert.Equal(t, "gcp-project", opts.firestoreProject)
}

func TestDefaultBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		httpAddr string
		expected string
	}{
		{
			name:     "port only",
			httpAddr: ":8080",
			expected: "http://localhost:8080",
		},
		{
			name:     "host and port",
			httpAddr: "0.0.0.0:8080",
			expected: "http://0.0.0.0:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, defaultBaseURL(tt.httpAddr))
		})
	}
}
