package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/instrumentation"
	"taskboard/internal/server"
	"taskboard/internal/session"
	"taskboard/internal/store"
	"taskboard/internal/store/firestore"
)

// serveOptions collects the serve command's settings after flag and
// environment resolution.
type serveOptions struct {
	debug    bool
	httpAddr string
	baseURL  string

	googleClientID     string
	googleClientSecret string

	firestoreProject     string
	firestoreCollection  string
	firestoreCredentials string

	sessionTimeout time.Duration

	metricsEnabled bool
	metricsAddr    string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the board server",
		Long: `Start the taskboard HTTP server.

Sign-in:
  Users authenticate with Google OAuth. Provide the OAuth application
  credentials via --google-client-id and --google-client-secret flags
  or the GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET env vars.

  The public base URL builds the OAuth redirect URL. Set it with
  --base-url or BOARD_BASE_URL for deployed instances; it defaults to
  http://localhost<http-addr> for local development.

Storage:
  Tasks live in a Google Cloud Firestore collection. Set the project
  with --firestore-project or FIRESTORE_PROJECT_ID (falls back to
  GOOGLE_CLOUD_PROJECT). Credentials come from a service account key
  file (--firestore-credentials-file) or Application Default
  Credentials.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolveServeEnv(&opts)
			return runServe(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", server.DefaultAddr, "HTTP server address")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Public base URL for OAuth redirects. Can also use BOARD_BASE_URL env var. Example: https://board.example.com")
	cmd.Flags().StringVar(&opts.googleClientID, "google-client-id", "", "Google OAuth Client ID. Can also use GOOGLE_CLIENT_ID env var.")
	cmd.Flags().StringVar(&opts.googleClientSecret, "google-client-secret", "", "Google OAuth Client Secret. Can also use GOOGLE_CLIENT_SECRET env var.")
	cmd.Flags().StringVar(&opts.firestoreProject, "firestore-project", "", "Google Cloud project hosting the Firestore database. Can also use FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT env vars.")
	cmd.Flags().StringVar(&opts.firestoreCollection, "firestore-collection", firestore.DefaultCollection, "Firestore collection holding the task documents. Can also use FIRESTORE_COLLECTION env var.")
	cmd.Flags().StringVar(&opts.firestoreCredentials, "firestore-credentials-file", "", "Path to a service account key file. Defaults to Application Default Credentials.")
	cmd.Flags().DurationVar(&opts.sessionTimeout, "session-timeout", session.DefaultTimeout, "Idle timeout after which a sign-in session expires")
	cmd.Flags().BoolVar(&opts.metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// resolveServeEnv fills unset options from environment variables.
func resolveServeEnv(opts *serveOptions) {
	if opts.googleClientID == "" {
		opts.googleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if opts.googleClientSecret == "" {
		opts.googleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if opts.baseURL == "" {
		opts.baseURL = os.Getenv("BOARD_BASE_URL")
	}
	if opts.firestoreProject == "" {
		opts.firestoreProject = os.Getenv("FIRESTORE_PROJECT_ID")
	}
	if opts.firestoreProject == "" {
		opts.firestoreProject = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if opts.firestoreCollection == "" || opts.firestoreCollection == firestore.DefaultCollection {
		if collection := os.Getenv("FIRESTORE_COLLECTION"); collection != "" {
			opts.firestoreCollection = collection
		}
	}
	if os.Getenv("METRICS_ENABLED") == "false" {
		opts.metricsEnabled = false
	}
	if opts.metricsAddr == "" || opts.metricsAddr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			opts.metricsAddr = addr
		}
	}
}

// defaultBaseURL derives a local development base URL from the listen
// address when none is configured.
func defaultBaseURL(httpAddr string) string {
	if strings.HasPrefix(httpAddr, ":") {
		return "http://localhost" + httpAddr
	}
	return "http://" + httpAddr
}

func runServe(opts serveOptions) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if opts.baseURL == "" {
		opts.baseURL = defaultBaseURL(opts.httpAddr)
		logger.Info("no base URL configured, using local default", "base_url", opts.baseURL)
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("instrumentation shutdown failed", "error", err)
		}
	}()
	metrics := provider.Metrics()

	// Start the metrics server on its own port
	var metricsServer *server.MetricsServer
	if opts.metricsEnabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}
	defer func() {
		if metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Error("metrics server shutdown failed", "error", err)
			}
		}
	}()

	// Connect the task store
	storeClient, err := firestore.NewClient(shutdownCtx, firestore.Config{
		ProjectID:       opts.firestoreProject,
		Collection:      opts.firestoreCollection,
		CredentialsFile: opts.firestoreCredentials,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Firestore: %w", err)
	}
	defer func() {
		if err := storeClient.Close(); err != nil {
			logger.Error("firestore close failed", "error", err)
		}
	}()

	taskStore := store.Instrumented(storeClient, instrumentation.BackendFirestore, metrics)

	// Sessions and the Google sign-in flow
	sessions := session.NewManagerWithTimeout(opts.sessionTimeout, logger)
	defer sessions.Stop()

	flow, err := session.NewFlow(session.FlowConfig{
		ClientID:     opts.googleClientID,
		ClientSecret: opts.googleClientSecret,
		BaseURL:      opts.baseURL,
		Secure:       strings.HasPrefix(opts.baseURL, "https://"),
		Manager:      sessions,
		Logger:       logger,
		OnAuth: func(ctx context.Context, result string) {
			if result == session.AuthResultSuccess {
				metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)
				metrics.IncrementActiveSessions(ctx)
				return
			}
			metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set up Google sign-in: %w", err)
	}

	srv, err := server.NewServer(server.Config{
		Store:    taskStore,
		Sessions: sessions,
		Flow:     flow,
		Logger:   logger,
		Metrics:  metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create board server: %w", err)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := srv.Start(opts.httpAddr); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received, stopping board server")
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("error shutting down board server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("board server stopped with error: %w", err)
		}
	}

	return nil
}
