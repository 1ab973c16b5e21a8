package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minjaecode/haruplan/internal/planner"
	"github.com/minjaecode/haruplan/pkg/config"
	"github.com/minjaecode/haruplan/pkg/dateutil"
	"github.com/minjaecode/haruplan/pkg/holiday"
	"github.com/minjaecode/haruplan/pkg/ics"
	"github.com/minjaecode/haruplan/pkg/nats"
	"github.com/minjaecode/haruplan/pkg/notify"
	"github.com/minjaecode/haruplan/pkg/retry"
	"github.com/minjaecode/haruplan/pkg/store"
	"github.com/minjaecode/haruplan/pkg/view"
)

var (
	configPath = flag.String("config", "", "Path to configuration file")
	version    = flag.Bool("version", false, "Print version information")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	exportPath = flag.String("export", "", "Export all events as iCalendar to the given file and exit")
	importPath = flag.String("import", "", "Import events from the given iCalendar file and exit")
)

// Version information - can be set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("haruplan %s (%s)\n", Version, GitCommit)
		os.Exit(0)
	}

	app, err := NewApp(*configPath, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch {
	case *exportPath != "":
		err = app.ExportICS(ctx, *exportPath)
	case *importPath != "":
		err = app.ImportICS(ctx, *importPath)
	default:
		err = app.Run(ctx)
	}
	if err != nil {
		app.logger.Error("haruplan failed", "error", err)
		os.Exit(1)
	}
}

// App holds the main application components.
type App struct {
	config    *config.Config
	logger    *slog.Logger
	store     store.Store
	planner   *planner.Planner
	session   *notify.Session
	publisher *nats.Publisher
	viewState *view.State
}

// NewApp wires the application from configuration.
func NewApp(configPath string, debugMode bool) (*App, error) {
	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	logger := setupLogger(cfg.Logging, debugMode)
	logger.Info("Starting haruplan",
		"version", Version,
		"db_path", cfg.Database.Path)

	eventStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event store: %w", err)
	}

	retryer := retry.NewRetryer(nil, logger)

	var publisher *nats.Publisher
	var sessionPublisher notify.Publisher
	if cfg.NATS.URL != "" {
		natsConfig := nats.DefaultConfig()
		natsConfig.URL = cfg.NATS.URL
		natsConfig.Subject = cfg.NATS.Subject
		publisher, err = nats.NewPublisher(natsConfig, logger)
		if err != nil {
			eventStore.Close()
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}
		sessionPublisher = publisher
	}

	session := notify.NewSession(
		&notify.Config{TickInterval: cfg.Notify.TickInterval},
		eventStore,
		sessionPublisher,
		logger,
	)

	return &App{
		config:    cfg,
		logger:    logger,
		store:     eventStore,
		planner:   planner.New(eventStore, retryer, logger),
		session:   session,
		publisher: publisher,
		viewState: view.New(time.Now(), holiday.NewStatic()),
	}, nil
}

// Run starts the reminder session and blocks until a shutdown signal.
func (a *App) Run(ctx context.Context) error {
	if err := a.session.Start(); err != nil {
		return fmt.Errorf("failed to start notify session: %w", err)
	}

	a.logger.Info("haruplan started",
		"view", a.viewState.View(),
		"period", dateutil.FormatMonth(a.viewState.CurrentDate()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", "signal", sig)
	case <-ctx.Done():
	}

	a.session.Stop()
	return nil
}

// ExportICS writes every stored event to path as an iCalendar document.
func (a *App) ExportICS(ctx context.Context, path string) error {
	events, err := a.planner.Events(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	data := ics.Export(events, a.logger)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write ics file: %w", err)
	}

	a.logger.Info("Exported events", "count", len(events), "path", path)
	return nil
}

// ImportICS loads events from an iCalendar file into the store. Events
// whose UID already exists are replaced, others are created.
func (a *App) ImportICS(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read ics file: %w", err)
	}

	events, err := ics.Import(string(data), a.logger)
	if err != nil {
		return err
	}

	existing, err := a.planner.Events(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		known[e.ID] = struct{}{}
	}

	imported := 0
	for _, event := range events {
		if _, ok := known[event.ID]; ok {
			_, err = a.planner.SaveForce(ctx, event)
		} else {
			// Create keeps the iCal UID as the stored id, so a
			// re-import replaces instead of duplicating.
			_, err = a.store.Create(ctx, event)
		}
		if err != nil {
			a.logger.Warn("Failed to import event", "error", err, "title", event.Title)
			continue
		}
		imported++
	}

	a.logger.Info("Imported events", "count", imported, "path", path)
	return nil
}

// Close releases the application's resources.
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing NATS publisher", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("Error closing event store", "error", err)
		}
	}
}

// setupLogger configures the application logger.
func setupLogger(cfg config.LoggingConfig, debugMode bool) *slog.Logger {
	var level slog.Level
	if debugMode {
		level = slog.LevelDebug
	} else {
		switch cfg.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
