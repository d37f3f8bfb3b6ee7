// Package app assembles the daemon: configuration, profile storage,
// the printer services, the HTTP API, and the optional hub agent.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/agent"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/config"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/infrastructure/logger"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/infrastructure/storage"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/server"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/connection"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/monitor"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/printing"
	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/textcodec"
)

const shutdownTimeout = 5 * time.Second

// App holds the wired service graph.
type App struct {
	cfg     *config.Config
	cfgPath string
	log     ports.Logger
	zlog    *logger.ZapLogger

	conn     *connection.Service
	printing *printing.Service
	monitor  *monitor.Service
	server   *server.Server
	agent    *agent.Agent
	watcher  *config.Watcher
}

// New loads the configuration and builds every component. Nothing is
// started yet; call Run.
func New(cfgPath string) (*App, error) {
	// 1. Configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	// 2. Logger
	zlog, err := logger.NewZapLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log := ports.Logger(zlog)
	textcodec.SetLogger(log.Printf)

	// 3. Profile repository
	repo, err := storage.NewFileProfileRepository(filepath.Join(cfg.DataDir, "profiles.json"))
	if err != nil {
		return nil, fmt.Errorf("init profile repository: %w", err)
	}

	// 4. Services. The proxy keeps printing and monitoring pointed at
	// whichever printer is active after profile switches.
	connSvc := connection.NewService(repo, log)
	active := connSvc.Proxy()

	printingSvc := printing.NewService(active, log)

	monitorSvc := monitor.NewService(active, log, monitor.Config{
		PollInterval: time.Duration(cfg.Monitor.PollIntervalMs) * time.Millisecond,
		StartupDelay: 2 * time.Second,
	})
	printingSvc.SetPauser(monitorSvc)

	a := &App{
		cfg:      cfg,
		cfgPath:  cfgPath,
		log:      log,
		zlog:     zlog,
		conn:     connSvc,
		printing: printingSvc,
		monitor:  monitorSvc,
	}

	// 5. HTTP API
	a.server = server.New(cfg.Listen, printingSvc, monitorSvc, connSvc, log)

	// 6. Hub agent
	if cfg.Agent.Enabled {
		a.agent = agent.New(cfg.Agent, printingSvc, monitorSvc, log)
	}

	monitorSvc.SetUpdateCallback(func(status *models.PrinterStatus) {
		if status == nil {
			return
		}
		if a.agent != nil {
			a.agent.PushStatus(*status)
		}
	})

	return a, nil
}

// Run starts every component and blocks until ctx is canceled or the
// HTTP server fails.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting escposd, listening on %s", a.cfg.Listen)

	// The printer may be powered off at boot, so keep retrying in the
	// background until it shows up or someone connects another one.
	go a.connectPrinter(ctx, a.cfg.Printer)

	if a.cfg.Monitor.Enabled {
		a.monitor.Start()
	}

	if a.agent != nil {
		if err := a.agent.Start(ctx); err != nil {
			a.log.Warn("agent not started: %v", err)
		}
	}

	if a.cfgPath != "" {
		watcher, err := config.NewWatcher(a.cfgPath, a.log, a.applyConfig)
		if err != nil {
			a.log.Warn("config watcher not started: %v", err)
		} else {
			a.watcher = watcher
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	a.shutdown()
	return runErr
}

func (a *App) connectPrinter(ctx context.Context, profile models.PrinterProfile) {
	if profile.Host == "" && profile.SerialPort == "" && profile.Device == "" {
		a.log.Info("no printer endpoint configured, waiting for a connect via the API")
		return
	}

	backoff := time.Second
	for {
		if a.conn.IsConnected() {
			return
		}
		err := a.conn.ConnectProfile(profile)
		if err == nil {
			a.log.Info("printer connected (%s)", profile.Name)
			return
		}
		a.log.Warn("printer connection failed: %v (retrying in %s)", err, backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

// applyConfig reacts to a rewritten config file. Only the printer
// profile is hot-swapped; a changed listen address needs a restart.
func (a *App) applyConfig(cfg *config.Config) {
	if cfg.Listen != a.cfg.Listen {
		a.log.Warn("listen address changed to %s, restart to apply", cfg.Listen)
	}

	if cfg.Printer != a.cfg.Printer {
		a.log.Info("printer profile changed, reconnecting")
		if err := a.conn.ConnectProfile(cfg.Printer); err != nil {
			a.log.Error("reconnect with new profile failed: %v", err)
		}
	}

	a.cfg = cfg
}

func (a *App) shutdown() {
	a.log.Info("shutting down")

	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.agent != nil {
		a.agent.Stop()
	}
	a.monitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("server shutdown: %v", err)
	}

	if err := a.conn.Disconnect(); err != nil {
		a.log.Error("printer disconnect: %v", err)
	}

	a.zlog.Sync()
}
