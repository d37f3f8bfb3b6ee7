package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
)

// offlineThreshold is how many consecutive poll failures mark the
// printer offline. A single dropped exchange is not a state change.
const offlineThreshold = 3

// Service polls the printer status in the background and fans state
// changes out through a callback.
type Service struct {
	printer        ports.Printer
	log            ports.Logger
	config         Config
	status         models.PrinterStatus
	cancel         context.CancelFunc
	mutex          sync.Mutex
	isPaused       bool
	failures       int
	updateCallback func(*models.PrinterStatus)
}

// Config holds the polling parameters.
type Config struct {
	PollInterval time.Duration // default 10s
	StartupDelay time.Duration // grace before the first poll
	InitialState models.PrinterStatus
}

// NewService creates a monitor for the given printer.
func NewService(printer ports.Printer, log ports.Logger, cfg Config) *Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	return &Service{
		printer: printer,
		log:     log,
		config:  cfg,
		status:  cfg.InitialState,
	}
}

// Start launches the polling goroutine. A running monitor is restarted.
func (s *Service) Start() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.status = s.config.InitialState
	s.status.LastUpdate = time.Now()
	s.failures = 0

	if s.updateCallback != nil {
		statusCopy := s.status
		go s.updateCallback(&statusCopy)
	}

	go s.monitorRoutine(ctx)
	s.log.Info("status monitor started (interval %s)", s.config.PollInterval)
}

// Stop cancels the polling goroutine.
func (s *Service) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.log.Info("status monitor stopped")
	}
}

// Pause suspends polling while a print job is on the wire.
func (s *Service) Pause() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.isPaused = true
}

// Resume re-enables polling.
func (s *Service) Resume() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.isPaused = false
}

// SetUpdateCallback registers the state-change callback.
func (s *Service) SetUpdateCallback(fn func(*models.PrinterStatus)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.updateCallback = fn
}

// GetCurrentStatus returns a copy of the last observed status.
func (s *Service) GetCurrentStatus() models.PrinterStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.status
}

func (s *Service) monitorRoutine(ctx context.Context) {
	if s.config.StartupDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.config.StartupDelay):
		}
	}

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			s.mutex.Lock()
			paused := s.isPaused
			s.mutex.Unlock()
			if paused {
				continue
			}

			s.checkStatus()
		}
	}
}

// checkStatus runs one poll and publishes the result on change.
func (s *Service) checkStatus() {
	polled, err := s.printer.Status()
	if err != nil {
		s.mutex.Lock()
		s.failures++
		wasOnline := s.status.Online
		crossed := s.failures == offlineThreshold && wasOnline
		if crossed {
			s.status.Online = false
			s.status.LastUpdate = time.Now()
		}
		statusCopy := s.status
		callback := s.updateCallback
		s.mutex.Unlock()

		if crossed {
			s.log.Warn("printer unreachable after %d polls, marking offline", offlineThreshold)
			if callback != nil {
				go callback(&statusCopy)
			}
		}
		return
	}

	s.mutex.Lock()
	s.failures = 0
	changed := !sameState(s.status, *polled)
	wasOnline := s.status.Online
	s.status = *polled
	statusCopy := s.status
	callback := s.updateCallback
	s.mutex.Unlock()

	if !changed {
		return
	}
	if polled.Online && !wasOnline {
		s.log.Info("printer back online")
	}
	if polled.PaperOut {
		s.log.Warn("printer reports paper out")
	} else if polled.CoverOpen {
		s.log.Warn("printer reports cover open")
	}
	if callback != nil {
		go callback(&statusCopy)
	}
}

// sameState compares everything except the poll timestamp.
func sameState(a, b models.PrinterStatus) bool {
	return a.Online == b.Online &&
		a.CoverOpen == b.CoverOpen &&
		a.PaperOut == b.PaperOut &&
		a.PaperNearEnd == b.PaperNearEnd &&
		a.DrawerOpen == b.DrawerOpen &&
		a.Error == b.Error
}
