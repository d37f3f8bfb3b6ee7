package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/connection"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/monitor"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/printing"
)

// Server is the HTTP API of the daemon.
type Server struct {
	log      ports.Logger
	printing *printing.Service
	monitor  *monitor.Service
	conn     *connection.Service
	http     *http.Server
}

// New builds the server and its routes.
func New(listen string, printingSvc *printing.Service, monitorSvc *monitor.Service, connSvc *connection.Service, log ports.Logger) *Server {
	s := &Server{
		log:      log,
		printing: printingSvc,
		monitor:  monitorSvc,
		conn:     connSvc,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/codepages", s.handleCodepages)
		r.Get("/capabilities", s.handleCapabilities)
		r.Get("/ports", s.handlePorts)

		r.Get("/printers", s.handleListPrinters)
		r.Post("/printers", s.handleSavePrinter)
		r.Delete("/printers/{id}", s.handleDeletePrinter)
		r.Post("/printers/{id}/connect", s.handleConnectPrinter)

		r.Get("/diagnostics", s.handleDiagnostics)
		r.Get("/diagnostics/unmappable", s.handleUnmappable)

		r.Post("/print/text", s.handlePrintText)
		r.Post("/print/utf8", s.handlePrintUTF8)
		r.Post("/print/qr", s.handlePrintQR)
		r.Post("/print/barcode", s.handlePrintBarcode)
		r.Post("/print/image", s.handlePrintImage)
		r.Post("/print/testpage", s.handleTestPage)

		r.Post("/feed", s.handleFeed)
		r.Post("/cut", s.handleCut)
		r.Post("/beep", s.handleBeep)
		r.Post("/drawer", s.handleDrawer)
	})

	s.http = &http.Server{
		Addr:         listen,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}
	return s
}

// Router exposes the handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.http.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("http api listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
