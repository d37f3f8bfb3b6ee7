package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-chi/chi/v5"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/capabilities"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/printer"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/connection"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/printing"
	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/textcodec"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusBadGateway
	switch {
	case errors.Is(err, printing.ErrEmptyText),
		errors.Is(err, printing.ErrEmptyData),
		errors.Is(err, printing.ErrBadPin):
		code = http.StatusBadRequest
	case errors.Is(err, printer.ErrNotConnected),
		errors.Is(err, connection.ErrNoPrinter):
		code = http.StatusServiceUnavailable
	}
	s.log.Error("%s %s: %v", r.Method, r.URL.Path, err)
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.monitor.GetCurrentStatus()
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleCodepages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"codepages": textcodec.Codepages()})
}

func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	profiles := make([]capabilities.Profile, 0)
	for _, name := range capabilities.Names() {
		if p, ok := capabilities.Get(name); ok {
			profiles = append(profiles, p)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"capabilities": profiles,
		"choices":      capabilities.Choices(),
	})
}

func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	list, err := s.conn.GetSystemPorts()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ports": list})
}

func (s *Server) handleListPrinters(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.conn.LoadProfiles()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]*models.PrinterProfile{"printers": profiles})
}

func (s *Server) handleSavePrinter(w http.ResponseWriter, r *http.Request) {
	var profile models.PrinterProfile
	if !decodeBody(w, r, &profile) {
		return
	}
	if err := s.conn.SaveProfile(&profile); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleDeletePrinter(w http.ResponseWriter, r *http.Request) {
	if err := s.conn.DeleteProfile(chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConnectPrinter(w http.ResponseWriter, r *http.Request) {
	if err := s.conn.Connect(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"connected": true})
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diag, err := s.printing.Diagnostics(r.URL.Query().Get("sample"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, diag)
}

func (s *Server) handleUnmappable(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	codepage := r.URL.Query().Get("codepage")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"codepage":   s.resolveCodepage(codepage),
		"unmappable": s.printing.Unmappable(text, codepage),
	})
}

func (s *Server) resolveCodepage(codepage string) string {
	if codepage != "" {
		return codepage
	}
	if active, err := s.conn.Active(); err == nil {
		return active.Profile().Codepage
	}
	return ""
}

type textRequest struct {
	Text    string             `json:"text"`
	Options models.TextOptions `json:"options"`
}

func (s *Server) handlePrintText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.printing.PrintText(req.Text, req.Options); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"printed": true})
}

func (s *Server) handlePrintUTF8(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.printing.PrintUTF8(req.Text, req.Options); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"printed": true})
}

func (s *Server) handlePrintQR(w http.ResponseWriter, r *http.Request) {
	var req models.QRRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.printing.PrintQR(req); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"printed": true})
}

func (s *Server) handlePrintBarcode(w http.ResponseWriter, r *http.Request) {
	var req models.BarcodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.printing.PrintBarcode(req); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"printed": true})
}

type imageRequest struct {
	Data     string `json:"data"` // base64-encoded PNG, JPEG, or GIF
	MaxWidth int    `json:"maxWidth,omitempty"`
}

func (s *Server) handlePrintImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid base64 image data"})
		return
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "undecodable image: " + err.Error()})
		return
	}

	if err := s.printing.PrintImage(img, req.MaxWidth); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"printed": true})
}

func (s *Server) handleTestPage(w http.ResponseWriter, r *http.Request) {
	if err := s.printing.PrintTestPage(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"printed": true})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lines int `json:"lines"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.printing.Feed(req.Lines); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"done": true})
}

func (s *Server) handleCut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.printing.Cut(req.Mode); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"done": true})
}

func (s *Server) handleBeep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count    int `json:"count"`
		Duration int `json:"duration"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.printing.Beep(req.Count, req.Duration); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"done": true})
}

func (s *Server) handleDrawer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pin int `json:"pin"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.printing.OpenDrawer(req.Pin); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"done": true})
}
