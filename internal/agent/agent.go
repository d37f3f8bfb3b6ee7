// Package agent maintains an outbound WebSocket session to a hub (for
// example a Home Assistant integration) so printers behind NAT stay
// reachable. The hub pushes print commands over the socket; the agent
// executes them and pushes status updates back.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/config"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/monitor"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/service/printing"
)

const (
	heartbeatInterval = 30 * time.Second
	maxBackoff        = 20 * time.Second
	outboundBuffer    = 16
)

// incomingMessage is what the hub sends us.
type incomingMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// outgoingMessage is what we send the hub.
type outgoingMessage struct {
	Type      string                 `json:"type"`
	ID        string                 `json:"id,omitempty"`
	Status    string                 `json:"status,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
	Printer   *models.PrinterStatus  `json:"printer,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Agent is the WebSocket client. It reconnects with backoff until
// stopped.
type Agent struct {
	cfg      config.AgentConfig
	printing *printing.Service
	monitor  *monitor.Service
	log      ports.Logger

	running  atomic.Bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	outbound chan outgoingMessage
}

func New(cfg config.AgentConfig, printingSvc *printing.Service, monitorSvc *monitor.Service, log ports.Logger) *Agent {
	return &Agent{
		cfg:      cfg,
		printing: printingSvc,
		monitor:  monitorSvc,
		log:      log,
		outbound: make(chan outgoingMessage, outboundBuffer),
	}
}

// Start launches the session loop. Calling Start on a running agent is
// a no-op.
func (a *Agent) Start(parent context.Context) error {
	if strings.TrimSpace(a.cfg.URL) == "" {
		return errors.New("agent: hub URL is empty")
	}
	if a.running.Swap(true) {
		return nil
	}

	ctx, cancel := context.WithCancel(parent)
	a.cancel = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.loop(ctx)
	}()

	return nil
}

// Stop closes the session and waits for the loop to exit.
func (a *Agent) Stop() {
	if !a.running.Load() {
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
	a.running.Store(false)
}

func (a *Agent) IsRunning() bool {
	return a.running.Load()
}

// PushStatus queues a printer status update for the hub. Updates are
// dropped when the queue is full or the agent is stopped.
func (a *Agent) PushStatus(status models.PrinterStatus) {
	if !a.running.Load() {
		return
	}
	msg := outgoingMessage{
		Type:      "status",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Printer:   &status,
	}
	select {
	case a.outbound <- msg:
	default:
		a.log.Debug("agent: status update dropped, queue full")
	}
}

func (a *Agent) loop(ctx context.Context) {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := a.runSession(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			a.log.Warn("agent: session ended: %v", err)
		}
		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}

func (a *Agent) runSession(ctx context.Context) error {
	headers := http.Header{}
	if a.cfg.Token != "" {
		headers.Set("Authorization", "Bearer "+a.cfg.Token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, a.cfg.URL, headers)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial %s (http %d): %w", a.cfg.URL, resp.StatusCode, err)
		}
		return fmt.Errorf("dial %s: %w", a.cfg.URL, err)
	}
	defer conn.Close()

	a.log.Info("agent: connected to %s", a.cfg.URL)

	status := a.monitor.GetCurrentStatus()
	if err := conn.WriteJSON(outgoingMessage{
		Type:      "hello",
		Status:    "online",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Printer:   &status,
	}); err != nil {
		return err
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	readErrors := make(chan error, 1)
	readMessages := make(chan incomingMessage, 8)

	go func() {
		for {
			var msg incomingMessage
			if err := conn.ReadJSON(&msg); err != nil {
				readErrors <- err
				return
			}
			select {
			case readMessages <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			conn.WriteJSON(outgoingMessage{Type: "status", Status: "offline"})
			return context.Canceled
		case err := <-readErrors:
			return err
		case msg := <-readMessages:
			a.handleIncoming(conn, msg)
		case msg := <-a.outbound:
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		case <-heartbeat.C:
			if err := conn.WriteJSON(outgoingMessage{
				Type:      "heartbeat",
				Status:    "online",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			}); err != nil {
				return err
			}
		}
	}
}

func (a *Agent) handleIncoming(conn *websocket.Conn, msg incomingMessage) {
	msgType := strings.ToLower(strings.TrimSpace(msg.Type))
	command := strings.ToLower(strings.TrimSpace(msg.Command))

	switch {
	case msgType == "ping" || command == "ping":
		conn.WriteJSON(outgoingMessage{
			Type:      "pong",
			ID:        msg.ID,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})

	case msgType == "command":
		result, err := a.executeCommand(command, msg.Payload)
		out := outgoingMessage{
			Type:      "result",
			ID:        msg.ID,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if err != nil {
			out.Status = "failed"
			out.Error = err.Error()
			a.log.Warn("agent: command %s failed: %v", command, err)
		} else {
			out.Status = "completed"
			out.Data = result
			a.log.Info("agent: command %s completed", command)
		}
		conn.WriteJSON(out)
	}
}

func (a *Agent) executeCommand(command string, payload json.RawMessage) (map[string]interface{}, error) {
	switch command {
	case "print_text", "print_utf8":
		var req struct {
			Text    string             `json:"text"`
			Options models.TextOptions `json:"options"`
		}
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		var err error
		if command == "print_utf8" {
			err = a.printing.PrintUTF8(req.Text, req.Options)
		} else {
			err = a.printing.PrintText(req.Text, req.Options)
		}
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"printed": true}, nil

	case "print_qr":
		var req models.QRRequest
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		if err := a.printing.PrintQR(req); err != nil {
			return nil, err
		}
		return map[string]interface{}{"printed": true}, nil

	case "print_barcode":
		var req models.BarcodeRequest
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		if err := a.printing.PrintBarcode(req); err != nil {
			return nil, err
		}
		return map[string]interface{}{"printed": true}, nil

	case "print_testpage":
		if err := a.printing.PrintTestPage(); err != nil {
			return nil, err
		}
		return map[string]interface{}{"printed": true}, nil

	case "feed":
		var req struct {
			Lines int `json:"lines"`
		}
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		if err := a.printing.Feed(req.Lines); err != nil {
			return nil, err
		}
		return map[string]interface{}{"done": true}, nil

	case "cut":
		var req struct {
			Mode string `json:"mode"`
		}
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		if err := a.printing.Cut(req.Mode); err != nil {
			return nil, err
		}
		return map[string]interface{}{"done": true}, nil

	case "beep":
		var req struct {
			Count    int `json:"count"`
			Duration int `json:"duration"`
		}
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		if err := a.printing.Beep(req.Count, req.Duration); err != nil {
			return nil, err
		}
		return map[string]interface{}{"done": true}, nil

	case "open_drawer":
		var req struct {
			Pin int `json:"pin"`
		}
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		if err := a.printing.OpenDrawer(req.Pin); err != nil {
			return nil, err
		}
		return map[string]interface{}{"done": true}, nil

	case "status":
		status := a.monitor.GetCurrentStatus()
		return map[string]interface{}{"printer": status}, nil

	case "unmappable":
		var req struct {
			Text     string `json:"text"`
			Codepage string `json:"codepage"`
		}
		if err := unmarshalPayload(payload, &req); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"unmappable": a.printing.Unmappable(req.Text, req.Codepage),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported command: %s", command)
	}
}

func unmarshalPayload(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, v)
}
