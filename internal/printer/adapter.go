package printer

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/capabilities"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/escpos"
	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/textcodec"
)

// ErrNotConnected is returned for print operations on a disconnected
// adapter.
var ErrNotConnected = errors.New("printer: not connected")

// keepaliveInterval is how often the keepalive loop polls the device.
// Frequent enough to hold NAT and printer idle timers open.
const keepaliveInterval = 30 * time.Second

// Adapter drives a single printer and implements the domain Printer
// port. It owns the transport, the optional keepalive loop, and the
// status listeners.
type Adapter struct {
	profile models.PrinterProfile
	caps    capabilities.Profile
	log     ports.Logger

	mu         sync.Mutex
	transport  *escpos.Transport
	lastStatus *models.PrinterStatus
	listeners  []func(models.PrinterStatus)
	stop       chan struct{}
}

// New creates an adapter for the profile. An unknown capability name
// degrades to the default profile with a warning.
func New(profile models.PrinterProfile, log ports.Logger) *Adapter {
	caps, ok := capabilities.Get(profile.Capability)
	if !ok {
		log.Warn("unknown capability profile %q, using default", profile.Capability)
		caps, _ = capabilities.Get("")
	}
	return &Adapter{
		profile: profile,
		caps:    caps,
		log:     log,
	}
}

// transportConfig maps a domain profile onto the transport configuration.
func transportConfig(profile models.PrinterProfile, log ports.Logger) escpos.Config {
	cfg := escpos.Config{
		Host:       profile.Host,
		Port:       profile.Port,
		SerialPort: profile.SerialPort,
		BaudRate:   profile.BaudRate,
		Device:     profile.Device,
		Timeout:    profile.TimeoutMs,
	}
	switch profile.ConnectionType {
	case models.ConnectionSerial:
		cfg.Connection = escpos.ConnSerial
	case models.ConnectionFile:
		cfg.Connection = escpos.ConnFile
	default:
		cfg.Connection = escpos.ConnNetwork
	}
	cfg.Logger = func(msg string) { log.Debug("transport: %s", msg) }
	return cfg
}

// statusToModel maps a wire status onto the domain model.
func statusToModel(s escpos.Status) models.PrinterStatus {
	return models.PrinterStatus{
		Online:       s.Online,
		CoverOpen:    s.CoverOpen,
		PaperOut:     s.PaperOut,
		PaperNearEnd: s.PaperNearEnd,
		DrawerOpen:   s.DrawerOpen,
		Error:        s.Error,
		LastUpdate:   time.Now(),
	}
}

// Connect opens the transport, initializes the printer, and starts the
// keepalive loop when the profile asks for one.
func (a *Adapter) Connect() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.transport != nil {
		return nil
	}

	if !a.caps.SupportsCodepage(a.profile.Codepage) {
		a.log.Warn("codepage %s is not listed for capability profile %s; text may render wrong",
			a.profile.Codepage, a.caps.Name)
	}

	transport := escpos.NewTransport(transportConfig(a.profile, a.log))
	if err := transport.Connect(); err != nil {
		return fmt.Errorf("connect printer %s: %w", a.profile.Name, err)
	}

	p := escpos.NewPrinter(transport, a.profile.Codepage)
	p.Init()
	if err := p.Flush(); err != nil {
		transport.Disconnect()
		return fmt.Errorf("initialize printer %s: %w", a.profile.Name, err)
	}

	a.transport = transport
	a.log.Info("printer %s connected (codepage %s)", a.profile.Name, a.profile.Codepage)

	if a.profile.Keepalive {
		a.stop = make(chan struct{})
		go a.keepaliveLoop(a.stop)
	}
	return nil
}

// Disconnect stops the keepalive loop and closes the transport.
func (a *Adapter) Disconnect() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	if a.transport == nil {
		return nil
	}
	err := a.transport.Disconnect()
	a.transport = nil
	a.log.Info("printer %s disconnected", a.profile.Name)
	return err
}

// Connected reports whether the transport is open.
func (a *Adapter) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transport != nil
}

// Profile returns the profile the adapter was built from.
func (a *Adapter) Profile() models.PrinterProfile {
	return a.profile
}

// AddStatusListener registers a callback invoked whenever a status poll
// observes a change.
func (a *Adapter) AddStatusListener(fn func(models.PrinterStatus)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// job returns a fresh command builder bound to the shared transport.
// The codepage override lets a single request print in a different
// character set, including "UTF-8" for printers with native Unicode.
func (a *Adapter) job(codepage string) (*escpos.Printer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.transport == nil {
		return nil, ErrNotConnected
	}
	if codepage == "" {
		codepage = a.profile.Codepage
	}
	return escpos.NewPrinter(a.transport, codepage), nil
}

// lineWidth returns the wrap width for a font, profile override first.
func (a *Adapter) lineWidth(font string) int {
	if a.profile.LineWidth > 0 {
		return a.profile.LineWidth
	}
	return a.caps.Columns(font)
}

// PrintText renders one text job: style commands, transcoded lines,
// trailing feed and cut.
func (a *Adapter) PrintText(text string, opts models.TextOptions) error {
	p, err := a.job(opts.Codepage)
	if err != nil {
		return err
	}

	p.Init()
	applyStyle(p, opts)

	lines := []string{text}
	if opts.Wrap {
		width := a.lineWidth(opts.Font)
		if m := parseMultiplier(opts.Multiplier); m > 1 && width > 0 {
			width /= m
		}
		lines = WrapText(text, width)
	}
	for _, line := range lines {
		p.TextLn(line)
	}

	if opts.Feed > 0 {
		p.Feed(opts.Feed)
	}
	if mode := parseCut(opts.Cut); mode != escpos.CutNone {
		p.Cut(mode, 3)
	}

	if err := p.Flush(); err != nil {
		return fmt.Errorf("print text: %w", err)
	}
	a.log.Debug("printed %d line(s) on %s", len(lines), a.profile.Name)
	return nil
}

// PrintQR prints a QR code, centered.
func (a *Adapter) PrintQR(req models.QRRequest) error {
	p, err := a.job("")
	if err != nil {
		return err
	}

	size := req.Size
	if size == 0 {
		size = 6
	}

	p.Init()
	p.Align(escpos.AlignCenter)
	if err := p.QR(req.Data, size, parseECLevel(req.EC)); err != nil {
		return err
	}
	p.Feed(1)
	if mode := parseCut(req.Cut); mode != escpos.CutNone {
		p.Cut(mode, 3)
	}

	if err := p.Flush(); err != nil {
		return fmt.Errorf("print qr: %w", err)
	}
	return nil
}

// PrintBarcode prints a one-dimensional barcode, centered.
func (a *Adapter) PrintBarcode(req models.BarcodeRequest) error {
	sym, ok := parseSymbology(req.Symbology)
	if !ok {
		return fmt.Errorf("unknown barcode symbology %q", req.Symbology)
	}

	p, err := a.job("")
	if err != nil {
		return err
	}

	height := req.Height
	if height == 0 {
		height = 80
	}
	width := req.Width
	if width == 0 {
		width = 3
	}

	p.Init()
	p.Align(escpos.AlignCenter)
	err = p.Barcode(escpos.BarcodeOptions{
		Symbology: sym,
		Data:      req.Data,
		Height:    height,
		Width:     width,
		HRI:       parseHRI(req.HRI),
		HRIFont:   escpos.FontB,
	})
	if err != nil {
		return err
	}
	p.Feed(1)
	if mode := parseCut(req.Cut); mode != escpos.CutNone {
		p.Cut(mode, 3)
	}

	if err := p.Flush(); err != nil {
		return fmt.Errorf("print barcode: %w", err)
	}
	return nil
}

// PrintImage prints a raster image capped to maxWidth dots, defaulting
// to the capability profile's printable width.
func (a *Adapter) PrintImage(img image.Image, maxWidth int) error {
	p, err := a.job("")
	if err != nil {
		return err
	}

	if maxWidth <= 0 {
		maxWidth = a.caps.DotWidth
	}
	if maxWidth <= 0 {
		maxWidth = 512
	}

	p.Init()
	p.Align(escpos.AlignCenter)
	if err := p.Image(img, maxWidth); err != nil {
		return err
	}
	p.Feed(1)

	if err := p.Flush(); err != nil {
		return fmt.Errorf("print image: %w", err)
	}
	return nil
}

// PrintTestPage prints a page that exercises styles, the configured
// codepage, and the fallback tiers, so a glance tells whether the
// printer and codepage match.
func (a *Adapter) PrintTestPage() error {
	p, err := a.job("")
	if err != nil {
		return err
	}

	name := a.profile.Name
	if name == "" {
		name = "ESC/POS printer"
	}
	width := a.lineWidth("")
	if width <= 0 {
		width = 48
	}

	p.Init()
	p.Align(escpos.AlignCenter).Bold(true).Size(2, 2).TextLn(name)
	p.Size(1, 1).Bold(false).TextLn(time.Now().Format("2006-01-02 15:04"))
	p.Align(escpos.AlignLeft)
	p.TextLn(strings.Repeat("=", width))
	p.TextLn("Codepage:  " + p.Codepage())
	p.TextLn("Profile:   " + a.caps.Name)
	p.TextLn("Accents:   café déjà vu straße")
	p.TextLn("Symbols:   ±½µ° §¶©®")
	p.TextLn("Box:       ┌──┬──┐ ═║╬")
	p.TextLn("Currency:  € £ ¥ ₽")
	p.TextLn(strings.Repeat("=", width))
	p.Feed(3)
	p.Cut(escpos.CutPartial, 0)

	if err := p.Flush(); err != nil {
		return fmt.Errorf("print test page: %w", err)
	}
	return nil
}

// Feed advances the paper.
func (a *Adapter) Feed(lines int) error {
	p, err := a.job("")
	if err != nil {
		return err
	}
	p.Feed(lines)
	return p.Flush()
}

// Cut cuts the paper; an empty or "none" mode defaults to a partial cut.
func (a *Adapter) Cut(mode string) error {
	p, err := a.job("")
	if err != nil {
		return err
	}
	m := parseCut(mode)
	if m == escpos.CutNone {
		m = escpos.CutPartial
	}
	p.Cut(m, 3)
	return p.Flush()
}

// Beep sounds the buzzer.
func (a *Adapter) Beep(count, duration int) error {
	p, err := a.job("")
	if err != nil {
		return err
	}
	p.Beep(count, duration)
	return p.Flush()
}

// OpenDrawer fires the drawer kick-out pulse.
func (a *Adapter) OpenDrawer(pin int) error {
	p, err := a.job("")
	if err != nil {
		return err
	}
	p.OpenDrawer(pin)
	return p.Flush()
}

// Status queries the device and notifies listeners on change.
func (a *Adapter) Status() (*models.PrinterStatus, error) {
	a.mu.Lock()
	transport := a.transport
	a.mu.Unlock()
	if transport == nil {
		return nil, ErrNotConnected
	}

	wire, err := escpos.QueryStatus(transport)
	if err != nil {
		return nil, err
	}
	status := statusToModel(wire)
	a.notify(status)
	return &status, nil
}

// Diagnostics probes reachability and reports codepage coverage for a
// sample text.
func (a *Adapter) Diagnostics(sample string) (*models.Diagnostics, error) {
	diag := &models.Diagnostics{Codepage: a.profile.Codepage}

	a.mu.Lock()
	transport := a.transport
	a.mu.Unlock()
	if transport == nil {
		transport = escpos.NewTransport(transportConfig(a.profile, a.log))
	}

	latency, err := transport.Probe()
	if err != nil {
		a.log.Debug("probe %s: %v", a.profile.Name, err)
	} else {
		diag.Reachable = true
		diag.LatencyMs = latency.Milliseconds()
	}

	if a.Connected() {
		if status, err := a.Status(); err == nil {
			diag.Status = status
		}
	}

	if sample != "" {
		for _, r := range textcodec.FindUnmappable(sample, a.profile.Codepage) {
			diag.Unmappable = append(diag.Unmappable, string(r))
		}
	}
	return diag, nil
}

// notify fans a changed status out to the listeners.
func (a *Adapter) notify(status models.PrinterStatus) {
	a.mu.Lock()
	changed := a.lastStatus == nil ||
		status.Online != a.lastStatus.Online ||
		status.CoverOpen != a.lastStatus.CoverOpen ||
		status.PaperOut != a.lastStatus.PaperOut ||
		status.PaperNearEnd != a.lastStatus.PaperNearEnd ||
		status.DrawerOpen != a.lastStatus.DrawerOpen ||
		status.Error != a.lastStatus.Error
	a.lastStatus = &status
	listeners := a.listeners
	a.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		go fn(status)
	}
}

// keepaliveLoop polls the device while connected so NAT entries and the
// printer's own idle timeout stay warm.
func (a *Adapter) keepaliveLoop(stop chan struct{}) {
	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := a.Status(); err != nil {
				a.log.Debug("keepalive poll %s: %v", a.profile.Name, err)
			}
		}
	}
}

var _ ports.Printer = (*Adapter)(nil)
