package escpos

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"go.bug.st/serial"
)

// ConnectionType selects the physical link to the printer.
type ConnectionType int

const (
	ConnNetwork ConnectionType = iota // raw TCP, usually port 9100
	ConnSerial                        // RS-232 / USB-serial
	ConnFile                          // character device, e.g. /dev/usb/lp0
)

// Config holds the connection parameters for a printer transport.
type Config struct {
	Connection ConnectionType   `json:"connection"`
	Host       string           `json:"host,omitempty"`
	Port       int              `json:"port,omitempty"`
	Device     string           `json:"device,omitempty"`
	SerialPort string           `json:"serialPort,omitempty"`
	BaudRate   int              `json:"baudRate,omitempty"`
	Timeout    int              `json:"timeout,omitempty"` // milliseconds
	Logger     func(msg string) `json:"-"`
}

// Transport encapsulates the connection to a printer. All exchanges are
// serialized through an internal mutex; a Transport is safe for use from
// multiple goroutines.
type Transport struct {
	config Config
	mu     sync.Mutex
	conn   net.Conn
	port   serial.Port
	file   *os.File
}

// NewTransport creates a transport with the given configuration, applying
// defaults for port, baud rate and timeout.
func NewTransport(config Config) *Transport {
	if config.Port == 0 {
		config.Port = 9100
	}
	if config.BaudRate == 0 {
		config.BaudRate = 19200
	}
	if config.Timeout == 0 {
		config.Timeout = 4000
	}
	return &Transport{config: config}
}

func (t *Transport) timeout() time.Duration {
	return time.Duration(t.config.Timeout) * time.Millisecond
}

func (t *Transport) log(format string, args ...any) {
	if t.config.Logger != nil {
		t.config.Logger(fmt.Sprintf(format, args...))
	}
}

// Connect opens the underlying link.
func (t *Transport) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connectLocked()
}

// connectLocked opens the link; the caller must hold the mutex.
func (t *Transport) connectLocked() error {
	switch t.config.Connection {
	case ConnNetwork:
		if t.conn != nil {
			return nil
		}
		addr := net.JoinHostPort(t.config.Host, strconv.Itoa(t.config.Port))
		conn, err := net.DialTimeout("tcp", addr, t.timeout())
		if err != nil {
			return fmt.Errorf("dial %s: %w", addr, err)
		}
		t.conn = conn
		t.log("connected to %s", addr)

	case ConnSerial:
		if t.port != nil {
			return nil
		}
		mode := &serial.Mode{
			BaudRate: t.config.BaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
		port, err := serial.Open(t.config.SerialPort, mode)
		if err != nil {
			return fmt.Errorf("open serial port %s: %w", t.config.SerialPort, err)
		}
		port.SetReadTimeout(t.timeout())
		t.port = port
		t.log("opened serial port %s at %d baud", t.config.SerialPort, t.config.BaudRate)

	case ConnFile:
		if t.file != nil {
			return nil
		}
		f, err := os.OpenFile(t.config.Device, os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("open device %s: %w", t.config.Device, err)
		}
		t.file = f
		t.log("opened device %s", t.config.Device)

	default:
		return fmt.Errorf("%w: %d", ErrUnknownConnType, t.config.Connection)
	}

	return nil
}

// Disconnect closes the underlying link.
func (t *Transport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disconnectLocked()
}

func (t *Transport) disconnectLocked() error {
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	if t.port != nil {
		t.port.Close()
		t.port = nil
	}
	if t.file != nil {
		t.file.Close()
		t.file = nil
	}
	return nil
}

// Connected reports whether a link is currently open.
func (t *Transport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil || t.port != nil || t.file != nil
}

// attempts returns how many tries an exchange gets before giving up.
// Device files get an extra one: USB printers briefly report busy while
// a previous job drains.
func (t *Transport) attempts() int {
	if t.config.Connection == ConnFile {
		return 3
	}
	return 2
}

// Send writes a command stream to the printer, reconnecting and retrying
// once (twice for device files) on transient failures.
func (t *Transport) Send(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyPayload
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var lastErr error
	for i := 0; i < t.attempts(); i++ {
		if err := t.connectLocked(); err != nil {
			lastErr = err
			if !retryable(err) {
				break
			}
			time.Sleep(300 * time.Millisecond)
			continue
		}

		err := t.writeLocked(data)
		if err == nil {
			return nil
		}
		lastErr = err

		t.log("write failed (%v), retrying", err)
		t.disconnectLocked()
		time.Sleep(300 * time.Millisecond)
	}

	return lastErr
}

// Query sends a request and reads a fixed-size reply, used for the
// real-time status commands.
func (t *Transport) Query(request []byte, respLen int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.connectLocked(); err != nil {
		return nil, err
	}
	if err := t.writeLocked(request); err != nil {
		t.disconnectLocked()
		return nil, err
	}
	resp, err := t.readLocked(respLen)
	if err != nil {
		t.disconnectLocked()
		return nil, err
	}
	return resp, nil
}

func (t *Transport) writeLocked(data []byte) error {
	switch t.config.Connection {
	case ConnNetwork:
		if t.conn == nil {
			return ErrNotConnected
		}
		t.conn.SetWriteDeadline(time.Now().Add(t.timeout()))
		_, err := t.conn.Write(data)
		return err
	case ConnSerial:
		if t.port == nil {
			return ErrNotConnected
		}
		_, err := t.port.Write(data)
		return err
	case ConnFile:
		if t.file == nil {
			return ErrNotConnected
		}
		_, err := t.file.Write(data)
		return err
	}
	return ErrUnknownConnType
}

func (t *Transport) readLocked(n int) ([]byte, error) {
	buf := make([]byte, n)
	switch t.config.Connection {
	case ConnNetwork:
		if t.conn == nil {
			return nil, ErrNotConnected
		}
		t.conn.SetReadDeadline(time.Now().Add(t.timeout()))
		if _, err := io.ReadFull(t.conn, buf); err != nil {
			return nil, err
		}
		return buf, nil
	case ConnSerial:
		if t.port == nil {
			return nil, ErrNotConnected
		}
		read := 0
		for read < n {
			m, err := t.port.Read(buf[read:])
			if err != nil {
				return nil, err
			}
			if m == 0 {
				return nil, fmt.Errorf("serial read timeout after %d of %d bytes", read, n)
			}
			read += m
		}
		return buf, nil
	case ConnFile:
		if t.file == nil {
			return nil, ErrNotConnected
		}
		if _, err := io.ReadFull(t.file, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	return nil, ErrUnknownConnType
}

// Probe checks reachability without sending printer data and reports the
// observed round-trip latency. For network printers this dials a throwaway
// connection with a capped timeout; for local links it opens the port.
func (t *Transport) Probe() (time.Duration, error) {
	start := time.Now()

	switch t.config.Connection {
	case ConnNetwork:
		probeTimeout := t.timeout()
		if probeTimeout > 3*time.Second {
			probeTimeout = 3 * time.Second
		}
		addr := net.JoinHostPort(t.config.Host, strconv.Itoa(t.config.Port))
		conn, err := net.DialTimeout("tcp", addr, probeTimeout)
		if err != nil {
			return 0, err
		}
		conn.Close()
		return time.Since(start), nil

	case ConnSerial, ConnFile:
		t.mu.Lock()
		defer t.mu.Unlock()
		wasConnected := t.conn != nil || t.port != nil || t.file != nil
		if err := t.connectLocked(); err != nil {
			return 0, err
		}
		if !wasConnected {
			t.disconnectLocked()
		}
		return time.Since(start), nil
	}

	return 0, ErrUnknownConnType
}

// retryable reports whether an exchange failure is worth another attempt.
// Network timeouts and the transient device errno values (I/O error, busy,
// device gone during re-enumeration) qualify.
func retryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	for _, code := range []syscall.Errno{syscall.EIO, syscall.EBUSY, syscall.ENODEV} {
		if errors.Is(err, code) {
			return true
		}
	}
	return false
}
