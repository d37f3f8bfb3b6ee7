package escpos

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

func TestNewTransportDefaults(t *testing.T) {
	tr := NewTransport(Config{Connection: ConnNetwork, Host: "10.0.0.5"})

	if tr.config.Port != 9100 {
		t.Errorf("expected default port 9100, got %d", tr.config.Port)
	}
	if tr.config.BaudRate != 19200 {
		t.Errorf("expected default baud rate 19200, got %d", tr.config.BaudRate)
	}
	if tr.config.Timeout != 4000 {
		t.Errorf("expected default timeout 4000, got %d", tr.config.Timeout)
	}
}

func TestNewTransportKeepsExplicitConfig(t *testing.T) {
	tr := NewTransport(Config{
		Connection: ConnSerial,
		SerialPort: "/dev/ttyUSB0",
		BaudRate:   115200,
		Timeout:    1000,
	})

	if tr.config.BaudRate != 115200 {
		t.Errorf("expected baud rate 115200, got %d", tr.config.BaudRate)
	}
	if tr.config.Timeout != 1000 {
		t.Errorf("expected timeout 1000, got %d", tr.config.Timeout)
	}
}

// collectServer accepts connections and forwards everything read to the
// returned channel.
func collectServer(t *testing.T) (string, int, <-chan []byte) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	received := make(chan []byte, 8)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				data, _ := io.ReadAll(c)
				if len(data) > 0 {
					received <- data
				}
			}(conn)
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port, received
}

func TestTransportNetworkSend(t *testing.T) {
	host, port, received := collectServer(t)

	tr := NewTransport(Config{
		Connection: ConnNetwork,
		Host:       host,
		Port:       port,
		Timeout:    2000,
	})

	payload := []byte{0x1B, '@', 'h', 'i', '\n'}
	if err := tr.Send(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.Connected() {
		t.Error("expected transport to stay connected after send")
	}
	tr.Disconnect()

	select {
	case data := <-received:
		if !bytes.Equal(data, payload) {
			t.Errorf("expected % X, got % X", payload, data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive payload")
	}
}

func TestTransportReconnectAfterDisconnect(t *testing.T) {
	host, port, received := collectServer(t)

	tr := NewTransport(Config{
		Connection: ConnNetwork,
		Host:       host,
		Port:       port,
		Timeout:    2000,
	})

	if err := tr.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := tr.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if tr.Connected() {
		t.Fatal("expected transport to be disconnected")
	}

	payload := []byte("after reconnect")
	if err := tr.Send(payload); err != nil {
		t.Fatalf("send after disconnect: %v", err)
	}
	tr.Disconnect()

	select {
	case data := <-received:
		if !bytes.Equal(data, payload) {
			t.Errorf("expected %q, got %q", payload, data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive payload")
	}
}

func TestTransportSendEmptyPayload(t *testing.T) {
	tr := NewTransport(Config{Connection: ConnNetwork, Host: "127.0.0.1"})
	if err := tr.Send(nil); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}

func TestTransportUnknownConnectionType(t *testing.T) {
	tr := NewTransport(Config{Connection: ConnectionType(42)})
	if err := tr.Connect(); !errors.Is(err, ErrUnknownConnType) {
		t.Errorf("expected ErrUnknownConnType, got %v", err)
	}
}

func TestTransportProbe(t *testing.T) {
	host, port, _ := collectServer(t)

	tr := NewTransport(Config{
		Connection: ConnNetwork,
		Host:       host,
		Port:       port,
		Timeout:    2000,
	})

	latency, err := tr.Probe()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latency <= 0 {
		t.Errorf("expected positive latency, got %v", latency)
	}
	if tr.Connected() {
		t.Error("probe must not leave a connection open")
	}
}

func TestTransportProbeUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	tr := NewTransport(Config{
		Connection: ConnNetwork,
		Host:       addr.IP.String(),
		Port:       addr.Port,
		Timeout:    500,
	})

	if _, err := tr.Probe(); err == nil {
		t.Error("expected error probing closed port, got nil")
	}
}

func TestTransportLogger(t *testing.T) {
	host, port, _ := collectServer(t)

	var logged []string
	tr := NewTransport(Config{
		Connection: ConnNetwork,
		Host:       host,
		Port:       port,
		Timeout:    2000,
		Logger:     func(msg string) { logged = append(logged, msg) },
	})

	if err := tr.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	tr.Disconnect()

	if len(logged) == 0 {
		t.Error("expected connect to be logged")
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "net timeout",
			err:      &net.OpError{Op: "dial", Err: timeoutError{}},
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryable(tt.err); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
