package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/capabilities"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/infrastructure/logger"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/printer"
	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/textcodec"
)

var (
	host       = flag.String("host", "", "printer IP or hostname (network connection)")
	port       = flag.Int("port", 9100, "raw printing port")
	serialPort = flag.String("serial", "", "serial port, e.g. /dev/ttyUSB0")
	baud       = flag.Int("baud", 19200, "serial baud rate")
	device     = flag.String("device", "", "device file, e.g. /dev/usb/lp0")
	codepage   = flag.String("codepage", "CP437", "target codepage")
	capability = flag.String("capability", "", "capability profile, see 'escpos-cli capabilities'")
	timeout    = flag.Int("timeout", 4000, "I/O timeout in milliseconds")
	align      = flag.String("align", "", "text alignment: left, center, right")
	bold       = flag.Bool("bold", false, "print text in bold")
	wrap       = flag.Bool("wrap", true, "wrap text to the printer width")
	feedAfter  = flag.Int("feed", 3, "lines to feed after printing")
	cutAfter   = flag.String("cut", "partial", "cut after printing: full, partial, none")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	command, args := args[0], args[1:]

	// Offline commands first, they need no printer.
	switch command {
	case "codepages":
		runCodepages()
		return
	case "capabilities":
		runCapabilities()
		return
	case "unmappable":
		runUnmappable(args)
		return
	case "ports":
		runPorts()
		return
	case "scan":
		runScan()
		return
	case "diag":
		runDiag(args)
		return
	}

	adapter := printer.New(profileFromFlags(command), logger.NewStdLogger("escpos-cli "))
	if err := adapter.Connect(); err != nil {
		fatalf("%v", err)
	}
	defer adapter.Disconnect()

	switch command {
	case "print":
		runPrint(adapter, args)
	case "qr":
		runQR(adapter, args)
	case "testpage":
		if err := adapter.PrintTestPage(); err != nil {
			fatalf("test page: %v", err)
		}
	case "status":
		runStatus(adapter)
	case "feed":
		runFeed(adapter, args)
	case "cut":
		runCut(adapter, args)
	default:
		fmt.Fprintf(os.Stderr, "escpos-cli: unknown command %q\n\n", command)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: escpos-cli [flags] <command> [args]

Commands needing a printer (-host, -serial, or -device):
  print [text]        transcode and print text (reads stdin without args)
  qr <data>           print a QR code
  testpage            print the capability test page
  status              query printer status over DLE EOT
  feed [lines]        advance paper
  cut [full|partial]  cut paper

Offline commands:
  diag [sample]       reachability, latency, and unmappable characters
  codepages           list codepages the transcoder can target
  capabilities        list builtin printer capability profiles
  unmappable <text>   characters the selected codepage cannot print
  ports               list system serial ports
  scan                probe local /24 subnets for port-9100 printers

Flags:
`)
	flag.PrintDefaults()
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "escpos-cli: "+format+"\n", args...)
	os.Exit(1)
}

func profileFromFlags(command string) models.PrinterProfile {
	profile := models.PrinterProfile{
		ID:         "cli",
		Name:       "cli",
		Codepage:   *codepage,
		Capability: *capability,
		TimeoutMs:  *timeout,
	}

	switch {
	case *host != "":
		profile.ConnectionType = models.ConnectionNetwork
		profile.Host = *host
		profile.Port = *port
	case *serialPort != "":
		profile.ConnectionType = models.ConnectionSerial
		profile.SerialPort = *serialPort
		profile.BaudRate = *baud
	case *device != "":
		profile.ConnectionType = models.ConnectionFile
		profile.Device = *device
	default:
		fatalf("command %q needs one of -host, -serial, or -device", command)
	}
	return profile
}

// readText joins the arguments, or drains stdin when there are none so
// the tool can sit at the end of a pipe.
func readText(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatalf("read stdin: %v", err)
	}
	return string(data)
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func runPrint(adapter *printer.Adapter, args []string) {
	text := readText(args)
	opts := models.TextOptions{
		Align: *align,
		Bold:  *bold,
		Wrap:  *wrap,
		Feed:  *feedAfter,
		Cut:   *cutAfter,
	}
	if err := adapter.PrintText(text, opts); err != nil {
		fatalf("print: %v", err)
	}
}

func runQR(adapter *printer.Adapter, args []string) {
	if len(args) == 0 {
		fatalf("usage: escpos-cli qr <data>")
	}
	req := models.QRRequest{Data: strings.Join(args, " "), Cut: *cutAfter}
	if err := adapter.PrintQR(req); err != nil {
		fatalf("qr: %v", err)
	}
}

func runStatus(adapter *printer.Adapter) {
	status, err := adapter.Status()
	if err != nil {
		fatalf("status: %v", err)
	}
	printJSON(status)
}

func runDiag(args []string) {
	adapter := printer.New(profileFromFlags("diag"), logger.NewStdLogger("escpos-cli "))
	diag, err := adapter.Diagnostics(strings.Join(args, " "))
	if err != nil {
		fatalf("diag: %v", err)
	}
	printJSON(diag)
}

func runFeed(adapter *printer.Adapter, args []string) {
	lines := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fatalf("feed: %q is not a number", args[0])
		}
		lines = n
	}
	if err := adapter.Feed(lines); err != nil {
		fatalf("feed: %v", err)
	}
}

func runCut(adapter *printer.Adapter, args []string) {
	mode := "partial"
	if len(args) > 0 {
		mode = args[0]
	}
	if err := adapter.Cut(mode); err != nil {
		fatalf("cut: %v", err)
	}
}

func runCodepages() {
	for _, name := range textcodec.Codepages() {
		fmt.Println(name)
	}
}

func runCapabilities() {
	for _, name := range capabilities.Names() {
		p, _ := capabilities.Get(name)
		fmt.Printf("%-14s %2d cols  %3d dots  %s\n", p.Name, p.LineWidth, p.DotWidth, p.Description)
	}
}

func runUnmappable(args []string) {
	if len(args) == 0 {
		fatalf("usage: escpos-cli unmappable <text>")
	}
	text := strings.Join(args, " ")
	resolved := textcodec.CodecName(*codepage)

	chars := textcodec.FindUnmappable(text, *codepage)
	if len(chars) == 0 {
		fmt.Printf("All characters map to %s, directly or via fallback.\n", resolved)
		return
	}
	fmt.Printf("%d character(s) will print as the placeholder on %s:\n", len(chars), resolved)
	for _, r := range chars {
		fmt.Printf("  %q  U+%04X\n", r, r)
	}
}

func runPorts() {
	list, err := serial.GetPortsList()
	if err != nil {
		fatalf("list serial ports: %v", err)
	}
	if len(list) == 0 {
		fmt.Println("No serial ports found.")
		return
	}
	sort.Strings(list)
	for _, p := range list {
		fmt.Println(p)
	}
}

func runScan() {
	fmt.Println("Probing local subnets for port-9100 printers...")

	found, err := scanSubnets(500 * time.Millisecond)
	if err != nil {
		fatalf("scan: %v", err)
	}
	if len(found) == 0 {
		fmt.Println("No printers found.")
		return
	}
	sort.Strings(found)
	for _, addr := range found {
		fmt.Println(addr)
	}
}

// scanSubnets dials every host of each local /24 on the raw printing
// port. Larger networks are skipped; a full sweep of those takes too
// long to be useful interactively.
func scanSubnets(timeout time.Duration) ([]string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}

	foundChan := make(chan string, 64)
	var wg sync.WaitGroup
	sem := make(chan struct{}, 100)

	var found []string
	done := make(chan struct{})
	go func() {
		for addr := range foundChan {
			found = append(found, addr)
		}
		close(done)
	}()

	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}

		ip := ipnet.IP.To4()
		ones, _ := ipnet.Mask.Size()
		if ones < 24 {
			continue
		}

		base := ip.Mask(ipnet.Mask)
		for i := 1; i < 255; i++ {
			target := net.IPv4(base[0], base[1], base[2], byte(i))
			if target.Equal(ip) {
				continue
			}

			wg.Add(1)
			sem <- struct{}{}
			go func(addr string) {
				defer wg.Done()
				defer func() { <-sem }()
				conn, err := net.DialTimeout("tcp", addr, timeout)
				if err == nil {
					conn.Close()
					foundChan <- addr
				}
			}(net.JoinHostPort(target.String(), "9100"))
		}
	}

	wg.Wait()
	close(foundChan)
	<-done
	return found, nil
}
