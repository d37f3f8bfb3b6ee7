// Package escpos builds and sends ESC/POS command streams to thermal
// receipt printers. It covers the command subset receipt printing needs:
// text with styling, paper feed and cut, QR codes, one-dimensional
// barcodes, raster images, beeper and cash drawer pulses, plus the
// DLE EOT real-time status queries.
//
// Key Features:
//   - Buffered command building: compose a whole job, send it in one
//     transport exchange
//   - Text handled through the textcodec transcoder, so the bytes on the
//     wire and the substitution logic share one codepage understanding
//   - Network (raw TCP :9100), serial, and device-file transports behind
//     a single mutex-guarded Transport
//   - Real-time status probing with bit-level parsing
//
// Example Usage:
//
//	transport := escpos.NewTransport(escpos.Config{
//	    Connection: escpos.ConnNetwork,
//	    Host:       "192.168.1.200",
//	    Port:       9100,
//	})
//	p := escpos.NewPrinter(transport, "CP437")
//	p.Init()
//	p.Align(escpos.AlignCenter)
//	p.Bold(true)
//	p.TextLn("RECEIPT")
//	p.Bold(false)
//	p.Feed(2)
//	p.Cut(escpos.CutPartial, 0)
//	if err := p.Flush(); err != nil {
//	    log.Fatal(err)
//	}
package escpos
