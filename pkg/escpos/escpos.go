package escpos

import (
	"bytes"

	"github.com/cognitivegears/ha-escpos-thermal-printer/pkg/textcodec"
)

// Printer builds an ESC/POS command stream in memory and flushes it to a
// transport as a single write. Text is transcoded for the configured
// codepage before encoding, so Unicode input renders as closely as the
// printer's character set allows.
type Printer struct {
	transport  *Transport
	codepage   string
	codec      *textcodec.Codec
	charsetNum byte
	hasCharset bool
	sub        byte
	buf        bytes.Buffer
}

// NewPrinter creates a printer bound to the given transport and codepage.
// The transport may be nil when the command stream is consumed via Bytes
// instead of Flush. An unknown codepage degrades to sending UTF-8 bytes.
func NewPrinter(transport *Transport, codepage string) *Printer {
	p := &Printer{
		transport: transport,
		codepage:  codepage,
		sub:       '?',
	}
	if codec, ok := textcodec.Lookup(codepage); ok {
		p.codec = codec
	}
	p.charsetNum, p.hasCharset = CharsetNumber(codepage)
	return p
}

// Codepage returns the codepage the printer was configured with.
func (p *Printer) Codepage() string {
	return p.codepage
}

// Init resets the printer to its power-on state and selects the character
// code table matching the configured codepage, when the printer has a
// table number for it.
func (p *Printer) Init() *Printer {
	p.buf.Write(rawInit())
	if p.hasCharset {
		p.buf.Write(rawCharset(p.charsetNum))
	}
	return p
}

// Charset selects a character code table by its ESC t number, overriding
// the table chosen from the codepage at construction.
func (p *Printer) Charset(n byte) *Printer {
	p.buf.Write(rawCharset(n))
	return p
}

// Align sets the justification for subsequent lines.
func (p *Printer) Align(a Alignment) *Printer {
	p.buf.Write(rawAlign(a))
	return p
}

// Bold switches emphasized printing on or off.
func (p *Printer) Bold(on bool) *Printer {
	p.buf.Write(rawBold(on))
	return p
}

// Underline sets the underline mode.
func (p *Printer) Underline(u Underline) *Printer {
	p.buf.Write(rawUnderline(u))
	return p
}

// Font selects character font A or B.
func (p *Printer) Font(f Font) *Printer {
	p.buf.Write(rawFont(f))
	return p
}

// Invert switches white-on-black printing on or off.
func (p *Printer) Invert(on bool) *Printer {
	p.buf.Write(rawInvert(on))
	return p
}

// Size sets the character width and height multipliers, each clamped
// to the 1..8 range the protocol supports.
func (p *Printer) Size(width, height int) *Printer {
	p.buf.Write(rawSize(width, height))
	return p
}

// Text appends text to the stream. The input is transcoded for the
// configured codepage: characters outside the printer's character set are
// replaced by lookalike or accent-stripped equivalents where possible and
// by '?' otherwise.
func (p *Printer) Text(s string) *Printer {
	transcoded := textcodec.Transcode(s, p.codepage)
	if p.codec != nil {
		p.buf.Write(p.codec.EncodeLossy(transcoded, p.sub))
	} else {
		p.buf.WriteString(transcoded)
	}
	return p
}

// TextLn appends text followed by a line feed.
func (p *Printer) TextLn(s string) *Printer {
	p.Text(s)
	p.buf.WriteByte('\n')
	return p
}

// Feed advances the paper by n lines.
func (p *Printer) Feed(n int) *Printer {
	p.buf.Write(rawFeed(n))
	return p
}

// Cut feeds the given number of lines past the cutter and cuts the paper.
func (p *Printer) Cut(mode CutMode, feed int) *Printer {
	p.buf.Write(rawCut(mode, feed))
	return p
}

// Beep sounds the printer buzzer, for supported models. Count and
// duration are both clamped to 1..9; duration is in 100 ms units.
func (p *Printer) Beep(count, duration int) *Printer {
	p.buf.Write(rawBeep(count, duration))
	return p
}

// OpenDrawer fires the cash drawer kick-out pulse on the given pin (2 or
// 5), with the 50 ms on / 240 ms off timing most drawers expect.
func (p *Printer) OpenDrawer(pin int) *Printer {
	p.buf.Write(rawDrawer(pin, 25, 120))
	return p
}

// QR appends a QR code. Data is stored and printed via the GS ( k
// function sequence supported by most thermal printers.
func (p *Printer) QR(data string, size int, ec ECLevel) error {
	cmds, err := qrCommands(data, size, ec)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		p.buf.Write(cmd)
	}
	return nil
}

// Barcode appends a one-dimensional barcode.
func (p *Printer) Barcode(opts BarcodeOptions) error {
	cmds, err := barcodeCommands(opts)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		p.buf.Write(cmd)
	}
	return nil
}

// Raw appends bytes verbatim, bypassing transcoding.
func (p *Printer) Raw(data []byte) *Printer {
	p.buf.Write(data)
	return p
}

// Bytes returns the accumulated command stream without clearing it.
func (p *Printer) Bytes() []byte {
	return p.buf.Bytes()
}

// Len returns the size of the accumulated command stream.
func (p *Printer) Len() int {
	return p.buf.Len()
}

// Reset discards the accumulated command stream.
func (p *Printer) Reset() *Printer {
	p.buf.Reset()
	return p
}

// Flush sends the accumulated command stream to the transport and clears
// the buffer on success.
func (p *Printer) Flush() error {
	if p.transport == nil {
		return ErrNotConnected
	}
	if p.buf.Len() == 0 {
		return nil
	}
	if err := p.transport.Send(p.buf.Bytes()); err != nil {
		return err
	}
	p.buf.Reset()
	return nil
}
