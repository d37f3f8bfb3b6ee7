package textcodec

import (
	"sort"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
)

// codepageToCodec maps printer codepage names to canonical codec names.
// Keys are the names printer profiles use; values are the names the codec
// registry understands.
var codepageToCodec = map[string]string{
	"CP437":       "cp437",
	"CP850":       "cp850",
	"CP852":       "cp852",
	"CP858":       "cp858",
	"CP860":       "cp860",
	"CP863":       "cp863",
	"CP865":       "cp865",
	"CP866":       "cp866",
	"CP932":       "cp932",
	"CP1250":      "cp1250",
	"CP1251":      "cp1251",
	"CP1252":      "cp1252",
	"CP1253":      "cp1253",
	"CP1254":      "cp1254",
	"CP1255":      "cp1255",
	"CP1256":      "cp1256",
	"CP1257":      "cp1257",
	"CP1258":      "cp1258",
	"ISO_8859-1":  "iso-8859-1",
	"ISO_8859-2":  "iso-8859-2",
	"ISO_8859-7":  "iso-8859-7",
	"ISO_8859-15": "iso-8859-15",
	"LATIN1":      "latin-1",
	"UTF-8":       "utf-8",
}

// builtinCodecs maps canonical codec names to their encodings. Single-byte
// codepages come from x/text charmap; CP932 (Shift JIS) is the one
// multi-byte table thermal printers commonly ship.
var builtinCodecs = map[string]encoding.Encoding{
	"cp437":       charmap.CodePage437,
	"cp850":       charmap.CodePage850,
	"cp852":       charmap.CodePage852,
	"cp855":       charmap.CodePage855,
	"cp858":       charmap.CodePage858,
	"cp860":       charmap.CodePage860,
	"cp862":       charmap.CodePage862,
	"cp863":       charmap.CodePage863,
	"cp865":       charmap.CodePage865,
	"cp866":       charmap.CodePage866,
	"cp874":       charmap.Windows874,
	"cp932":       japanese.ShiftJIS,
	"cp1250":      charmap.Windows1250,
	"cp1251":      charmap.Windows1251,
	"cp1252":      charmap.Windows1252,
	"cp1253":      charmap.Windows1253,
	"cp1254":      charmap.Windows1254,
	"cp1255":      charmap.Windows1255,
	"cp1256":      charmap.Windows1256,
	"cp1257":      charmap.Windows1257,
	"cp1258":      charmap.Windows1258,
	"iso-8859-1":  charmap.ISO8859_1,
	"iso-8859-2":  charmap.ISO8859_2,
	"iso-8859-3":  charmap.ISO8859_3,
	"iso-8859-4":  charmap.ISO8859_4,
	"iso-8859-5":  charmap.ISO8859_5,
	"iso-8859-6":  charmap.ISO8859_6,
	"iso-8859-7":  charmap.ISO8859_7,
	"iso-8859-8":  charmap.ISO8859_8,
	"iso-8859-9":  charmap.ISO8859_9,
	"iso-8859-10": charmap.ISO8859_10,
	"iso-8859-13": charmap.ISO8859_13,
	"iso-8859-14": charmap.ISO8859_14,
	"iso-8859-15": charmap.ISO8859_15,
	"iso-8859-16": charmap.ISO8859_16,
	"latin-1":     charmap.ISO8859_1,
	"koi8-r":      charmap.KOI8R,
	"koi8-u":      charmap.KOI8U,
	"macintosh":   charmap.Macintosh,
}

// CodecName resolves a printer codepage name to a canonical codec name.
// Resolution order: exact table lookup (case-insensitive), then pattern
// rules for CP<digits> and ISO 8859 spellings, then the lowercased input
// as a best-effort guess. It never fails; the returned name may still be
// unknown to the codec registry, which Lookup reports.
func CodecName(codepage string) string {
	if codec, ok := codepageToCodec[strings.ToUpper(codepage)]; ok {
		return codec
	}

	normalized := strings.ToUpper(codepage)
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "")

	if strings.HasPrefix(normalized, "CP") && isDigits(normalized[2:]) {
		return "cp" + normalized[2:]
	}

	if strings.HasPrefix(normalized, "ISO_8859_") || strings.HasPrefix(normalized, "ISO8859_") {
		parts := strings.Split(normalized, "_")
		return "iso-8859-" + parts[len(parts)-1]
	}

	return strings.ToLower(codepage)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Codec is a resolved codepage backed by a byte-oriented encoding. The zero
// enc means UTF-8 passthrough: every rune is considered encodable.
type Codec struct {
	name string
	cm   *charmap.Charmap
	enc  encoding.Encoding
}

// Lookup resolves a codepage name and returns its codec. The second return
// is false when the resolved name is unknown to every registry tier, which
// callers must treat as "unknown codepage".
func Lookup(codepage string) (*Codec, bool) {
	return lookupCodec(CodecName(codepage))
}

func lookupCodec(name string) (*Codec, bool) {
	if name == "utf-8" || name == "utf8" {
		return &Codec{name: "utf-8"}, true
	}
	if enc, ok := builtinCodecs[name]; ok {
		return newCodec(name, enc), true
	}
	// Registry misses fall through to the IANA index and then to WHATWG
	// labels, so vendor spellings like "IBM437" or "windows-1252" resolve
	// without the builtin table enumerating every alias. Both return a nil
	// encoding for names they know but do not implement.
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return newCodec(name, enc), true
	}
	if enc, canonical := charset.Lookup(name); enc != nil {
		return newCodec(canonical, enc), true
	}
	return nil, false
}

func newCodec(name string, enc encoding.Encoding) *Codec {
	c := &Codec{name: name, enc: enc}
	if cm, ok := enc.(*charmap.Charmap); ok {
		c.cm = cm
	}
	return c
}

// Name returns the canonical codec name.
func (c *Codec) Name() string { return c.name }

// CanEncode reports whether the codec has a representation for r.
func (c *Codec) CanEncode(r rune) bool {
	if c.cm != nil {
		_, ok := c.cm.EncodeRune(r)
		return ok
	}
	if c.enc == nil {
		return true
	}
	return c.encodes(string(r))
}

// CanEncodeAll reports whether the codec has a representation for every
// rune of s. The empty string is trivially encodable.
func (c *Codec) CanEncodeAll(s string) bool {
	if c.cm != nil {
		for _, r := range s {
			if _, ok := c.cm.EncodeRune(r); !ok {
				return false
			}
		}
		return true
	}
	if c.enc == nil {
		return true
	}
	return c.encodes(s)
}

func (c *Codec) encodes(s string) bool {
	_, err := c.enc.NewEncoder().Bytes([]byte(s))
	return err == nil
}

// Encode converts s to codec bytes. It fails on runes outside the codec
// repertoire; run text through Transcode first to guarantee success.
func (c *Codec) Encode(s string) ([]byte, error) {
	if c.enc == nil {
		return []byte(s), nil
	}
	return c.enc.NewEncoder().Bytes([]byte(s))
}

// EncodeLossy converts s to codec bytes, substituting sub for any rune the
// codec cannot represent. It never fails.
func (c *Codec) EncodeLossy(s string, sub byte) []byte {
	if c.enc == nil {
		return []byte(s)
	}
	if c.cm != nil {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if b, ok := c.cm.EncodeRune(r); ok {
				out = append(out, b)
			} else {
				out = append(out, sub)
			}
		}
		return out
	}
	enc := c.enc.NewEncoder()
	var out []byte
	for _, r := range s {
		b, err := enc.Bytes([]byte(string(r)))
		if err != nil {
			out = append(out, sub)
			continue
		}
		out = append(out, b...)
	}
	return out
}

// Codepages returns the codepage names of the builtin resolution table,
// sorted. These are the names printer profiles are expected to use.
func Codepages() []string {
	names := make([]string, 0, len(codepageToCodec))
	for name := range codepageToCodec {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
