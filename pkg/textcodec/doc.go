// Package textcodec converts Unicode text into the legacy single-byte
// codepages understood by ESC/POS thermal printers. Printers ship firmware
// character tables such as CP437 or ISO 8859-15; text arriving from modern
// sources is full Unicode. This package bridges the two with a layered
// substitution pipeline so that a print job never fails outright on an
// unmappable character.
//
// Key Features:
//   - Codepage name resolution tolerant of naming variance
//     ("CP437", "cp-437", "ISO_8859-7", "iso8859-7" all resolve)
//   - NFKC normalization before any per-character work
//   - Native-first transcoding: characters the target codepage can encode
//     are preserved verbatim, fallbacks apply only when encoding fails
//   - Two static fallback tables: universal look-alikes (typographic
//     punctuation, box drawing, arrows, currency) and accent fallbacks
//   - Unmappable-character diagnostics for logging
//
// Example Usage:
//
//	out := textcodec.Transcode("“Total” — 5 €", "CP437")
//	// out == `"Total" -- 5 EUR`
//
//	codec, ok := textcodec.Lookup("CP437")
//	if ok {
//	    raw, _ := codec.Encode(out)
//	    // raw is ready for the printer
//	}
//
// All functions are pure and safe for concurrent use. Transcoding returns
// Unicode strings, not raw bytes; the printer layer performs the final byte
// encoding through the same Codec so both sides agree on the codepage.
package textcodec
