package textcodec

import (
	"log"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// logf receives diagnostic messages, the unknown-codepage warning in
// particular. Wire it to the application logger with SetLogger during
// startup; the default goes to the standard logger.
var logf = func(format string, args ...any) {
	log.Printf("[WARN] textcodec: "+format, args...)
}

// SetLogger replaces the package log function. Call once during program
// initialization, before any transcoding runs.
func SetLogger(f func(format string, args ...any)) {
	if f != nil {
		logf = f
	}
}

// Options controls the transcoding cascade. The zero value disables both
// fallback tiers and drops unmappable characters outright; most callers
// want DefaultOptions.
type Options struct {
	// Placeholder is emitted for characters with no usable fallback.
	// Must itself be encodable in the target codepage; ASCII is safe.
	Placeholder string
	// Lookalikes enables the universal look-alike tier.
	Lookalikes bool
	// Accents enables the accent fallback tier.
	Accents bool
}

// DefaultOptions returns the standard cascade settings: both tiers on,
// "?" placeholder.
func DefaultOptions() Options {
	return Options{Placeholder: "?", Lookalikes: true, Accents: true}
}

// Normalize applies NFKC normalization, converting compatibility forms
// (ligatures, full-width variants) into shapes a legacy codepage is more
// likely to carry.
func Normalize(text string) string {
	return norm.NFKC.String(text)
}

// Transcode converts text for printing on a device configured with the
// given codepage, using the default cascade options.
func Transcode(text, codepage string) string {
	return TranscodeOpts(text, codepage, DefaultOptions())
}

// TranscodeOpts converts Unicode text into the repertoire of the target
// codepage. The input is NFKC-normalized as a whole, then each character
// runs a cascade: keep it when the codepage encodes it natively, otherwise
// try the look-alike table, then the accent table (a replacement is used
// only if the codepage encodes the replacement itself), and finally the
// placeholder. The result is still a Unicode string; the printer layer
// performs the byte encoding through the same codec.
//
// An unknown codepage is not an error: the normalized text is returned
// unchanged with a logged warning, and the downstream printer path decides
// what to do with raw UTF-8.
func TranscodeOpts(text, codepage string, opts Options) string {
	if text == "" {
		return text
	}

	normalized := Normalize(text)

	codec, ok := Lookup(codepage)
	if !ok {
		logf("unknown codepage %q, sending text as UTF-8", codepage)
		return normalized
	}

	var b strings.Builder
	b.Grow(len(normalized))

	for _, r := range normalized {
		// Native first: a character the target codepage carries is kept
		// verbatim even when the fallback tables also know it.
		if codec.CanEncode(r) {
			b.WriteRune(r)
			continue
		}

		if opts.Lookalikes {
			if rep, ok := lookalikeMap[r]; ok && codec.CanEncodeAll(rep) {
				b.WriteString(rep)
				continue
			}
		}

		if opts.Accents {
			if rep, ok := accentMap[r]; ok && codec.CanEncodeAll(rep) {
				b.WriteString(rep)
				continue
			}
		}

		b.WriteString(opts.Placeholder)
	}

	return b.String()
}

// ApplyLookalikes replaces every look-alike table key in text with its
// ASCII replacement, unconditionally. Unlike Transcode it consults no
// codepage, so characters a printer could render natively are replaced
// too; prefer Transcode unless plain ASCII output is the goal.
func ApplyLookalikes(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if rep, ok := lookalikeMap[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ApplyAccents replaces characters the codepage cannot encode with their
// accent fallbacks, leaving everything else untouched. Characters without
// an accent entry pass through unchanged even when unencodable.
func ApplyAccents(text, codepage string) string {
	codec, ok := Lookup(codepage)
	if !ok {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if codec.CanEncode(r) {
			b.WriteRune(r)
			continue
		}
		if rep, ok := accentMap[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindUnmappable reports every distinct character of text that the target
// codepage cannot encode natively and that has no entry in either fallback
// table. The text is NFKC-normalized first, matching Transcode. Order is
// first occurrence; duplicates are suppressed. Intended for diagnostics,
// not the print path.
func FindUnmappable(text, codepage string) []rune {
	if text == "" {
		return nil
	}

	normalized := Normalize(text)
	codec, resolved := Lookup(codepage)

	var unmappable []rune
	seen := make(map[rune]bool)

	for _, r := range normalized {
		if seen[r] {
			continue
		}
		if resolved && codec.CanEncode(r) {
			continue
		}
		if _, ok := lookalikeMap[r]; ok {
			continue
		}
		if _, ok := accentMap[r]; ok {
			continue
		}
		seen[r] = true
		unmappable = append(unmappable, r)
	}

	return unmappable
}
