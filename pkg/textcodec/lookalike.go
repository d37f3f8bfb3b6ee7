package textcodec

// lookalikeMap maps Unicode code points to ASCII look-alike replacements.
// It is consulted only when direct encoding to the target codepage fails:
// characters the codepage carries natively (box drawing on CP437, for
// example) are preserved verbatim and never reach this table.
//
// The first section holds universal look-alikes, characters absent from
// essentially every legacy codepage. The second holds codepage-native
// glyphs that exist in some tables (CP437 and relatives) and need an ASCII
// stand-in everywhere else.
var lookalikeMap = map[rune]string{
	// Typographic quotes
	'‘': "'",   // LEFT SINGLE QUOTATION MARK
	'’': "'",   // RIGHT SINGLE QUOTATION MARK
	'‚': ",",   // SINGLE LOW-9 QUOTATION MARK
	'‛': "'",   // SINGLE HIGH-REVERSED-9 QUOTATION MARK
	'“': `"`,   // LEFT DOUBLE QUOTATION MARK
	'”': `"`,   // RIGHT DOUBLE QUOTATION MARK
	'„': `"`,   // DOUBLE LOW-9 QUOTATION MARK
	'‟': `"`,   // DOUBLE HIGH-REVERSED-9 QUOTATION MARK
	'′': "'",   // PRIME
	'″': `"`,   // DOUBLE PRIME
	'‴': "'''", // TRIPLE PRIME
	'‵': "'",   // REVERSED PRIME
	'‶': `"`,   // REVERSED DOUBLE PRIME
	'‷': "'''", // REVERSED TRIPLE PRIME
	'«': "<<",  // LEFT-POINTING DOUBLE ANGLE QUOTATION MARK
	'»': ">>",  // RIGHT-POINTING DOUBLE ANGLE QUOTATION MARK
	'‹': "<",   // SINGLE LEFT-POINTING ANGLE QUOTATION MARK
	'›': ">",   // SINGLE RIGHT-POINTING ANGLE QUOTATION MARK

	// Dashes and hyphens
	'‐': "-",  // HYPHEN
	'‑': "-",  // NON-BREAKING HYPHEN
	'‒': "-",  // FIGURE DASH
	'–': "-",  // EN DASH
	'—': "--", // EM DASH
	'―': "--", // HORIZONTAL BAR
	'−': "-",  // MINUS SIGN
	'﹘': "-",  // SMALL EM DASH
	'﹣': "-",  // SMALL HYPHEN-MINUS
	'－': "-",  // FULLWIDTH HYPHEN-MINUS

	// Spaces
	' ': " ", // NO-BREAK SPACE
	' ': " ", // EN QUAD
	' ': " ", // EM QUAD
	' ': " ", // EN SPACE
	' ': " ", // EM SPACE
	' ': " ", // THREE-PER-EM SPACE
	' ': " ", // FOUR-PER-EM SPACE
	' ': " ", // SIX-PER-EM SPACE
	' ': " ", // FIGURE SPACE
	' ': " ", // PUNCTUATION SPACE
	' ': " ", // THIN SPACE
	' ': " ", // HAIR SPACE
	'​': "",  // ZERO WIDTH SPACE
	' ': " ", // NARROW NO-BREAK SPACE
	' ': " ", // MEDIUM MATHEMATICAL SPACE
	'　': " ", // IDEOGRAPHIC SPACE
	'\uFEFF': "",  // ZERO WIDTH NO-BREAK SPACE (BOM)

	// Ellipsis and dots
	'…': "...", // HORIZONTAL ELLIPSIS
	'⋮': ":",   // VERTICAL ELLIPSIS
	'⋯': "...", // MIDLINE HORIZONTAL ELLIPSIS
	'·': ".",   // MIDDLE DOT
	'•': "*",   // BULLET
	'‣': ">",   // TRIANGULAR BULLET
	'․': ".",   // ONE DOT LEADER
	'‥': "..",  // TWO DOT LEADER
	'‧': "-",   // HYPHENATION POINT

	// Arrows
	'←': "<-",  // LEFTWARDS ARROW
	'↑': "^",   // UPWARDS ARROW
	'→': "->",  // RIGHTWARDS ARROW
	'↓': "v",   // DOWNWARDS ARROW
	'↔': "<->", // LEFT RIGHT ARROW
	'⇐': "<=",  // LEFTWARDS DOUBLE ARROW
	'⇒': "=>",  // RIGHTWARDS DOUBLE ARROW
	'⇔': "<=>", // LEFT RIGHT DOUBLE ARROW

	// Math symbols absent from the common codepages
	'×': "x",    // MULTIPLICATION SIGN (not in CP437)
	'≠': "!=",   // NOT EQUAL TO
	'≤': "<=",   // LESS-THAN OR EQUAL TO
	'≥': ">=",   // GREATER-THAN OR EQUAL TO
	'≈': "~=",   // ALMOST EQUAL TO
	'∞': "inf",  // INFINITY
	'‰': "o/oo", // PER MILLE SIGN
	'¾': "3/4",  // VULGAR FRACTION THREE QUARTERS (not in CP437)
	'⅓': "1/3",  // VULGAR FRACTION ONE THIRD
	'⅔': "2/3",  // VULGAR FRACTION TWO THIRDS

	// Currency absent from the common codepages
	'€': "EUR", // EURO SIGN (not in CP437)
	'₤': "GBP", // LIRA SIGN
	'₹': "INR", // INDIAN RUPEE SIGN
	'₽': "RUB", // RUBLE SIGN
	'₿': "BTC", // BITCOIN SIGN

	// Trademark and copyright
	'©': "(C)",  // COPYRIGHT SIGN
	'®': "(R)",  // REGISTERED SIGN
	'™': "(TM)", // TRADE MARK SIGN
	'℠': "(SM)", // SERVICE MARK

	// Temperature
	'℃': "C", // DEGREE CELSIUS
	'℉': "F", // DEGREE FAHRENHEIT

	// Superscripts
	'²': "2", // SUPERSCRIPT TWO
	'³': "3", // SUPERSCRIPT THREE
	'¹': "1", // SUPERSCRIPT ONE
	'⁰': "0", // SUPERSCRIPT ZERO
	'⁴': "4", // SUPERSCRIPT FOUR
	'⁵': "5", // SUPERSCRIPT FIVE
	'⁶': "6", // SUPERSCRIPT SIX
	'⁷': "7", // SUPERSCRIPT SEVEN
	'⁸': "8", // SUPERSCRIPT EIGHT
	'⁹': "9", // SUPERSCRIPT NINE

	// Subscripts
	'₀': "0", // SUBSCRIPT ZERO
	'₁': "1", // SUBSCRIPT ONE
	'₂': "2", // SUBSCRIPT TWO
	'₃': "3", // SUBSCRIPT THREE
	'₄': "4", // SUBSCRIPT FOUR
	'₅': "5", // SUBSCRIPT FIVE
	'₆': "6", // SUBSCRIPT SIX
	'₇': "7", // SUBSCRIPT SEVEN
	'₈': "8", // SUBSCRIPT EIGHT
	'₉': "9", // SUBSCRIPT NINE

	// Punctuation
	'‖': "||",        // DOUBLE VERTICAL LINE
	'‗': "_",         // DOUBLE LOW LINE
	'⁃': "-",         // HYPHEN BULLET
	'⁄': "/",         // FRACTION SLASH
	'⁒': "%",         // COMMERCIAL MINUS SIGN
	'⃝': "()",        // COMBINING ENCLOSING CIRCLE
	'№': "No.",       // NUMERO SIGN
	'℗': "(P)",       // SOUND RECORDING COPYRIGHT
	'℞': "Rx",        // PRESCRIPTION TAKE
	'∴': "therefore", // THEREFORE
	'∵': "because",   // BECAUSE

	// Box drawing, native to CP437 and relatives
	'─': "-", // BOX DRAWINGS LIGHT HORIZONTAL
	'━': "-", // BOX DRAWINGS HEAVY HORIZONTAL
	'│': "|", // BOX DRAWINGS LIGHT VERTICAL
	'┃': "|", // BOX DRAWINGS HEAVY VERTICAL
	'┌': "+", // BOX DRAWINGS LIGHT DOWN AND RIGHT
	'┍': "+", // BOX DRAWINGS DOWN LIGHT AND RIGHT HEAVY
	'┎': "+", // BOX DRAWINGS DOWN HEAVY AND RIGHT LIGHT
	'┏': "+", // BOX DRAWINGS HEAVY DOWN AND RIGHT
	'┐': "+", // BOX DRAWINGS LIGHT DOWN AND LEFT
	'└': "+", // BOX DRAWINGS LIGHT UP AND RIGHT
	'┘': "+", // BOX DRAWINGS LIGHT UP AND LEFT
	'├': "+", // BOX DRAWINGS LIGHT VERTICAL AND RIGHT
	'┤': "+", // BOX DRAWINGS LIGHT VERTICAL AND LEFT
	'┬': "+", // BOX DRAWINGS LIGHT DOWN AND HORIZONTAL
	'┴': "+", // BOX DRAWINGS LIGHT UP AND HORIZONTAL
	'┼': "+", // BOX DRAWINGS LIGHT VERTICAL AND HORIZONTAL
	'═': "=", // BOX DRAWINGS DOUBLE HORIZONTAL
	'║': "|", // BOX DRAWINGS DOUBLE VERTICAL
	'╒': "+", // BOX DRAWINGS DOWN SINGLE AND RIGHT DOUBLE
	'╓': "+", // BOX DRAWINGS DOWN DOUBLE AND RIGHT SINGLE
	'╔': "+", // BOX DRAWINGS DOUBLE DOWN AND RIGHT
	'╕': "+", // BOX DRAWINGS DOWN SINGLE AND LEFT DOUBLE
	'╖': "+", // BOX DRAWINGS DOWN DOUBLE AND LEFT SINGLE
	'╗': "+", // BOX DRAWINGS DOUBLE DOWN AND LEFT
	'╘': "+", // BOX DRAWINGS UP SINGLE AND RIGHT DOUBLE
	'╙': "+", // BOX DRAWINGS UP DOUBLE AND RIGHT SINGLE
	'╚': "+", // BOX DRAWINGS DOUBLE UP AND RIGHT
	'╛': "+", // BOX DRAWINGS UP SINGLE AND LEFT DOUBLE
	'╜': "+", // BOX DRAWINGS UP DOUBLE AND LEFT SINGLE
	'╝': "+", // BOX DRAWINGS DOUBLE UP AND LEFT
	'╞': "+", // BOX DRAWINGS VERTICAL SINGLE AND RIGHT DOUBLE
	'╟': "+", // BOX DRAWINGS VERTICAL DOUBLE AND RIGHT SINGLE
	'╠': "+", // BOX DRAWINGS DOUBLE VERTICAL AND RIGHT
	'╡': "+", // BOX DRAWINGS VERTICAL SINGLE AND LEFT DOUBLE
	'╢': "+", // BOX DRAWINGS VERTICAL DOUBLE AND LEFT SINGLE
	'╣': "+", // BOX DRAWINGS DOUBLE VERTICAL AND LEFT
	'╤': "+", // BOX DRAWINGS DOWN SINGLE AND HORIZONTAL DOUBLE
	'╥': "+", // BOX DRAWINGS DOWN DOUBLE AND HORIZONTAL SINGLE
	'╦': "+", // BOX DRAWINGS DOUBLE DOWN AND HORIZONTAL
	'╧': "+", // BOX DRAWINGS UP SINGLE AND HORIZONTAL DOUBLE
	'╨': "+", // BOX DRAWINGS UP DOUBLE AND HORIZONTAL SINGLE
	'╩': "+", // BOX DRAWINGS DOUBLE UP AND HORIZONTAL
	'╪': "+", // BOX DRAWINGS VERTICAL SINGLE AND HORIZONTAL DOUBLE
	'╫': "+", // BOX DRAWINGS VERTICAL DOUBLE AND HORIZONTAL SINGLE
	'╬': "+", // BOX DRAWINGS DOUBLE VERTICAL AND HORIZONTAL

	// Block elements, native to CP437 and relatives
	'█': "#", // FULL BLOCK
	'░': ".", // LIGHT SHADE
	'▒': "+", // MEDIUM SHADE
	'▓': "#", // DARK SHADE
	'▀': "^", // UPPER HALF BLOCK
	'▄': "_", // LOWER HALF BLOCK
	'▌': "|", // LEFT HALF BLOCK
	'▐': "|", // RIGHT HALF BLOCK

	// Misc symbols
	'★': "*",   // BLACK STAR
	'☆': "*",   // WHITE STAR
	'☐': "[ ]", // BALLOT BOX
	'☑': "[x]", // BALLOT BOX WITH CHECK
	'☒': "[X]", // BALLOT BOX WITH X
	'✓': "v",   // CHECK MARK
	'✔': "v",   // HEAVY CHECK MARK
	'✕': "x",   // MULTIPLICATION X
	'✖': "x",   // HEAVY MULTIPLICATION X
	'✗': "x",   // BALLOT X
	'✘': "x",   // HEAVY BALLOT X
	'✠': "+",   // MALTESE CROSS
	'❖': "*",   // BLACK DIAMOND MINUS WHITE X
	'❤': "<3",  // HEAVY BLACK HEART
	'¦': "|",   // BROKEN BAR
	'§': "S",   // SECTION SIGN
	'¶': "P",   // PILCROW SIGN
	'¬': "-",   // NOT SIGN
	'¯': "-",   // MACRON
}

// LookalikeFor returns the ASCII look-alike replacement for r, if one
// exists. Replacements may be empty (zero-width characters drop outright).
func LookalikeFor(r rune) (string, bool) {
	rep, ok := lookalikeMap[r]
	return rep, ok
}
