package textcodec

// accentMap holds fallbacks for accented letters and symbols that exist in
// some codepages but not others. CP850 carries most of Western Latin, CP437
// only a subset, the Windows-125x pages each a different slice; this table
// strips the accent (or spells the symbol) when the target codepage lacks
// the character. Consulted only after a native encode attempt and a
// look-alike attempt both fail.
var accentMap = map[rune]string{
	// Latin-1 symbols
	'¡': "!",   // ¡
	'¢': "c",   // ¢
	'£': "GBP", // £
	'¥': "JPY", // ¥
	'ª': "a",   // ª
	'°': "deg", // °
	'±': "+/-", // ±
	'´': "'",   // ´
	'µ': "u",   // µ
	'º': "o",   // º
	'¼': "1/4", // ¼
	'½': "1/2", // ½
	'¿': "?",   // ¿
	'÷': "/",   // ÷

	// Latin-1 capitals
	'À': "A",  // À
	'Á': "A",  // Á
	'Â': "A",  // Â
	'Ã': "A",  // Ã
	'Ä': "A",  // Ä
	'Å': "A",  // Å
	'Æ': "AE", // Æ
	'Ç': "C",  // Ç
	'È': "E",  // È
	'É': "E",  // É
	'Ê': "E",  // Ê
	'Ë': "E",  // Ë
	'Ì': "I",  // Ì
	'Í': "I",  // Í
	'Î': "I",  // Î
	'Ï': "I",  // Ï
	'Ð': "D",  // Ð
	'Ñ': "N",  // Ñ
	'Ò': "O",  // Ò
	'Ó': "O",  // Ó
	'Ô': "O",  // Ô
	'Õ': "O",  // Õ
	'Ö': "O",  // Ö
	'Ø': "O",  // Ø
	'Ù': "U",  // Ù
	'Ú': "U",  // Ú
	'Û': "U",  // Û
	'Ü': "U",  // Ü
	'Ý': "Y",  // Ý
	'Þ': "TH", // Þ
	'ß': "ss", // ß

	// Latin-1 small letters
	'à': "a",  // à
	'á': "a",  // á
	'â': "a",  // â
	'ã': "a",  // ã
	'ä': "a",  // ä
	'å': "a",  // å
	'æ': "ae", // æ
	'ç': "c",  // ç
	'è': "e",  // è
	'é': "e",  // é
	'ê': "e",  // ê
	'ë': "e",  // ë
	'ì': "i",  // ì
	'í': "i",  // í
	'î': "i",  // î
	'ï': "i",  // ï
	'ð': "d",  // ð
	'ñ': "n",  // ñ
	'ò': "o",  // ò
	'ó': "o",  // ó
	'ô': "o",  // ô
	'õ': "o",  // õ
	'ö': "o",  // ö
	'ø': "o",  // ø
	'ù': "u",  // ù
	'ú': "u",  // ú
	'û': "u",  // û
	'ü': "u",  // ü
	'ý': "y",  // ý
	'þ': "th", // þ
	'ÿ': "y",  // ÿ

	// Latin Extended-A
	'Ā': "A",  // Ā
	'ā': "a",  // ā
	'Ă': "A",  // Ă
	'ă': "a",  // ă
	'Ą': "A",  // Ą
	'ą': "a",  // ą
	'Ć': "C",  // Ć
	'ć': "c",  // ć
	'Ĉ': "C",  // Ĉ
	'ĉ': "c",  // ĉ
	'Ċ': "C",  // Ċ
	'ċ': "c",  // ċ
	'Č': "C",  // Č
	'č': "c",  // č
	'Ď': "D",  // Ď
	'ď': "d",  // ď
	'Đ': "D",  // Đ
	'đ': "d",  // đ
	'Ē': "E",  // Ē
	'ē': "e",  // ē
	'Ĕ': "E",  // Ĕ
	'ĕ': "e",  // ĕ
	'Ė': "E",  // Ė
	'ė': "e",  // ė
	'Ę': "E",  // Ę
	'ę': "e",  // ę
	'Ě': "E",  // Ě
	'ě': "e",  // ě
	'Ĝ': "G",  // Ĝ
	'ĝ': "g",  // ĝ
	'Ğ': "G",  // Ğ
	'ğ': "g",  // ğ
	'Ġ': "G",  // Ġ
	'ġ': "g",  // ġ
	'Ģ': "G",  // Ģ
	'ģ': "g",  // ģ
	'Ĥ': "H",  // Ĥ
	'ĥ': "h",  // ĥ
	'Ħ': "H",  // Ħ
	'ħ': "h",  // ħ
	'Ĩ': "I",  // Ĩ
	'ĩ': "i",  // ĩ
	'Ī': "I",  // Ī
	'ī': "i",  // ī
	'Ĭ': "I",  // Ĭ
	'ĭ': "i",  // ĭ
	'Į': "I",  // Į
	'į': "i",  // į
	'İ': "I",  // İ
	'ı': "i",  // ı
	'Ĳ': "IJ", // Ĳ
	'ĳ': "ij", // ĳ
	'Ĵ': "J",  // Ĵ
	'ĵ': "j",  // ĵ
	'Ķ': "K",  // Ķ
	'ķ': "k",  // ķ
	'ĸ': "k",  // ĸ
	'Ĺ': "L",  // Ĺ
	'ĺ': "l",  // ĺ
	'Ļ': "L",  // Ļ
	'ļ': "l",  // ļ
	'Ľ': "L",  // Ľ
	'ľ': "l",  // ľ
	'Ŀ': "L",  // Ŀ
	'ŀ': "l",  // ŀ
	'Ł': "L",  // Ł
	'ł': "l",  // ł
	'Ń': "N",  // Ń
	'ń': "n",  // ń
	'Ņ': "N",  // Ņ
	'ņ': "n",  // ņ
	'Ň': "N",  // Ň
	'ň': "n",  // ň
	'Ŋ': "N",  // Ŋ
	'ŋ': "n",  // ŋ
	'Ō': "O",  // Ō
	'ō': "o",  // ō
	'Ŏ': "O",  // Ŏ
	'ŏ': "o",  // ŏ
	'Ő': "O",  // Ő
	'ő': "o",  // ő
	'Œ': "OE", // Œ
	'œ': "oe", // œ
	'Ŕ': "R",  // Ŕ
	'ŕ': "r",  // ŕ
	'Ŗ': "R",  // Ŗ
	'ŗ': "r",  // ŗ
	'Ř': "R",  // Ř
	'ř': "r",  // ř
	'Ś': "S",  // Ś
	'ś': "s",  // ś
	'Ŝ': "S",  // Ŝ
	'ŝ': "s",  // ŝ
	'Ş': "S",  // Ş
	'ş': "s",  // ş
	'Š': "S",  // Š
	'š': "s",  // š
	'Ţ': "T",  // Ţ
	'ţ': "t",  // ţ
	'Ť': "T",  // Ť
	'ť': "t",  // ť
	'Ŧ': "T",  // Ŧ
	'ŧ': "t",  // ŧ
	'Ũ': "U",  // Ũ
	'ũ': "u",  // ũ
	'Ū': "U",  // Ū
	'ū': "u",  // ū
	'Ŭ': "U",  // Ŭ
	'ŭ': "u",  // ŭ
	'Ů': "U",  // Ů
	'ů': "u",  // ů
	'Ű': "U",  // Ű
	'ű': "u",  // ű
	'Ų': "U",  // Ų
	'ų': "u",  // ų
	'Ŵ': "W",  // Ŵ
	'ŵ': "w",  // ŵ
	'Ŷ': "Y",  // Ŷ
	'ŷ': "y",  // ŷ
	'Ÿ': "Y",  // Ÿ
	'Ź': "Z",  // Ź
	'ź': "z",  // ź
	'Ż': "Z",  // Ż
	'ż': "z",  // ż
	'Ž': "Z",  // Ž
	'ž': "z",  // ž

	// Romanian comma-below letters
	'Ș': "S", // Ș
	'ș': "s", // ș
	'Ț': "T", // Ț
	'ț': "t", // ț

	// Combining marks left over when no precomposed form exists; dropping
	// them keeps the base letter readable.
	'̀': "", // COMBINING GRAVE ACCENT
	'́': "", // COMBINING ACUTE ACCENT
	'̂': "", // COMBINING CIRCUMFLEX ACCENT
	'̃': "", // COMBINING TILDE
	'̄': "", // COMBINING MACRON
	'̆': "", // COMBINING BREVE
	'̇': "", // COMBINING DOT ABOVE
	'̈': "", // COMBINING DIAERESIS
	'̊': "", // COMBINING RING ABOVE
	'̋': "", // COMBINING DOUBLE ACUTE ACCENT
	'̌': "", // COMBINING CARON
	'̧': "", // COMBINING CEDILLA
	'̨': "", // COMBINING OGONEK
}

// AccentFor returns the accent fallback replacement for r, if one exists.
func AccentFor(r rune) (string, bool) {
	rep, ok := accentMap[r]
	return rep, ok
}
