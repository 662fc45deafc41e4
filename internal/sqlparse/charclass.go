package sqlparse

import "unicode"

// Character classification used by the scanner. All functions are pure.

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isLetter(r rune) bool {
	if r < 0x80 {
		return isASCIILetter(r)
	}
	return unicode.IsLetter(r)
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r' || r == 0x2028 || r == 0x2029
}

// isWhitespace reports single-line whitespace and line breaks alike; the
// scanner folds both into one whitespace token.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', 0xA0, 0xFEFF:
		return true
	}
	if isLineBreak(r) {
		return true
	}
	return r >= 0x80 && unicode.IsSpace(r)
}

func isIdentifierStart(r rune) bool {
	return isLetter(r) || r == '_' || r == '@' || r == '#'
}

func isIdentifierPart(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_' || r == '@' || r == '#' || r == '$'
}

// toLowerASCII folds only ASCII letters; keyword matching ignores everything else.
func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
