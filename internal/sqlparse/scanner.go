package sqlparse

import (
	"fmt"
	"unicode/utf8"
)

// Scanner splits script text into tokens, one per Scan call. It never
// rewinds; lookahead is done by peeking raw bytes past the cursor.
type Scanner struct {
	text  string
	pos   int
	opts  ScannerOptions
	lines *LineMap
}

// NewScanner returns a Scanner positioned at the start of text. text must
// already be decoded and stripped of any byte-order mark.
func NewScanner(text string, opts ScannerOptions) *Scanner {
	return &Scanner{
		text:  text,
		opts:  opts,
		lines: NewLineMap(text),
	}
}

// Lines returns the scanner's lazily built line map.
func (s *Scanner) Lines() *LineMap {
	return s.lines
}

// Text returns the text being scanned.
func (s *Scanner) Text() string {
	return s.text
}

// TokenText returns the raw source slice a token covers.
func (s *Scanner) TokenText(tok Token) string {
	return s.text[tok.Start:tok.End]
}

// Diagnostic builds a diagnostic for offset using the scanner's path.
func (s *Scanner) Diagnostic(offset int, msg string) Diagnostic {
	line, col := s.lines.Position(offset)
	return Diagnostic{
		File:    s.opts.Path,
		Line:    line,
		Col:     col,
		Offset:  offset,
		Message: msg,
	}
}

func (s *Scanner) at(i int) byte {
	if i < 0 || i >= len(s.text) {
		return 0
	}
	return s.text[i]
}

func (s *Scanner) runeAt(i int) (rune, int) {
	if i >= len(s.text) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.text[i:])
}

// Scan returns the next token. At the end of the text it returns
// KindEndOfFile on every call.
//
// On a lexical error with ScannerOptions.OnError set, the diagnostic is
// reported and a KindUnknown token covering the bad input is returned with a
// nil error. Without OnError the same token is returned alongside a *Error.
func (s *Scanner) Scan() (Token, error) {
	start := s.pos
	if start >= len(s.text) {
		return Token{Kind: KindEndOfFile, Start: len(s.text), End: len(s.text)}, nil
	}

	c := s.text[start]
	r, size := s.runeAt(start)

	switch {
	case isWhitespace(r):
		return s.scanWhitespace(start), nil
	case c == '-' && s.at(start+1) == '-':
		return s.scanLineComment(start), nil
	case c == '/' && s.at(start+1) == '*':
		return s.scanBlockComment(start)
	case c == '\'':
		return s.scanString(start, 0)
	case (c == 'N' || c == 'n') && s.at(start+1) == '\'':
		s.pos++
		return s.scanString(start, FlagUnicode)
	case c == '"':
		return s.scanQuotedIdentifier(start, '"', FlagDoubleQuoted)
	case c == '[' && s.opts.Vendor == VendorMSSQL:
		return s.scanQuotedIdentifier(start, ']', FlagBracketed)
	case c == '$' && (isDigit(rune(s.at(start+1))) || (s.at(start+1) == '.' && isDigit(rune(s.at(start+2))))):
		s.pos++
		return s.scanNumber(start, FlagMoney)
	case isDigit(rune(c)):
		return s.scanNumber(start, 0)
	case c == '.' && isDigit(rune(s.at(start+1))):
		return s.scanNumber(start, 0)
	case isIdentifierStart(r):
		return s.scanIdentifier(start), nil
	}

	if tok, ok := s.scanOperator(start); ok {
		return tok, nil
	}
	return s.fail(start, start+size, start, 0, fmt.Sprintf("unexpected character %q", r))
}

// fail reports a lexical error at errAt and returns a KindUnknown token over
// [start, end). Scanning resumes at end.
func (s *Scanner) fail(start, end, errAt int, flags TokenFlags, msg string) (Token, error) {
	s.pos = end
	tok := Token{
		Kind:  KindUnknown,
		Start: start,
		End:   end,
		Value: s.text[start:end],
		Flags: flags,
	}
	d := s.Diagnostic(errAt, msg)
	if s.opts.OnError != nil {
		s.opts.OnError(d)
		return tok, nil
	}
	return tok, &Error{Kind: ErrorLexical, Diagnostic: d}
}

func (s *Scanner) scanWhitespace(start int) Token {
	for s.pos < len(s.text) {
		r, size := s.runeAt(s.pos)
		if !isWhitespace(r) {
			break
		}
		s.pos += size
	}
	return Token{Kind: KindWhitespace, Start: start, End: s.pos, Value: s.text[start:s.pos]}
}

func (s *Scanner) scanLineComment(start int) Token {
	s.pos = start + 2
	for s.pos < len(s.text) {
		r, size := s.runeAt(s.pos)
		if isLineBreak(r) {
			break
		}
		s.pos += size
	}
	return Token{Kind: KindSingleLineComment, Start: start, End: s.pos, Value: s.text[start+2 : s.pos]}
}

// scanBlockComment honours nesting: the comment closes at the */ that brings
// the depth back to zero.
func (s *Scanner) scanBlockComment(start int) (Token, error) {
	s.pos = start + 2
	depth := 1
	for s.pos < len(s.text) {
		switch {
		case s.text[s.pos] == '/' && s.at(s.pos+1) == '*':
			depth++
			s.pos += 2
		case s.text[s.pos] == '*' && s.at(s.pos+1) == '/':
			depth--
			s.pos += 2
			if depth == 0 {
				return Token{Kind: KindMultiLineComment, Start: start, End: s.pos, Value: s.text[start+2 : s.pos-2]}, nil
			}
		default:
			s.pos++
		}
	}
	return s.fail(start, len(s.text), start, FlagUnterminated, "unterminated block comment")
}

// scanString scans '...' with '' as an escaped quote. The escape is kept in
// Value as written. s.pos is on the opening quote.
func (s *Scanner) scanString(start int, flags TokenFlags) (Token, error) {
	open := s.pos
	s.pos++
	for s.pos < len(s.text) {
		if s.text[s.pos] == '\'' {
			if s.at(s.pos+1) == '\'' {
				s.pos += 2
				continue
			}
			s.pos++
			return Token{Kind: KindStringLiteral, Start: start, End: s.pos, Value: s.text[open+1 : s.pos-1], Flags: flags}, nil
		}
		s.pos++
	}
	return s.fail(start, len(s.text), start, flags|FlagUnterminated, "unterminated string literal")
}

// scanQuotedIdentifier scans "name" or [name]. A doubled closer is an escape.
// The content is never checked against the keyword table.
func (s *Scanner) scanQuotedIdentifier(start int, closer byte, flags TokenFlags) (Token, error) {
	s.pos = start + 1
	for s.pos < len(s.text) {
		if s.text[s.pos] == closer {
			if s.at(s.pos+1) == closer {
				s.pos += 2
				continue
			}
			s.pos++
			return Token{Kind: KindIdentifier, Start: start, End: s.pos, Value: s.text[start+1 : s.pos-1], Flags: flags}, nil
		}
		s.pos++
	}
	return s.fail(start, len(s.text), start, flags|FlagUnterminated, "unterminated quoted identifier")
}

// scanNumber scans integers, decimals, .5-style fractions, exponents and,
// with FeatureHexLiterals, 0x binary literals. s.pos is on the first digit
// or on the leading dot; a money prefix has already been consumed.
func (s *Scanner) scanNumber(start int, flags TokenFlags) (Token, error) {
	digits := s.pos

	if s.opts.Features.Has(FeatureHexLiterals) && s.at(s.pos) == '0' &&
		(s.at(s.pos+1) == 'x' || s.at(s.pos+1) == 'X') && flags&FlagMoney == 0 {
		s.pos += 2
		for isHexDigit(rune(s.at(s.pos))) {
			s.pos++
		}
		return Token{Kind: KindBinaryLiteral, Start: start, End: s.pos, Value: s.text[digits:s.pos], Flags: flags}, nil
	}

	kind := KindIntegerLiteral
	for isDigit(rune(s.at(s.pos))) {
		s.pos++
	}
	if s.at(s.pos) == '.' && s.at(s.pos+1) != '.' {
		s.pos++
		if !isDigit(rune(s.at(s.pos))) {
			return s.fail(start, s.pos, s.pos, flags, "expected digit after decimal point")
		}
		for isDigit(rune(s.at(s.pos))) {
			s.pos++
		}
		kind = KindFloatLiteral
	}
	if e := s.at(s.pos); e == 'e' || e == 'E' {
		next := s.pos + 1
		if sign := s.at(next); sign == '+' || sign == '-' {
			next++
		}
		if isDigit(rune(s.at(next))) {
			s.pos = next
			for isDigit(rune(s.at(s.pos))) {
				s.pos++
			}
			kind = KindFloatLiteral
		}
	}
	return Token{Kind: kind, Start: start, End: s.pos, Value: s.text[digits:s.pos], Flags: flags}, nil
}

// scanIdentifier scans a bare name, including @, @@, # and ## prefixes.
// Only names without a prefix are checked against the keyword table.
func (s *Scanner) scanIdentifier(start int) Token {
	var flags TokenFlags
	switch s.text[start] {
	case '@':
		flags |= FlagVariable
		s.pos++
		if s.at(s.pos) == '@' {
			flags |= FlagShared
			s.pos++
		}
	case '#':
		flags |= FlagTempTable
		s.pos++
		if s.at(s.pos) == '#' {
			flags |= FlagShared
			s.pos++
		}
	}
	for s.pos < len(s.text) {
		r, size := s.runeAt(s.pos)
		if !isIdentifierPart(r) {
			break
		}
		s.pos += size
	}

	tok := Token{Kind: KindIdentifier, Start: start, End: s.pos, Value: s.text[start:s.pos], Flags: flags}
	if flags == 0 {
		if kind, ok := LookupKeyword(tok.Value); ok {
			tok.Kind = kind
			tok.Flags |= FlagKeyword
		}
	}
	return tok
}

var singleOperators = map[byte]SyntaxKind{
	'(': KindOpenParen,
	')': KindCloseParen,
	',': KindComma,
	'.': KindDot,
	';': KindSemicolon,
	':': KindColon,
	'*': KindAsterisk,
	'+': KindPlus,
	'-': KindMinus,
	'/': KindSlash,
	'%': KindPercent,
	'&': KindAmpersand,
	'|': KindBar,
	'^': KindCaret,
	'~': KindTilde,
	'=': KindEquals,
	'<': KindLessThan,
	'>': KindGreaterThan,
}

var compoundOperators = map[[2]byte]SyntaxKind{
	{'+', '='}: KindPlusEquals,
	{'-', '='}: KindMinusEquals,
	{'*', '='}: KindAsteriskEquals,
	{'/', '='}: KindSlashEquals,
	{'%', '='}: KindPercentEquals,
	{'&', '='}: KindAmpersandEquals,
	{'|', '='}: KindBarEquals,
	{'^', '='}: KindCaretEquals,
	{'<', '='}: KindLessThanEquals,
	{'>', '='}: KindGreaterThanEquals,
	{'<', '>'}: KindLessThanGreaterThan,
	{'!', '='}: KindExclamationEquals,
	{'!', '<'}: KindExclamationLessThan,
	{'!', '>'}: KindExclamationGreaterThan,
	{':', ':'}: KindColonColon,
	{'.', '.'}: KindDotDot,
}

// scanOperator matches a compound operator first, peeking past any
// whitespace between its two characters, then falls back to a single
// character. A lone '!' matches neither.
func (s *Scanner) scanOperator(start int) (Token, bool) {
	c := s.text[start]
	next := start + 1
	for next < len(s.text) {
		r, size := s.runeAt(next)
		if !isWhitespace(r) {
			break
		}
		next += size
	}
	if next < len(s.text) {
		if kind, ok := compoundOperators[[2]byte{c, s.text[next]}]; ok {
			var flags TokenFlags
			if next > start+1 {
				flags |= FlagInnerWhitespace
			}
			s.pos = next + 1
			return Token{Kind: kind, Start: start, End: s.pos, Flags: flags}, true
		}
	}
	if kind, ok := singleOperators[c]; ok {
		s.pos = start + 1
		return Token{Kind: kind, Start: start, End: s.pos}, true
	}
	return Token{}, false
}
