package sqlparse

import (
	"errors"
	"fmt"
	"log/slog"
)

// parser holds one token of lookahead. It stops at the first error by
// panicking with a bailout, which Parse and ParseExpression recover.
type parser struct {
	scanner *Scanner
	opts    Options
	log     *slog.Logger
	script  *Script

	tok     Token // current token
	prevEnd int   // end of the last consumed token
}

type bailout struct {
	err *Error
}

func newParser(text string, opts Options) *parser {
	s := NewScanner(text, opts.scannerOptions())
	return &parser{
		scanner: s,
		opts:    opts,
		log:     opts.logger(),
		script: &Script{
			Path:  opts.Path,
			Text:  text,
			lines: s.Lines(),
		},
	}
}

// Parse parses a whole script. On failure it returns a *Error describing
// the first lexical or syntax error; errors.Is(err, ErrNotImplemented)
// singles out grammar the parser knowingly does not cover.
func Parse(text string, opts Options) (script *Script, err error) {
	p := newParser(text, opts)
	defer p.recover(&err)

	p.advance()
	p.parseScript()
	if p.opts.Debug {
		p.log.Debug("parsed script", "path", opts.Path, "statements", len(p.script.Statements))
	}
	return p.script, nil
}

// ParseExpression parses text as a single expression.
func ParseExpression(text string, opts Options) (expr Expression, err error) {
	p := newParser(text, opts)
	defer p.recover(&err)

	p.advance()
	expr = p.parseExpression()
	if !p.check(KindEndOfFile) {
		p.errorExpected("end of input")
	}
	return expr, nil
}

func (p *parser) recover(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

// parseScript dispatches statements until EOF. GO separates batches but
// produces no node; stray semicolons are skipped.
func (p *parser) parseScript() {
	for !p.check(KindEndOfFile) {
		if p.match(KindSemicolon) || p.match(KindGoKeyword) {
			continue
		}
		stmt := p.parseStatement()
		if p.opts.Debug {
			r := stmt.Range()
			p.log.Debug("parsed statement", "kind", stmt.Kind().String(), "start", r.Start, "end", r.End)
		}
		p.script.Statements = append(p.script.Statements, stmt)
	}
}

// === Token Helpers ===

// advance moves to the next significant token, recording comments and
// keywords on the way. Unknown tokens only reach here when OnError is set
// and are dropped.
func (p *parser) advance() {
	p.prevEnd = p.tok.End
	for {
		tok, err := p.scanner.Scan()
		if err != nil {
			var lexErr *Error
			if errors.As(err, &lexErr) {
				panic(bailout{lexErr})
			}
			panic(bailout{&Error{Kind: ErrorLexical, Diagnostic: p.scanner.Diagnostic(tok.Start, err.Error())}})
		}
		switch {
		case tok.Kind == KindWhitespace:
			continue
		case tok.Kind.IsTrivia():
			if !p.opts.SkipTrivia {
				p.script.Comments = append(p.script.Comments, tok)
			}
			continue
		case tok.Kind == KindUnknown:
			continue
		}
		if tok.Kind.IsKeyword() && !p.opts.SkipKeywordTracking {
			p.script.Keywords = append(p.script.Keywords, tok)
		}
		p.tok = tok
		return
	}
}

// check returns true if the current token is of the given kind.
func (p *parser) check(k SyntaxKind) bool {
	return p.tok.Kind == k
}

// match consumes the current token if it matches and returns true.
func (p *parser) match(k SyntaxKind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes and returns the current token if it matches, otherwise it
// fails with an "expected X, found Y" syntax error.
func (p *parser) expect(k SyntaxKind) Token {
	tok := p.tok
	if !p.check(k) {
		p.errorExpected(describeKind(k))
	}
	p.advance()
	return tok
}

// rangeFrom closes a node that began at start on the last consumed token.
func (p *parser) rangeFrom(start int) TextRange {
	end := p.prevEnd
	if end < start {
		end = start
	}
	return TextRange{Start: start, End: end}
}

// === Errors ===

func (p *parser) fail(kind ErrorKind, offset int, msg string) {
	panic(bailout{&Error{Kind: kind, Diagnostic: p.scanner.Diagnostic(offset, msg)}})
}

func (p *parser) errorf(format string, args ...any) {
	p.fail(ErrorSyntax, p.tok.Start, fmt.Sprintf(format, args...))
}

func (p *parser) errorExpected(what string) {
	p.errorf("expected %s, found %s", what, p.describeToken(p.tok))
}

func (p *parser) notImplemented(what string) {
	p.fail(ErrorNotImplemented, p.tok.Start, what+" is not implemented")
}

func (p *parser) describeToken(tok Token) string {
	switch {
	case tok.Kind == KindEndOfFile:
		return "end of input"
	case tok.Kind == KindIdentifier:
		return fmt.Sprintf("identifier %q", tok.Value)
	case tok.Kind.IsKeyword():
		return "keyword " + tok.Kind.String()
	case tok.Kind == KindStringLiteral:
		return "string literal"
	case tok.Kind == KindIntegerLiteral || tok.Kind == KindFloatLiteral || tok.Kind == KindBinaryLiteral:
		return fmt.Sprintf("number %s", p.scanner.TokenText(tok))
	default:
		return fmt.Sprintf("%q", tok.Kind.String())
	}
}

func describeKind(k SyntaxKind) string {
	switch {
	case k == KindIdentifier:
		return "identifier"
	case k == KindEndOfFile:
		return "end of input"
	case k.IsKeyword():
		return k.String()
	default:
		return fmt.Sprintf("%q", k.String())
	}
}

// === Names ===

// parseName parses a dotted name where one is syntactically required, so a
// keyword is accepted as the first part.
func (p *parser) parseName() *Identifier {
	id, star := p.parseQualifiedName(true, false)
	if star {
		p.errorExpected("identifier")
	}
	return id
}

// parseQualifiedName reads name {. name | .. name}. Keywords are accepted
// after a dot and, with allowKeyword, as the first part. With allowStar a
// trailing .* is consumed and reported through star.
func (p *parser) parseQualifiedName(allowKeyword, allowStar bool) (id *Identifier, star bool) {
	start := p.tok.Start
	id = &Identifier{}
	id.Parts = append(id.Parts, p.nameSegment(allowKeyword, &id.Flags, true))

	for {
		switch {
		case p.check(KindDot):
			p.advance()
			if allowStar && p.check(KindAsterisk) {
				p.advance()
				star = true
			} else {
				id.Parts = append(id.Parts, p.nameSegment(true, &id.Flags, false))
				continue
			}
		case p.check(KindDotDot):
			p.advance()
			id.Parts = append(id.Parts, "")
			id.Parts = append(id.Parts, p.nameSegment(true, &id.Flags, false))
			continue
		}
		break
	}

	if len(id.Parts) > 3 {
		p.fail(ErrorSyntax, start, fmt.Sprintf("name %q has more than three parts", joinParts(id.Parts)))
	}
	switch len(id.Parts) {
	case 3:
		id.Flags |= IdentHasDatabase
		if id.Parts[1] != "" {
			id.Flags |= IdentHasSchema
		}
	case 2:
		id.Flags |= IdentHasSchema
	}
	id.TextRange = p.rangeFrom(start)
	return id, star
}

func (p *parser) nameSegment(allowKeyword bool, flags *IdentifierFlags, first bool) string {
	tok := p.tok
	if tok.Kind != KindIdentifier && !(allowKeyword && tok.Kind.IsKeyword()) {
		p.errorExpected("identifier")
	}
	if tok.Flags&(FlagDoubleQuoted|FlagBracketed) != 0 {
		*flags |= IdentQuoted
	}
	if first {
		if tok.Flags.Has(FlagVariable) {
			*flags |= IdentVariable
		}
		if tok.Flags.Has(FlagTempTable) {
			*flags |= IdentTempTable
		}
	}
	p.advance()
	return tok.Value
}

// parseVariable parses a single @name.
func (p *parser) parseVariable() *Identifier {
	if !p.check(KindIdentifier) || !p.tok.Flags.Has(FlagVariable) {
		p.errorExpected("variable")
	}
	return p.singleIdentifier()
}

// singleIdentifier turns the current token into a one-part identifier.
func (p *parser) singleIdentifier() *Identifier {
	tok := p.tok
	id := &Identifier{
		TextRange: TextRange{Start: tok.Start, End: tok.End},
		Parts:     []string{tok.Value},
	}
	if tok.Flags.Has(FlagVariable) {
		id.Flags |= IdentVariable
	}
	if tok.Flags.Has(FlagTempTable) {
		id.Flags |= IdentTempTable
	}
	if tok.Flags&(FlagDoubleQuoted|FlagBracketed) != 0 {
		id.Flags |= IdentQuoted
	}
	p.advance()
	return id
}

func joinParts(parts []string) string {
	id := Identifier{Parts: parts}
	return id.String()
}
