package sqlparse

// Precedence levels, loosest first. Each level parses the next tighter one
// and then loops over its own operators, so chains are left-associative.
//
//	OR
//	AND
//	NOT (prefix)
//	= < > <= >= <> != !< !>, IS [NOT] NULL, [NOT] BETWEEN, [NOT] LIKE, [NOT] IN
//	+ - & | ^
//	* / %
//	unary - + ~, literals, (expr), CASE, names, function calls

// parseExpression parses an expression at the loosest level.
func (p *parser) parseExpression() Expression {
	return p.parseOr()
}

func (p *parser) parseOr() Expression {
	left := p.parseAnd()
	for p.check(KindOrKeyword) {
		op := p.tok
		p.advance()
		left = p.newBinary(left, op, p.parseAnd())
	}
	return left
}

func (p *parser) parseAnd() Expression {
	left := p.parseNot()
	for p.check(KindAndKeyword) {
		op := p.tok
		p.advance()
		left = p.newBinary(left, op, p.parseNot())
	}
	return left
}

func (p *parser) parseNot() Expression {
	if !p.check(KindNotKeyword) {
		return p.parseComparison()
	}
	op := p.tok
	p.advance()
	operand := p.parseNot()
	return &UnaryExpression{
		TextRange: TextRange{Start: op.Start, End: operand.Range().End},
		Operator:  op,
		Operand:   operand,
	}
}

func isComparisonOperator(k SyntaxKind) bool {
	switch k {
	case KindEquals, KindLessThan, KindGreaterThan,
		KindLessThanEquals, KindGreaterThanEquals, KindLessThanGreaterThan,
		KindExclamationEquals, KindExclamationLessThan, KindExclamationGreaterThan:
		return true
	}
	return false
}

func (p *parser) parseComparison() Expression {
	left := p.parseAdditive()
	for {
		switch {
		case isComparisonOperator(p.tok.Kind):
			op := p.tok
			p.advance()
			left = p.newBinary(left, op, p.parseAdditive())

		case p.check(KindIsKeyword):
			p.advance()
			not := p.match(KindNotKeyword)
			p.expect(KindNullKeyword)
			left = &NullTestExpression{
				TextRange:  p.rangeFrom(left.Range().Start),
				Expression: left,
				Not:        not,
			}

		case p.check(KindNotKeyword):
			// After a complete operand NOT can only introduce a negated
			// BETWEEN, LIKE or IN.
			not := p.tok
			p.advance()
			switch {
			case p.check(KindBetweenKeyword), p.check(KindLikeKeyword):
				inner := p.parsePatternOperator(left)
				left = &UnaryExpression{
					TextRange: TextRange{Start: left.Range().Start, End: inner.End},
					Operator:  not,
					Operand:   inner,
				}
			case p.check(KindInKeyword):
				left = p.parseIn(left, true)
			default:
				p.errorExpected("BETWEEN, LIKE or IN after NOT")
			}

		case p.check(KindBetweenKeyword), p.check(KindLikeKeyword):
			left = p.parsePatternOperator(left)

		case p.check(KindInKeyword):
			left = p.parseIn(left, false)

		default:
			return left
		}
	}
}

// parsePatternOperator parses BETWEEN low AND high or LIKE pattern with the
// current token on the keyword. BETWEEN's right operand is the binary
// expression low AND high.
func (p *parser) parsePatternOperator(left Expression) *BinaryExpression {
	op := p.tok
	p.advance()
	if op.Kind == KindLikeKeyword {
		return p.newBinary(left, op, p.parseAdditive())
	}
	low := p.parseAdditive()
	and := p.expect(KindAndKeyword)
	high := p.parseAdditive()
	return p.newBinary(left, op, p.newBinary(low, and, high))
}

func (p *parser) parseIn(left Expression, not bool) *InExpression {
	p.expect(KindInKeyword)
	p.expect(KindOpenParen)
	in := &InExpression{Expression: left, Not: not}
	for {
		in.Values = append(in.Values, p.parseExpression())
		if !p.match(KindComma) {
			break
		}
	}
	p.expect(KindCloseParen)
	in.TextRange = p.rangeFrom(left.Range().Start)
	return in
}

func isAdditiveOperator(k SyntaxKind) bool {
	switch k {
	case KindPlus, KindMinus, KindAmpersand, KindBar, KindCaret:
		return true
	}
	return false
}

func (p *parser) parseAdditive() Expression {
	left := p.parseMultiplicative()
	for isAdditiveOperator(p.tok.Kind) {
		op := p.tok
		p.advance()
		left = p.newBinary(left, op, p.parseMultiplicative())
	}
	return left
}

func (p *parser) parseMultiplicative() Expression {
	left := p.parseBase()
	for p.check(KindAsterisk) || p.check(KindSlash) || p.check(KindPercent) {
		op := p.tok
		p.advance()
		left = p.newBinary(left, op, p.parseBase())
	}
	return left
}

func (p *parser) newBinary(left Expression, op Token, right Expression) *BinaryExpression {
	return &BinaryExpression{
		TextRange: TextRange{Start: left.Range().Start, End: right.Range().End},
		Left:      left,
		Operator:  op,
		Right:     right,
	}
}

// parseBase parses the tightest level.
func (p *parser) parseBase() Expression {
	start := p.tok.Start
	switch p.tok.Kind {
	case KindMinus, KindPlus, KindTilde:
		op := p.tok
		p.advance()
		operand := p.parseBase()
		return &UnaryExpression{
			TextRange: TextRange{Start: start, End: operand.Range().End},
			Operator:  op,
			Operand:   operand,
		}

	case KindStringLiteral, KindIntegerLiteral, KindFloatLiteral, KindBinaryLiteral, KindNullKeyword:
		tok := p.tok
		p.advance()
		return &Literal{TextRange: TextRange{Start: tok.Start, End: tok.End}, Token: tok}

	case KindOpenParen:
		p.advance()
		inner := p.parseExpression()
		p.expect(KindCloseParen)
		return &ParenthesizedExpression{TextRange: p.rangeFrom(start), Expression: inner}

	case KindCaseKeyword:
		return p.parseCase()

	case KindIdentifier, KindLeftKeyword, KindRightKeyword:
		// LEFT and RIGHT double as string function names.
		keyword := p.tok.Kind != KindIdentifier
		name, star := p.parseQualifiedName(keyword, true)
		if star {
			return &StarExpression{TextRange: p.rangeFrom(start), Qualifier: name}
		}
		if p.check(KindOpenParen) {
			return p.parseFunctionCall(name)
		}
		if keyword {
			p.fail(ErrorSyntax, start, "expected '(' after function name "+name.String())
		}
		return &IdentifierExpression{TextRange: name.TextRange, Identifier: name}
	}

	p.errorExpected("expression")
	return nil
}

// parseFunctionCall parses (args). Each argument is parsed at the additive
// level; * is allowed as the only argument.
func (p *parser) parseFunctionCall(name *Identifier) *FunctionCall {
	p.expect(KindOpenParen)
	call := &FunctionCall{Name: name}
	switch {
	case p.check(KindAsterisk):
		tok := p.tok
		p.advance()
		call.Arguments = []Expression{&StarExpression{TextRange: TextRange{Start: tok.Start, End: tok.End}}}
	case !p.check(KindCloseParen):
		for {
			call.Arguments = append(call.Arguments, p.parseAdditive())
			if !p.match(KindComma) {
				break
			}
		}
	}
	p.expect(KindCloseParen)
	call.TextRange = p.rangeFrom(name.Start)
	return call
}

// parseCase parses simple and searched CASE. A simple CASE has an input
// expression between CASE and the first WHEN.
func (p *parser) parseCase() *CaseExpression {
	start := p.expect(KindCaseKeyword).Start
	c := &CaseExpression{}
	if !p.check(KindWhenKeyword) {
		c.Input = p.parseExpression()
	}
	for p.check(KindWhenKeyword) {
		whenStart := p.tok.Start
		p.advance()
		w := &WhenClause{When: p.parseExpression()}
		p.expect(KindThenKeyword)
		w.Then = p.parseExpression()
		w.TextRange = p.rangeFrom(whenStart)
		c.Whens = append(c.Whens, w)
	}
	if len(c.Whens) == 0 {
		p.errorExpected("WHEN")
	}
	if p.match(KindElseKeyword) {
		c.Else = p.parseExpression()
	}
	p.expect(KindEndKeyword)
	c.TextRange = p.rangeFrom(start)
	return c
}

// startsExpression reports whether the current token can begin an
// expression. Optional trailing expressions (RETURN, EXEC arguments) use it.
func (p *parser) startsExpression() bool {
	switch p.tok.Kind {
	case KindMinus, KindPlus, KindTilde, KindOpenParen,
		KindStringLiteral, KindIntegerLiteral, KindFloatLiteral, KindBinaryLiteral,
		KindNullKeyword, KindCaseKeyword, KindNotKeyword, KindIdentifier:
		return true
	}
	return false
}
