package sqlparse

// parseSelect parses
//
//	SELECT [TOP n | TOP (expr)] [DISTINCT | ALL] columns
//	  [FROM sources {join}] [WHERE expr] [GROUP BY exprs] [HAVING expr]
//	  [ORDER BY items] [LIMIT n]
//
// TOP is mssql only and LIMIT postgres only; both land in Top.
func (p *parser) parseSelect() *SelectStatement {
	start := p.expect(KindSelectKeyword).Start
	sel := &SelectStatement{}

	if p.check(KindTopKeyword) {
		if p.opts.Vendor == VendorPostgres {
			p.errorf("TOP is not supported by %s, use LIMIT", p.opts.Vendor)
		}
		p.advance()
		if p.match(KindOpenParen) {
			sel.Top = p.parseExpression()
			p.expect(KindCloseParen)
		} else {
			sel.Top = p.parseBase()
		}
	}

	switch {
	case p.match(KindDistinctKeyword):
		sel.Qualifier = QualifierDistinct
	case p.match(KindAllKeyword):
		sel.Qualifier = QualifierAll
	}

	for {
		sel.Columns = append(sel.Columns, p.parseColumn())
		if !p.match(KindComma) {
			break
		}
	}

	if p.check(KindIntoKeyword) {
		p.notImplemented("SELECT ... INTO")
	}
	if p.check(KindFromKeyword) {
		sel.From = p.parseFrom()
	}
	if p.match(KindWhereKeyword) {
		sel.Where = p.parseExpression()
	}
	if p.match(KindGroupKeyword) {
		p.expect(KindByKeyword)
		for {
			sel.GroupBy = append(sel.GroupBy, p.parseExpression())
			if !p.match(KindComma) {
				break
			}
		}
	}
	if p.match(KindHavingKeyword) {
		sel.Having = p.parseExpression()
	}
	if p.match(KindOrderKeyword) {
		p.expect(KindByKeyword)
		for {
			sel.OrderBy = append(sel.OrderBy, p.parseOrderByItem())
			if !p.match(KindComma) {
				break
			}
		}
	}
	if p.opts.Vendor == VendorPostgres && p.match(KindLimitKeyword) {
		sel.Top = p.parseAdditive()
	}

	sel.TextRange = p.rangeFrom(start)
	return sel
}

// parseColumn parses *, t.*, alias = expr, expr [AS] alias or expr.
func (p *parser) parseColumn() *ColumnExpression {
	start := p.tok.Start
	if p.check(KindAsterisk) {
		tok := p.tok
		p.advance()
		star := &StarExpression{TextRange: TextRange{Start: tok.Start, End: tok.End}}
		return newColumnExpression(p.rangeFrom(start), star, nil, StyleExprOnly)
	}

	expr := p.parseExpression()
	if alias, value, ok := splitAssignment(expr, false); ok {
		return newColumnExpression(p.rangeFrom(start), value, alias, StyleAliasEqualsExpr)
	}
	if alias := p.parseAlias(); alias != nil {
		return newColumnExpression(p.rangeFrom(start), expr, alias, StyleExprAsAlias)
	}
	return newColumnExpression(p.rangeFrom(start), expr, nil, StyleExprOnly)
}

// parseAlias parses an optional [AS] alias. Without AS only a plain
// identifier counts; after AS a keyword or string literal is accepted too.
func (p *parser) parseAlias() *Identifier {
	if p.match(KindAsKeyword) {
		if p.check(KindStringLiteral) {
			return p.singleIdentifier()
		}
		if !p.check(KindIdentifier) && !p.tok.Kind.IsKeyword() {
			p.errorExpected("alias")
		}
		return p.singleIdentifier()
	}
	if p.check(KindIdentifier) && p.tok.Flags&(FlagVariable|FlagTempTable) == 0 {
		return p.singleIdentifier()
	}
	return nil
}

func (p *parser) parseFrom() *FromClause {
	start := p.expect(KindFromKeyword).Start
	from := &FromClause{}
	for {
		from.Sources = append(from.Sources, p.parseTableSource())
		if !p.match(KindComma) {
			break
		}
	}
	for {
		join, ok := p.parseJoin()
		if !ok {
			break
		}
		from.Joins = append(from.Joins, join)
	}
	from.TextRange = p.rangeFrom(start)
	return from
}

func (p *parser) parseTableSource() *TableSource {
	start := p.tok.Start
	src := &TableSource{Name: p.parseName()}
	src.Alias = p.parseAlias()
	src.TextRange = p.rangeFrom(start)
	return src
}

// parseJoin parses [INNER | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] |
// CROSS] JOIN source [ON expr]. ok is false when no join starts here.
func (p *parser) parseJoin() (join *Join, ok bool) {
	start := p.tok.Start
	join = &Join{}
	switch p.tok.Kind {
	case KindJoinKeyword:
	case KindInnerKeyword:
		p.advance()
	case KindLeftKeyword, KindRightKeyword, KindFullKeyword:
		join.Type = map[SyntaxKind]JoinType{
			KindLeftKeyword:  JoinLeft,
			KindRightKeyword: JoinRight,
			KindFullKeyword:  JoinFull,
		}[p.tok.Kind]
		p.advance()
		p.match(KindOuterKeyword)
	case KindCrossKeyword:
		join.Type = JoinCross
		p.advance()
	default:
		return nil, false
	}
	p.expect(KindJoinKeyword)
	join.Source = p.parseTableSource()
	if p.match(KindOnKeyword) {
		join.On = p.parseExpression()
	}
	join.TextRange = p.rangeFrom(start)
	return join, true
}

func (p *parser) parseOrderByItem() *OrderByItem {
	start := p.tok.Start
	item := &OrderByItem{Expression: p.parseExpression()}
	switch {
	case p.match(KindDescKeyword):
		item.Descending = true
	case p.match(KindAscKeyword):
	}
	item.TextRange = p.rangeFrom(start)
	return item
}
