package sqlparse

// === DDL Parsing ===

func (p *parser) parseCreate() Statement {
	start := p.expect(KindCreateKeyword).Start
	switch p.tok.Kind {
	case KindTableKeyword:
		return p.parseCreateTable(start)
	case KindViewKeyword:
		return p.parseCreateView(start, false)
	case KindProcKeyword, KindProcedureKeyword:
		return p.parseCreateProcedure(start, false)
	}
	p.errorExpected("TABLE, VIEW or PROCEDURE after CREATE")
	return nil
}

// parseAlter reuses the CREATE productions for views and procedures.
func (p *parser) parseAlter() Statement {
	start := p.expect(KindAlterKeyword).Start
	switch p.tok.Kind {
	case KindTableKeyword:
		p.notImplemented("ALTER TABLE")
	case KindViewKeyword:
		return p.parseCreateView(start, true)
	case KindProcKeyword, KindProcedureKeyword:
		return p.parseCreateProcedure(start, true)
	}
	p.errorExpected("VIEW or PROCEDURE after ALTER")
	return nil
}

func (p *parser) parseCreateTable(start int) *CreateTableStatement {
	p.expect(KindTableKeyword)
	stmt := &CreateTableStatement{Name: p.parseName()}

	if p.check(KindAsKeyword) {
		if !p.opts.Features.Has(FeatureCreateTableAsSelect) {
			p.errorf("CREATE TABLE ... AS SELECT requires the create-table-as-select feature")
		}
		p.advance()
		stmt.AsSelect = p.parseSelect()
		stmt.TextRange = p.rangeFrom(start)
		return stmt
	}

	p.expect(KindOpenParen)
	stmt.Columns = p.parseColumnDefinitions()
	p.expect(KindCloseParen)
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseCreateView(start int, alter bool) *CreateViewStatement {
	p.expect(KindViewKeyword)
	stmt := &CreateViewStatement{Name: p.parseName(), Alter: alter}
	p.expect(KindAsKeyword)
	stmt.Select = p.parseSelect()
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

// parseCreateProcedure parses PROC[EDURE] name [params] AS body. The body is
// BEGIN ... END, or every statement up to the next GO or end of input.
func (p *parser) parseCreateProcedure(start int, alter bool) *CreateProcedureStatement {
	p.advance()
	stmt := &CreateProcedureStatement{Name: p.parseName(), Alter: alter}

	switch {
	case p.match(KindOpenParen):
		if !p.check(KindCloseParen) {
			stmt.Parameters = p.parseParameters()
		}
		p.expect(KindCloseParen)
	case p.check(KindIdentifier) && p.tok.Flags.Has(FlagVariable):
		stmt.Parameters = p.parseParameters()
	}

	p.expect(KindAsKeyword)
	if p.check(KindBeginKeyword) {
		stmt.Body = p.parseBlock()
	} else {
		bodyStart := p.tok.Start
		body := &StatementBlock{}
		for !p.check(KindGoKeyword) && !p.check(KindEndOfFile) {
			if p.match(KindSemicolon) {
				continue
			}
			body.Statements = append(body.Statements, p.parseStatement())
		}
		body.TextRange = p.rangeFrom(bodyStart)
		stmt.Body = body
	}
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseParameters() []*ParameterDeclaration {
	var params []*ParameterDeclaration
	for {
		name := p.parseVariable()
		p.match(KindAsKeyword)
		param := &ParameterDeclaration{Name: name, Type: p.parseDataType()}
		if p.match(KindEquals) {
			param.Default = p.parseExpression()
		}
		if p.match(KindOutKeyword) || p.match(KindOutputKeyword) {
			param.Output = true
		}
		param.TextRange = p.rangeFrom(name.Start)
		params = append(params, param)
		if !p.match(KindComma) {
			return params
		}
	}
}

// parseDrop parses DROP TABLE|VIEW|PROC|PROCEDURE|FUNCTION [IF EXISTS] names.
func (p *parser) parseDrop() *DropStatement {
	start := p.expect(KindDropKeyword).Start
	stmt := &DropStatement{}
	switch p.tok.Kind {
	case KindTableKeyword:
		stmt.ObjectType = ObjectTable
	case KindViewKeyword:
		stmt.ObjectType = ObjectView
	case KindProcKeyword, KindProcedureKeyword:
		stmt.ObjectType = ObjectProcedure
	case KindFunctionKeyword:
		stmt.ObjectType = ObjectFunction
	default:
		p.errorExpected("TABLE, VIEW, PROCEDURE or FUNCTION after DROP")
	}
	p.advance()

	if p.check(KindIfKeyword) {
		if !p.opts.Features.Has(FeatureDropIfExists) {
			p.errorf("DROP ... IF EXISTS requires the drop-if-exists feature")
		}
		p.advance()
		p.expect(KindExistsKeyword)
		stmt.IfExists = true
	}

	for {
		stmt.Names = append(stmt.Names, p.parseName())
		if !p.match(KindComma) {
			break
		}
	}
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

// parseColumnDefinitions parses a comma-separated list with no trailing comma.
func (p *parser) parseColumnDefinitions() []*ColumnDefinition {
	var cols []*ColumnDefinition
	for {
		cols = append(cols, p.parseColumnDefinition())
		if !p.match(KindComma) {
			return cols
		}
	}
}

// parseColumnDefinition parses name AS expr, or name type followed by any of
// NULL, NOT NULL, IDENTITY [(seed, step)], PRIMARY KEY, UNIQUE, DEFAULT expr.
func (p *parser) parseColumnDefinition() *ColumnDefinition {
	start := p.tok.Start
	if !p.check(KindIdentifier) && !p.tok.Kind.IsKeyword() {
		p.errorExpected("column name")
	}
	col := &ColumnDefinition{Name: p.singleIdentifier()}

	if p.match(KindAsKeyword) {
		col.Computed = p.parseExpression()
		col.TextRange = p.rangeFrom(start)
		return col
	}

	col.Type = p.parseDataType()
	for {
		switch p.tok.Kind {
		case KindNullKeyword:
			p.advance()
			col.Nullability = Nullable
			continue
		case KindNotKeyword:
			p.advance()
			p.expect(KindNullKeyword)
			col.Nullability = NotNullable
			continue
		case KindIdentityKeyword:
			p.advance()
			col.Identity = true
			if p.match(KindOpenParen) {
				p.expectNumber()
				p.expect(KindComma)
				p.expectNumber()
				p.expect(KindCloseParen)
			}
			continue
		case KindPrimaryKeyword:
			p.advance()
			p.expect(KindKeyKeyword)
			col.PrimaryKey = true
			continue
		case KindUniqueKeyword:
			p.advance()
			col.Unique = true
			continue
		case KindDefaultKeyword:
			p.advance()
			col.Default = p.parseBase()
			continue
		}
		break
	}
	col.TextRange = p.rangeFrom(start)
	return col
}

func (p *parser) expectNumber() Token {
	p.match(KindMinus)
	if !p.check(KindIntegerLiteral) {
		p.errorExpected("number")
	}
	tok := p.tok
	p.advance()
	return tok
}

// parseDataType parses name [(arg {, arg})] where each argument is a number
// or MAX.
func (p *parser) parseDataType() *DataType {
	start := p.tok.Start
	t := &DataType{Name: p.parseName()}
	if p.match(KindOpenParen) {
		for {
			switch {
			case p.check(KindIntegerLiteral):
				t.Arguments = append(t.Arguments, p.tok.Value)
			case p.check(KindIdentifier) && len(p.tok.Value) == 3 && equalFoldASCII("max", p.tok.Value):
				t.Arguments = append(t.Arguments, "max")
			default:
				p.errorExpected("type size")
			}
			p.advance()
			if !p.match(KindComma) {
				break
			}
		}
		p.expect(KindCloseParen)
	}
	t.TextRange = p.rangeFrom(start)
	return t
}
