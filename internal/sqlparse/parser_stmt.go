package sqlparse

// parseStatement dispatches on the statement's first token.
func (p *parser) parseStatement() Statement {
	switch p.tok.Kind {
	case KindDeclareKeyword:
		return p.parseDeclare()
	case KindSetKeyword:
		return p.parseSet()
	case KindUseKeyword:
		return p.parseUse()
	case KindSelectKeyword:
		return p.parseSelect()
	case KindExecKeyword, KindExecuteKeyword:
		return p.parseExecute()
	case KindCreateKeyword:
		return p.parseCreate()
	case KindAlterKeyword:
		return p.parseAlter()
	case KindInsertKeyword:
		return p.parseInsert()
	case KindUpdateKeyword:
		p.notImplemented("UPDATE")
	case KindDeleteKeyword:
		p.notImplemented("DELETE")
	case KindDropKeyword:
		return p.parseDrop()
	case KindPrintKeyword:
		return p.parsePrint()
	case KindIfKeyword:
		return p.parseIf()
	case KindWhileKeyword:
		return p.parseWhile()
	case KindBeginKeyword:
		return p.parseBlock()
	case KindReturnKeyword:
		return p.parseReturn()
	}
	p.errorf("unexpected %s at start of statement", p.describeToken(p.tok))
	return nil
}

// parseBlock parses BEGIN stmt... END.
func (p *parser) parseBlock() *StatementBlock {
	start := p.expect(KindBeginKeyword).Start
	block := &StatementBlock{Bracketed: true}
	for !p.check(KindEndKeyword) {
		if p.match(KindSemicolon) {
			continue
		}
		if p.check(KindEndOfFile) {
			p.errorExpected("END")
		}
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.advance()
	block.TextRange = p.rangeFrom(start)
	return block
}

// parseDeclare parses DECLARE @t TABLE (coldefs) or
// DECLARE @v [AS] type [= expr] {, @v [AS] type [= expr]}.
func (p *parser) parseDeclare() *DeclareStatement {
	start := p.expect(KindDeclareKeyword).Start
	name := p.parseVariable()

	if p.check(KindTableKeyword) {
		p.advance()
		p.expect(KindOpenParen)
		table := &TableVariableDeclaration{Name: name, Columns: p.parseColumnDefinitions()}
		p.expect(KindCloseParen)
		table.TextRange = p.rangeFrom(name.Start)
		return &DeclareStatement{TextRange: p.rangeFrom(start), Body: table}
	}

	vars := VariableDeclarations{p.parseVariableDeclaration(name)}
	for p.match(KindComma) {
		vars = append(vars, p.parseVariableDeclaration(p.parseVariable()))
	}
	return &DeclareStatement{TextRange: p.rangeFrom(start), Body: vars}
}

func (p *parser) parseVariableDeclaration(name *Identifier) *VariableDeclaration {
	p.match(KindAsKeyword)
	decl := &VariableDeclaration{Name: name, Type: p.parseDataType()}
	if p.match(KindEquals) {
		decl.Value = p.parseExpression()
	}
	decl.TextRange = p.rangeFrom(name.Start)
	return decl
}

// parseSet parses SET @v op expr, or SET option[, option] value when the
// target is not a variable.
func (p *parser) parseSet() Statement {
	start := p.expect(KindSetKeyword).Start

	if p.check(KindIdentifier) && p.tok.Flags.Has(FlagVariable) {
		v := p.parseVariable()
		if !p.check(KindEquals) && !p.tok.Kind.IsCompoundAssignment() {
			p.errorExpected("assignment operator")
		}
		op := p.tok
		p.advance()
		expr := p.parseExpression()
		return &SetStatement{TextRange: p.rangeFrom(start), Variable: v, Operator: op, Expression: expr}
	}

	stmt := &SetOptionStatement{}
	for {
		if !p.check(KindIdentifier) && !p.tok.Kind.IsKeyword() {
			p.errorExpected("option name")
		}
		stmt.Options = append(stmt.Options, p.tok)
		p.advance()
		if !p.match(KindComma) {
			break
		}
	}
	if p.check(KindEndOfFile) {
		p.errorExpected("option value")
	}
	stmt.Value = p.tok
	p.advance()
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseUse() *UseDatabaseStatement {
	start := p.expect(KindUseKeyword).Start
	db := p.parseName()
	return &UseDatabaseStatement{TextRange: p.rangeFrom(start), Database: db}
}

func (p *parser) parsePrint() *PrintStatement {
	start := p.expect(KindPrintKeyword).Start
	expr := p.parseExpression()
	return &PrintStatement{TextRange: p.rangeFrom(start), Expression: expr}
}

func (p *parser) parseReturn() *ReturnStatement {
	start := p.expect(KindReturnKeyword).Start
	stmt := &ReturnStatement{}
	if p.startsExpression() {
		stmt.Expression = p.parseExpression()
	}
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseIf() *IfStatement {
	start := p.expect(KindIfKeyword).Start
	stmt := &IfStatement{Predicate: p.parseExpression()}
	stmt.Then = p.parseStatement()
	for p.match(KindSemicolon) {
	}
	if p.match(KindElseKeyword) {
		stmt.Else = p.parseStatement()
	}
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseWhile() *WhileStatement {
	start := p.expect(KindWhileKeyword).Start
	stmt := &WhileStatement{Predicate: p.parseExpression()}
	stmt.Body = p.parseStatement()
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

// parseExecute parses EXEC[UTE] [@ret =] proc [arg {, arg}].
func (p *parser) parseExecute() *ExecuteStatement {
	start := p.tok.Start
	p.advance()

	stmt := &ExecuteStatement{}
	name := p.parseName()
	if name.IsVariable() && p.match(KindEquals) {
		stmt.ReturnVariable = name
		name = p.parseName()
	}
	stmt.Procedure = name

	if p.startsExpression() && !p.check(KindNotKeyword) {
		for {
			stmt.Arguments = append(stmt.Arguments, p.parseExecuteArgument())
			if !p.match(KindComma) {
				break
			}
		}
	}
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

// parseExecuteArgument parses [@p =] expr [OUT|OUTPUT]. The named form is
// recognised by unwrapping a top-level @p = expr comparison.
func (p *parser) parseExecuteArgument() *ExecuteArgument {
	start := p.tok.Start
	arg := &ExecuteArgument{Value: p.parseExpression()}
	if name, value, ok := splitAssignment(arg.Value, true); ok {
		arg.Name, arg.Value = name, value
	}
	if p.match(KindOutKeyword) || p.match(KindOutputKeyword) {
		arg.Output = true
	}
	arg.TextRange = p.rangeFrom(start)
	return arg
}

// splitAssignment recognises name = expr parsed as a comparison. With
// variable set the name must be an @variable, otherwise it must be a plain
// one-part name.
func splitAssignment(expr Expression, variable bool) (*Identifier, Expression, bool) {
	b, ok := expr.(*BinaryExpression)
	if !ok || b.Operator.Kind != KindEquals {
		return nil, nil, false
	}
	ref, ok := b.Left.(*IdentifierExpression)
	if !ok || len(ref.Identifier.Parts) != 1 || ref.Identifier.IsVariable() != variable {
		return nil, nil, false
	}
	return ref.Identifier, b.Right, true
}

// parseInsert parses INSERT [INTO] target [(cols)] VALUES rows | select.
func (p *parser) parseInsert() *InsertStatement {
	start := p.expect(KindInsertKeyword).Start
	p.match(KindIntoKeyword)

	stmt := &InsertStatement{Target: p.parseName()}
	if p.match(KindOpenParen) {
		for {
			stmt.Columns = append(stmt.Columns, p.parseName())
			if !p.match(KindComma) {
				break
			}
		}
		p.expect(KindCloseParen)
	}

	switch {
	case p.check(KindValuesKeyword):
		stmt.Source = p.parseValues()
	case p.check(KindSelectKeyword):
		stmt.Source = p.parseSelect()
	default:
		p.errorExpected("VALUES or SELECT")
	}
	stmt.TextRange = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseValues() *ValuesClause {
	start := p.expect(KindValuesKeyword).Start
	values := &ValuesClause{}
	for {
		p.expect(KindOpenParen)
		var row []Expression
		for {
			row = append(row, p.parseExpression())
			if !p.match(KindComma) {
				break
			}
		}
		p.expect(KindCloseParen)
		values.Rows = append(values.Rows, row)
		if !p.match(KindComma) {
			break
		}
	}
	values.TextRange = p.rangeFrom(start)
	return values
}
