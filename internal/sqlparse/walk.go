package sqlparse

// Visitor has one hook per concrete node type. Returning false skips the
// node's children. Embed BaseVisitor and override only the hooks you need.
type Visitor interface {
	VisitIdentifier(*Identifier) bool
	VisitDataType(*DataType) bool

	VisitLiteral(*Literal) bool
	VisitIdentifierExpression(*IdentifierExpression) bool
	VisitParenthesizedExpression(*ParenthesizedExpression) bool
	VisitUnaryExpression(*UnaryExpression) bool
	VisitBinaryExpression(*BinaryExpression) bool
	VisitNullTestExpression(*NullTestExpression) bool
	VisitInExpression(*InExpression) bool
	VisitCaseExpression(*CaseExpression) bool
	VisitWhenClause(*WhenClause) bool
	VisitFunctionCall(*FunctionCall) bool
	VisitStarExpression(*StarExpression) bool
	VisitColumnExpression(*ColumnExpression) bool

	VisitFromClause(*FromClause) bool
	VisitTableSource(*TableSource) bool
	VisitJoin(*Join) bool
	VisitOrderByItem(*OrderByItem) bool
	VisitValuesClause(*ValuesClause) bool
	VisitColumnDefinition(*ColumnDefinition) bool
	VisitVariableDeclaration(*VariableDeclaration) bool
	VisitTableVariableDeclaration(*TableVariableDeclaration) bool
	VisitParameterDeclaration(*ParameterDeclaration) bool
	VisitExecuteArgument(*ExecuteArgument) bool

	VisitStatementBlock(*StatementBlock) bool
	VisitUseDatabaseStatement(*UseDatabaseStatement) bool
	VisitPrintStatement(*PrintStatement) bool
	VisitDeclareStatement(*DeclareStatement) bool
	VisitSetStatement(*SetStatement) bool
	VisitSetOptionStatement(*SetOptionStatement) bool
	VisitIfStatement(*IfStatement) bool
	VisitWhileStatement(*WhileStatement) bool
	VisitReturnStatement(*ReturnStatement) bool
	VisitSelectStatement(*SelectStatement) bool
	VisitInsertStatement(*InsertStatement) bool
	VisitExecuteStatement(*ExecuteStatement) bool
	VisitCreateTableStatement(*CreateTableStatement) bool
	VisitCreateViewStatement(*CreateViewStatement) bool
	VisitCreateProcedureStatement(*CreateProcedureStatement) bool
	VisitDropStatement(*DropStatement) bool
}

// Enterer is an optional generic hook called before the typed Visit hook.
// Returning false skips the typed hook and the children.
type Enterer interface {
	Enter(Node) bool
}

// Leaver is an optional hook called once a node's children have been
// walked. It runs for every entered node, including those whose hook
// returned false.
type Leaver interface {
	Leave(Node)
}

// BaseVisitor implements every Visitor hook as a no-op that returns true.
type BaseVisitor struct{}

func (BaseVisitor) VisitIdentifier(*Identifier) bool                             { return true }
func (BaseVisitor) VisitDataType(*DataType) bool                                 { return true }
func (BaseVisitor) VisitLiteral(*Literal) bool                                   { return true }
func (BaseVisitor) VisitIdentifierExpression(*IdentifierExpression) bool         { return true }
func (BaseVisitor) VisitParenthesizedExpression(*ParenthesizedExpression) bool   { return true }
func (BaseVisitor) VisitUnaryExpression(*UnaryExpression) bool                   { return true }
func (BaseVisitor) VisitBinaryExpression(*BinaryExpression) bool                 { return true }
func (BaseVisitor) VisitNullTestExpression(*NullTestExpression) bool             { return true }
func (BaseVisitor) VisitInExpression(*InExpression) bool                         { return true }
func (BaseVisitor) VisitCaseExpression(*CaseExpression) bool                     { return true }
func (BaseVisitor) VisitWhenClause(*WhenClause) bool                             { return true }
func (BaseVisitor) VisitFunctionCall(*FunctionCall) bool                         { return true }
func (BaseVisitor) VisitStarExpression(*StarExpression) bool                     { return true }
func (BaseVisitor) VisitColumnExpression(*ColumnExpression) bool                 { return true }
func (BaseVisitor) VisitFromClause(*FromClause) bool                             { return true }
func (BaseVisitor) VisitTableSource(*TableSource) bool                           { return true }
func (BaseVisitor) VisitJoin(*Join) bool                                         { return true }
func (BaseVisitor) VisitOrderByItem(*OrderByItem) bool                           { return true }
func (BaseVisitor) VisitValuesClause(*ValuesClause) bool                         { return true }
func (BaseVisitor) VisitColumnDefinition(*ColumnDefinition) bool                 { return true }
func (BaseVisitor) VisitVariableDeclaration(*VariableDeclaration) bool           { return true }
func (BaseVisitor) VisitTableVariableDeclaration(*TableVariableDeclaration) bool { return true }
func (BaseVisitor) VisitParameterDeclaration(*ParameterDeclaration) bool         { return true }
func (BaseVisitor) VisitExecuteArgument(*ExecuteArgument) bool                   { return true }
func (BaseVisitor) VisitStatementBlock(*StatementBlock) bool                     { return true }
func (BaseVisitor) VisitUseDatabaseStatement(*UseDatabaseStatement) bool         { return true }
func (BaseVisitor) VisitPrintStatement(*PrintStatement) bool                     { return true }
func (BaseVisitor) VisitDeclareStatement(*DeclareStatement) bool                 { return true }
func (BaseVisitor) VisitSetStatement(*SetStatement) bool                         { return true }
func (BaseVisitor) VisitSetOptionStatement(*SetOptionStatement) bool             { return true }
func (BaseVisitor) VisitIfStatement(*IfStatement) bool                           { return true }
func (BaseVisitor) VisitWhileStatement(*WhileStatement) bool                     { return true }
func (BaseVisitor) VisitReturnStatement(*ReturnStatement) bool                   { return true }
func (BaseVisitor) VisitSelectStatement(*SelectStatement) bool                   { return true }
func (BaseVisitor) VisitInsertStatement(*InsertStatement) bool                   { return true }
func (BaseVisitor) VisitExecuteStatement(*ExecuteStatement) bool                 { return true }
func (BaseVisitor) VisitCreateTableStatement(*CreateTableStatement) bool         { return true }
func (BaseVisitor) VisitCreateViewStatement(*CreateViewStatement) bool           { return true }
func (BaseVisitor) VisitCreateProcedureStatement(*CreateProcedureStatement) bool { return true }
func (BaseVisitor) VisitDropStatement(*DropStatement) bool                       { return true }

// Walk visits node and then its children in the order Children returns them.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	descend := true
	if e, ok := v.(Enterer); ok {
		descend = e.Enter(node)
	}
	if descend {
		descend = dispatch(v, node)
	}
	if descend {
		for _, child := range Children(node) {
			Walk(v, child)
		}
	}
	if l, ok := v.(Leaver); ok {
		l.Leave(node)
	}
}

// WalkScript walks every top-level statement in order.
func WalkScript(v Visitor, script *Script) {
	for _, stmt := range script.Statements {
		Walk(v, stmt)
	}
}

// Inspect calls fn for node and, while fn returns true, for its children.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}

func dispatch(v Visitor, node Node) bool {
	switch n := node.(type) {
	case *Identifier:
		return v.VisitIdentifier(n)
	case *DataType:
		return v.VisitDataType(n)
	case *Literal:
		return v.VisitLiteral(n)
	case *IdentifierExpression:
		return v.VisitIdentifierExpression(n)
	case *ParenthesizedExpression:
		return v.VisitParenthesizedExpression(n)
	case *UnaryExpression:
		return v.VisitUnaryExpression(n)
	case *BinaryExpression:
		return v.VisitBinaryExpression(n)
	case *NullTestExpression:
		return v.VisitNullTestExpression(n)
	case *InExpression:
		return v.VisitInExpression(n)
	case *CaseExpression:
		return v.VisitCaseExpression(n)
	case *WhenClause:
		return v.VisitWhenClause(n)
	case *FunctionCall:
		return v.VisitFunctionCall(n)
	case *StarExpression:
		return v.VisitStarExpression(n)
	case *ColumnExpression:
		return v.VisitColumnExpression(n)
	case *FromClause:
		return v.VisitFromClause(n)
	case *TableSource:
		return v.VisitTableSource(n)
	case *Join:
		return v.VisitJoin(n)
	case *OrderByItem:
		return v.VisitOrderByItem(n)
	case *ValuesClause:
		return v.VisitValuesClause(n)
	case *ColumnDefinition:
		return v.VisitColumnDefinition(n)
	case *VariableDeclaration:
		return v.VisitVariableDeclaration(n)
	case *TableVariableDeclaration:
		return v.VisitTableVariableDeclaration(n)
	case *ParameterDeclaration:
		return v.VisitParameterDeclaration(n)
	case *ExecuteArgument:
		return v.VisitExecuteArgument(n)
	case *StatementBlock:
		return v.VisitStatementBlock(n)
	case *UseDatabaseStatement:
		return v.VisitUseDatabaseStatement(n)
	case *PrintStatement:
		return v.VisitPrintStatement(n)
	case *DeclareStatement:
		return v.VisitDeclareStatement(n)
	case *SetStatement:
		return v.VisitSetStatement(n)
	case *SetOptionStatement:
		return v.VisitSetOptionStatement(n)
	case *IfStatement:
		return v.VisitIfStatement(n)
	case *WhileStatement:
		return v.VisitWhileStatement(n)
	case *ReturnStatement:
		return v.VisitReturnStatement(n)
	case *SelectStatement:
		return v.VisitSelectStatement(n)
	case *InsertStatement:
		return v.VisitInsertStatement(n)
	case *ExecuteStatement:
		return v.VisitExecuteStatement(n)
	case *CreateTableStatement:
		return v.VisitCreateTableStatement(n)
	case *CreateViewStatement:
		return v.VisitCreateViewStatement(n)
	case *CreateProcedureStatement:
		return v.VisitCreateProcedureStatement(n)
	case *DropStatement:
		return v.VisitDropStatement(n)
	}
	return true
}

// Children returns a node's direct children in traversal order. Absent
// optional children are omitted.
//
//	BinaryExpression         left, right
//	SelectStatement          top, columns, from, where, group by, having, order by
//	FromClause               sources, joins
//	InsertStatement          target, columns, source
//	IfStatement              predicate, then, else
//	ExecuteStatement         return variable, procedure, arguments
//	CreateProcedureStatement name, parameters, body
func Children(node Node) []Node {
	var c children
	switch n := node.(type) {
	case *DataType:
		c.ident(n.Name)
	case *IdentifierExpression:
		c.ident(n.Identifier)
	case *ParenthesizedExpression:
		c.expr(n.Expression)
	case *UnaryExpression:
		c.expr(n.Operand)
	case *BinaryExpression:
		c.expr(n.Left)
		c.expr(n.Right)
	case *NullTestExpression:
		c.expr(n.Expression)
	case *InExpression:
		c.expr(n.Expression)
		c.exprs(n.Values)
	case *CaseExpression:
		c.expr(n.Input)
		for _, w := range n.Whens {
			c.add(w)
		}
		c.expr(n.Else)
	case *WhenClause:
		c.expr(n.When)
		c.expr(n.Then)
	case *FunctionCall:
		c.ident(n.Name)
		c.exprs(n.Arguments)
	case *StarExpression:
		c.ident(n.Qualifier)
	case *ColumnExpression:
		c.expr(n.Expression)
		c.ident(n.Alias)
	case *FromClause:
		for _, s := range n.Sources {
			c.add(s)
		}
		for _, j := range n.Joins {
			c.add(j)
		}
	case *TableSource:
		c.ident(n.Name)
		c.ident(n.Alias)
	case *Join:
		if n.Source != nil {
			c.add(n.Source)
		}
		c.expr(n.On)
	case *OrderByItem:
		c.expr(n.Expression)
	case *ValuesClause:
		for _, row := range n.Rows {
			c.exprs(row)
		}
	case *ColumnDefinition:
		c.ident(n.Name)
		c.dataType(n.Type)
		c.expr(n.Computed)
		c.expr(n.Default)
	case *VariableDeclaration:
		c.ident(n.Name)
		c.dataType(n.Type)
		c.expr(n.Value)
	case *TableVariableDeclaration:
		c.ident(n.Name)
		c.columnDefs(n.Columns)
	case *ParameterDeclaration:
		c.ident(n.Name)
		c.dataType(n.Type)
		c.expr(n.Default)
	case *ExecuteArgument:
		c.ident(n.Name)
		c.expr(n.Value)
	case *StatementBlock:
		c.stmts(n.Statements)
	case *UseDatabaseStatement:
		c.ident(n.Database)
	case *PrintStatement:
		c.expr(n.Expression)
	case *DeclareStatement:
		switch body := n.Body.(type) {
		case *TableVariableDeclaration:
			c.add(body)
		case VariableDeclarations:
			for _, v := range body {
				c.add(v)
			}
		}
	case *SetStatement:
		c.ident(n.Variable)
		c.expr(n.Expression)
	case *IfStatement:
		c.expr(n.Predicate)
		c.stmt(n.Then)
		c.stmt(n.Else)
	case *WhileStatement:
		c.expr(n.Predicate)
		c.stmt(n.Body)
	case *ReturnStatement:
		c.expr(n.Expression)
	case *SelectStatement:
		c.expr(n.Top)
		for _, col := range n.Columns {
			c.add(col)
		}
		if n.From != nil {
			c.add(n.From)
		}
		c.expr(n.Where)
		c.exprs(n.GroupBy)
		c.expr(n.Having)
		for _, o := range n.OrderBy {
			c.add(o)
		}
	case *InsertStatement:
		c.ident(n.Target)
		for _, col := range n.Columns {
			c.ident(col)
		}
		if n.Source != nil {
			c.add(n.Source)
		}
	case *ExecuteStatement:
		c.ident(n.ReturnVariable)
		c.ident(n.Procedure)
		for _, a := range n.Arguments {
			c.add(a)
		}
	case *CreateTableStatement:
		c.ident(n.Name)
		c.columnDefs(n.Columns)
		if n.AsSelect != nil {
			c.add(n.AsSelect)
		}
	case *CreateViewStatement:
		c.ident(n.Name)
		if n.Select != nil {
			c.add(n.Select)
		}
	case *CreateProcedureStatement:
		c.ident(n.Name)
		for _, param := range n.Parameters {
			c.add(param)
		}
		if n.Body != nil {
			c.add(n.Body)
		}
	case *DropStatement:
		for _, name := range n.Names {
			c.ident(name)
		}
	}
	return c
}

// children collects non-nil child nodes; typed nil pointers must not leak
// into a []Node as non-nil interfaces.
type children []Node

func (c *children) add(n Node) { *c = append(*c, n) }

func (c *children) ident(id *Identifier) {
	if id != nil {
		c.add(id)
	}
}

func (c *children) dataType(t *DataType) {
	if t != nil {
		c.add(t)
	}
}

func (c *children) expr(e Expression) {
	if e != nil {
		c.add(e)
	}
}

func (c *children) exprs(es []Expression) {
	for _, e := range es {
		c.expr(e)
	}
}

func (c *children) stmt(s Statement) {
	if s != nil {
		c.add(s)
	}
}

func (c *children) stmts(ss []Statement) {
	for _, s := range ss {
		c.stmt(s)
	}
}

func (c *children) columnDefs(cols []*ColumnDefinition) {
	for _, col := range cols {
		c.add(col)
	}
}
