package sqlparse

// === Statement Nodes ===

// StatementBlock is a statement sequence. Bracketed is true for BEGIN ... END
// and false for an unbracketed procedure body.
type StatementBlock struct {
	TextRange
	Statements []Statement
	Bracketed  bool
}

func (*StatementBlock) Kind() SyntaxKind { return KindStatementBlock }
func (*StatementBlock) node()            {}
func (*StatementBlock) stmtNode()        {}

// UseDatabaseStatement is USE db.
type UseDatabaseStatement struct {
	TextRange
	Database *Identifier
}

func (*UseDatabaseStatement) Kind() SyntaxKind { return KindUseDatabaseStatement }
func (*UseDatabaseStatement) node()            {}
func (*UseDatabaseStatement) stmtNode()        {}

// PrintStatement is PRINT expr.
type PrintStatement struct {
	TextRange
	Expression Expression
}

func (*PrintStatement) Kind() SyntaxKind { return KindPrintStatement }
func (*PrintStatement) node()            {}
func (*PrintStatement) stmtNode()        {}

// DeclareBody is either *TableVariableDeclaration or VariableDeclarations.
type DeclareBody interface {
	declareBody()
}

// VariableDeclarations is the scalar branch of DECLARE. The parser never
// builds an empty one.
type VariableDeclarations []*VariableDeclaration

func (VariableDeclarations) declareBody() {}

// VariableDeclaration is @name type [= expr].
type VariableDeclaration struct {
	TextRange
	Name  *Identifier
	Type  *DataType
	Value Expression
}

func (*VariableDeclaration) Kind() SyntaxKind { return KindVariableDeclaration }
func (*VariableDeclaration) node()            {}

// TableVariableDeclaration is @name TABLE (coldefs).
type TableVariableDeclaration struct {
	TextRange
	Name    *Identifier
	Columns []*ColumnDefinition
}

func (*TableVariableDeclaration) Kind() SyntaxKind { return KindTableVariableDeclaration }
func (*TableVariableDeclaration) node()            {}
func (*TableVariableDeclaration) declareBody()     {}

// DeclareStatement declares either one table variable or one or more
// scalar variables, never both.
type DeclareStatement struct {
	TextRange
	Body DeclareBody
}

func (*DeclareStatement) Kind() SyntaxKind { return KindDeclareStatement }
func (*DeclareStatement) node()            {}
func (*DeclareStatement) stmtNode()        {}

// Table returns the table branch, or nil.
func (d *DeclareStatement) Table() *TableVariableDeclaration {
	t, _ := d.Body.(*TableVariableDeclaration)
	return t
}

// Variables returns the scalar branch, or nil.
func (d *DeclareStatement) Variables() VariableDeclarations {
	v, _ := d.Body.(VariableDeclarations)
	return v
}

// SetStatement is SET @v op expr where op is = or a compound assignment.
type SetStatement struct {
	TextRange
	Variable   *Identifier
	Operator   Token
	Expression Expression
}

func (*SetStatement) Kind() SyntaxKind { return KindSetStatement }
func (*SetStatement) node()            {}
func (*SetStatement) stmtNode()        {}

// SetOptionStatement is SET option[, option...] value, e.g. SET NOCOUNT ON.
// Options and value are kept as written and not validated.
type SetOptionStatement struct {
	TextRange
	Options []Token
	Value   Token
}

func (*SetOptionStatement) Kind() SyntaxKind { return KindSetOptionStatement }
func (*SetOptionStatement) node()            {}
func (*SetOptionStatement) stmtNode()        {}

// IfStatement is IF predicate stmt [ELSE stmt].
type IfStatement struct {
	TextRange
	Predicate Expression
	Then      Statement
	Else      Statement
}

func (*IfStatement) Kind() SyntaxKind { return KindIfStatement }
func (*IfStatement) node()            {}
func (*IfStatement) stmtNode()        {}

// WhileStatement is WHILE predicate stmt.
type WhileStatement struct {
	TextRange
	Predicate Expression
	Body      Statement
}

func (*WhileStatement) Kind() SyntaxKind { return KindWhileStatement }
func (*WhileStatement) node()            {}
func (*WhileStatement) stmtNode()        {}

// ReturnStatement is RETURN [expr].
type ReturnStatement struct {
	TextRange
	Expression Expression
}

func (*ReturnStatement) Kind() SyntaxKind { return KindReturnStatement }
func (*ReturnStatement) node()            {}
func (*ReturnStatement) stmtNode()        {}

// ExecuteStatement is EXEC [@ret =] proc [args].
type ExecuteStatement struct {
	TextRange
	ReturnVariable *Identifier
	Procedure      *Identifier
	Arguments      []*ExecuteArgument
}

func (*ExecuteStatement) Kind() SyntaxKind { return KindExecuteStatement }
func (*ExecuteStatement) node()            {}
func (*ExecuteStatement) stmtNode()        {}

// ExecuteArgument is [@param =] expr [OUT|OUTPUT].
type ExecuteArgument struct {
	TextRange
	Name   *Identifier
	Value  Expression
	Output bool
}

func (*ExecuteArgument) Kind() SyntaxKind { return KindExecuteArgument }
func (*ExecuteArgument) node()            {}

// === SELECT ===

// SelectQualifier is the optional DISTINCT or ALL.
type SelectQualifier int

// QualifierNone and friends are the SelectQualifier values.
const (
	QualifierNone SelectQualifier = iota
	QualifierDistinct
	QualifierAll
)

func (q SelectQualifier) String() string {
	switch q {
	case QualifierDistinct:
		return "DISTINCT"
	case QualifierAll:
		return "ALL"
	default:
		return ""
	}
}

// SelectStatement is a single query block. Top holds TOP n, TOP (expr) or,
// for postgres, the trailing LIMIT n.
type SelectStatement struct {
	TextRange
	Top       Expression
	Qualifier SelectQualifier
	Columns   []*ColumnExpression
	From      *FromClause
	Where     Expression
	GroupBy   []Expression
	Having    Expression
	OrderBy   []*OrderByItem
}

func (*SelectStatement) Kind() SyntaxKind { return KindSelectStatement }
func (*SelectStatement) node()            {}
func (*SelectStatement) stmtNode()        {}
func (*SelectStatement) insertSource()    {}

// FromClause holds comma-separated sources followed by joins in source order.
type FromClause struct {
	TextRange
	Sources []*TableSource
	Joins   []*Join
}

func (*FromClause) Kind() SyntaxKind { return KindFromClause }
func (*FromClause) node()            {}

// TableSource is a named table, view or table variable with optional alias.
type TableSource struct {
	TextRange
	Name  *Identifier
	Alias *Identifier
}

func (*TableSource) Kind() SyntaxKind { return KindTableSource }
func (*TableSource) node()            {}

// JoinType classifies a join.
type JoinType int

// JoinInner and friends are the JoinType values.
const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
)

func (j JoinType) String() string {
	switch j {
	case JoinLeft:
		return "LEFT"
	case JoinRight:
		return "RIGHT"
	case JoinFull:
		return "FULL"
	case JoinCross:
		return "CROSS"
	default:
		return "INNER"
	}
}

// Join is [type] JOIN source [ON expr].
type Join struct {
	TextRange
	Type   JoinType
	Source *TableSource
	On     Expression
}

func (*Join) Kind() SyntaxKind { return KindJoin }
func (*Join) node()            {}

// OrderByItem is expr [ASC|DESC].
type OrderByItem struct {
	TextRange
	Expression Expression
	Descending bool
}

func (*OrderByItem) Kind() SyntaxKind { return KindOrderByItem }
func (*OrderByItem) node()            {}

// === INSERT ===

// InsertSource is either *ValuesClause or *SelectStatement.
type InsertSource interface {
	Node
	insertSource()
}

// ValuesClause is VALUES (row), (row), ...
type ValuesClause struct {
	TextRange
	Rows [][]Expression
}

func (*ValuesClause) Kind() SyntaxKind { return KindValuesClause }
func (*ValuesClause) node()            {}
func (*ValuesClause) insertSource()    {}

// InsertStatement is INSERT [INTO] target [(cols)] source.
type InsertStatement struct {
	TextRange
	Target  *Identifier
	Columns []*Identifier
	Source  InsertSource
}

func (*InsertStatement) Kind() SyntaxKind { return KindInsertStatement }
func (*InsertStatement) node()            {}
func (*InsertStatement) stmtNode()        {}

// Values returns the VALUES source, or nil.
func (s *InsertStatement) Values() *ValuesClause {
	v, _ := s.Source.(*ValuesClause)
	return v
}

// Select returns the SELECT source, or nil.
func (s *InsertStatement) Select() *SelectStatement {
	v, _ := s.Source.(*SelectStatement)
	return v
}
