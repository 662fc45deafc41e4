package sqlparse

import "strings"

// === DDL Nodes ===

// DataType is a type name with optional arguments: int, varchar(10),
// decimal(18, 2), nvarchar(max).
type DataType struct {
	TextRange
	Name      *Identifier
	Arguments []string
}

func (*DataType) Kind() SyntaxKind { return KindDataType }
func (*DataType) node()            {}

func (t *DataType) String() string {
	if len(t.Arguments) == 0 {
		return t.Name.String()
	}
	return t.Name.String() + "(" + strings.Join(t.Arguments, ", ") + ")"
}

// Nullability is the NULL / NOT NULL marker of a column definition.
type Nullability int

// NullUnspecified and friends are the Nullability values.
const (
	NullUnspecified Nullability = iota
	Nullable
	NotNullable
)

// ColumnDefinition is name type [constraints] or the computed form
// name AS expr. Exactly one of Type and Computed is set.
type ColumnDefinition struct {
	TextRange
	Name        *Identifier
	Type        *DataType
	Computed    Expression
	Nullability Nullability
	Identity    bool
	PrimaryKey  bool
	Unique      bool
	Default     Expression
}

func (*ColumnDefinition) Kind() SyntaxKind { return KindColumnDefinition }
func (*ColumnDefinition) node()            {}

// CreateTableStatement is CREATE TABLE name (coldefs) or, with
// FeatureCreateTableAsSelect, CREATE TABLE name AS select.
type CreateTableStatement struct {
	TextRange
	Name     *Identifier
	Columns  []*ColumnDefinition
	AsSelect *SelectStatement
}

func (*CreateTableStatement) Kind() SyntaxKind { return KindCreateTableStatement }
func (*CreateTableStatement) node()            {}
func (*CreateTableStatement) stmtNode()        {}

// CreateViewStatement is CREATE|ALTER VIEW name AS select.
type CreateViewStatement struct {
	TextRange
	Name   *Identifier
	Select *SelectStatement
	Alter  bool
}

func (*CreateViewStatement) Kind() SyntaxKind { return KindCreateViewStatement }
func (*CreateViewStatement) node()            {}
func (*CreateViewStatement) stmtNode()        {}

// ParameterDeclaration is @name type [= default] [OUT|OUTPUT].
type ParameterDeclaration struct {
	TextRange
	Name    *Identifier
	Type    *DataType
	Default Expression
	Output  bool
}

func (*ParameterDeclaration) Kind() SyntaxKind { return KindParameterDeclaration }
func (*ParameterDeclaration) node()            {}

// CreateProcedureStatement is CREATE|ALTER PROC[EDURE] name [params] AS body.
type CreateProcedureStatement struct {
	TextRange
	Name       *Identifier
	Parameters []*ParameterDeclaration
	Body       *StatementBlock
	Alter      bool
}

func (*CreateProcedureStatement) Kind() SyntaxKind { return KindCreateProcedureStatement }
func (*CreateProcedureStatement) node()            {}
func (*CreateProcedureStatement) stmtNode()        {}

// ObjectType names what a DROP removes.
type ObjectType int

// ObjectTable and friends are the ObjectType values.
const (
	ObjectTable ObjectType = iota
	ObjectView
	ObjectProcedure
	ObjectFunction
)

func (o ObjectType) String() string {
	switch o {
	case ObjectView:
		return "VIEW"
	case ObjectProcedure:
		return "PROCEDURE"
	case ObjectFunction:
		return "FUNCTION"
	default:
		return "TABLE"
	}
}

// DropStatement is DROP type [IF EXISTS] name, name...
type DropStatement struct {
	TextRange
	ObjectType ObjectType
	IfExists   bool
	Names      []*Identifier
}

func (*DropStatement) Kind() SyntaxKind { return KindDropStatement }
func (*DropStatement) node()            {}
func (*DropStatement) stmtNode()        {}
