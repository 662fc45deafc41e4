package sqlparse

// === Expression Nodes ===

// Literal is a string, number, binary or NULL literal.
type Literal struct {
	TextRange
	Token Token
}

func (*Literal) Kind() SyntaxKind { return KindLiteralExpression }
func (*Literal) node()            {}
func (*Literal) exprNode()        {}

// IsNull reports whether the literal is the NULL keyword.
func (l *Literal) IsNull() bool { return l.Token.Kind == KindNullKeyword }

// Value returns the literal payload as scanned.
func (l *Literal) Value() string {
	if l.IsNull() {
		return "NULL"
	}
	return l.Token.Value
}

// IdentifierExpression references a column or variable by name.
type IdentifierExpression struct {
	TextRange
	Identifier *Identifier
}

func (*IdentifierExpression) Kind() SyntaxKind { return KindIdentifierExpression }
func (*IdentifierExpression) node()            {}
func (*IdentifierExpression) exprNode()        {}

// ParenthesizedExpression keeps explicit grouping.
type ParenthesizedExpression struct {
	TextRange
	Expression Expression
}

func (*ParenthesizedExpression) Kind() SyntaxKind { return KindParenthesizedExpression }
func (*ParenthesizedExpression) node()            {}
func (*ParenthesizedExpression) exprNode()        {}

// UnaryExpression is -x, +x, ~x or NOT x.
type UnaryExpression struct {
	TextRange
	Operator Token
	Operand  Expression
}

func (*UnaryExpression) Kind() SyntaxKind { return KindUnaryExpression }
func (*UnaryExpression) node()            {}
func (*UnaryExpression) exprNode()        {}

// BinaryExpression is left op right. Operator keeps its own span so tools can
// point at the operator alone.
type BinaryExpression struct {
	TextRange
	Left     Expression
	Operator Token
	Right    Expression
}

func (*BinaryExpression) Kind() SyntaxKind { return KindBinaryExpression }
func (*BinaryExpression) node()            {}
func (*BinaryExpression) exprNode()        {}

// NullTestExpression is x IS [NOT] NULL.
type NullTestExpression struct {
	TextRange
	Expression Expression
	Not        bool
}

func (*NullTestExpression) Kind() SyntaxKind { return KindNullTestExpression }
func (*NullTestExpression) node()            {}
func (*NullTestExpression) exprNode()        {}

// InExpression is x [NOT] IN (v1, v2, ...).
type InExpression struct {
	TextRange
	Expression Expression
	Not        bool
	Values     []Expression
}

func (*InExpression) Kind() SyntaxKind { return KindInExpression }
func (*InExpression) node()            {}
func (*InExpression) exprNode()        {}

// CaseExpression covers both forms. Input is nil for a searched CASE.
type CaseExpression struct {
	TextRange
	Input Expression
	Whens []*WhenClause
	Else  Expression
}

func (*CaseExpression) Kind() SyntaxKind { return KindCaseExpression }
func (*CaseExpression) node()            {}
func (*CaseExpression) exprNode()        {}

// WhenClause is one WHEN ... THEN ... pair.
type WhenClause struct {
	TextRange
	When Expression
	Then Expression
}

func (*WhenClause) Kind() SyntaxKind { return KindWhenClause }
func (*WhenClause) node()            {}

// FunctionCall is name(args). count(*) has a single StarExpression argument.
type FunctionCall struct {
	TextRange
	Name      *Identifier
	Arguments []Expression
}

func (*FunctionCall) Kind() SyntaxKind { return KindFunctionCall }
func (*FunctionCall) node()            {}
func (*FunctionCall) exprNode()        {}

// StarExpression is * or qualifier.*.
type StarExpression struct {
	TextRange
	Qualifier *Identifier
}

func (*StarExpression) Kind() SyntaxKind { return KindStarExpression }
func (*StarExpression) node()            {}
func (*StarExpression) exprNode()        {}

// ColumnStyle records how a select column spelled its alias.
type ColumnStyle int

// StyleExprOnly and friends are the ColumnStyle values.
const (
	StyleExprOnly        ColumnStyle = iota // expr
	StyleAliasEqualsExpr                    // alias = expr
	StyleExprAsAlias                        // expr [AS] alias
)

func (s ColumnStyle) String() string {
	switch s {
	case StyleAliasEqualsExpr:
		return "alias-equals-expr"
	case StyleExprAsAlias:
		return "expr-as-alias"
	default:
		return "expr-only"
	}
}

// ColumnExpression is one entry of a select list. Alias is non-nil exactly
// when Style is not StyleExprOnly.
type ColumnExpression struct {
	TextRange
	Expression Expression
	Alias      *Identifier
	Style      ColumnStyle
}

func (*ColumnExpression) Kind() SyntaxKind { return KindColumnExpression }
func (*ColumnExpression) node()            {}
func (*ColumnExpression) exprNode()        {}

// newColumnExpression is the only constructor for ColumnExpression. A nil
// alias always yields StyleExprOnly.
func newColumnExpression(r TextRange, expr Expression, alias *Identifier, style ColumnStyle) *ColumnExpression {
	if alias == nil {
		style = StyleExprOnly
	}
	return &ColumnExpression{TextRange: r, Expression: expr, Alias: alias, Style: style}
}
