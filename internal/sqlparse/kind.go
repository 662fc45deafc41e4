// Package sqlparse tokenizes and parses T-SQL flavoured scripts into an AST
// for static analysis: linting, metadata extraction and pretty-printing.
//
// The scanner produces one token per call and never rewinds. The parser keeps
// a single token of lookahead, uses recursive descent for statements and
// precedence climbing for expressions, and stops at the first error.
package sqlparse

import "fmt"

// SyntaxKind tags every token species and every AST node species. A node's
// Kind is the discriminant downstream tools dispatch on.
type SyntaxKind uint16

// KindUnknown and friends enumerate tokens, keywords and nodes.
const (
	KindUnknown SyntaxKind = iota
	KindEndOfFile

	// Trivia.
	KindWhitespace
	KindSingleLineComment
	KindMultiLineComment

	// Names and literals.
	KindIdentifier
	KindStringLiteral
	KindIntegerLiteral
	KindFloatLiteral
	KindBinaryLiteral

	// Single-character punctuation.
	KindOpenParen   // (
	KindCloseParen  // )
	KindComma       // ,
	KindDot         // .
	KindSemicolon   // ;
	KindColon       // :
	KindAsterisk    // *
	KindPlus        // +
	KindMinus       // -
	KindSlash       // /
	KindPercent     // %
	KindAmpersand   // &
	KindBar         // |
	KindCaret       // ^
	KindTilde       // ~
	KindEquals      // =
	KindLessThan    // <
	KindGreaterThan // >

	// Two-character operators. Whitespace between the characters is legal
	// and flagged with FlagInnerWhitespace.
	KindPlusEquals             // +=
	KindMinusEquals            // -=
	KindAsteriskEquals         // *=
	KindSlashEquals            // /=
	KindPercentEquals          // %=
	KindAmpersandEquals        // &=
	KindBarEquals              // |=
	KindCaretEquals            // ^=
	KindLessThanEquals         // <=
	KindGreaterThanEquals      // >=
	KindLessThanGreaterThan    // <>
	KindExclamationEquals      // !=
	KindExclamationLessThan    // !<
	KindExclamationGreaterThan // !>
	KindColonColon             // ::
	KindDotDot                 // ..

	keywordBegin
	KindAddKeyword
	KindAllKeyword
	KindAlterKeyword
	KindAndKeyword
	KindAsKeyword
	KindAscKeyword
	KindBeginKeyword
	KindBetweenKeyword
	KindBreakKeyword
	KindByKeyword
	KindCascadeKeyword
	KindCaseKeyword
	KindCheckKeyword
	KindCloseKeyword
	KindCollateKeyword
	KindColumnKeyword
	KindCommitKeyword
	KindConstraintKeyword
	KindContinueKeyword
	KindCreateKeyword
	KindCrossKeyword
	KindCursorKeyword
	KindDatabaseKeyword
	KindDeallocateKeyword
	KindDeclareKeyword
	KindDefaultKeyword
	KindDeleteKeyword
	KindDescKeyword
	KindDistinctKeyword
	KindDropKeyword
	KindElseKeyword
	KindEndKeyword
	KindEscapeKeyword
	KindExceptKeyword
	KindExecKeyword
	KindExecuteKeyword
	KindExistsKeyword
	KindFetchKeyword
	KindForKeyword
	KindForeignKeyword
	KindFromKeyword
	KindFullKeyword
	KindFunctionKeyword
	KindGoKeyword
	KindGotoKeyword
	KindGrantKeyword
	KindGroupKeyword
	KindHavingKeyword
	KindIdentityKeyword
	KindIfKeyword
	KindInKeyword
	KindIndexKeyword
	KindInnerKeyword
	KindInsertKeyword
	KindIntersectKeyword
	KindIntoKeyword
	KindIsKeyword
	KindJoinKeyword
	KindKeyKeyword
	KindLeftKeyword
	KindLikeKeyword
	KindLimitKeyword
	KindMergeKeyword
	KindNotKeyword
	KindNullKeyword
	KindOfKeyword
	KindOnKeyword
	KindOpenKeyword
	KindOptionKeyword
	KindOrKeyword
	KindOrderKeyword
	KindOutKeyword
	KindOuterKeyword
	KindOutputKeyword
	KindPercentKeyword
	KindPrimaryKeyword
	KindPrintKeyword
	KindProcKeyword
	KindProcedureKeyword
	KindRaiserrorKeyword
	KindReferencesKeyword
	KindReturnKeyword
	KindRevokeKeyword
	KindRightKeyword
	KindRollbackKeyword
	KindSchemaKeyword
	KindSelectKeyword
	KindSetKeyword
	KindTableKeyword
	KindThenKeyword
	KindTopKeyword
	KindTranKeyword
	KindTransactionKeyword
	KindTriggerKeyword
	KindTruncateKeyword
	KindUnionKeyword
	KindUniqueKeyword
	KindUpdateKeyword
	KindUseKeyword
	KindValuesKeyword
	KindViewKeyword
	KindWhenKeyword
	KindWhereKeyword
	KindWhileKeyword
	KindWithKeyword
	keywordEnd

	nodeBegin
	// Types. Identifier nodes reuse KindIdentifier.
	KindDataType

	// Expressions.
	KindLiteralExpression
	KindIdentifierExpression
	KindParenthesizedExpression
	KindUnaryExpression
	KindBinaryExpression
	KindNullTestExpression
	KindInExpression
	KindCaseExpression
	KindWhenClause
	KindFunctionCall
	KindStarExpression
	KindColumnExpression

	// Clauses and declarations.
	KindFromClause
	KindTableSource
	KindJoin
	KindOrderByItem
	KindValuesClause
	KindColumnDefinition
	KindVariableDeclaration
	KindTableVariableDeclaration
	KindParameterDeclaration
	KindExecuteArgument

	// Statements.
	KindStatementBlock
	KindUseDatabaseStatement
	KindPrintStatement
	KindDeclareStatement
	KindSetStatement
	KindSetOptionStatement
	KindIfStatement
	KindWhileStatement
	KindReturnStatement
	KindSelectStatement
	KindInsertStatement
	KindExecuteStatement
	KindCreateTableStatement
	KindCreateViewStatement
	KindCreateProcedureStatement
	KindDropStatement
	nodeEnd
)

// IsKeyword reports whether k is a reserved-word token kind.
func (k SyntaxKind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}

// IsTrivia reports whether k is whitespace or a comment.
func (k SyntaxKind) IsTrivia() bool {
	return k == KindWhitespace || k == KindSingleLineComment || k == KindMultiLineComment
}

// IsNode reports whether k tags an AST node rather than a token.
func (k SyntaxKind) IsNode() bool {
	return k > nodeBegin && k < nodeEnd
}

// IsCompoundAssignment reports whether k is one of +=, -=, *=, /=, %=, &=, |=, ^=.
func (k SyntaxKind) IsCompoundAssignment() bool {
	return k >= KindPlusEquals && k <= KindCaretEquals
}

// String returns the spelling of punctuation and keywords and the type name
// of everything else.
func (k SyntaxKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k.IsKeyword() {
		if spelling, ok := keywordSpellings()[k]; ok {
			return spelling
		}
	}
	return fmt.Sprintf("SyntaxKind(%d)", k)
}

var kindNames = map[SyntaxKind]string{
	KindUnknown:           "Unknown",
	KindEndOfFile:         "EndOfFile",
	KindWhitespace:        "Whitespace",
	KindSingleLineComment: "SingleLineComment",
	KindMultiLineComment:  "MultiLineComment",
	KindIdentifier:        "Identifier",
	KindStringLiteral:     "StringLiteral",
	KindIntegerLiteral:    "IntegerLiteral",
	KindFloatLiteral:      "FloatLiteral",
	KindBinaryLiteral:     "BinaryLiteral",

	KindOpenParen:   "(",
	KindCloseParen:  ")",
	KindComma:       ",",
	KindDot:         ".",
	KindSemicolon:   ";",
	KindColon:       ":",
	KindAsterisk:    "*",
	KindPlus:        "+",
	KindMinus:       "-",
	KindSlash:       "/",
	KindPercent:     "%",
	KindAmpersand:   "&",
	KindBar:         "|",
	KindCaret:       "^",
	KindTilde:       "~",
	KindEquals:      "=",
	KindLessThan:    "<",
	KindGreaterThan: ">",

	KindPlusEquals:             "+=",
	KindMinusEquals:            "-=",
	KindAsteriskEquals:         "*=",
	KindSlashEquals:            "/=",
	KindPercentEquals:          "%=",
	KindAmpersandEquals:        "&=",
	KindBarEquals:              "|=",
	KindCaretEquals:            "^=",
	KindLessThanEquals:         "<=",
	KindGreaterThanEquals:      ">=",
	KindLessThanGreaterThan:    "<>",
	KindExclamationEquals:      "!=",
	KindExclamationLessThan:    "!<",
	KindExclamationGreaterThan: "!>",
	KindColonColon:             "::",
	KindDotDot:                 "..",

	KindDataType:                 "DataType",
	KindLiteralExpression:        "LiteralExpression",
	KindIdentifierExpression:     "IdentifierExpression",
	KindParenthesizedExpression:  "ParenthesizedExpression",
	KindUnaryExpression:          "UnaryExpression",
	KindBinaryExpression:         "BinaryExpression",
	KindNullTestExpression:       "NullTestExpression",
	KindInExpression:             "InExpression",
	KindCaseExpression:           "CaseExpression",
	KindWhenClause:               "WhenClause",
	KindFunctionCall:             "FunctionCall",
	KindStarExpression:           "StarExpression",
	KindColumnExpression:         "ColumnExpression",
	KindFromClause:               "FromClause",
	KindTableSource:              "TableSource",
	KindJoin:                     "Join",
	KindOrderByItem:              "OrderByItem",
	KindValuesClause:             "ValuesClause",
	KindColumnDefinition:         "ColumnDefinition",
	KindVariableDeclaration:      "VariableDeclaration",
	KindTableVariableDeclaration: "TableVariableDeclaration",
	KindParameterDeclaration:     "ParameterDeclaration",
	KindExecuteArgument:          "ExecuteArgument",
	KindStatementBlock:           "StatementBlock",
	KindUseDatabaseStatement:     "UseDatabaseStatement",
	KindPrintStatement:           "PrintStatement",
	KindDeclareStatement:         "DeclareStatement",
	KindSetStatement:             "SetStatement",
	KindSetOptionStatement:       "SetOptionStatement",
	KindIfStatement:              "IfStatement",
	KindWhileStatement:           "WhileStatement",
	KindReturnStatement:          "ReturnStatement",
	KindSelectStatement:          "SelectStatement",
	KindInsertStatement:          "InsertStatement",
	KindExecuteStatement:         "ExecuteStatement",
	KindCreateTableStatement:     "CreateTableStatement",
	KindCreateViewStatement:      "CreateViewStatement",
	KindCreateProcedureStatement: "CreateProcedureStatement",
	KindDropStatement:            "DropStatement",
}
