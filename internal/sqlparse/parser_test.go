package sqlparse

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, sql string, opts ...Options) Statement {
	t.Helper()
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	script, err := Parse(sql, o)
	require.NoError(t, err, "parse %q", sql)
	require.Len(t, script.Statements, 1)
	return script.Statements[0]
}

func parseErr(t *testing.T, sql string, opts ...Options) *Error {
	t.Helper()
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	_, err := Parse(sql, o)
	require.Error(t, err, "parse %q", sql)
	e, ok := AsError(err)
	require.True(t, ok)
	return e
}

// === Expressions ===

func TestParser_Precedence(t *testing.T) {
	stmt := parseOne(t, "set @x = 1 + 2 * 3")
	set, ok := stmt.(*SetStatement)
	require.True(t, ok)
	assert.Equal(t, "@x", set.Variable.Name())
	assert.Equal(t, KindEquals, set.Operator.Kind)

	plus, ok := set.Expression.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, KindPlus, plus.Operator.Kind)
	times, ok := plus.Right.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, KindAsterisk, times.Operator.Kind)

	assert.Equal(t, 9, plus.Start)
	assert.Equal(t, 18, plus.End)
	assert.Equal(t, TextRange{Start: 11, End: 12}, TextRange{Start: plus.Operator.Start, End: plus.Operator.End})
}

func TestParser_LeftAssociative(t *testing.T) {
	expr, err := ParseExpression("1 + 2 - 3", Options{})
	require.NoError(t, err)

	minus, ok := expr.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, KindMinus, minus.Operator.Kind)
	plus, ok := minus.Left.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, KindPlus, plus.Operator.Kind)
	assert.IsType(t, &Literal{}, minus.Right)
}

func TestParser_ExpressionShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"or_binds_loosest", "a = 1 or b = 2 and c = 3",
			"(BinaryExpression op=OR (BinaryExpression op== (IdentifierExpression (Identifier a)) (LiteralExpression IntegerLiteral 1)) (BinaryExpression op=AND (BinaryExpression op== (IdentifierExpression (Identifier b)) (LiteralExpression IntegerLiteral 2)) (BinaryExpression op== (IdentifierExpression (Identifier c)) (LiteralExpression IntegerLiteral 3))))"},
		{"not_prefix", "not a = 1",
			"(UnaryExpression op=NOT (BinaryExpression op== (IdentifierExpression (Identifier a)) (LiteralExpression IntegerLiteral 1)))"},
		{"between", "x between 1 and 5",
			"(BinaryExpression op=BETWEEN (IdentifierExpression (Identifier x)) (BinaryExpression op=AND (LiteralExpression IntegerLiteral 1) (LiteralExpression IntegerLiteral 5)))"},
		{"not_like", "name not like 'a%'",
			"(UnaryExpression op=NOT (BinaryExpression op=LIKE (IdentifierExpression (Identifier name)) (LiteralExpression StringLiteral \"a%\")))"},
		{"is_not_null", "x is not null",
			"(NullTestExpression not (IdentifierExpression (Identifier x)))"},
		{"in_list", "x not in (1, 2)",
			"(InExpression not (IdentifierExpression (Identifier x)) (LiteralExpression IntegerLiteral 1) (LiteralExpression IntegerLiteral 2))"},
		{"unary_minus", "-a * ~b",
			"(BinaryExpression op=* (UnaryExpression op=- (IdentifierExpression (Identifier a))) (UnaryExpression op=~ (IdentifierExpression (Identifier b))))"},
		{"parenthesized", "(a + b) * c",
			"(BinaryExpression op=* (ParenthesizedExpression (BinaryExpression op=+ (IdentifierExpression (Identifier a)) (IdentifierExpression (Identifier b)))) (IdentifierExpression (Identifier c)))"},
		{"function_call", "dbo.fn(a, 1)",
			"(FunctionCall (Identifier dbo.fn) (IdentifierExpression (Identifier a)) (LiteralExpression IntegerLiteral 1))"},
		{"count_star", "count(*)",
			"(FunctionCall (Identifier count) (StarExpression))"},
		{"left_function", "left(name, 3)",
			"(FunctionCall (Identifier left) (IdentifierExpression (Identifier name)) (LiteralExpression IntegerLiteral 3))"},
		{"searched_case", "case when a = 1 then 'x' else 'y' end",
			"(CaseExpression (WhenClause (BinaryExpression op== (IdentifierExpression (Identifier a)) (LiteralExpression IntegerLiteral 1)) (LiteralExpression StringLiteral \"x\")) (LiteralExpression StringLiteral \"y\"))"},
		{"simple_case", "case a when 1 then 2 end",
			"(CaseExpression (IdentifierExpression (Identifier a)) (WhenClause (LiteralExpression IntegerLiteral 1) (LiteralExpression IntegerLiteral 2)))"},
		{"null_literal", "null",
			"(LiteralExpression NULL)"},
		{"three_part_name", "db..t",
			"(IdentifierExpression (Identifier db..t))"},
		{"nonstandard_operator", "a !< b",
			"(BinaryExpression op=!< (IdentifierExpression (Identifier a)) (IdentifierExpression (Identifier b)))"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := ParseExpression(tc.input, Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, flatten(Format(expr)))
		})
	}
}

func TestParser_BetweenInsideAnd(t *testing.T) {
	expr, err := ParseExpression("a between 1 and 5 and b = 2", Options{})
	require.NoError(t, err)

	and, ok := expr.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, KindAndKeyword, and.Operator.Kind)
	between, ok := and.Left.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, KindBetweenKeyword, between.Operator.Kind)
}

func TestParser_IdentifierFlags(t *testing.T) {
	tests := []struct {
		input     string
		wantParts []string
		wantFlags IdentifierFlags
	}{
		{"t", []string{"t"}, 0},
		{"dbo.t", []string{"dbo", "t"}, IdentHasSchema},
		{"db.dbo.t", []string{"db", "dbo", "t"}, IdentHasDatabase | IdentHasSchema},
		{"db..t", []string{"db", "", "t"}, IdentHasDatabase},
		{"[my db].dbo.[t]", []string{"my db", "dbo", "t"}, IdentHasDatabase | IdentHasSchema | IdentQuoted},
		{"@v", []string{"@v"}, IdentVariable},
		{"t.[select]", []string{"t", "select"}, IdentHasSchema | IdentQuoted},
		{"t.order", []string{"t", "order"}, IdentHasSchema},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			expr, err := ParseExpression(tc.input, Options{})
			require.NoError(t, err)
			ref, ok := expr.(*IdentifierExpression)
			require.True(t, ok)
			assert.Equal(t, tc.wantParts, ref.Identifier.Parts)
			assert.Equal(t, tc.wantFlags, ref.Identifier.Flags)
		})
	}
}

func TestParser_TooManyNameParts(t *testing.T) {
	_, err := ParseExpression("a.b.c.d", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than three parts")
}

// === Statements ===

func TestParser_Declare(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		decl, ok := parseOne(t, "declare @x int = 0").(*DeclareStatement)
		require.True(t, ok)
		assert.Nil(t, decl.Table())
		require.Len(t, decl.Variables(), 1)
		v := decl.Variables()[0]
		assert.Equal(t, "@x", v.Name.Name())
		assert.Equal(t, "int", v.Type.String())
		assert.NotNil(t, v.Value)
	})

	t.Run("several", func(t *testing.T) {
		decl, ok := parseOne(t, "declare @a int, @b as varchar(max), @c decimal(18, 2) = 1.5").(*DeclareStatement)
		require.True(t, ok)
		require.Len(t, decl.Variables(), 3)
		assert.Nil(t, decl.Variables()[0].Value)
		assert.Equal(t, []string{"max"}, decl.Variables()[1].Type.Arguments)
		assert.Equal(t, "decimal(18, 2)", decl.Variables()[2].Type.String())
	})

	t.Run("table", func(t *testing.T) {
		decl, ok := parseOne(t, "declare @t table (id int, name varchar(10))").(*DeclareStatement)
		require.True(t, ok)
		assert.Nil(t, decl.Variables())
		table := decl.Table()
		require.NotNil(t, table)
		require.Len(t, table.Columns, 2)
		assert.Equal(t, "id", table.Columns[0].Name.Name())
		assert.Equal(t, []string{"10"}, table.Columns[1].Type.Arguments)
	})

	t.Run("requires_variable", func(t *testing.T) {
		e := parseErr(t, "declare x int")
		assert.Equal(t, ErrorSyntax, e.Kind)
		assert.Contains(t, e.Message, "expected variable")
	})
}

func TestParser_Set(t *testing.T) {
	t.Run("compound_assignment", func(t *testing.T) {
		set, ok := parseOne(t, "set @n + = 1").(*SetStatement)
		require.True(t, ok)
		assert.Equal(t, KindPlusEquals, set.Operator.Kind)
		assert.True(t, set.Operator.Flags.Has(FlagInnerWhitespace))
	})

	t.Run("option", func(t *testing.T) {
		opt, ok := parseOne(t, "SET NOCOUNT ON").(*SetOptionStatement)
		require.True(t, ok)
		require.Len(t, opt.Options, 1)
		assert.Equal(t, "NOCOUNT", opt.Options[0].Value)
		assert.Equal(t, KindOnKeyword, opt.Value.Kind)
	})

	t.Run("option_list", func(t *testing.T) {
		opt, ok := parseOne(t, "set ansi_nulls, quoted_identifier off").(*SetOptionStatement)
		require.True(t, ok)
		assert.Len(t, opt.Options, 2)
		assert.Equal(t, "off", opt.Value.Value)
	})

	t.Run("missing_operator", func(t *testing.T) {
		e := parseErr(t, "set @x 1")
		assert.Contains(t, e.Message, "expected assignment operator")
	})
}

func TestParser_Select(t *testing.T) {
	sel, ok := parseOne(t, "select top 10 distinct a, b as c, d e, f = g + 1, t.*, * "+
		"from dbo.t x inner join u on x.id = u.id left outer join v on 1 = 1 cross join w "+
		"where a > 0 group by a, b having count(*) > 1 order by a desc, b").(*SelectStatement)
	require.True(t, ok)

	assert.NotNil(t, sel.Top)
	assert.Equal(t, QualifierDistinct, sel.Qualifier)
	require.Len(t, sel.Columns, 6)

	styles := make([]ColumnStyle, len(sel.Columns))
	for i, c := range sel.Columns {
		styles[i] = c.Style
		if c.Style != StyleExprOnly {
			assert.NotNil(t, c.Alias, "column %d", i)
		}
	}
	assert.Equal(t, []ColumnStyle{StyleExprOnly, StyleExprAsAlias, StyleExprAsAlias, StyleAliasEqualsExpr, StyleExprOnly, StyleExprOnly}, styles)
	assert.Equal(t, "f", sel.Columns[3].Alias.Name())
	assert.IsType(t, &BinaryExpression{}, sel.Columns[3].Expression)

	star, ok := sel.Columns[4].Expression.(*StarExpression)
	require.True(t, ok)
	assert.Equal(t, "t", star.Qualifier.Name())
	assert.Nil(t, sel.Columns[5].Expression.(*StarExpression).Qualifier)

	require.NotNil(t, sel.From)
	require.Len(t, sel.From.Sources, 1)
	assert.Equal(t, "dbo.t", sel.From.Sources[0].Name.String())
	assert.Equal(t, "x", sel.From.Sources[0].Alias.Name())
	require.Len(t, sel.From.Joins, 3)
	assert.Equal(t, JoinInner, sel.From.Joins[0].Type)
	assert.Equal(t, JoinLeft, sel.From.Joins[1].Type)
	assert.Equal(t, JoinCross, sel.From.Joins[2].Type)
	assert.Nil(t, sel.From.Joins[2].On)

	assert.NotNil(t, sel.Where)
	assert.Len(t, sel.GroupBy, 2)
	assert.NotNil(t, sel.Having)
	require.Len(t, sel.OrderBy, 2)
	assert.True(t, sel.OrderBy[0].Descending)
	assert.False(t, sel.OrderBy[1].Descending)
}

func TestParser_SelectTop(t *testing.T) {
	sel := parseOne(t, "select top (@n) a from t").(*SelectStatement)
	assert.IsType(t, &IdentifierExpression{}, sel.Top)

	e := parseErr(t, "select top 5 a from t", Options{Vendor: VendorPostgres})
	assert.Equal(t, ErrorSyntax, e.Kind)
	assert.Contains(t, e.Message, "TOP is not supported by postgres")

	sel = parseOne(t, "select a from t limit 5", Options{Vendor: VendorPostgres}).(*SelectStatement)
	lit, ok := sel.Top.(*Literal)
	require.True(t, ok)
	assert.Equal(t, "5", lit.Value())

	_, err := Parse("select a from t limit 5", Options{})
	require.Error(t, err)
}

func TestParser_StatementsWithoutTerminators(t *testing.T) {
	script, err := Parse("select a from t select b from u print 'done'", Options{})
	require.NoError(t, err)
	require.Len(t, script.Statements, 3)
	assert.Equal(t, KindSelectStatement, script.Statements[0].Kind())
	assert.Equal(t, KindSelectStatement, script.Statements[1].Kind())
	assert.Equal(t, KindPrintStatement, script.Statements[2].Kind())
}

func TestParser_Insert(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		ins, ok := parseOne(t, "insert into dbo.t (a, b) values (1, 'x'), (2, 'y')").(*InsertStatement)
		require.True(t, ok)
		assert.Equal(t, "dbo.t", ins.Target.String())
		assert.Len(t, ins.Columns, 2)
		require.NotNil(t, ins.Values())
		assert.Nil(t, ins.Select())
		assert.Len(t, ins.Values().Rows, 2)
	})

	t.Run("select", func(t *testing.T) {
		ins, ok := parseOne(t, "insert t select a from u").(*InsertStatement)
		require.True(t, ok)
		assert.Nil(t, ins.Values())
		require.NotNil(t, ins.Select())
		assert.Empty(t, ins.Columns)
	})

	t.Run("needs_source", func(t *testing.T) {
		e := parseErr(t, "insert into t (a)")
		assert.Contains(t, e.Message, "expected VALUES or SELECT")
	})
}

func TestParser_Execute(t *testing.T) {
	exec, ok := parseOne(t, "exec @rc = dbo.usp_load 1, @name = 'x', @out = @o output").(*ExecuteStatement)
	require.True(t, ok)
	assert.Equal(t, "@rc", exec.ReturnVariable.Name())
	assert.Equal(t, "dbo.usp_load", exec.Procedure.String())
	require.Len(t, exec.Arguments, 3)
	assert.Nil(t, exec.Arguments[0].Name)
	assert.Equal(t, "@name", exec.Arguments[1].Name.Name())
	assert.True(t, exec.Arguments[2].Output)

	bare, ok := parseOne(t, "execute sp_who").(*ExecuteStatement)
	require.True(t, ok)
	assert.Nil(t, bare.ReturnVariable)
	assert.Empty(t, bare.Arguments)
}

func TestParser_ControlFlow(t *testing.T) {
	script, err := Parse(`
use sales;
if @x > 1
begin
	print 'big';
	return 1
end
else
	print 'small'
while @i < 10 set @i += 1
`, Options{})
	require.NoError(t, err)
	require.Len(t, script.Statements, 3)

	use, ok := script.Statements[0].(*UseDatabaseStatement)
	require.True(t, ok)
	assert.Equal(t, "sales", use.Database.Name())

	ifStmt, ok := script.Statements[1].(*IfStatement)
	require.True(t, ok)
	block, ok := ifStmt.Then.(*StatementBlock)
	require.True(t, ok)
	assert.True(t, block.Bracketed)
	require.Len(t, block.Statements, 2)
	ret, ok := block.Statements[1].(*ReturnStatement)
	require.True(t, ok)
	assert.NotNil(t, ret.Expression)
	assert.IsType(t, &PrintStatement{}, ifStmt.Else)

	loop, ok := script.Statements[2].(*WhileStatement)
	require.True(t, ok)
	assert.IsType(t, &SetStatement{}, loop.Body)
}

func TestParser_GoSeparatesBatches(t *testing.T) {
	script, err := Parse("select 1\nGO\nselect 2\ngo", Options{})
	require.NoError(t, err)
	assert.Len(t, script.Statements, 2)
}

func TestParser_CreateTable(t *testing.T) {
	ct, ok := parseOne(t, `create table dbo.orders (
		id int identity(1, 1) primary key,
		customer varchar(50) not null,
		note nvarchar(max) null,
		status int default 0,
		total as price * qty
	)`).(*CreateTableStatement)
	require.True(t, ok)
	assert.Equal(t, "dbo.orders", ct.Name.String())
	require.Len(t, ct.Columns, 5)
	assert.True(t, ct.Columns[0].Identity)
	assert.True(t, ct.Columns[0].PrimaryKey)
	assert.Equal(t, NotNullable, ct.Columns[1].Nullability)
	assert.Equal(t, Nullable, ct.Columns[2].Nullability)
	assert.NotNil(t, ct.Columns[3].Default)
	assert.Nil(t, ct.Columns[4].Type)
	assert.NotNil(t, ct.Columns[4].Computed)

	e := parseErr(t, "create table t (a int,)")
	assert.Contains(t, e.Message, "expected column name")
}

func TestParser_CreateTableAsSelect(t *testing.T) {
	e := parseErr(t, "create table t2 as select a from t")
	assert.Contains(t, e.Message, "create-table-as-select")

	ct, ok := parseOne(t, "create table t2 as select a from t", Options{Features: FeatureCreateTableAsSelect}).(*CreateTableStatement)
	require.True(t, ok)
	require.NotNil(t, ct.AsSelect)
	assert.Empty(t, ct.Columns)
}

func TestParser_CreateView(t *testing.T) {
	view, ok := parseOne(t, "alter view dbo.v as select a from t").(*CreateViewStatement)
	require.True(t, ok)
	assert.True(t, view.Alter)
	assert.Equal(t, "dbo.v", view.Name.String())
	require.NotNil(t, view.Select)
}

func TestParser_CreateProcedure(t *testing.T) {
	t.Run("bracketed", func(t *testing.T) {
		proc, ok := parseOne(t, `create procedure dbo.usp_get (@id int, @name varchar(20) = null output)
as
begin
	select a from t where id = @id
end`).(*CreateProcedureStatement)
		require.True(t, ok)
		require.Len(t, proc.Parameters, 2)
		assert.NotNil(t, proc.Parameters[1].Default)
		assert.True(t, proc.Parameters[1].Output)
		require.NotNil(t, proc.Body)
		assert.True(t, proc.Body.Bracketed)
		assert.Len(t, proc.Body.Statements, 1)
	})

	t.Run("unbracketed_until_go", func(t *testing.T) {
		script, err := Parse("create proc p @a int as select @a print 'x'\nGO\nselect 1", Options{})
		require.NoError(t, err)
		require.Len(t, script.Statements, 2)
		proc, ok := script.Statements[0].(*CreateProcedureStatement)
		require.True(t, ok)
		assert.False(t, proc.Alter)
		require.Len(t, proc.Parameters, 1)
		assert.False(t, proc.Body.Bracketed)
		assert.Len(t, proc.Body.Statements, 2)
	})
}

func TestParser_Drop(t *testing.T) {
	drop, ok := parseOne(t, "drop table a, dbo.b").(*DropStatement)
	require.True(t, ok)
	assert.Equal(t, ObjectTable, drop.ObjectType)
	assert.Len(t, drop.Names, 2)

	e := parseErr(t, "drop view if exists v")
	assert.Contains(t, e.Message, "drop-if-exists")

	drop, ok = parseOne(t, "drop proc if exists p", Options{Features: FeatureDropIfExists}).(*DropStatement)
	require.True(t, ok)
	assert.Equal(t, ObjectProcedure, drop.ObjectType)
	assert.True(t, drop.IfExists)
}

// === Errors ===

func TestParser_NotImplemented(t *testing.T) {
	for _, sql := range []string{
		"update t set a = 1",
		"delete from t",
		"select a into #t from u",
		"alter table t add c int",
	} {
		t.Run(sql, func(t *testing.T) {
			_, err := Parse(sql, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotImplemented))
			e, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, ErrorNotImplemented, e.Kind)
		})
	}
}

func TestParser_SyntaxErrorPosition(t *testing.T) {
	_, err := Parse("select a,\n  from t", Options{Path: "q.sql"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotImplemented))

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, ErrorSyntax, e.Kind)
	assert.Equal(t, 1, e.Line)
	assert.Equal(t, 2, e.Col)
	assert.Equal(t, 12, e.Offset)
	assert.Equal(t, "q.sql:2:3: expected expression, found keyword FROM", e.Error())
}

func TestParser_UnknownStatement(t *testing.T) {
	e := parseErr(t, "frobnicate t")
	assert.Equal(t, `unexpected identifier "frobnicate" at start of statement`, e.Message)
}

func TestParser_LexicalErrorIsFatalWithoutCallback(t *testing.T) {
	e := parseErr(t, "select 'unterminated")
	assert.Equal(t, ErrorLexical, e.Kind)
}

func TestParser_OnErrorSkipsBadTokens(t *testing.T) {
	var diags []Diagnostic
	script, err := Parse("select a ! from t", Options{OnError: func(d Diagnostic) { diags = append(diags, d) }})
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Len(t, script.Statements, 1)
}

// === Script bookkeeping ===

func TestParser_TracksKeywordsAndComments(t *testing.T) {
	sql := "-- header\nSelect a /* c */ FROM t"

	script, err := Parse(sql, Options{})
	require.NoError(t, err)
	assert.Equal(t, []SyntaxKind{KindSelectKeyword, KindFromKeyword}, kinds(script.Keywords))
	require.Len(t, script.Comments, 2)
	assert.Equal(t, " header", script.Comments[0].Value)

	script, err = Parse(sql, Options{SkipTrivia: true, SkipKeywordTracking: true})
	require.NoError(t, err)
	assert.Empty(t, script.Keywords)
	assert.Empty(t, script.Comments)
}

func TestParser_RangesAreOrdered(t *testing.T) {
	script, err := Parse("declare @t table (a int) insert @t values (1) select a = 1 + 2 from @t", Options{})
	require.NoError(t, err)
	for _, stmt := range script.Statements {
		Inspect(stmt, func(n Node) bool {
			r := n.Range()
			assert.GreaterOrEqual(t, r.End, r.Start, "%s", n.Kind())
			return true
		})
	}
	assert.Equal(t, "insert @t values (1)", script.Slice(script.Statements[1]))
}

func TestParser_DebugLogging(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	script, err := Parse("select 1", Options{Debug: true, Logger: logger})
	require.NoError(t, err)
	assert.Len(t, script.Statements, 1)
}
