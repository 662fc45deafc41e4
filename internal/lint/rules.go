package lint

import (
	"fmt"
	"strings"

	"sqlast/internal/sqlparse"
)

func init() {
	Register(operatorSpacing{})
	Register(selectStar{})
	Register(aliasEquals{})
	Register(nullComparison{})
	Register(nonstandardOperator{})
	Register(keywordCase{})
	Register(unqualifiedObject{})
}

// SQL001: two-character operators written with whitespace inside.
type operatorSpacing struct{}

func (operatorSpacing) ID() string                { return "SQL001" }
func (operatorSpacing) Name() string              { return "operator-spacing" }
func (operatorSpacing) DefaultSeverity() Severity { return SeverityWarning }
func (operatorSpacing) Description() string {
	return "Two-character operators such as += and <= must not contain whitespace."
}

func (r operatorSpacing) Check(ctx *Context) []Violation {
	var vs []Violation
	report := func(op sqlparse.Token) {
		if op.Flags.Has(sqlparse.FlagInnerWhitespace) {
			vs = append(vs, ctx.Violation(op.Start, r.ID(), r.DefaultSeverity(),
				fmt.Sprintf("operator %s is written with inner whitespace", op.Kind)))
		}
	}
	ctx.Inspect(func(n sqlparse.Node) bool {
		switch n := n.(type) {
		case *sqlparse.SetStatement:
			report(n.Operator)
		case *sqlparse.BinaryExpression:
			report(n.Operator)
		}
		return true
	})
	return vs
}

// SQL002: SELECT * and t.* in a column list.
type selectStar struct{}

func (selectStar) ID() string                { return "SQL002" }
func (selectStar) Name() string              { return "select-star" }
func (selectStar) DefaultSeverity() Severity { return SeverityWarning }
func (selectStar) Description() string {
	return "Select lists should name their columns instead of using *."
}

func (r selectStar) Check(ctx *Context) []Violation {
	var vs []Violation
	ctx.Inspect(func(n sqlparse.Node) bool {
		col, ok := n.(*sqlparse.ColumnExpression)
		if !ok {
			return true
		}
		if star, ok := col.Expression.(*sqlparse.StarExpression); ok {
			what := "*"
			if star.Qualifier != nil {
				what = star.Qualifier.String() + ".*"
			}
			vs = append(vs, ctx.Violation(star.Start, r.ID(), r.DefaultSeverity(),
				fmt.Sprintf("select list uses %s", what)))
		}
		return true
	})
	return vs
}

// SQL003: alias = expression column style.
type aliasEquals struct{}

func (aliasEquals) ID() string                { return "SQL003" }
func (aliasEquals) Name() string              { return "alias-equals" }
func (aliasEquals) DefaultSeverity() Severity { return SeverityInfo }
func (aliasEquals) Description() string {
	return "Column aliases should use expr AS alias rather than alias = expr."
}

func (r aliasEquals) Check(ctx *Context) []Violation {
	var vs []Violation
	ctx.Inspect(func(n sqlparse.Node) bool {
		if col, ok := n.(*sqlparse.ColumnExpression); ok && col.Style == sqlparse.StyleAliasEqualsExpr {
			vs = append(vs, ctx.Violation(col.Start, r.ID(), r.DefaultSeverity(),
				fmt.Sprintf("column %s uses alias = expression, prefer expression AS %s", col.Alias.Name(), col.Alias.Name())))
		}
		return true
	})
	return vs
}

// SQL004: comparison against NULL with = or <>.
type nullComparison struct{}

func (nullComparison) ID() string                { return "SQL004" }
func (nullComparison) Name() string              { return "null-comparison" }
func (nullComparison) DefaultSeverity() Severity { return SeverityError }
func (nullComparison) Description() string {
	return "Comparisons with NULL are never true; use IS NULL or IS NOT NULL."
}

func (r nullComparison) Check(ctx *Context) []Violation {
	var vs []Violation
	ctx.Inspect(func(n sqlparse.Node) bool {
		b, ok := n.(*sqlparse.BinaryExpression)
		if !ok {
			return true
		}
		switch b.Operator.Kind {
		case sqlparse.KindEquals, sqlparse.KindLessThanGreaterThan, sqlparse.KindExclamationEquals:
		default:
			return true
		}
		if isNull(b.Left) || isNull(b.Right) {
			fix := "IS NULL"
			if b.Operator.Kind != sqlparse.KindEquals {
				fix = "IS NOT NULL"
			}
			vs = append(vs, ctx.Violation(b.Operator.Start, r.ID(), r.DefaultSeverity(),
				fmt.Sprintf("comparison %s NULL is never true, use %s", b.Operator.Kind, fix)))
		}
		return true
	})
	return vs
}

func isNull(e sqlparse.Expression) bool {
	lit, ok := e.(*sqlparse.Literal)
	return ok && lit.IsNull()
}

// SQL005: !=, !< and !> instead of their standard forms.
type nonstandardOperator struct{}

func (nonstandardOperator) ID() string                { return "SQL005" }
func (nonstandardOperator) Name() string              { return "nonstandard-operator" }
func (nonstandardOperator) DefaultSeverity() Severity { return SeverityWarning }
func (nonstandardOperator) Description() string {
	return "Use <>, >= and <= instead of !=, !< and !>."
}

var standardOperator = map[sqlparse.SyntaxKind]string{
	sqlparse.KindExclamationEquals:      "<>",
	sqlparse.KindExclamationLessThan:    ">=",
	sqlparse.KindExclamationGreaterThan: "<=",
}

func (r nonstandardOperator) Check(ctx *Context) []Violation {
	var vs []Violation
	ctx.Inspect(func(n sqlparse.Node) bool {
		b, ok := n.(*sqlparse.BinaryExpression)
		if !ok {
			return true
		}
		if std, ok := standardOperator[b.Operator.Kind]; ok {
			vs = append(vs, ctx.Violation(b.Operator.Start, r.ID(), r.DefaultSeverity(),
				fmt.Sprintf("operator %s is non-standard, use %s", b.Operator.Kind, std)))
		}
		return true
	})
	return vs
}

// SQL006: keywords not written in upper case.
type keywordCase struct{}

func (keywordCase) ID() string                { return "SQL006" }
func (keywordCase) Name() string              { return "keyword-case" }
func (keywordCase) DefaultSeverity() Severity { return SeverityInfo }
func (keywordCase) Description() string {
	return "Keywords should be written in upper case."
}

func (r keywordCase) Check(ctx *Context) []Violation {
	var vs []Violation
	for _, kw := range ctx.Script.Keywords {
		if kw.Value != strings.ToUpper(kw.Value) {
			vs = append(vs, ctx.Violation(kw.Start, r.ID(), r.DefaultSeverity(),
				fmt.Sprintf("keyword %q should be %s", kw.Value, kw.Kind)))
		}
	}
	return vs
}

// SQL007: object references without a schema.
type unqualifiedObject struct{}

func (unqualifiedObject) ID() string                { return "SQL007" }
func (unqualifiedObject) Name() string              { return "unqualified-object" }
func (unqualifiedObject) DefaultSeverity() Severity { return SeverityInfo }
func (unqualifiedObject) Description() string {
	return "Tables and procedures should be referenced with their schema."
}

func (r unqualifiedObject) Check(ctx *Context) []Violation {
	var vs []Violation
	report := func(kind string, id *sqlparse.Identifier) {
		if id == nil || len(id.Parts) > 1 || id.Flags&(sqlparse.IdentVariable|sqlparse.IdentTempTable) != 0 {
			return
		}
		vs = append(vs, ctx.Violation(id.Start, r.ID(), r.DefaultSeverity(),
			fmt.Sprintf("%s %s has no schema", kind, id.Name())))
	}
	ctx.Inspect(func(n sqlparse.Node) bool {
		switch n := n.(type) {
		case *sqlparse.TableSource:
			report("table", n.Name)
		case *sqlparse.InsertStatement:
			report("table", n.Target)
		case *sqlparse.ExecuteStatement:
			report("procedure", n.Procedure)
		}
		return true
	})
	return vs
}
