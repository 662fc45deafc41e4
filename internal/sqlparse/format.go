package sqlparse

import (
	"strconv"
	"strings"
)

// Format renders a node as an indented S-expression, one node per line:
//
//	(SelectStatement
//	  (ColumnExpression style=expr-only
//	    (StarExpression))
//	  (FromClause
//	    (TableSource
//	      (Identifier dbo.t))))
func Format(node Node) string {
	f := &formatter{}
	Walk(f, node)
	return f.buf.String()
}

// FormatScript formats every statement of a script, separated by newlines.
func FormatScript(script *Script) string {
	parts := make([]string, len(script.Statements))
	for i, stmt := range script.Statements {
		parts[i] = Format(stmt)
	}
	return strings.Join(parts, "\n")
}

// formatter builds the S-expression through the generic Enter and Leave
// hooks, so it needs no per-node Visit overrides.
type formatter struct {
	BaseVisitor
	buf   strings.Builder
	depth int
}

func (f *formatter) write(s string) {
	f.buf.WriteString(s)
}

func (f *formatter) space() {
	f.buf.WriteByte(' ')
}

func (f *formatter) Enter(n Node) bool {
	if f.depth > 0 {
		f.buf.WriteByte('\n')
		f.write(strings.Repeat("  ", f.depth))
	}
	f.write("(")
	f.write(n.Kind().String())
	for _, attr := range nodeAttributes(n) {
		f.space()
		f.write(attr)
	}
	f.depth++
	return true
}

func (f *formatter) Leave(Node) {
	f.depth--
	f.write(")")
}

// nodeAttributes lists the scalar fields of a node that are not themselves
// children.
func nodeAttributes(n Node) []string {
	switch n := n.(type) {
	case *Identifier:
		return []string{n.String()}
	case *DataType:
		if len(n.Arguments) > 0 {
			return []string{"args=" + strings.Join(n.Arguments, ",")}
		}
	case *Literal:
		if n.IsNull() {
			return []string{"NULL"}
		}
		attrs := []string{n.Token.Kind.String()}
		if n.Token.Kind == KindStringLiteral {
			attrs = append(attrs, strconv.Quote(n.Token.Value))
		} else {
			attrs = append(attrs, n.Token.Value)
		}
		if n.Token.Flags.Has(FlagUnicode) {
			attrs = append(attrs, "unicode")
		}
		if n.Token.Flags.Has(FlagMoney) {
			attrs = append(attrs, "money")
		}
		return attrs
	case *UnaryExpression:
		return []string{"op=" + n.Operator.Kind.String()}
	case *BinaryExpression:
		return []string{"op=" + n.Operator.Kind.String()}
	case *NullTestExpression:
		if n.Not {
			return []string{"not"}
		}
	case *InExpression:
		if n.Not {
			return []string{"not"}
		}
	case *ColumnExpression:
		return []string{"style=" + n.Style.String()}
	case *Join:
		return []string{"type=" + n.Type.String()}
	case *OrderByItem:
		if n.Descending {
			return []string{"desc"}
		}
	case *ValuesClause:
		return []string{"rows=" + strconv.Itoa(len(n.Rows))}
	case *ColumnDefinition:
		var attrs []string
		switch n.Nullability {
		case Nullable:
			attrs = append(attrs, "null")
		case NotNullable:
			attrs = append(attrs, "not-null")
		}
		if n.Identity {
			attrs = append(attrs, "identity")
		}
		if n.PrimaryKey {
			attrs = append(attrs, "primary-key")
		}
		if n.Unique {
			attrs = append(attrs, "unique")
		}
		return attrs
	case *ParameterDeclaration:
		if n.Output {
			return []string{"output"}
		}
	case *ExecuteArgument:
		if n.Output {
			return []string{"output"}
		}
	case *StatementBlock:
		if n.Bracketed {
			return []string{"bracketed"}
		}
	case *SetStatement:
		return []string{"op=" + n.Operator.Kind.String()}
	case *SetOptionStatement:
		attrs := make([]string, 0, len(n.Options)+1)
		for _, opt := range n.Options {
			attrs = append(attrs, tokenWord(opt))
		}
		return append(attrs, "value="+tokenWord(n.Value))
	case *SelectStatement:
		if n.Qualifier != QualifierNone {
			return []string{n.Qualifier.String()}
		}
	case *CreateViewStatement:
		if n.Alter {
			return []string{"alter"}
		}
	case *CreateProcedureStatement:
		if n.Alter {
			return []string{"alter"}
		}
	case *DropStatement:
		attrs := []string{n.ObjectType.String()}
		if n.IfExists {
			attrs = append(attrs, "if-exists")
		}
		return attrs
	}
	return nil
}

// tokenWord prints a verbatim token kept in the tree.
func tokenWord(tok Token) string {
	switch {
	case tok.Kind.IsKeyword():
		return tok.Kind.String()
	case tok.Value != "":
		return tok.Value
	default:
		return tok.Kind.String()
	}
}
