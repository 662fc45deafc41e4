package sqlparse

import "strings"

// TextRange is a half-open byte range [Start, End) in the script text.
type TextRange struct {
	Start int
	End   int
}

// Range returns r. Embedding TextRange gives every node its Range method.
func (r TextRange) Range() TextRange { return r }

// Len returns the length of the range in bytes.
func (r TextRange) Len() int { return r.End - r.Start }

// Contains reports whether offset falls inside the range.
func (r TextRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Node is implemented by every AST node.
type Node interface {
	Kind() SyntaxKind
	Range() TextRange
	node()
}

// Expression is a marker interface for expression nodes.
type Expression interface {
	Node
	exprNode()
}

// Statement is a marker interface for statement nodes.
type Statement interface {
	Node
	stmtNode()
}

// IdentifierFlags describe the shape of a dotted name.
type IdentifierFlags uint8

// IdentHasDatabase and friends are the IdentifierFlags bits.
const (
	IdentHasDatabase IdentifierFlags = 1 << iota
	IdentHasSchema
	IdentVariable
	IdentTempTable
	IdentQuoted
	IdentResolved // set by name resolvers, never by the parser
)

// Has reports whether every bit in mask is set.
func (f IdentifierFlags) Has(mask IdentifierFlags) bool {
	return f&mask == mask
}

// Identifier is a one to three part name: name, schema.name or
// db.schema.name. db..name leaves the schema part empty.
type Identifier struct {
	TextRange
	Parts []string
	Flags IdentifierFlags
	// Entity is free for name resolvers to attach what the name refers to.
	Entity any
}

func (*Identifier) Kind() SyntaxKind { return KindIdentifier }
func (*Identifier) node()            {}

// Name returns the last part.
func (id *Identifier) Name() string {
	return id.Parts[len(id.Parts)-1]
}

// Schema returns the schema part, or "" when absent.
func (id *Identifier) Schema() string {
	if len(id.Parts) < 2 {
		return ""
	}
	return id.Parts[len(id.Parts)-2]
}

// Database returns the database part, or "" when absent.
func (id *Identifier) Database() string {
	if len(id.Parts) < 3 {
		return ""
	}
	return id.Parts[0]
}

// IsVariable reports whether the name is an @variable.
func (id *Identifier) IsVariable() bool {
	return id.Flags.Has(IdentVariable)
}

// String joins the parts with dots.
func (id *Identifier) String() string {
	return strings.Join(id.Parts, ".")
}

// Script is the result of a parse.
type Script struct {
	Path       string
	Text       string
	Statements []Statement
	// Keywords holds every keyword token in source order unless
	// Options.SkipKeywordTracking was set.
	Keywords []Token
	// Comments holds every comment token in source order unless
	// Options.SkipTrivia was set.
	Comments []Token

	lines *LineMap
}

// Lines returns the script's line map.
func (s *Script) Lines() *LineMap {
	if s.lines == nil {
		s.lines = NewLineMap(s.Text)
	}
	return s.lines
}

// Position returns the zero-based line and rune column of offset.
func (s *Script) Position(offset int) (line, col int) {
	return s.Lines().Position(offset)
}

// LineText returns the text of a zero-based line.
func (s *Script) LineText(line int) string {
	return s.Lines().LineText(line)
}

// Diagnostic builds a diagnostic at offset.
func (s *Script) Diagnostic(offset int, msg string) Diagnostic {
	line, col := s.Position(offset)
	return Diagnostic{File: s.Path, Line: line, Col: col, Offset: offset, Message: msg}
}

// Slice returns the source text a node covers.
func (s *Script) Slice(n Node) string {
	r := n.Range()
	return s.Text[r.Start:r.End]
}
