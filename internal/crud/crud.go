// Package crud derives a CRUD matrix from parsed scripts: which objects each
// script creates, reads, deletes or executes.
package crud

import (
	"sort"
	"strings"

	"sqlast/internal/sqlparse"
)

// Operation is one letter of the CRUD matrix.
type Operation byte

// Operations in matrix column order. Update is reserved: the parser does
// not cover UPDATE yet, so Extract never reports it.
const (
	Create  Operation = 'C'
	Read    Operation = 'R'
	Update  Operation = 'U'
	Delete  Operation = 'D'
	Execute Operation = 'X'
)

var operationOrder = []Operation{Create, Read, Update, Delete, Execute}

func (o Operation) String() string { return string(o) }

// MarshalText renders the operation as its letter in JSON and YAML output.
func (o Operation) MarshalText() ([]byte, error) { return []byte{byte(o)}, nil }

// Reference is one use of a database object. Line and Col are one-based.
type Reference struct {
	File      string    `json:"file,omitempty" yaml:"file,omitempty"`
	Object    string    `json:"object" yaml:"object"`
	Operation Operation `json:"operation" yaml:"operation"`
	Line      int       `json:"line" yaml:"line"`
	Col       int       `json:"col" yaml:"col"`
}

// Extract walks script and returns its object references in source order.
// Variables and temp tables are not database objects and are skipped.
func Extract(script *sqlparse.Script) []Reference {
	x := &extractor{script: script}
	sqlparse.WalkScript(x, script)
	sort.SliceStable(x.refs, func(i, j int) bool {
		if x.refs[i].Line != x.refs[j].Line {
			return x.refs[i].Line < x.refs[j].Line
		}
		return x.refs[i].Col < x.refs[j].Col
	})
	return x.refs
}

type extractor struct {
	sqlparse.BaseVisitor
	script *sqlparse.Script
	refs   []Reference
}

func (x *extractor) add(id *sqlparse.Identifier, op Operation) {
	if id == nil || id.Flags&(sqlparse.IdentVariable|sqlparse.IdentTempTable) != 0 {
		return
	}
	line, col := x.script.Position(id.Start)
	x.refs = append(x.refs, Reference{
		File:      x.script.Path,
		Object:    id.String(),
		Operation: op,
		Line:      line + 1,
		Col:       col + 1,
	})
}

func (x *extractor) VisitTableSource(n *sqlparse.TableSource) bool {
	x.add(n.Name, Read)
	return false
}

func (x *extractor) VisitInsertStatement(n *sqlparse.InsertStatement) bool {
	x.add(n.Target, Create)
	return true
}

func (x *extractor) VisitCreateTableStatement(n *sqlparse.CreateTableStatement) bool {
	x.add(n.Name, Create)
	return true
}

func (x *extractor) VisitCreateViewStatement(n *sqlparse.CreateViewStatement) bool {
	x.add(n.Name, Create)
	return true
}

func (x *extractor) VisitCreateProcedureStatement(n *sqlparse.CreateProcedureStatement) bool {
	x.add(n.Name, Create)
	return true
}

func (x *extractor) VisitDropStatement(n *sqlparse.DropStatement) bool {
	for _, name := range n.Names {
		x.add(name, Delete)
	}
	return false
}

func (x *extractor) VisitExecuteStatement(n *sqlparse.ExecuteStatement) bool {
	x.add(n.Procedure, Execute)
	return true
}

// Row is one object of the matrix with its operations in CRUDX order.
type Row struct {
	Object     string `json:"object" yaml:"object"`
	Operations string `json:"operations" yaml:"operations"`
}

// Matrix folds references into one row per object. Objects compare case
// insensitively, as SQL Server does by default; the first spelling wins.
// Rows are sorted by object name.
func Matrix(refs []Reference) []Row {
	type entry struct {
		name string
		ops  map[Operation]bool
	}
	byKey := map[string]*entry{}
	var keys []string
	for _, r := range refs {
		key := strings.ToLower(r.Object)
		e, ok := byKey[key]
		if !ok {
			e = &entry{name: r.Object, ops: map[Operation]bool{}}
			byKey[key] = e
			keys = append(keys, key)
		}
		e.ops[r.Operation] = true
	}
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		e := byKey[key]
		var ops strings.Builder
		for _, op := range operationOrder {
			if e.ops[op] {
				ops.WriteByte(byte(op))
			}
		}
		rows = append(rows, Row{Object: e.name, Operations: ops.String()})
	}
	return rows
}
