// Package lint checks parsed SQL scripts against project conventions. Rules
// register themselves in a global registry; severities can be overridden per
// rule from a .sqllint.yaml file and single findings can be silenced with a
// "-- sqllint:ignore SQL001" comment on the offending line or the line above.
package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"sqlast/internal/sqlparse"
)

// Severity levels for lint violations.
type Severity string

// Severity constants.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// sevRank maps severity to a numeric rank for comparison.
var sevRank = map[Severity]int{SeverityInfo: 0, SeverityWarning: 1, SeverityError: 2}

// ParseSeverity validates a severity name.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sevRank[sev]; !ok {
		return "", fmt.Errorf("unknown severity %q (want error, warning or info)", s)
	}
	return sev, nil
}

// Violation represents a single lint finding. Line and Col are one-based.
type Violation struct {
	File     string   `json:"file" yaml:"file"`
	Line     int      `json:"line" yaml:"line"`
	Col      int      `json:"col" yaml:"col"`
	RuleID   string   `json:"rule" yaml:"rule"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// String formats a violation in golangci-lint style.
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s: %s", v.File, v.Line, v.Col, v.RuleID, v.Severity, v.Message)
}

// === Rule interface & registry ===

// Rule is the interface that every lint rule must implement.
type Rule interface {
	ID() string
	Name() string
	Description() string
	DefaultSeverity() Severity
	Check(ctx *Context) []Violation
}

// registry holds all registered rules in registration order.
var registry []Rule

// Register adds a rule to the global registry. Called from init() in rules.go.
func Register(r Rule) { registry = append(registry, r) }

// RegisteredRules returns a copy of the registry for introspection (e.g. --list-rules).
func RegisteredRules() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)
	return out
}

// === Context ===

// Context gives rules read access to the parsed script.
type Context struct {
	File   string
	Script *sqlparse.Script
}

// Inspect walks every statement of the script depth-first.
func (ctx *Context) Inspect(fn func(sqlparse.Node) bool) {
	for _, stmt := range ctx.Script.Statements {
		sqlparse.Inspect(stmt, fn)
	}
}

// Violation creates a Violation at a byte offset of the script.
func (ctx *Context) Violation(offset int, ruleID string, sev Severity, msg string) Violation {
	line, col := ctx.Script.Position(offset)
	return Violation{File: ctx.File, Line: line + 1, Col: col + 1, RuleID: ruleID, Severity: sev, Message: msg}
}

// === Linter ===

// Linter runs the registered rules against one parsed script.
type Linter struct {
	file   string
	script *sqlparse.Script
}

// New returns a Linter for script. Suppression comments are only seen when
// the script was parsed with comment tracking, and SQL006 needs keyword
// tracking.
func New(script *sqlparse.Script) *Linter {
	file := script.Path
	if file == "" {
		file = "<input>"
	}
	return &Linter{file: file, script: script}
}

// Run executes all lint rules with default severity and returns violations
// sorted by position.
func (l *Linter) Run() []Violation {
	return l.RunWithConfig(nil)
}

// RunWithConfig executes all lint rules using the given configuration (may be nil for defaults).
// Rules with severity overridden to "off" are skipped. Inline suppression comments are honoured.
func (l *Linter) RunWithConfig(cfg *Config) []Violation {
	ctx := &Context{File: l.file, Script: l.script}
	suppressed := suppressions(l.script)
	var vs []Violation
	for _, rule := range registry {
		sev := effectiveSeverity(cfg, rule)
		if sev == "" { // "off"
			continue
		}
		for _, v := range rule.Check(ctx) {
			v.Severity = sev
			if !isSuppressed(suppressed, v.Line, rule.ID()) {
				vs = append(vs, v)
			}
		}
	}
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Line != vs[j].Line {
			return vs[i].Line < vs[j].Line
		}
		return vs[i].Col < vs[j].Col
	})
	return vs
}

// HasErrors returns true if any violation has error severity.
func HasErrors(vs []Violation) bool {
	for _, v := range vs {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Filter returns violations at or above the given severity.
func Filter(vs []Violation, minSev Severity) []Violation {
	minRank := sevRank[minSev]
	var out []Violation
	for _, v := range vs {
		if sevRank[v.Severity] >= minRank {
			out = append(out, v)
		}
	}
	return out
}

// === Inline suppression ===

// suppressRe matches comments like "sqllint:ignore SQL001 SQL003".
var suppressRe = regexp.MustCompile(`sqllint:ignore\s+(SQL\d+(?:[\s,]+SQL\d+)*)`)

// suppressions maps one-based comment lines to the rule IDs they silence.
func suppressions(script *sqlparse.Script) map[int]map[string]bool {
	out := map[int]map[string]bool{}
	for _, c := range script.Comments {
		for _, m := range suppressRe.FindAllStringSubmatch(c.Value, -1) {
			line, _ := script.Position(c.Start)
			ids := out[line+1]
			if ids == nil {
				ids = map[string]bool{}
				out[line+1] = ids
			}
			for _, id := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
				ids[id] = true
			}
		}
	}
	return out
}

// isSuppressed checks the violation line and the line above.
func isSuppressed(s map[int]map[string]bool, line int, ruleID string) bool {
	return s[line][ruleID] || s[line-1][ruleID]
}
