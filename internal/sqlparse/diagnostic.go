package sqlparse

import (
	"fmt"
	"strings"
)

// Diagnostic locates a message in a script. Line and Col are zero-based;
// Col counts runes. Offset is the byte offset the position was derived from.
type Diagnostic struct {
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Col     int    `json:"col" yaml:"col"`
	Offset  int    `json:"offset" yaml:"offset"`
	Message string `json:"message" yaml:"message"`
}

// String renders the diagnostic as file:line:col: message with one-based
// line and column, the form editors and CI annotators understand.
func (d Diagnostic) String() string {
	file := d.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", file, d.Line+1, d.Col+1, d.Message)
}

// Snippet renders the diagnostic with one line of context on either side and
// a caret under the offending column.
//
//	   2 | select a,
//	   3 |        b frm t
//	     |          ^
//	   4 | where a = 1
func (d Diagnostic) Snippet(lines *LineMap) string {
	var b strings.Builder
	b.WriteString(d.String())
	b.WriteByte('\n')
	if lines == nil || d.Line >= lines.LineCount() {
		return b.String()
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, "%4d | %s\n", d.Line, lines.LineText(d.Line-1))
	}
	text := lines.LineText(d.Line)
	fmt.Fprintf(&b, "%4d | %s\n", d.Line+1, text)
	fmt.Fprintf(&b, "     | %s^\n", caretPad(text, d.Col))
	if d.Line+1 < lines.LineCount() {
		fmt.Fprintf(&b, "%4d | %s\n", d.Line+2, lines.LineText(d.Line+1))
	}
	return b.String()
}

// caretPad keeps tabs from the source line so the caret lines up under them.
func caretPad(text string, col int) string {
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	for ; n < col; n++ {
		b.WriteByte(' ')
	}
	return b.String()
}
