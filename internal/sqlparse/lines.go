package sqlparse

import (
	"sort"
	"sync"
	"unicode/utf8"
)

// LineMap converts byte offsets into zero-based line and column numbers.
// The line-start table is computed on first use; most successful parses
// never ask for a position and never pay for it.
type LineMap struct {
	text   string
	once   sync.Once
	starts []int
}

// NewLineMap returns a LineMap over text.
func NewLineMap(text string) *LineMap {
	return &LineMap{text: text}
}

func (m *LineMap) build() {
	m.once.Do(func() {
		m.starts = append(m.starts, 0)
		for i := 0; i < len(m.text); i++ {
			switch m.text[i] {
			case '\r':
				if i+1 < len(m.text) && m.text[i+1] == '\n' {
					i++
				}
				m.starts = append(m.starts, i+1)
			case '\n':
				m.starts = append(m.starts, i+1)
			case 0xE2:
				// U+2028 and U+2029 encode as E2 80 A8 / E2 80 A9.
				if i+2 < len(m.text) && m.text[i+1] == 0x80 && (m.text[i+2] == 0xA8 || m.text[i+2] == 0xA9) {
					i += 2
					m.starts = append(m.starts, i+1)
				}
			}
		}
	})
}

// LineCount returns the number of lines in the text.
func (m *LineMap) LineCount() int {
	m.build()
	return len(m.starts)
}

// Position returns the zero-based line and column of offset. The column
// counts runes from the line start. Offsets outside the text are clamped.
func (m *LineMap) Position(offset int) (line, col int) {
	m.build()
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.text) {
		offset = len(m.text)
	}
	line = sort.Search(len(m.starts), func(i int) bool { return m.starts[i] > offset }) - 1
	col = utf8.RuneCountInString(m.text[m.starts[line]:offset])
	return line, col
}

// LineStart returns the byte offset at which line begins.
func (m *LineMap) LineStart(line int) int {
	m.build()
	if line < 0 || line >= len(m.starts) {
		return len(m.text)
	}
	return m.starts[line]
}

// LineText returns the text of line without its terminator.
func (m *LineMap) LineText(line int) string {
	m.build()
	if line < 0 || line >= len(m.starts) {
		return ""
	}
	start := m.starts[line]
	end := len(m.text)
	if line+1 < len(m.starts) {
		end = m.starts[line+1]
	}
	s := m.text[start:end]
	for len(s) > 0 {
		switch {
		case s[len(s)-1] == '\n' || s[len(s)-1] == '\r':
			s = s[:len(s)-1]
		case len(s) >= 3 && s[len(s)-3] == 0xE2 && s[len(s)-2] == 0x80 && (s[len(s)-1] == 0xA8 || s[len(s)-1] == 0xA9):
			s = s[:len(s)-3]
		default:
			return s
		}
	}
	return s
}
