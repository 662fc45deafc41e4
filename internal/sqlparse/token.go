package sqlparse

import (
	"fmt"
	"strings"
)

// Token is one classified slice of the script. Start and End are byte
// offsets into the text; End is exclusive.
type Token struct {
	Kind  SyntaxKind
	Start int
	End   int
	Value string
	Flags TokenFlags
}

// TokenFlags records lexical details that do not change a token's kind.
type TokenFlags uint16

// FlagKeyword and friends are the TokenFlags bits.
const (
	FlagKeyword         TokenFlags = 1 << iota // identifier rewritten to a keyword kind
	FlagUnicode                                // N'...' string
	FlagMoney                                  // $-prefixed number
	FlagShared                                 // @@ or ## prefix
	FlagVariable                               // @ prefix
	FlagTempTable                              // # prefix
	FlagDoubleQuoted                           // "name"
	FlagBracketed                              // [name]
	FlagInnerWhitespace                        // compound operator written as "+ ="
	FlagUnterminated                           // emitted after a reported lexical error
)

// Has reports whether every bit in mask is set.
func (f TokenFlags) Has(mask TokenFlags) bool {
	return f&mask == mask
}

var flagNames = []struct {
	flag TokenFlags
	name string
}{
	{FlagKeyword, "keyword"},
	{FlagUnicode, "unicode"},
	{FlagMoney, "money"},
	{FlagShared, "shared"},
	{FlagVariable, "variable"},
	{FlagTempTable, "temp"},
	{FlagDoubleQuoted, "double-quoted"},
	{FlagBracketed, "bracketed"},
	{FlagInnerWhitespace, "inner-whitespace"},
	{FlagUnterminated, "unterminated"},
}

func (f TokenFlags) String() string {
	if f == 0 {
		return ""
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Len returns the token's length in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// IsKeyword reports whether the token was recognised as a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind.IsKeyword()
}

func (t Token) String() string {
	if t.Value != "" {
		return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Value, t.Start)
	}
	return fmt.Sprintf("%s@%d", t.Kind, t.Start)
}
