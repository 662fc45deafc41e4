package sqlparse

import (
	"strings"
	"sync"
)

type keywordEntry struct {
	spelling string // lower case
	kind     SyntaxKind
}

// keywordBucket holds every keyword sharing a first letter. minLen and maxLen
// let a lookup reject most identifiers before comparing any text.
type keywordBucket struct {
	minLen  int
	maxLen  int
	entries []keywordEntry
}

type keywordTable struct {
	buckets [26]keywordBucket
}

var keywordList = []keywordEntry{
	{"add", KindAddKeyword},
	{"all", KindAllKeyword},
	{"alter", KindAlterKeyword},
	{"and", KindAndKeyword},
	{"as", KindAsKeyword},
	{"asc", KindAscKeyword},
	{"begin", KindBeginKeyword},
	{"between", KindBetweenKeyword},
	{"break", KindBreakKeyword},
	{"by", KindByKeyword},
	{"cascade", KindCascadeKeyword},
	{"case", KindCaseKeyword},
	{"check", KindCheckKeyword},
	{"close", KindCloseKeyword},
	{"collate", KindCollateKeyword},
	{"column", KindColumnKeyword},
	{"commit", KindCommitKeyword},
	{"constraint", KindConstraintKeyword},
	{"continue", KindContinueKeyword},
	{"create", KindCreateKeyword},
	{"cross", KindCrossKeyword},
	{"cursor", KindCursorKeyword},
	{"database", KindDatabaseKeyword},
	{"deallocate", KindDeallocateKeyword},
	{"declare", KindDeclareKeyword},
	{"default", KindDefaultKeyword},
	{"delete", KindDeleteKeyword},
	{"desc", KindDescKeyword},
	{"distinct", KindDistinctKeyword},
	{"drop", KindDropKeyword},
	{"else", KindElseKeyword},
	{"end", KindEndKeyword},
	{"escape", KindEscapeKeyword},
	{"except", KindExceptKeyword},
	{"exec", KindExecKeyword},
	{"execute", KindExecuteKeyword},
	{"exists", KindExistsKeyword},
	{"fetch", KindFetchKeyword},
	{"for", KindForKeyword},
	{"foreign", KindForeignKeyword},
	{"from", KindFromKeyword},
	{"full", KindFullKeyword},
	{"function", KindFunctionKeyword},
	{"go", KindGoKeyword},
	{"goto", KindGotoKeyword},
	{"grant", KindGrantKeyword},
	{"group", KindGroupKeyword},
	{"having", KindHavingKeyword},
	{"identity", KindIdentityKeyword},
	{"if", KindIfKeyword},
	{"in", KindInKeyword},
	{"index", KindIndexKeyword},
	{"inner", KindInnerKeyword},
	{"insert", KindInsertKeyword},
	{"intersect", KindIntersectKeyword},
	{"into", KindIntoKeyword},
	{"is", KindIsKeyword},
	{"join", KindJoinKeyword},
	{"key", KindKeyKeyword},
	{"left", KindLeftKeyword},
	{"like", KindLikeKeyword},
	{"limit", KindLimitKeyword},
	{"merge", KindMergeKeyword},
	{"not", KindNotKeyword},
	{"null", KindNullKeyword},
	{"of", KindOfKeyword},
	{"on", KindOnKeyword},
	{"open", KindOpenKeyword},
	{"option", KindOptionKeyword},
	{"or", KindOrKeyword},
	{"order", KindOrderKeyword},
	{"out", KindOutKeyword},
	{"outer", KindOuterKeyword},
	{"output", KindOutputKeyword},
	{"percent", KindPercentKeyword},
	{"primary", KindPrimaryKeyword},
	{"print", KindPrintKeyword},
	{"proc", KindProcKeyword},
	{"procedure", KindProcedureKeyword},
	{"raiserror", KindRaiserrorKeyword},
	{"references", KindReferencesKeyword},
	{"return", KindReturnKeyword},
	{"revoke", KindRevokeKeyword},
	{"right", KindRightKeyword},
	{"rollback", KindRollbackKeyword},
	{"schema", KindSchemaKeyword},
	{"select", KindSelectKeyword},
	{"set", KindSetKeyword},
	{"table", KindTableKeyword},
	{"then", KindThenKeyword},
	{"top", KindTopKeyword},
	{"tran", KindTranKeyword},
	{"transaction", KindTransactionKeyword},
	{"trigger", KindTriggerKeyword},
	{"truncate", KindTruncateKeyword},
	{"union", KindUnionKeyword},
	{"unique", KindUniqueKeyword},
	{"update", KindUpdateKeyword},
	{"use", KindUseKeyword},
	{"values", KindValuesKeyword},
	{"view", KindViewKeyword},
	{"when", KindWhenKeyword},
	{"where", KindWhereKeyword},
	{"while", KindWhileKeyword},
	{"with", KindWithKeyword},
}

// keywords is built on first use and read-only afterwards, so concurrent
// scanners share it without locking.
var keywords = sync.OnceValue(func() *keywordTable {
	t := &keywordTable{}
	for _, e := range keywordList {
		b := &t.buckets[e.spelling[0]-'a']
		n := len(e.spelling)
		if len(b.entries) == 0 || n < b.minLen {
			b.minLen = n
		}
		if n > b.maxLen {
			b.maxLen = n
		}
		b.entries = append(b.entries, e)
	}
	return t
})

var keywordSpellings = sync.OnceValue(func() map[SyntaxKind]string {
	m := make(map[SyntaxKind]string, len(keywordList))
	for _, e := range keywordList {
		m[e.kind] = strings.ToUpper(e.spelling)
	}
	return m
})

// LookupKeyword returns the keyword kind spelled by s, ignoring ASCII case.
func LookupKeyword(s string) (SyntaxKind, bool) {
	if s == "" {
		return KindUnknown, false
	}
	first := toLowerASCII(s[0])
	if first < 'a' || first > 'z' {
		return KindUnknown, false
	}
	b := &keywords().buckets[first-'a']
	if len(s) < b.minLen || len(s) > b.maxLen {
		return KindUnknown, false
	}
	for _, e := range b.entries {
		if len(e.spelling) == len(s) && equalFoldASCII(e.spelling, s) {
			return e.kind, true
		}
	}
	return KindUnknown, false
}

// equalFoldASCII compares a lower-case keyword spelling with arbitrary text of
// the same length.
func equalFoldASCII(lower, s string) bool {
	for i := 0; i < len(s); i++ {
		if lower[i] != toLowerASCII(s[i]) {
			return false
		}
	}
	return true
}
