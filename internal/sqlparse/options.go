package sqlparse

import (
	"fmt"
	"log/slog"
	"strings"
)

// Vendor selects dialect-sensitive grammar branches.
type Vendor int

// VendorMSSQL is the default dialect.
const (
	VendorMSSQL Vendor = iota
	VendorPostgres
)

func (v Vendor) String() string {
	if v == VendorPostgres {
		return "postgres"
	}
	return "mssql"
}

// ParseVendor accepts "mssql", "sqlserver", "tsql", "postgres" and "pg".
func ParseVendor(s string) (Vendor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mssql", "sqlserver", "tsql":
		return VendorMSSQL, nil
	case "postgres", "postgresql", "pg":
		return VendorPostgres, nil
	default:
		return VendorMSSQL, fmt.Errorf("unknown vendor %q (want mssql or postgres)", s)
	}
}

// Features is a bitset of optional grammar extensions. Which ones a target
// engine supports is decided by the caller.
type Features uint32

// FeatureCreateTableAsSelect and friends are the optional grammar extensions.
const (
	FeatureCreateTableAsSelect Features = 1 << iota
	FeatureDropIfExists
	FeatureHexLiterals
)

var featureNames = []struct {
	feature Features
	name    string
}{
	{FeatureCreateTableAsSelect, "create-table-as-select"},
	{FeatureDropIfExists, "drop-if-exists"},
	{FeatureHexLiterals, "hex-literals"},
}

// Has reports whether every feature in mask is enabled.
func (f Features) Has(mask Features) bool {
	return f&mask == mask
}

func (f Features) String() string {
	var names []string
	for _, fn := range featureNames {
		if f&fn.feature != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, ",")
}

// FeatureNames lists every recognised feature name.
func FeatureNames() []string {
	names := make([]string, len(featureNames))
	for i, fn := range featureNames {
		names[i] = fn.name
	}
	return names
}

// ParseFeature resolves one feature name. "all" enables every feature.
func ParseFeature(s string) (Features, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		var all Features
		for _, fn := range featureNames {
			all |= fn.feature
		}
		return all, nil
	}
	for _, fn := range featureNames {
		if fn.name == s {
			return fn.feature, nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q (valid: %s, all)", s, strings.Join(FeatureNames(), ", "))
}

// ParseFeatures parses a comma-separated feature list. Empty entries are ignored.
func ParseFeatures(s string) (Features, error) {
	var f Features
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		one, err := ParseFeature(part)
		if err != nil {
			return 0, err
		}
		f |= one
	}
	return f, nil
}

// Options configures a parse.
type Options struct {
	// Path names the script in diagnostics.
	Path string
	// SkipTrivia leaves Script.Comments empty.
	SkipTrivia bool
	// SkipKeywordTracking leaves Script.Keywords empty.
	SkipKeywordTracking bool
	// OnError, when set, receives lexical diagnostics and scanning continues
	// past them. Syntax errors are always returned.
	OnError func(Diagnostic)
	// Debug logs every parsed statement at debug level.
	Debug  bool
	Logger *slog.Logger
	Vendor Vendor
	// Features enables optional grammar.
	Features Features
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// ScannerOptions configures a Scanner.
type ScannerOptions struct {
	Path     string
	Vendor   Vendor
	Features Features
	OnError  func(Diagnostic)
}

func (o Options) scannerOptions() ScannerOptions {
	return ScannerOptions{
		Path:     o.Path,
		Vendor:   o.Vendor,
		Features: o.Features,
		OnError:  o.OnError,
	}
}
