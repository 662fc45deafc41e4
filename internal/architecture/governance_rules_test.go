package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "sqlast"

type layerRule struct {
	sourcePrefix string
	forbidden    []string
	hint         string
}

var architectureRules = []layerRule{
	{
		sourcePrefix: modulePath + "/internal/sqlparse",
		forbidden: []string{
			modulePath + "/internal",
			modulePath + "/pkg",
			modulePath + "/cmd",
		},
		hint: "sqlparse is the core and imports no other package of the module",
	},
	{
		sourcePrefix: modulePath + "/internal/source",
		forbidden: []string{
			modulePath + "/internal/lint",
			modulePath + "/internal/crud",
			modulePath + "/internal/db",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/server",
			modulePath + "/pkg/cli",
		},
		hint: "source only reads and decodes files",
	},
	{
		sourcePrefix: modulePath + "/internal/lint",
		forbidden: []string{
			modulePath + "/internal/crud",
			modulePath + "/internal/db",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/server",
			modulePath + "/pkg/cli",
		},
		hint: "lint should depend on sqlparse only",
	},
	{
		sourcePrefix: modulePath + "/internal/crud",
		forbidden: []string{
			modulePath + "/internal/lint",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/server",
			modulePath + "/pkg/cli",
		},
		hint: "crud should depend on sqlparse and db",
	},
	{
		sourcePrefix: modulePath + "/internal/db",
		forbidden: []string{
			modulePath + "/internal/sqlparse",
			modulePath + "/internal/lint",
			modulePath + "/internal/crud",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/server",
			modulePath + "/pkg/cli",
		},
		hint: "db should depend on db-local packages only",
	},
	{
		sourcePrefix: modulePath + "/internal/config",
		forbidden: []string{
			modulePath + "/internal/lint",
			modulePath + "/internal/crud",
			modulePath + "/internal/db",
			modulePath + "/internal/middleware",
			modulePath + "/internal/server",
			modulePath + "/pkg/cli",
		},
		hint: "config should depend on sqlparse option types only",
	},
	{
		sourcePrefix: modulePath + "/internal/middleware",
		forbidden: []string{
			modulePath + "/internal/sqlparse",
			modulePath + "/internal/lint",
			modulePath + "/internal/crud",
			modulePath + "/internal/db",
			modulePath + "/internal/config",
			modulePath + "/internal/server",
			modulePath + "/pkg/cli",
		},
		hint: "middleware should depend on middleware-local packages",
	},
	{
		sourcePrefix: modulePath + "/internal/server",
		forbidden: []string{
			modulePath + "/internal/db",
			modulePath + "/pkg/cli",
			modulePath + "/cmd",
		},
		hint: "server reaches the store through crud",
	},
}

// collectGoFiles lists the .go files of the module's internal and pkg trees.
func collectGoFiles(t *testing.T) []string {
	t.Helper()

	files := make([]string, 0)
	for _, root := range []string{"internal", "pkg"} {
		err := filepath.WalkDir(filepath.Join(repoRootDir(), root), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".go") {
				files = append(files, filepath.ToSlash(path))
			}
			return nil
		})
		require.NoError(t, err)
	}
	return files
}

func repoRootDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func findRule(sourcePkg string) (layerRule, bool) {
	for _, rule := range architectureRules {
		if hasPathPrefix(sourcePkg, rule.sourcePrefix) {
			return rule, true
		}
	}
	return layerRule{}, false
}

func matchingForbiddenPrefix(importPath string, forbidden []string) string {
	for _, prefix := range forbidden {
		if hasPathPrefix(importPath, prefix) {
			return prefix
		}
	}
	return ""
}

func hasPathPrefix(value string, prefix string) bool {
	return value == prefix || strings.HasPrefix(value, prefix+"/")
}

// packageImportPath maps a file to the import path of its package.
func packageImportPath(file string) string {
	rel := relToRepoRoot(filepath.Dir(file))
	if rel == "." {
		return modulePath
	}
	return modulePath + "/" + rel
}

func isTestFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), "_test.go")
}

func parseImports(t *testing.T, file string) []string {
	t.Helper()

	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
	require.NoErrorf(t, err, "parse imports for %s", file)

	imports := make([]string, 0, len(parsed.Imports))
	for _, imp := range parsed.Imports {
		imports = append(imports, strings.Trim(imp.Path.Value, "\""))
	}
	return imports
}

func relToRepoRoot(path string) string {
	rel, err := filepath.Rel(repoRootDir(), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // repository files only
	require.NoError(t, err)
	return string(data)
}
