package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the CLI in-process with a clean SQLAST_* environment.
func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	for _, key := range []string{
		"SQLAST_LOG_LEVEL", "SQLAST_LOG_FORMAT", "SQLAST_VENDOR", "SQLAST_FEATURES",
		"SQLAST_WORKERS", "SQLAST_DB_PATH", "SQLAST_LISTEN_ADDR",
	} {
		t.Setenv(key, "")
	}
	var out, errOut bytes.Buffer
	args = append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...)
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// writeSQL creates name under dir with the given contents and returns its path.
func writeSQL(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
