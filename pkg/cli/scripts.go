package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"sqlast/internal/source"
	"sqlast/internal/sqlparse"
)

// parsedFile is the outcome of parsing one file. Err holds a parse failure;
// I/O failures abort the whole load instead.
type parsedFile struct {
	Path   string
	Text   string
	Script *sqlparse.Script
	Err    error
}

// parseFiles expands patterns and parses every file with bounded
// parallelism. Results keep the sorted order of the discovered paths.
func (a *app) parseFiles(ctx context.Context, patterns []string) ([]parsedFile, error) {
	paths, err := source.Discover(patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .sql files match %s", strings.Join(patterns, " "))
	}

	results := make([]parsedFile, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := source.ReadFile(path)
			if err != nil {
				return err
			}
			script, perr := sqlparse.Parse(text, a.cfg.ParseOptions(path, a.logger))
			results[i] = parsedFile{Path: path, Text: text, Script: script, Err: perr}
			a.logger.Debug("parsed file", "path", path, "ok", perr == nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reportParseErrors prints every failed file's diagnostic and reports
// whether any file failed.
func reportParseErrors(w io.Writer, files []parsedFile) bool {
	failed := false
	for _, f := range files {
		if f.Err == nil {
			continue
		}
		failed = true
		writeError(w, f.Text, f.Err)
	}
	return failed
}

func writeError(w io.Writer, text string, err error) {
	perr, ok := sqlparse.AsError(err)
	if !ok {
		fmt.Fprintf(w, "%v\n", err)
		return
	}
	snippet := perr.Snippet(sqlparse.NewLineMap(text))
	if isTerminal(w) {
		snippet = colorize(snippet, errors.Is(err, sqlparse.ErrNotImplemented))
	}
	fmt.Fprint(w, snippet)
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
	ansiReset  = "\x1b[0m"
)

// colorize highlights the header line and the caret of a snippet.
func colorize(snippet string, warning bool) string {
	color := ansiRed
	if warning {
		color = ansiYellow
	}
	lines := strings.Split(strings.TrimSuffix(snippet, "\n"), "\n")
	lines[0] = ansiBold + lines[0] + ansiReset
	for i, line := range lines {
		if strings.HasSuffix(line, "^") && strings.HasPrefix(line, "     |") {
			lines[i] = line[:len(line)-1] + color + "^" + ansiReset
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
