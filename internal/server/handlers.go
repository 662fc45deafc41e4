package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sqlast/internal/crud"
	"sqlast/internal/lint"
	"sqlast/internal/middleware"
	"sqlast/internal/source"
	"sqlast/internal/sqlparse"
)

type tokenJSON struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Value string `json:"value,omitempty"`
	Flags string `json:"flags,omitempty"`
}

type parseResponse struct {
	Statements  []string              `json:"statements"`
	Diagnostics []sqlparse.Diagnostic `json:"diagnostics"`
}

type lintResponse struct {
	Violations []lint.Violation `json:"violations"`
	HasErrors  bool             `json:"has_errors"`
}

type crudResponse struct {
	References []crud.Reference `json:"references"`
	Matrix     []crud.Row       `json:"matrix"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	text, opts, ok := s.readScript(w, r)
	if !ok {
		return
	}
	sc := sqlparse.NewScanner(text, sqlparse.ScannerOptions{
		Path:     opts.Path,
		Vendor:   opts.Vendor,
		Features: opts.Features,
	})
	tokens := []tokenJSON{}
	for {
		tok, err := sc.Scan()
		if err != nil {
			writeParseError(w, err)
			return
		}
		if tok.Kind == sqlparse.KindEndOfFile {
			break
		}
		tj := tokenJSON{Kind: tok.Kind.String(), Start: tok.Start, End: tok.End, Value: tok.Value}
		if tok.Flags != 0 {
			tj.Flags = tok.Flags.String()
		}
		tokens = append(tokens, tj)
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokens": tokens})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	script, diags, ok := s.parse(w, r)
	if !ok {
		return
	}
	resp := parseResponse{Statements: make([]string, len(script.Statements)), Diagnostics: diags}
	for i, stmt := range script.Statements {
		resp.Statements[i] = sqlparse.Format(stmt)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	minSev := lint.SeverityInfo
	if v := r.URL.Query().Get("severity"); v != "" {
		sev, err := lint.ParseSeverity(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		minSev = sev
	}
	script, _, ok := s.parse(w, r)
	if !ok {
		return
	}
	vs := lint.Filter(lint.New(script).RunWithConfig(s.lintConfig), minSev)
	if vs == nil {
		vs = []lint.Violation{}
	}
	writeJSON(w, http.StatusOK, lintResponse{Violations: vs, HasErrors: lint.HasErrors(vs)})
}

// handleCRUD extracts references from the body. With ?record=true and a
// path, the references also replace the stored ones for that path.
func (s *Server) handleCRUD(w http.ResponseWriter, r *http.Request) {
	script, _, ok := s.parse(w, r)
	if !ok {
		return
	}
	refs := crud.Extract(script)
	if r.URL.Query().Get("record") == "true" {
		if s.store == nil {
			writeError(w, http.StatusNotImplemented, "no metadata store configured")
			return
		}
		if script.Path == "" {
			writeError(w, http.StatusBadRequest, "record requires a path query parameter")
			return
		}
		if err := s.store.RecordFile(r.Context(), script.Path, len(script.Statements), refs); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("record references", "path", script.Path, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to record references")
			return
		}
	}
	if refs == nil {
		refs = []crud.Reference{}
	}
	writeJSON(w, http.StatusOK, crudResponse{References: refs, Matrix: crud.Matrix(refs)})
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "no metadata store configured")
		return
	}
	rows, err := s.store.Matrix(r.Context())
	if err != nil {
		middleware.LoggerFromContext(r.Context()).Error("load matrix", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load matrix")
		return
	}
	if rows == nil {
		rows = []crud.Row{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"matrix": rows})
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "no metadata store configured")
		return
	}
	name := chi.URLParam(r, "name")
	refs, err := s.store.ListByObject(r.Context(), name)
	if err != nil {
		middleware.LoggerFromContext(r.Context()).Error("list references", "object", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list references")
		return
	}
	if len(refs) == 0 {
		writeError(w, http.StatusNotFound, "no references to "+name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"references": refs})
}

// readScript decodes the body and resolves parse options from the query,
// falling back to the server configuration.
func (s *Server) readScript(w http.ResponseWriter, r *http.Request) (string, sqlparse.Options, bool) {
	q := r.URL.Query()
	opts := s.cfg.ParseOptions(q.Get("path"), middleware.LoggerFromContext(r.Context()))
	if v := q.Get("vendor"); v != "" {
		vendor, err := sqlparse.ParseVendor(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return "", opts, false
		}
		opts.Vendor = vendor
	}
	if v := q.Get("features"); v != "" {
		features, err := sqlparse.ParseFeatures(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return "", opts, false
		}
		opts.Features = features
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return "", opts, false
		}
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return "", opts, false
	}
	text, err := source.Decode(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", opts, false
	}
	return text, opts, true
}

// parse parses the request body. Lexical errors are collected and parsing
// continues unless ?strict=true.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) (*sqlparse.Script, []sqlparse.Diagnostic, bool) {
	text, opts, ok := s.readScript(w, r)
	if !ok {
		return nil, nil, false
	}
	diags := []sqlparse.Diagnostic{}
	if r.URL.Query().Get("strict") != "true" {
		opts.OnError = func(d sqlparse.Diagnostic) { diags = append(diags, d) }
	}
	script, err := sqlparse.Parse(text, opts)
	if err != nil {
		writeParseError(w, err)
		return nil, nil, false
	}
	return script, diags, true
}
