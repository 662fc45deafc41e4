package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlast/internal/config"
	"sqlast/internal/crud"
	"sqlast/internal/sqlparse"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:           "info",
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		MaxBodyBytes:       1 << 20,
		CORSAllowedOrigins: []string{"*"},
	}
}

func newTestHandler(t *testing.T, cfg *config.Config, store *crud.Store) http.Handler {
	t.Helper()
	srv := New(cfg, nil, store, slog.New(slog.DiscardHandler))
	return srv.Handler(t.Context())
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
}

func TestParse(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)
	rec := do(t, h, http.MethodPost, "/v1/parse", "select * from dbo.t\nprint 1")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[parseResponse](t, rec)
	require.Len(t, resp.Statements, 2)
	assert.Contains(t, resp.Statements[0], "(Identifier dbo.t)")
	assert.True(t, strings.HasPrefix(resp.Statements[1], "(PrintStatement"))
	assert.Empty(t, resp.Diagnostics)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{
			name:       "syntax",
			target:     "/v1/parse?path=q.sql",
			body:       "select a,\n  from t",
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "syntax error",
			wantMsg:    "expected expression, found keyword FROM",
		},
		{
			name:       "not_implemented",
			target:     "/v1/parse",
			body:       "update t set a = 1",
			wantStatus: http.StatusNotImplemented,
			wantKind:   "not implemented",
		},
		{
			name:       "lexical_strict",
			target:     "/v1/parse?strict=true",
			body:       "select a ! from t",
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "lexical error",
		},
		{
			name:       "bad_vendor",
			target:     "/v1/parse?vendor=oracle",
			body:       "select 1",
			wantStatus: http.StatusBadRequest,
			wantMsg:    `unknown vendor "oracle" (want mssql or postgres)`,
		},
		{
			name:       "bad_feature",
			target:     "/v1/parse?features=merge",
			body:       "select 1",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "feature_required",
			target:     "/v1/parse",
			body:       "drop table if exists t",
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "syntax error",
		},
	}
	h := newTestHandler(t, testConfig(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			resp := decode[errorResponse](t, rec)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Equal(t, tt.wantKind, resp.Kind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
			if tt.wantKind != "" {
				assert.NotNil(t, resp.Diagnostic)
			}
		})
	}
}

func TestParse_SyntaxDiagnostic(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)
	rec := do(t, h, http.MethodPost, "/v1/parse?path=q.sql", "select a,\n  from t")
	resp := decode[errorResponse](t, rec)
	require.NotNil(t, resp.Diagnostic)
	assert.Equal(t, sqlparse.Diagnostic{File: "q.sql", Line: 1, Col: 2, Offset: 12, Message: resp.Message}, *resp.Diagnostic)
}

func TestParse_QueryOptions(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)

	rec := do(t, h, http.MethodPost, "/v1/parse?features=drop-if-exists", "drop table if exists t")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/parse?vendor=postgres", "select a from t limit 5")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParse_LexicalErrorsAreCollected(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)
	rec := do(t, h, http.MethodPost, "/v1/parse", "select a ! from t")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[parseResponse](t, rec)
	assert.Len(t, resp.Statements, 1)
	require.Len(t, resp.Diagnostics, 1)
	assert.Equal(t, 9, resp.Diagnostics[0].Offset)
}

func TestParse_DecodesUTF16(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)
	// "print 1" as UTF-16LE with BOM.
	body := "\xff\xfep\x00r\x00i\x00n\x00t\x00 \x001\x00"
	rec := do(t, h, http.MethodPost, "/v1/parse", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[parseResponse](t, rec)
	assert.Len(t, resp.Statements, 1)

	rec = do(t, h, http.MethodPost, "/v1/parse", "select '\xff'")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokens(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)
	rec := do(t, h, http.MethodPost, "/v1/tokens", "select N'x'")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[map[string][]tokenJSON](t, rec)
	toks := resp["tokens"]
	require.Len(t, toks, 3)
	assert.Equal(t, "SELECT", toks[0].Kind)
	assert.Equal(t, "StringLiteral", toks[2].Kind)
	assert.Equal(t, "x", toks[2].Value)
	assert.Contains(t, toks[2].Flags, "unicode")
}

func TestLint(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)
	body := "SELECT * FROM dbo.t WHERE a = NULL"

	rec := do(t, h, http.MethodPost, "/v1/lint", body)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[lintResponse](t, rec)
	assert.True(t, resp.HasErrors)
	var ids []string
	for _, v := range resp.Violations {
		ids = append(ids, v.RuleID)
	}
	assert.ElementsMatch(t, []string{"SQL002", "SQL004"}, ids)

	rec = do(t, h, http.MethodPost, "/v1/lint?severity=error", body)
	resp = decode[lintResponse](t, rec)
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "SQL004", resp.Violations[0].RuleID)

	rec = do(t, h, http.MethodPost, "/v1/lint?severity=loud", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/lint", "SELECT a FROM dbo.t")
	resp = decode[lintResponse](t, rec)
	assert.NotNil(t, resp.Violations)
	assert.Empty(t, resp.Violations)
}

func TestCRUD_WithStore(t *testing.T) {
	store, err := crud.Open(context.Background(), filepath.Join(t.TempDir(), "refs.sqlite"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	h := newTestHandler(t, testConfig(), store)

	rec := do(t, h, http.MethodPost, "/v1/crud?record=true&path=load.sql", "insert into dbo.t select a from dbo.s")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[crudResponse](t, rec)
	require.Len(t, resp.References, 2)
	assert.Equal(t, crud.Create, resp.References[0].Operation)
	assert.Len(t, resp.Matrix, 2)

	rec = do(t, h, http.MethodGet, "/v1/objects/DBO.T", "")
	require.Equal(t, http.StatusOK, rec.Code)
	refs := decode[map[string][]crud.Reference](t, rec)["references"]
	require.Len(t, refs, 1)
	assert.Equal(t, "load.sql", refs[0].File)

	rec = do(t, h, http.MethodGet, "/v1/objects/dbo.missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/objects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[map[string][]crud.Row](t, rec)["matrix"]
	assert.Len(t, rows, 2)

	rec = do(t, h, http.MethodPost, "/v1/crud?record=true", "select 1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCRUD_WithoutStore(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)

	rec := do(t, h, http.MethodPost, "/v1/crud", "exec dbo.p")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[crudResponse](t, rec)
	require.Len(t, resp.References, 1)
	assert.Equal(t, crud.Execute, resp.References[0].Operation)

	rec = do(t, h, http.MethodPost, "/v1/crud?record=true&path=a.sql", "exec dbo.p")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	rec = do(t, h, http.MethodGet, "/v1/objects", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	h := newTestHandler(t, cfg, nil)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/parse", "print 1").Code)
	rec := do(t, h, http.MethodPost, "/v1/parse", "print 1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Health checks are not limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
}

func TestMaxBody(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 8
	h := newTestHandler(t, cfg, nil)

	rec := do(t, h, http.MethodPost, "/v1/parse", "select a from t")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodOptions, "/v1/parse", nil)
	req.Header.Set("Origin", "https://editor.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	srv := New(cfg, nil, nil, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
