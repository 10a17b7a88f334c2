package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// 必須環境変数が未設定の場合にInitがエラーを返すことを検証
func TestInit_MissingRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASE_URL", "")

	var buf bytes.Buffer
	if _, err := Init(&buf); err == nil {
		t.Fatal("expected error when required environment variables are not set")
	}
}

// Initで設定が読み込まれることを検証
func TestInit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/gamestore_test")
	t.Setenv("BASE_URL", "http://localhost:8080")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080 (default)", cfg.ServerPort)
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure should be false for http:// base URL")
	}
}

// InitのセットアップしたログがJSON形式で出力されることを検証
func TestInit_JSONLogOutput(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/gamestore_test")
	t.Setenv("BASE_URL", "http://localhost:8080")

	var buf bytes.Buffer
	if _, err := Init(&buf); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	slog.Info("test message")

	if buf.Len() == 0 {
		t.Fatal("no log output")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Errorf("log output is not valid JSON: %v", err)
	}
}

type stubPinger struct {
	err error
}

func (s stubPinger) PingContext(ctx context.Context) error { return s.err }

// ヘルスチェックハンドラーがDB疎通に応じたステータスを返すことを検証
func TestHealthCheckHandler(t *testing.T) {
	cases := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{"正常", nil, http.StatusOK},
		{"DB接続不可", errors.New("connection refused"), http.StatusServiceUnavailable},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHealthCheckHandler(stubPinger{err: c.pingErr})

			req := httptest.NewRequest("GET", "/healthz", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != c.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, c.wantStatus)
			}
		})
	}
}
