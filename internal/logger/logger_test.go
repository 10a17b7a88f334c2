package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// JSON形式でログが出力されserviceラベルが付くことを検証
func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, slog.LevelInfo)

	log.Info("purchase recorded", slog.String("game_id", "game-1"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if record["msg"] != "purchase recorded" {
		t.Errorf("msg = %v, want %q", record["msg"], "purchase recorded")
	}
	if record["service"] != "gamestore" {
		t.Errorf("service = %v, want %q", record["service"], "gamestore")
	}
	if record["game_id"] != "game-1" {
		t.Errorf("game_id = %v, want %q", record["game_id"], "game-1")
	}
}

// レベル未満のログが出力されないことを検証
func TestSetup_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, slog.LevelWarn)

	log.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info log was emitted despite warn level: %s", buf.String())
	}

	log.Warn("should be emitted")
	if buf.Len() == 0 {
		t.Error("warn log was not emitted")
	}
}
