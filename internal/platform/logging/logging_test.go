package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/config"
)

func TestNew_JSONWithComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Component(New(config.LoggingConfig{Level: "debug", Format: "json"}, &buf), "server")
	logger.Debug().Str("method", "/browse.v1.TransactionService/ListEmployees").Msg("handled")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "server" || entry["level"] != "debug" || entry["message"] != "handled" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "verbose", Format: "json"}, &buf)
	logger.Debug().Msg("hidden")

	if buf.Len() != 0 {
		t.Fatalf("debug output should be suppressed at info level, got %q", buf.String())
	}

	logger.Info().Msg("shown")
	if buf.Len() == 0 {
		t.Fatal("info output should be written")
	}
}
