// Package logging は zerolog ベースのロガーを構築します。
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/config"
)

// New は設定に従ってロガーを生成します。w が nil の場合は標準エラー出力へ書き込みます。
// レベルの解析に失敗した場合は info を使います。
func New(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Component はコンポーネント名を付与した子ロガーを返します。
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
