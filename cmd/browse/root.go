package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"google.golang.org/grpc"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/adapters/grpc/client"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/adapters/tui"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/browse"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/config"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/logging"
)

// rootOptions はサブコマンド間で共有するフラグです。
type rootOptions struct {
	configPath string
	target     string
	logLevel   string
	logFile    string
}

// session は接続済みのコーディネーターと後始末をまとめたものです。
type session struct {
	coord  *browse.Coordinator
	logger zerolog.Logger
	close  func()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "browse",
		Short:        "Browse employee transactions served by the transaction service",
		Long:         "browse shows all transactions page by page, or every transaction of one employee.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interactive := isTerminal(os.Stdout)

			var logOut io.Writer = io.Discard
			if !interactive {
				logOut = cmd.ErrOrStderr()
			}

			s, err := opts.open(logOut)
			if err != nil {
				return err
			}
			defer s.close()

			if !interactive {
				return dump(cmd.Context(), s.coord, cmd.OutOrStdout(), dumpOptions{})
			}
			return tui.Run(cmd.Context(), s.coord)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flags.StringVar(&opts.target, "target", "", "gRPC server address (overrides client.target)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides logging.level)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	cmd.AddCommand(newDumpCmd(opts))
	return cmd
}

// open は設定を読み込み、サーバーへ接続してコーディネーターを組み立てます。
// logFile が指定されていればそちらを優先し、それ以外は fallback にログを出力します。
func (o *rootOptions) open(fallback io.Writer) (*session, error) {
	cfg, err := config.LoadClient(config.EffectivePath(o.configPath))
	if err != nil {
		return nil, err
	}
	if o.target != "" {
		cfg.Client.Target = o.target
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	closers := []func(){}
	out := fallback
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closers = append(closers, func() { _ = f.Close() })
	}
	logger := logging.Component(logging.New(cfg.Logging, out), "browse")

	conn, err := client.Dial(cfg.Client.Target)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	closers = append([]func(){func() { _ = conn.Close() }}, closers...)

	return newSession(conn, cfg.Client, logger, func() {
		for _, c := range closers {
			c()
		}
	}), nil
}

func newSession(conn grpc.ClientConnInterface, cfg config.ClientConfig, logger zerolog.Logger, closeFn func()) *session {
	src := client.NewRemoteSource(conn, client.Options{
		PageSize:       cfg.PageSize,
		RequestTimeout: cfg.RequestTimeout,
	}, logging.Component(logger, "client"))

	logger.Debug().
		Str("target", cfg.Target).
		Int("page_size", cfg.PageSize).
		Dur("request_timeout", cfg.RequestTimeout).
		Msg("session opened")

	return &session{
		coord:  browse.NewCoordinatorFromSource(src, logger),
		logger: logger,
		close:  closeFn,
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
