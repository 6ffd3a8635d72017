package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/adapters/tui"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/browse"
)

type dumpOptions struct {
	employeeID string
	allPages   bool
}

func newDumpCmd(root *rootOptions) *cobra.Command {
	opts := dumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the visible transaction list without the interactive UI",
		Example: `  browse dump
  browse dump --all-pages
  browse dump --employee 7b0c1f3e-2b7a-4b8e-9d0a-1f2e3d4c5b6a`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			return dump(cmd.Context(), s.coord, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.employeeID, "employee", "", "show every transaction of this employee id")
	cmd.Flags().BoolVar(&opts.allPages, "all-pages", false, "keep loading pages until the feed is exhausted")
	return cmd
}

// dump は対話画面と同じ手順 (読み込み開始、社員選択、さらに表示) をコーディネーターに対して実行し、
// 表示対象の取引を w に書き出します。社員指定時は全取引の先頭ページを取得しません。
func dump(ctx context.Context, coord *browse.Coordinator, w io.Writer, opts dumpOptions) error {
	if id := strings.TrimSpace(opts.employeeID); id != "" {
		if err := coord.LoadEmployees(ctx); err != nil {
			return err
		}
		if err := coord.SelectEmployee(ctx, id); err != nil {
			return err
		}
	} else if err := coord.Start(ctx); err != nil {
		return err
	}

	if opts.allPages {
		for coord.CanLoadMore() {
			if err := coord.LoadNextPage(ctx); err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	snap := coord.Snapshot()
	if snap.Err != nil {
		return snap.Err
	}

	label := "All Employees"
	if snap.SelectedEmployeeID != "" {
		label = snap.SelectedEmployeeID
		for _, emp := range snap.Employees {
			if emp.ID == snap.SelectedEmployeeID {
				label = tui.EmployeeLabel(*emp)
				break
			}
		}
	}

	if _, err := fmt.Fprintf(w, "%s (%d transactions)\n", label, len(snap.Transactions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, tui.RenderTable(snap.Transactions, false)); err != nil {
		return err
	}
	if snap.ViewMoreVisible {
		if _, err := fmt.Fprintln(w, "More transactions are available (use --all-pages)."); err != nil {
			return err
		}
	}
	return nil
}
