package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
)

const (
	dateLayout      = "2006-01-02"
	approvedLabel   = "approved"
	pendingLabel    = "pending"
	loadingLabel    = "Loading employees..."
	emptyListLabel  = "No transactions."
	viewMoreLabel   = "View More"
	maxMerchantCols = 28
)

// EmployeeLabel は社員選択の表示名を返します。番兵値は "All Employees" になります。
func EmployeeLabel(emp employee.Employee) string {
	return emp.FullName()
}

// TransactionRows は取引を表の行に変換します。
func TransactionRows(items []*transaction.Transaction) [][]string {
	rows := make([][]string, 0, len(items))
	for _, tx := range items {
		if tx == nil {
			continue
		}
		status := pendingLabel
		if tx.Approved {
			status = approvedLabel
		}
		rows = append(rows, []string{
			truncate(tx.Merchant, maxMerchantCols),
			tx.Amount.StringFixed(2),
			tx.OccurredOn.Format(dateLayout),
			tx.Employee.FullName(),
			status,
		})
	}
	return rows
}

// RenderTable は取引一覧を罫線付きの表として描画します。styled が false の場合は色を付けません。
func RenderTable(items []*transaction.Transaction, styled bool) string {
	rows := TransactionRows(items)
	if len(rows) == 0 {
		return emptyListLabel
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MERCHANT", "AMOUNT", "DATE", "EMPLOYEE", "STATUS").
		Rows(rows...)

	t = t.StyleFunc(func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle().Padding(0, 1)
		if col == 1 {
			style = style.Align(lipgloss.Right)
		}
		if !styled {
			return style
		}
		if row == table.HeaderRow {
			return style.Inherit(HeaderStyle)
		}
		if col == 4 && row >= 0 && row < len(rows) {
			if rows[row][4] == approvedLabel {
				return style.Inherit(ApprovedStyle)
			}
			return style.Inherit(PendingStyle)
		}
		return style
	})

	return t.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
