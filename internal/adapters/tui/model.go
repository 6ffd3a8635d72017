// Package tui は閲覧コアを Bubble Tea で操作する対話型の表示層です。
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/browse"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
)

const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyUp    = "up"
	keyK     = "k"
	keyDown  = "down"
	keyJ     = "j"
	keyEnter = "enter"
	keyMore  = "m"
	keyRetry = "r"
)

const helpText = "↑/↓ select employee • enter apply • m view more • r retry • q quit"

// operationDoneMsg はコーディネーターへの操作が完了したことを表します。
// 操作の失敗は Snapshot.Err に記録されるため、メッセージには含めません。
type operationDoneMsg struct{}

// Model は社員選択と取引一覧を表示する Bubble Tea モデルです。
// 状態は Coordinator が保持し、モデルは Snapshot を描画するだけです。
type Model struct {
	ctx   context.Context
	coord *browse.Coordinator

	snapshot browse.Snapshot
	items    []employee.Employee
	cursor   int
	spinner  spinner.Model
	pending  int // 実行中の操作の数
	width    int
	quitting bool
}

// New は Model を生成します。
func New(ctx context.Context, coord *browse.Coordinator) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = CurrentStyle

	m := &Model{
		ctx:     ctx,
		coord:   coord,
		spinner: s,
	}
	m.refresh()
	return m
}

// Run は端末上でモデルを実行し、終了まで待ちます。
func Run(ctx context.Context, coord *browse.Coordinator, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(ctx, coord), opts...).Run()
	return err
}

// Init は初回の読み込みを開始します。
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCmd())
}

// Update はメッセージに応じて状態を更新します。
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	case operationDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case keyUp, keyK:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case keyDown, keyJ:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil
	case keyEnter:
		if m.cursor >= len(m.items) {
			return m, nil
		}
		return m, m.selectCmd(m.items[m.cursor])
	case keyMore:
		if !m.snapshot.CanLoadMore {
			return m, nil
		}
		return m, m.loadMoreCmd()
	case keyRetry:
		return m, m.retryCmd()
	}
	return m, nil
}

func (m *Model) startCmd() tea.Cmd {
	return m.run(m.coord.Start)
}

func (m *Model) selectCmd(emp employee.Employee) tea.Cmd {
	return m.run(func(ctx context.Context) error {
		return m.coord.Select(ctx, emp)
	})
}

// retryCmd は現在の表示をもう一度読み込みます。社員一覧が未取得なら Start からやり直します。
func (m *Model) retryCmd() tea.Cmd {
	switch {
	case m.snapshot.View == browse.ViewFilteredTransactions && m.snapshot.SelectedEmployeeID != "":
		return m.selectCmd(employee.Employee{ID: m.snapshot.SelectedEmployeeID})
	case m.snapshot.HasLoadedEmployees:
		return m.run(m.coord.SelectAll)
	default:
		return m.startCmd()
	}
}

func (m *Model) loadMoreCmd() tea.Cmd {
	return m.run(m.coord.LoadNextPage)
}

func (m *Model) run(fn func(context.Context) error) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		_ = fn(ctx)
		return operationDoneMsg{}
	}
}

// refresh は Coordinator から最新の状態を取り込みます。
func (m *Model) refresh() {
	m.snapshot = m.coord.Snapshot()
	m.items = m.coord.SelectorItems()
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

// View は画面を描画します。
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Transactions"))
	b.WriteString("\n\n")
	b.WriteString(m.renderSelector())
	b.WriteString("\n")
	b.WriteString(m.renderTransactions())
	b.WriteString("\n")

	if err := m.snapshot.Err; err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v (press r to retry)", err)))
		b.WriteString("\n")
	}

	b.WriteString(MutedStyle.Render(helpText))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderSelector() string {
	if !m.snapshot.HasLoadedEmployees || m.items == nil {
		if m.snapshot.EmployeesLoading {
			return fmt.Sprintf("%s %s\n", m.spinner.View(), loadingLabel)
		}
		return MutedStyle.Render(loadingLabel) + "\n"
	}

	var b strings.Builder
	for i, emp := range m.items {
		marker := "  "
		if emp.ID == m.snapshot.SelectedEmployeeID {
			marker = CurrentStyle.Render("● ")
		}
		label := EmployeeLabel(emp)
		if i == m.cursor {
			label = SelectedStyle.Render(label)
		}
		b.WriteString(marker + label + "\n")
	}
	return b.String()
}

func (m *Model) renderTransactions() string {
	var b strings.Builder

	if m.snapshot.Transactions != nil {
		b.WriteString(RenderTable(m.snapshot.Transactions, true))
		b.WriteString("\n")
	}

	if m.busy() && m.snapshot.HasLoadedEmployees {
		b.WriteString(fmt.Sprintf("%s Loading transactions...\n", m.spinner.View()))
	}

	if m.snapshot.ViewMoreVisible {
		style := DisabledButtonStyle
		if m.snapshot.CanLoadMore {
			style = ButtonStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, style.Render(viewMoreLabel), MutedStyle.Render(" (m)")))
		b.WriteString("\n")
	}

	return b.String()
}

// busy は操作の実行中、またはいずれかのキャッシュが取得中であるかを返します。
func (m *Model) busy() bool {
	return m.pending > 0 ||
		m.snapshot.LoadingTransactions ||
		m.snapshot.PaginatedLoading ||
		m.snapshot.FilteredLoading
}
