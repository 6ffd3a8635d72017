package browse

import (
	"context"
	"sync"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"github.com/shopspring/decimal"
)

// gate holds a fake fetch until release is closed.
type gate struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGate() *gate {
	return &gate{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gate) open() {
	g.once.Do(func() { close(g.release) })
}

type fakeSource struct {
	mu sync.Mutex

	employees     []*employee.Employee
	employeesErr  error
	employeeCalls int

	pages     map[string]*transaction.Page
	pageErr   error
	pageCalls []string

	byEmployee      map[string][]*transaction.Transaction
	byEmployeeErr   error
	byEmployeeCalls []string

	gates        map[string]*gate
	ignoreCancel bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:      make(map[string]*transaction.Page),
		byEmployee: make(map[string][]*transaction.Transaction),
		gates:      make(map[string]*gate),
	}
}

func (s *fakeSource) hold(key string) *gate {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := newGate()
	s.gates[key] = g
	return g
}

func (s *fakeSource) wait(ctx context.Context, key string) error {
	s.mu.Lock()
	g, ok := s.gates[key]
	if ok {
		delete(s.gates, key)
	}
	ignoreCancel := s.ignoreCancel
	s.mu.Unlock()

	if !ok {
		return nil
	}

	close(g.started)
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		if ignoreCancel {
			<-g.release
			return nil
		}
		return ctx.Err()
	}
}

func (s *fakeSource) FetchEmployees(ctx context.Context) ([]*employee.Employee, error) {
	s.mu.Lock()
	s.employeeCalls++
	s.mu.Unlock()

	if err := s.wait(ctx, "employees"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.employeesErr != nil {
		return nil, s.employeesErr
	}
	return s.employees, nil
}

func (s *fakeSource) FetchTransactionPage(ctx context.Context, cursor string) (*transaction.Page, error) {
	s.mu.Lock()
	s.pageCalls = append(s.pageCalls, cursor)
	s.mu.Unlock()

	if err := s.wait(ctx, "page:"+cursor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	page, ok := s.pages[cursor]
	if !ok {
		return &transaction.Page{Transactions: []*transaction.Transaction{}}, nil
	}
	return &transaction.Page{
		Transactions:  append([]*transaction.Transaction(nil), page.Transactions...),
		NextPageToken: page.NextPageToken,
	}, nil
}

func (s *fakeSource) FetchTransactionsByEmployee(ctx context.Context, employeeID string) ([]*transaction.Transaction, error) {
	s.mu.Lock()
	s.byEmployeeCalls = append(s.byEmployeeCalls, employeeID)
	s.mu.Unlock()

	if err := s.wait(ctx, "employee:"+employeeID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byEmployeeErr != nil {
		return nil, s.byEmployeeErr
	}
	return s.byEmployee[employeeID], nil
}

func (s *fakeSource) counts() (employees, pages, byEmployee int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employeeCalls, len(s.pageCalls), len(s.byEmployeeCalls)
}

var (
	ana  = &employee.Employee{ID: "1", FirstName: "Ana", LastName: "Lee"}
	taro = &employee.Employee{ID: "2", FirstName: "Taro", LastName: "Yamada"}
)

func newTx(id string, emp *employee.Employee, amount int64) *transaction.Transaction {
	return &transaction.Transaction{ID: id, Employee: *emp, Amount: decimal.NewFromInt(amount), Merchant: "merchant-" + id}
}

func ids(transactions []*transaction.Transaction) []string {
	if transactions == nil {
		return nil
	}
	out := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, tx.ID)
	}
	return out
}

func equalIDs(got []*transaction.Transaction, want ...string) bool {
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		return false
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			return false
		}
	}
	return true
}
