package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"github.com/rs/zerolog"
)

func waitStarted(t *testing.T, g *gate) {
	t.Helper()
	select {
	case <-g.started:
	case <-time.After(5 * time.Second):
		t.Fatal("fetch was not issued")
	}
}

func TestEmployeeCache_FetchOnce(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.employees = []*employee.Employee{ana, taro}
	cache := NewEmployeeCache(src, zerolog.Nop())

	if cache.State().Loaded() {
		t.Fatal("cache should start empty")
	}

	for i := 0; i < 3; i++ {
		employees, err := cache.FetchAll(context.Background())
		if err != nil {
			t.Fatalf("FetchAll returned error: %v", err)
		}
		if len(employees) != 2 {
			t.Fatalf("expected 2 employees, got %d", len(employees))
		}
	}

	if calls, _, _ := src.counts(); calls != 1 {
		t.Fatalf("expected one underlying fetch, got %d", calls)
	}
	if state := cache.State(); !state.Loaded() || state.Loading {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestEmployeeCache_ConcurrentCallersShareOneRequest(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.employees = []*employee.Employee{ana}
	g := src.hold("employees")
	cache := NewEmployeeCache(src, zerolog.Nop())

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := cache.FetchAll(context.Background())
		errs <- err
	}()
	waitStarted(t, g)

	if !cache.State().Loading {
		t.Fatal("expected loading while fetch is in flight")
	}

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.FetchAll(context.Background())
			errs <- err
		}()
	}

	g.open()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("FetchAll returned error: %v", err)
		}
	}

	if calls, _, _ := src.counts(); calls != 1 {
		t.Fatalf("expected one underlying fetch, got %d", calls)
	}
}

func TestEmployeeCache_FailureIsRecoverable(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.employeesErr = errors.New("network down")
	cache := NewEmployeeCache(src, zerolog.Nop())

	_, err := cache.FetchAll(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Source != SourceEmployees {
		t.Fatalf("expected FetchError for employees, got %v", err)
	}
	if state := cache.State(); state.Loaded() || state.Loading {
		t.Fatalf("expected empty, idle cache after failure, got %+v", state)
	}

	src.mu.Lock()
	src.employeesErr = nil
	src.employees = []*employee.Employee{ana}
	src.mu.Unlock()

	if _, err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if !cache.State().Loaded() {
		t.Fatal("expected cache to be loaded after retry")
	}
}

func TestEmployeeCache_DropsSentinelAndKeepsEmptyListLoaded(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	sentinel := employee.EmptyEmployee
	src.employees = []*employee.Employee{&sentinel}
	cache := NewEmployeeCache(src, zerolog.Nop())

	employees, err := cache.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if len(employees) != 0 {
		t.Fatalf("expected sentinel to be dropped, got %d employees", len(employees))
	}
	if !cache.State().Loaded() {
		t.Fatal("an empty employee list still counts as loaded")
	}
}

func TestPaginatedCache_FetchAllAppendsPages(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.pages[""] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx1", ana, 1), newTx("tx2", taro, 2)}, NextPageToken: "p2"}
	src.pages["p2"] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx3", ana, 3)}}
	cache := NewPaginatedCache(src, zerolog.Nop())

	if err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("first FetchAll returned error: %v", err)
	}
	if state := cache.State(); !equalIDs(state.Data.Transactions, "tx1", "tx2") || !state.HasNext() {
		t.Fatalf("unexpected first page state: %v next=%v", ids(state.Data.Transactions), state.HasNext())
	}

	if err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("second FetchAll returned error: %v", err)
	}
	state := cache.State()
	if !equalIDs(state.Data.Transactions, "tx1", "tx2", "tx3") {
		t.Fatalf("unexpected appended state: %v", ids(state.Data.Transactions))
	}
	if state.HasNext() {
		t.Fatal("expected terminal page")
	}

	if err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("terminal FetchAll returned error: %v", err)
	}
	if _, pages, _ := src.counts(); pages != 2 {
		t.Fatalf("expected no fetch after terminal page, got %d fetches", pages)
	}
	if src.pageCalls[0] != "" || src.pageCalls[1] != "p2" {
		t.Fatalf("unexpected cursors: %v", src.pageCalls)
	}
}

func TestPaginatedCache_SkipsDuplicateRecords(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.pages[""] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx1", ana, 1), newTx("tx2", taro, 2)}, NextPageToken: "p2"}
	src.pages["p2"] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx2", taro, 2), newTx("tx3", ana, 3)}}
	cache := NewPaginatedCache(src, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := cache.FetchAll(context.Background()); err != nil {
			t.Fatalf("FetchAll returned error: %v", err)
		}
	}

	if state := cache.State(); !equalIDs(state.Data.Transactions, "tx1", "tx2", "tx3") {
		t.Fatalf("expected duplicates to be skipped, got %v", ids(state.Data.Transactions))
	}
}

func TestPaginatedCache_RejectsConcurrentFetch(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.pages[""] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx1", ana, 1)}, NextPageToken: "p2"}
	g := src.hold("page:")
	cache := NewPaginatedCache(src, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- cache.FetchAll(context.Background()) }()
	waitStarted(t, g)

	if !cache.State().Loading {
		t.Fatal("expected loading during fetch")
	}
	if err := cache.FetchAll(context.Background()); !errors.Is(err, ErrFetchInProgress) {
		t.Fatalf("expected ErrFetchInProgress, got %v", err)
	}

	g.open()
	if err := <-done; err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if _, pages, _ := src.counts(); pages != 1 {
		t.Fatalf("expected a single request, got %d", pages)
	}
}

func TestPaginatedCache_FailureKeepsPriorData(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.pages[""] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx1", ana, 1)}, NextPageToken: "p2"}
	cache := NewPaginatedCache(src, zerolog.Nop())

	if err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}

	src.mu.Lock()
	src.pageErr = errors.New("timeout")
	src.mu.Unlock()

	if err := cache.FetchAll(context.Background()); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}

	state := cache.State()
	if state.Loading {
		t.Fatal("loading must be cleared after failure")
	}
	if !equalIDs(state.Data.Transactions, "tx1") || state.Data.NextPageToken != "p2" {
		t.Fatalf("prior data must be untouched, got %v next=%q", ids(state.Data.Transactions), state.Data.NextPageToken)
	}
}

func TestPaginatedCache_FirstFetchFailureLeavesNil(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.pageErr = errors.New("timeout")
	cache := NewPaginatedCache(src, zerolog.Nop())

	if err := cache.FetchAll(context.Background()); !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if state := cache.State(); state.Data != nil || state.Loading {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestPaginatedCache_InvalidateDiscardsInFlightResponse(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.ignoreCancel = true
	src.pages[""] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx1", ana, 1)}, NextPageToken: "p2"}
	g := src.hold("page:")
	cache := NewPaginatedCache(src, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- cache.FetchAll(context.Background()) }()
	waitStarted(t, g)

	cache.Invalidate()
	if state := cache.State(); state.Data != nil || state.Loading {
		t.Fatalf("expected reset state after invalidate, got %+v", state)
	}

	g.open()
	if err := <-done; !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	if state := cache.State(); state.Data != nil {
		t.Fatalf("stale response must not repopulate the cache, got %v", ids(state.Data.Transactions))
	}
}

func TestPaginatedCache_InvalidateCancelsRequestContext(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	g := src.hold("page:")
	cache := NewPaginatedCache(src, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- cache.FetchAll(context.Background()) }()
	waitStarted(t, g)

	cache.Invalidate()

	select {
	case err := <-done:
		if !errors.Is(err, ErrStale) {
			t.Fatalf("expected ErrStale, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight request was not cancelled")
	}
}

func TestPaginatedCache_RefetchAfterInvalidateWhileOldRequestIgnoresCancel(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.ignoreCancel = true
	src.pages[""] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx1", ana, 1)}, NextPageToken: "p2"}
	g := src.hold("page:")
	cache := NewPaginatedCache(src, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- cache.FetchAll(context.Background()) }()
	waitStarted(t, g)

	cache.Invalidate()
	if err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll after invalidate returned error: %v", err)
	}

	g.open()
	if err := <-done; !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}
	state := cache.State()
	if !equalIDs(state.Data.Transactions, "tx1") || state.Loading {
		t.Fatalf("unexpected state: %v loading=%v", ids(state.Data.Transactions), state.Loading)
	}
	if _, pages, _ := src.counts(); pages != 2 {
		t.Fatalf("expected 2 page requests, got %d", pages)
	}
}

func TestPaginatedCache_InvalidateIfHonoursGuard(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.pages[""] = &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx1", ana, 1)}}
	cache := NewPaginatedCache(src, zerolog.Nop())
	if err := cache.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}

	if cache.invalidateIf(func() bool { return false }) {
		t.Fatal("invalidateIf must report false when the guard rejects")
	}
	if state := cache.State(); !equalIDs(state.Data.Transactions, "tx1") {
		t.Fatalf("data must survive a rejected invalidation, got %+v", state)
	}
	if !cache.invalidateIf(func() bool { return true }) {
		t.Fatal("invalidateIf must report true when the guard accepts")
	}
	if state := cache.State(); state.Data != nil {
		t.Fatalf("expected nil data, got %v", ids(state.Data.Transactions))
	}
}

func TestFilteredCache_LastRequestWins(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.ignoreCancel = true
	src.byEmployee["A"] = []*transaction.Transaction{newTx("txA", ana, 1)}
	src.byEmployee["B"] = []*transaction.Transaction{newTx("txB", taro, 2)}
	gA := src.hold("employee:A")
	cache := NewFilteredCache(src, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- cache.FetchByID(context.Background(), "A") }()
	waitStarted(t, gA)

	if err := cache.FetchByID(context.Background(), "B"); err != nil {
		t.Fatalf("FetchByID(B) returned error: %v", err)
	}

	gA.open()
	if err := <-done; !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale for A, got %v", err)
	}

	state := cache.State()
	if state.EmployeeID != "B" || !equalIDs(state.Data, "txB") {
		t.Fatalf("expected B's data, got %s %v", state.EmployeeID, ids(state.Data))
	}
	if state.Loading {
		t.Fatal("loading must be cleared")
	}
}

func TestFilteredCache_FailureKeepsData(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.byEmployee["A"] = []*transaction.Transaction{newTx("txA", ana, 1)}
	cache := NewFilteredCache(src, zerolog.Nop())

	if err := cache.FetchByID(context.Background(), "A"); err != nil {
		t.Fatalf("FetchByID returned error: %v", err)
	}

	src.mu.Lock()
	src.byEmployeeErr = errors.New("boom")
	src.mu.Unlock()

	err := cache.FetchByID(context.Background(), "B")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Source != SourceEmployeeTransactions {
		t.Fatalf("expected FetchError, got %v", err)
	}

	state := cache.State()
	if state.Loading || state.EmployeeID != "A" || !equalIDs(state.Data, "txA") {
		t.Fatalf("expected A's data to remain, got %+v", state)
	}
}

func TestFilteredCache_Invalidate(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	cache := NewFilteredCache(src, zerolog.Nop())

	if err := cache.FetchByID(context.Background(), "A"); err != nil {
		t.Fatalf("FetchByID returned error: %v", err)
	}
	if state := cache.State(); state.Data == nil {
		t.Fatal("an empty result is still data")
	}

	cache.Invalidate()
	if state := cache.State(); state.Data != nil || state.EmployeeID != "" || state.Loading {
		t.Fatalf("unexpected state after invalidate: %+v", state)
	}
}
