package browse

import (
	"errors"
	"fmt"
)

var (
	ErrFetchFailed     = errors.New("browse: fetch failed")
	ErrFetchInProgress = errors.New("browse: fetch already in progress")
	ErrStale           = errors.New("browse: response superseded")

	errNilPage = errors.New("nil page")
)

const (
	SourceEmployees            = "employees"
	SourceTransactions         = "transactions"
	SourceEmployeeTransactions = "employee transactions"
)

// FetchError は外部取得関数の失敗を表します。errors.Is(err, ErrFetchFailed) が成立します。
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("browse: fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

// ignorable は呼び出し元へ伝える必要のない結果かを返します。
func ignorable(err error) bool {
	return errors.Is(err, ErrStale) || errors.Is(err, ErrFetchInProgress)
}
