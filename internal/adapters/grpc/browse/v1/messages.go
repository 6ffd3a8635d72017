package browsev1

// DateLayout は Transaction.OccurredOn の書式です。
const DateLayout = "2006-01-02"

type Employee struct {
	Id        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (x *Employee) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

func (x *Employee) GetFirstName() string {
	if x == nil {
		return ""
	}
	return x.FirstName
}

func (x *Employee) GetLastName() string {
	if x == nil {
		return ""
	}
	return x.LastName
}

// Transaction の Amount は 10 進数の文字列表現 (例: "1234.50") です。
type Transaction struct {
	Id         string    `json:"id"`
	Employee   *Employee `json:"employee,omitempty"`
	Amount     string    `json:"amount"`
	Merchant   string    `json:"merchant"`
	OccurredOn string    `json:"occurred_on"`
	Approved   bool      `json:"approved"`
}

func (x *Transaction) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

func (x *Transaction) GetEmployee() *Employee {
	if x == nil {
		return nil
	}
	return x.Employee
}

func (x *Transaction) GetAmount() string {
	if x == nil {
		return ""
	}
	return x.Amount
}

func (x *Transaction) GetMerchant() string {
	if x == nil {
		return ""
	}
	return x.Merchant
}

func (x *Transaction) GetOccurredOn() string {
	if x == nil {
		return ""
	}
	return x.OccurredOn
}

func (x *Transaction) GetApproved() bool {
	if x == nil {
		return false
	}
	return x.Approved
}

type ListEmployeesRequest struct{}

type ListEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}

func (x *ListEmployeesResponse) GetEmployees() []*Employee {
	if x == nil {
		return nil
	}
	return x.Employees
}

type ListTransactionsRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

func (x *ListTransactionsRequest) GetPageSize() int32 {
	if x == nil {
		return 0
	}
	return x.PageSize
}

func (x *ListTransactionsRequest) GetPageToken() string {
	if x == nil {
		return ""
	}
	return x.PageToken
}

type ListTransactionsResponse struct {
	Transactions  []*Transaction `json:"transactions"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

func (x *ListTransactionsResponse) GetTransactions() []*Transaction {
	if x == nil {
		return nil
	}
	return x.Transactions
}

func (x *ListTransactionsResponse) GetNextPageToken() string {
	if x == nil {
		return ""
	}
	return x.NextPageToken
}

type ListTransactionsByEmployeeRequest struct {
	EmployeeId string `json:"employee_id"`
}

func (x *ListTransactionsByEmployeeRequest) GetEmployeeId() string {
	if x == nil {
		return ""
	}
	return x.EmployeeId
}

type ListTransactionsByEmployeeResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

func (x *ListTransactionsByEmployeeResponse) GetTransactions() []*Transaction {
	if x == nil {
		return nil
	}
	return x.Transactions
}
