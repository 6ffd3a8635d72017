package employee

import "strings"

// Employee は社員エンティティです。取得後は不変として扱います。
type Employee struct {
	ID        string
	FirstName string
	LastName  string
}

// EmptyEmployee は「絞り込みなし」を表す番兵値です。キャッシュには保存されません。
var EmptyEmployee = Employee{ID: "", FirstName: "All", LastName: "Employees"}

// IsEmpty は番兵値かどうかを返します。
func (e Employee) IsEmpty() bool {
	return e.ID == EmptyEmployee.ID
}

// FullName は表示用の氏名を返します。
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
