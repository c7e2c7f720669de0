package reviewrpc

import "github.com/shopspring/decimal"

// DateLayout は取引日付の表現形式です。
const DateLayout = "2006-01-02"

type Employee struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Transaction struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Merchant string          `json:"merchant"`
	Date     string          `json:"date"`
	Approved bool            `json:"approved"`
	Employee Employee        `json:"employee"`
}

type EmployeesRequest struct{}

// PaginatedTransactionsRequest の Page が nil の場合は先頭ページを意味します。
type PaginatedTransactionsRequest struct {
	Page *int `json:"page"`
}

type PaginatedTransactionsResponse struct {
	Data     []Transaction `json:"data"`
	NextPage *int          `json:"nextPage"`
}

type TransactionsByEmployeeRequest struct {
	EmployeeID string `json:"employeeId"`
}

type SetTransactionApprovalRequest struct {
	TransactionID string `json:"transactionId"`
	Value         bool   `json:"value"`
}

type SetTransactionApprovalResponse struct{}
