package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction は社員の経費取引です。
type Transaction struct {
	ID       string
	Amount   decimal.Decimal
	Merchant string
	Date     time.Time
	Approved bool
	Employee EmployeeSnapshot
}

// EmployeeSnapshot は取引に紐づく社員情報のスナップショットです。
type EmployeeSnapshot struct {
	ID        string
	FirstName string
	LastName  string
}
