// Package review は取引レビュー画面の状態を保持するクライアント側の中核です。
//
// 取引の出どころは「全件のページング」と「社員による絞り込み」の二つで、
// 常にどちらか一方だけが有効になります。承認の切り替えは有効な側にだけ書き込みます。
package review

import (
	"slices"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/reviewrpc"
)

type (
	Transaction = reviewrpc.Transaction
	Employee    = reviewrpc.Employee
)

// EmptyEmployee は「絞り込みなし」を表す選択肢です。
var EmptyEmployee = Employee{ID: "", FirstName: "All", LastName: "Employees"}

// PaginatedResponse はページング応答です。NextPage が nil なら続きはありません。
type PaginatedResponse[T any] struct {
	Data     T    `json:"data"`
	NextPage *int `json:"nextPage"`
}

type paginatedParams struct {
	Page *int `json:"page"`
}

type employeeParams struct {
	EmployeeID string `json:"employeeId"`
}

type approvalParams struct {
	TransactionID string `json:"transactionId"`
	Value         bool   `json:"value"`
}

// withApproval は id に一致する取引だけを approved を変えた新しい値に差し替えたスライスを返します。
func withApproval(txs []Transaction, id string, approved bool) []Transaction {
	out := slices.Clone(txs)
	for i, tx := range out {
		if tx.ID != id {
			continue
		}
		replaced := tx
		replaced.Approved = approved
		out[i] = replaced
	}
	return out
}

func findTransaction(txs []Transaction, id string) (Transaction, bool) {
	i := slices.IndexFunc(txs, func(tx Transaction) bool { return tx.ID == id })
	if i < 0 {
		return Transaction{}, false
	}
	return txs[i], true
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
