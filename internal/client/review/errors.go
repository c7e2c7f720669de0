package review

import "errors"

var (
	// ErrFetchInFlight は取引の取得中に続きの読み込みが要求された場合に返されます。
	ErrFetchInFlight = errors.New("review: transaction fetch in flight")
	// ErrNoMorePages はページング表示でないか、続きのページが無い場合に返されます。
	ErrNoMorePages = errors.New("review: no more pages")
	// ErrTransactionNotVisible は承認対象が表示中の一覧に無い場合に返されます。
	ErrTransactionNotVisible = errors.New("review: transaction not visible")
)
