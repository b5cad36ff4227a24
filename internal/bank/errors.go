// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤皆為可由呼叫端修正的輸入錯誤，不重試、不致命，
// 由上層 HTTP handler 轉換成適當的 HTTP 狀態碼。

package bank

import "errors"

var (
	// ErrDuplicateAccount 代表帳戶 ID 已存在。
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrNotFound 代表查詢的帳戶不存在。
	// 對應 HTTP 狀態碼 404 Not Found。
	ErrNotFound = errors.New("account not found")

	// ErrAccountsNotFound 代表轉帳的任一方帳戶不存在。
	ErrAccountsNotFound = errors.New("both accounts must exist")

	// ErrSameAccount 代表轉帳來源與目標帳戶相同。
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrInvalidAmount 代表轉帳金額 <= 0。
	ErrInvalidAmount = errors.New("transfer amount must be positive")

	// ErrInsufficientFunds 代表來源帳戶餘額不足。
	ErrInsufficientFunds = errors.New("insufficient funds in the account")

	// ErrInvalidAccountID 代表帳戶 ID 為空。
	ErrInvalidAccountID = errors.New("account id must not be empty")

	// ErrNegativeBalance 代表建立帳戶時初始餘額為負。
	ErrNegativeBalance = errors.New("initial balance must not be negative")
)
