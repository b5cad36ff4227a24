// internal/bank/account.go

// Package bank 定義帳本核心領域模型與業務規則：帳戶儲存 (Store)、轉帳協調 (Service)
// 與領域錯誤。本檔定義 Account、交易 Log 與轉帳收據 Transfer，不含任何 HTTP 或儲存細節。
package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a ledger account.
// ID 建立後不可變；Balance 只會在建立時或持鎖轉帳中改變，且永不為負。
type Account struct {
	ID      string          `json:"accountId"`
	Balance decimal.Decimal `json:"balance"`
	Logs    []Log           `json:"-"`
}

// Log represents one side of a committed transfer.
type Log struct {
	Time       time.Time       `json:"time"`
	TransferID string          `json:"transfer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Direction  string          `json:"direction"` // "in" 或 "out"
	CounterID  string          `json:"counter_account"`
}

// Transfer 為一次成功轉帳的收據。
type Transfer struct {
	ID     string          `json:"transferId"`
	FromID string          `json:"accountFromId"`
	ToID   string          `json:"accountToId"`
	Amount decimal.Decimal `json:"transferAmount"`
	Time   time.Time       `json:"time"`
}

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// clone 回傳深拷貝（含日誌切片），避免呼叫端與內部快照共用底層陣列。
func (a *Account) clone() *Account {
	cp := *a
	if a.Logs != nil {
		cp.Logs = make([]Log, len(a.Logs))
		copy(cp.Logs, a.Logs)
	}
	return &cp
}
