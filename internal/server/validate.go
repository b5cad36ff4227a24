// internal/server/validate.go
//
// 明確的請求驗證函式：在進入 bank 核心之前檢查欄位是否存在與格式，
// 核心本身不依賴任何框架的驗證標籤。
package server

import (
	"errors"

	"github.com/shopspring/decimal"

	"ledger/internal/bank"
)

var (
	errMissingBalance   = errors.New("balance is required")
	errMissingAccountID = errors.New("accountFromId and accountToId are required")
)

type createAccountRequest struct {
	AccountID *string          `json:"accountId"`
	Balance   *decimal.Decimal `json:"balance"`
}

type transferRequest struct {
	AccountFromID  *string          `json:"accountFromId"`
	AccountToID    *string          `json:"accountToId"`
	TransferAmount *decimal.Decimal `json:"transferAmount"`
}

func validateCreate(req createAccountRequest) (string, decimal.Decimal, error) {
	if req.AccountID == nil || *req.AccountID == "" {
		return "", decimal.Zero, bank.ErrInvalidAccountID
	}
	if req.Balance == nil {
		return "", decimal.Zero, errMissingBalance
	}
	if req.Balance.IsNegative() {
		return "", decimal.Zero, bank.ErrNegativeBalance
	}
	return *req.AccountID, *req.Balance, nil
}

func validateTransfer(req transferRequest) (from, to string, amount decimal.Decimal, err error) {
	if req.AccountFromID == nil || req.AccountToID == nil || *req.AccountFromID == "" || *req.AccountToID == "" {
		return "", "", decimal.Zero, errMissingAccountID
	}
	if req.TransferAmount == nil || !req.TransferAmount.IsPositive() {
		return "", "", decimal.Zero, bank.ErrInvalidAmount
	}
	return *req.AccountFromID, *req.AccountToID, *req.TransferAmount, nil
}
