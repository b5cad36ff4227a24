// internal/server/response.go
//
// 統一錯誤輸出與領域錯誤到 HTTP 狀態碼的映射。
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledger/internal/bank"
)

// statusFor 將領域錯誤映射為狀態碼：查無帳戶為 404，其餘業務錯誤皆為 400。
func statusFor(err error) int {
	switch {
	case errors.Is(err, bank.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, bank.ErrDuplicateAccount),
		errors.Is(err, bank.ErrAccountsNotFound),
		errors.Is(err, bank.ErrSameAccount),
		errors.Is(err, bank.ErrInvalidAmount),
		errors.Is(err, bank.ErrInsufficientFunds),
		errors.Is(err, bank.ErrInvalidAccountID),
		errors.Is(err, bank.ErrNegativeBalance):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeErr 以純文字輸出錯誤訊息並中止後續 handler。
func writeErr(c *gin.Context, err error, code int) {
	c.Abort()
	c.String(code, err.Error())
}
