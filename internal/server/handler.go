// internal/server/handler.go
//
// Package server
// ─────────────────────────────────────────────
// 以 gin 提供 HTTP 介面，作為 bank 模組的應用層 (Application Layer)。
// 每個 handler 僅負責：
//  1. 解析 JSON 並以 validate.go 的函式驗證請求
//  2. 呼叫 bank.Service 執行商業邏輯
//  3. 回傳 JSON 或純文字錯誤
//  4. 成功變更狀態後呼叫 s.persist()，失敗只記錄不回報給客戶端
package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledger/internal/bank"
)

// Server 為 HTTP 層核心結構：
// - Service：注入的帳本服務。
// - persist：注入的持久化鉤子，可為 nil。
type Server struct {
	Service *bank.Service
	persist func() error
}

// NewServer 建立新的 HTTP 伺服器。
func NewServer(svc *bank.Service, persist func() error) *Server {
	return &Server{Service: svc, persist: persist}
}

func (s *Server) persistState() {
	if s.persist == nil {
		return
	}
	if err := s.persist(); err != nil {
		log.Printf("persist snapshot failed: %v", err)
	}
}

// createAccount 處理 POST /accounts。
func (s *Server) createAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	id, balance, err := validateCreate(req)
	if err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	a, err := s.Service.CreateAccount(id, balance)
	if err != nil {
		writeErr(c, err, statusFor(err))
		return
	}
	c.JSON(http.StatusCreated, a)
	s.persistState()
}

// listAccounts 處理 GET /accounts。
func (s *Server) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, s.Service.ListAccounts())
}

// getAccount 處理 GET /accounts/:id。
func (s *Server) getAccount(c *gin.Context) {
	a, err := s.Service.GetAccount(c.Param("id"))
	if err != nil {
		writeErr(c, err, statusFor(err))
		return
	}
	c.JSON(http.StatusOK, a)
}

// accountLogs 處理 GET /accounts/:id/logs。
func (s *Server) accountLogs(c *gin.Context) {
	logs, err := s.Service.AccountLogs(c.Param("id"))
	if err != nil {
		writeErr(c, err, statusFor(err))
		return
	}
	c.JSON(http.StatusOK, logs)
}

// transfer 處理 POST /accounts/transfer：
//
//	{"accountFromId": "1", "accountToId": "2", "transferAmount": 10}
//
// 成功回傳轉帳收據；所有業務錯誤皆為 400。
func (s *Server) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	from, to, amount, err := validateTransfer(req)
	if err != nil {
		writeErr(c, err, http.StatusBadRequest)
		return
	}
	t, err := s.Service.TransferFunds(from, to, amount)
	if err != nil {
		writeErr(c, err, statusFor(err))
		return
	}
	c.JSON(http.StatusOK, t)
	s.persistState()
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
