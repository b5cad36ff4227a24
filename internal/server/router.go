// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊，與 handler.go 分離：
//   - handler.go 定義「如何處理請求」
//   - router.go 定義「請求如何被導向」
//   - main.go 組裝整體應用（注入 Service、Notifier、Persist Hook）
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router 建立並回傳整個 HTTP 處理鏈。
// 所有端點掛在 /v1 下，並保留 /api/v1 作為別名。
func (s *Server) Router() http.Handler {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", s.health)

	for _, prefix := range []string{"/v1", "/api/v1"} {
		s.register(r.Group(prefix))
	}
	return r
}

func (s *Server) register(g *gin.RouterGroup) {
	g.GET("/health", s.health)

	//   - POST /accounts             → 建立帳戶
	//   - GET  /accounts             → 列出帳戶
	//   - GET  /accounts/:id         → 查詢帳戶
	//   - GET  /accounts/:id/logs    → 轉帳日誌
	//   - POST /accounts/transfer    → 轉帳
	g.POST("/accounts", s.createAccount)
	g.GET("/accounts", s.listAccounts)
	g.GET("/accounts/:id", s.getAccount)
	g.GET("/accounts/:id/logs", s.accountLogs)
	g.POST("/accounts/transfer", s.transfer)
}
