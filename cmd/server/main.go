// cmd/server/main.go

// 本服務提供帳戶建立、查詢與轉帳的 RESTful API。
// 此檔案負責依設定初始化模組（bank, notify, server, storage），
// 啟動 HTTP 伺服器，並於收到 SIGINT/SIGTERM 時優雅關閉、保存快照。

package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ledger/internal/bank"
	"ledger/internal/config"
	"ledger/internal/notify"
	"ledger/internal/server"
	"ledger/internal/storage"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	store := bank.NewStore()

	// 若有設定快照檔，嘗試載入；檔案不存在則以空帳本啟動
	if cfg.DataFile != "" {
		snap, err := storage.LoadSnapshot(cfg.DataFile)
		switch {
		case err == nil:
			if err := store.Restore(snap); err != nil {
				log.Fatalf("restore snapshot %s: %v", cfg.DataFile, err)
			}
			log.Printf("restored %d accounts from %s", len(snap.Accounts), cfg.DataFile)
		case errors.Is(err, fs.ErrNotExist):
		default:
			log.Fatalf("load snapshot: %v", err)
		}
	}

	notifier := notify.NewAsync(notify.NewLogNotifier(), cfg.NotifyBuffer)
	svc := bank.NewService(store, notifier)

	// 快照寫入序列化，避免較舊的快照晚一步 rename 覆蓋較新的
	var persist func() error
	if cfg.DataFile != "" {
		var mu sync.Mutex
		persist = func() error {
			mu.Lock()
			defer mu.Unlock()
			return storage.SaveSnapshot(cfg.DataFile, store.Snapshot())
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewServer(svc, persist).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Ledger server running at %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	notifier.Close()

	if persist != nil {
		if err := persist(); err != nil {
			log.Printf("persist snapshot failed: %v", err)
		}
	}
}
