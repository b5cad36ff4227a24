// internal/config/config.go
//
// Package config 由環境變數讀取行程設定；未設定時使用預設值。
package config

import (
	"log"
	"os"
	"strconv"
)

const (
	DefaultAddr         = ":8080"
	DefaultNotifyBuffer = 64
	DefaultGinMode      = "release"
)

// Config 為 cmd/server 使用的設定。
type Config struct {
	Addr         string // LEDGER_ADDR
	DataFile     string // LEDGER_DATA_FILE；空字串代表不讀寫快照
	NotifyBuffer int    // LEDGER_NOTIFY_BUFFER
	GinMode      string // GIN_MODE
}

// Load 讀取目前行程的環境變數。
func Load() Config {
	return load(os.Getenv)
}

func load(getenv func(string) string) Config {
	cfg := Config{
		Addr:         DefaultAddr,
		DataFile:     getenv("LEDGER_DATA_FILE"),
		NotifyBuffer: DefaultNotifyBuffer,
		GinMode:      DefaultGinMode,
	}
	if v := getenv("LEDGER_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}
	if v := getenv("LEDGER_NOTIFY_BUFFER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Printf("WARNING: invalid LEDGER_NOTIFY_BUFFER %q, using %d", v, DefaultNotifyBuffer)
		} else {
			cfg.NotifyBuffer = n
		}
	}
	return cfg
}
