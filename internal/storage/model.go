// internal/storage/model.go
//
// 定義「資料持久化層 (storage layer)」的結構模型。
// 該層的責任是提供帳本的資料序列化格式（目前為 JSON），
// 並保存必要的中繼資訊 (Meta)，以便版本控制與未來可擴充為資料庫後端。
//
// ───────────────────────────────
// 設計理念：
// - **關注分離**：此層僅定義資料結構，不涉入商業邏輯。
// - **可演進性**：Meta 保留版本與時間戳，版本 2 起金額改為十進位字串。
// - 快照為盡力而為的匯出 / 匯入，不提供持久性保證。
// ───────────────────────────────
package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta 為所有持久化快照的中繼資料 (metadata)。
// 用於記錄儲存方式、版本、建立時間與說明。
// 可協助後續進行格式升級、除錯或追蹤快照來源。
type Meta struct {
	Storage   string    `json:"storage"`        // 儲存類型，例如 "json_snapshot"
	Version   int       `json:"version"`        // 結構版本號，用於未來升級時比對
	Timestamp time.Time `json:"timestamp"`      // 快照建立時間
	Note      string    `json:"note,omitempty"` // 備註欄，可選，用於人工說明
}

// PersistAccount 為帳戶在儲存層的序列化格式。
// 不含同步鎖或方法，僅保存資料狀態。
type PersistAccount struct {
	ID      string          `json:"id"`      // 帳戶唯一 ID
	Balance decimal.Decimal `json:"balance"` // 帳戶餘額（十進位字串）
	Logs    []PersistLog    `json:"logs"`    // 交易日誌
}

// PersistLog 為單筆轉帳日誌的序列化格式。
type PersistLog struct {
	Time       time.Time       `json:"time"`
	TransferID string          `json:"transfer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Direction  string          `json:"direction"`
	CounterID  string          `json:"counter_account"`
}

// Snapshot 為帳本狀態的完整快照。
// 包含所有帳戶資料與中繼資訊，用於整體載入與保存。
type Snapshot struct {
	Meta     Meta             `json:"_meta"`    // 中繼資料（儲存資訊與版本）
	Accounts []PersistAccount `json:"accounts"` // 帳戶清單（序列化後的純資料）
}
