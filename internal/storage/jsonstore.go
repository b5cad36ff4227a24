// internal/storage/jsonstore.go
//
// 提供 JSON 快照 (Snapshot) 的讀寫。
// 寫入採「原子寫入」：先寫入同目錄的暫存檔並 fsync，再以 rename() 取代原檔，
// 寫入中途失敗時原檔不會損壞。
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CurrentVersion 為目前快照結構版本。
const CurrentVersion = 2

// LoadSnapshot 讀取指定路徑的 JSON 快照。
// 檔案不存在時回傳的錯誤可用 errors.Is(err, fs.ErrNotExist) 判斷；
// 版本高於 CurrentVersion 的快照視為無法解析。
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if snap.Meta.Version > CurrentVersion {
		return Snapshot{}, fmt.Errorf("snapshot %s: unsupported version %d", path, snap.Meta.Version)
	}
	return snap, nil
}

// SaveSnapshot 將 Snapshot 以縮排 JSON 原子寫入 path。
func SaveSnapshot(path string, snap Snapshot) error {
	snap.Meta.Storage = "json_snapshot"
	snap.Meta.Version = CurrentVersion
	snap.Meta.Timestamp = time.Now()

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	cleanup := func() { _ = os.Remove(tmp) }

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		cleanup()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		cleanup()
		return err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return err
	}

	// 原子替換
	if err := os.Rename(tmp, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
