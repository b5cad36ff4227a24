// internal/bank/store.go

package bank

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"ledger/internal/storage"
)

type entry struct {
	snap atomic.Pointer[Account]
}

func newEntry(a *Account) *entry {
	e := &entry{}
	e.snap.Store(a)
	return e
}

// Store 為帳本的 in-memory 帳戶儲存層：
// 帳戶建立、查詢、清空，以及核心的原子轉帳。
//
// 鎖的分工：
//   - mu：只保護 accts 這張 map 的結構（插入、清空、查找）。
//   - locks：每個帳戶 ID 一把 *sync.Mutex，序列化轉帳與全帳本讀取；首次使用時以 LoadOrStore 建立，
//     保證同一 ID 永遠只有一把鎖。
//   - entry.snap：帳戶的不可變快照，以 atomic 發佈；Get 讀取時不會碰到轉帳鎖。
//
// Store 的零值不可用，請以 NewStore 建立。
type Store struct {
	mu    sync.RWMutex
	accts map[string]*entry
	locks sync.Map // id -> *sync.Mutex
}

// NewStore 建立空白帳戶儲存。
func NewStore() *Store {
	return &Store{accts: make(map[string]*entry)}
}

// Create 僅在 ID 不存在時插入帳戶；檢查與插入在同一臨界區內完成。
// ID 重複時回傳 ErrDuplicateAccount，既有帳戶不受影響。
func (s *Store) Create(a Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accts[a.ID]; ok {
		return fmt.Errorf("account id %s already exists: %w", a.ID, ErrDuplicateAccount)
	}
	s.accts[a.ID] = newEntry(a.clone())
	return nil
}

// Get 依 ID 回傳帳戶的目前快照（拷貝）；不存在回傳 ErrNotFound。
func (s *Store) Get(id string) (*Account, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	return e.snap.Load().clone(), nil
}

// List 回傳所有帳戶的一致性拷貝，依 ID 排序。
//
// 依與 Transfer 相同的字典序取得所有帳戶鎖後才讀取，反向釋放，
// 因此不會看到只套用一半的轉帳，也不會與轉帳形成循環等待。
// 持有 mu 讀鎖期間不會有新帳戶插入；持有帳戶鎖的轉帳不需要 mu，必定能完成。
func (s *Store) List() []*Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := maps.Keys(s.accts)
	slices.Sort(ids)
	held := make([]*sync.Mutex, 0, len(ids))
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}()
	for _, id := range ids {
		l := s.lockFor(id)
		l.Lock()
		held = append(held, l)
	}

	out := make([]*Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.accts[id].snap.Load().clone())
	}
	return out
}

// Logs 回傳指定帳戶的交易日誌拷貝。
func (s *Store) Logs(id string) ([]Log, error) {
	a, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if a.Logs == nil {
		return []Log{}, nil
	}
	return a.Logs, nil
}

// Clear 清空所有帳戶與轉帳鎖。
// 僅供測試或管理用途，不可與進行中的轉帳並行呼叫。
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accts = make(map[string]*entry)
	s.locks.Clear()
}

func (s *Store) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.accts[id]
	return e, ok
}

// lockFor 回傳該 ID 專屬的轉帳鎖；並發首次建立時 LoadOrStore 只會留下一把。
func (s *Store) lockFor(id string) *sync.Mutex {
	if l, ok := s.locks.Load(id); ok {
		return l.(*sync.Mutex)
	}
	l, _ := s.locks.LoadOrStore(id, new(sync.Mutex))
	return l.(*sync.Mutex)
}

// Transfer 自 fromID 轉出 amount 至 toID。
//
// 兩把帳戶鎖一律依 ID 字典序取得（較小者先鎖、最後釋放），與轉帳方向無關，
// 因此 A→B 與 B→A 並行時不會形成循環等待。
// 餘額檢查必須在兩把鎖都持有之後才進行，避免與並行扣款競爭而讀到過期餘額。
// 任一步驟失敗皆不會改變任何帳戶狀態。
func (s *Store) Transfer(fromID, toID string, amount decimal.Decimal) (Transfer, error) {
	from, ok1 := s.lookup(fromID)
	to, ok2 := s.lookup(toID)
	if !ok1 || !ok2 {
		return Transfer{}, ErrAccountsNotFound
	}
	if fromID == toID {
		return Transfer{}, ErrSameAccount
	}

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	l1 := s.lockFor(first)
	l1.Lock()
	defer l1.Unlock()
	l2 := s.lockFor(second)
	l2.Lock()
	defer l2.Unlock()

	src := from.snap.Load()
	dst := to.snap.Load()
	if src.Balance.LessThan(amount) {
		return Transfer{}, ErrInsufficientFunds
	}

	t := Transfer{
		ID:     uuid.NewString(),
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
		Time:   time.Now(),
	}

	newSrc := src.clone()
	newSrc.Balance = src.Balance.Sub(amount)
	newSrc.Logs = append(newSrc.Logs, Log{Time: t.Time, TransferID: t.ID, Amount: amount, Direction: DirectionOut, CounterID: toID})

	newDst := dst.clone()
	newDst.Balance = dst.Balance.Add(amount)
	newDst.Logs = append(newDst.Logs, Log{Time: t.Time, TransferID: t.ID, Amount: amount, Direction: DirectionIn, CounterID: fromID})

	from.snap.Store(newSrc)
	to.snap.Store(newDst)
	return t, nil
}

// Snapshot 匯出目前狀態為 storage.Snapshot，帳戶依 ID 排序以利比對。
// 內容取自 List，因此是某個轉帳序列化時點的一致狀態。
func (s *Store) Snapshot() storage.Snapshot {
	snap := storage.Snapshot{
		Meta: storage.Meta{
			Storage: "json_snapshot",
			Version: 2,
			Note:    "best-effort export; no durability guarantee",
		},
	}
	for _, a := range s.List() {
		pa := storage.PersistAccount{ID: a.ID, Balance: a.Balance}
		for _, l := range a.Logs {
			pa.Logs = append(pa.Logs, storage.PersistLog{
				Time:       l.Time,
				TransferID: l.TransferID,
				Amount:     l.Amount,
				Direction:  l.Direction,
				CounterID:  l.CounterID,
			})
		}
		snap.Accounts = append(snap.Accounts, pa)
	}
	return snap
}

// Restore 以快照內容取代目前狀態；與 Clear 一樣不可與轉帳並行呼叫。
// 快照含空 ID、重複 ID 或負餘額時回傳錯誤，目前狀態保持不變。
func (s *Store) Restore(snap storage.Snapshot) error {
	accts := make(map[string]*entry, len(snap.Accounts))
	for i, pa := range snap.Accounts {
		switch {
		case pa.ID == "":
			return fmt.Errorf("restore account #%d: %w", i, ErrInvalidAccountID)
		case pa.Balance.IsNegative():
			return fmt.Errorf("restore account %s: %w", pa.ID, ErrNegativeBalance)
		}
		if _, dup := accts[pa.ID]; dup {
			return fmt.Errorf("restore account %s: %w", pa.ID, ErrDuplicateAccount)
		}
		a := &Account{ID: pa.ID, Balance: pa.Balance}
		for _, l := range pa.Logs {
			a.Logs = append(a.Logs, Log{
				Time:       l.Time,
				TransferID: l.TransferID,
				Amount:     l.Amount,
				Direction:  l.Direction,
				CounterID:  l.CounterID,
			})
		}
		accts[a.ID] = newEntry(a)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accts = accts
	s.locks.Clear()
	return nil
}
