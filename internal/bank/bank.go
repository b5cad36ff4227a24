// internal/bank/bank.go

package bank

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// Notifier 為外部通知發送者。實作應盡力而為，不回傳錯誤。
type Notifier interface {
	NotifyAboutTransfer(account Account, message string)
}

// Service 為帳本的應用服務（轉帳協調者）：
// 於進入 Store 前先做便宜的前置檢查，委派原子操作給 Store，
// 並在轉帳成功後通知雙方。通知屬 fire-and-forget，其成敗不影響已提交的轉帳。
// Service 持有注入的 Store 與 Notifier；每個測試可各自建立獨立實例。
type Service struct {
	store    *Store
	notifier Notifier
}

// NewService 建立服務；n 可為 nil（不發送通知）。
func NewService(store *Store, n Notifier) *Service {
	return &Service{store: store, notifier: n}
}

// Store 回傳底層帳戶儲存，供快照與測試工具使用。
func (s *Service) Store() *Store {
	return s.store
}

// CreateAccount 以指定 ID 與初始餘額建立帳戶。
func (s *Service) CreateAccount(id string, balance decimal.Decimal) (*Account, error) {
	if id == "" {
		return nil, ErrInvalidAccountID
	}
	if balance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	a := Account{ID: id, Balance: balance}
	if err := s.store.Create(a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) GetAccount(id string) (*Account, error) {
	return s.store.Get(id)
}

func (s *Service) ListAccounts() []*Account {
	return s.store.List()
}

func (s *Service) AccountLogs(id string) ([]Log, error) {
	return s.store.Logs(id)
}

// TransferFunds 驗證金額後委派 Store.Transfer，錯誤原樣回傳。
// 成功後分別通知轉出方與轉入方。
func (s *Service) TransferFunds(fromID, toID string, amount decimal.Decimal) (Transfer, error) {
	if !amount.IsPositive() {
		return Transfer{}, ErrInvalidAmount
	}
	t, err := s.store.Transfer(fromID, toID, amount)
	if err != nil {
		return Transfer{}, err
	}

	if from, err := s.store.Get(fromID); err == nil {
		s.notify(*from, fmt.Sprintf("Transferred %s to %s", amount, toID))
	}
	if to, err := s.store.Get(toID); err == nil {
		s.notify(*to, fmt.Sprintf("Received %s from %s", amount, fromID))
	}
	return t, nil
}

// Clear 清空帳本，僅供測試工具使用。
func (s *Service) Clear() {
	s.store.Clear()
}

func (s *Service) notify(a Account, msg string) {
	if s.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify account=%s failed: %v", a.ID, r)
		}
	}()
	s.notifier.NotifyAboutTransfer(a, msg)
}
