// internal/notify/notify.go
//
// Package notify 提供 bank.Notifier 的實作。
// 通知為 fire-and-forget：任何發送失敗只會被記錄，不會回傳給轉帳流程。
package notify

import (
	"log"
	"sync"

	"ledger/internal/bank"
)

// LogNotifier 將通知寫入標準 log，作為預設的發送者。
type LogNotifier struct{}

func NewLogNotifier() LogNotifier { return LogNotifier{} }

func (LogNotifier) NotifyAboutTransfer(a bank.Account, msg string) {
	log.Printf("notify account=%s: %s", a.ID, msg)
}

type message struct {
	account bank.Account
	text    string
}

// Async 以緩衝佇列包裝另一個 Notifier，由單一背景 goroutine 依序送出。
// 佇列滿時直接丟棄並記錄，呼叫端永不阻塞。
type Async struct {
	next  bank.Notifier
	queue chan message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewAsync 建立並啟動 Async；buffer < 1 時視為 1。
func NewAsync(next bank.Notifier, buffer int) *Async {
	if buffer < 1 {
		buffer = 1
	}
	a := &Async{
		next:  next,
		queue: make(chan message, buffer),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) NotifyAboutTransfer(acc bank.Account, msg string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		log.Printf("notify account=%s dropped: notifier closed", acc.ID)
		return
	}
	select {
	case a.queue <- message{account: acc, text: msg}:
	default:
		log.Printf("notify account=%s dropped: queue full", acc.ID)
	}
}

// Close 停止接收新通知，等待佇列內既有通知送完後返回。可重複呼叫。
func (a *Async) Close() {
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.queue)
		a.mu.Unlock()
	})
	<-a.done
}

func (a *Async) run() {
	defer close(a.done)
	for m := range a.queue {
		a.deliver(m)
	}
}

func (a *Async) deliver(m message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify account=%s failed: %v", m.account.ID, r)
		}
	}()
	a.next.NotifyAboutTransfer(m.account, m.text)
}
