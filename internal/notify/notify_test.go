package notify

import (
	"sync"
	"testing"

	"ledger/internal/bank"
)

type collect struct {
	mu      sync.Mutex
	got     []string
	started chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func (c *collect) NotifyAboutTransfer(a bank.Account, msg string) {
	if c.started != nil {
		c.once.Do(func() { close(c.started) })
	}
	if c.gate != nil {
		<-c.gate
	}
	c.mu.Lock()
	c.got = append(c.got, a.ID+":"+msg)
	c.mu.Unlock()
}

func TestAsyncDeliversInOrderAndDrainsOnClose(t *testing.T) {
	c := &collect{}
	a := NewAsync(c, 16)
	for _, m := range []string{"one", "two", "three"} {
		a.NotifyAboutTransfer(bank.Account{ID: "1"}, m)
	}
	a.Close()

	want := []string{"1:one", "1:two", "1:three"}
	if len(c.got) != len(want) {
		t.Fatalf("got=%v want=%v", c.got, want)
	}
	for i := range want {
		if c.got[i] != want[i] {
			t.Fatalf("got=%v want=%v", c.got, want)
		}
	}
}

// TestAsyncDropsWhenFull 驗證佇列滿時呼叫端不阻塞，多出的通知被丟棄。
func TestAsyncDropsWhenFull(t *testing.T) {
	c := &collect{started: make(chan struct{}), gate: make(chan struct{})}
	a := NewAsync(c, 1)

	a.NotifyAboutTransfer(bank.Account{ID: "1"}, "first")
	<-c.started // worker 已取走 first 並卡在 gate

	a.NotifyAboutTransfer(bank.Account{ID: "1"}, "second") // 佔滿緩衝
	a.NotifyAboutTransfer(bank.Account{ID: "1"}, "third")  // 丟棄

	close(c.gate)
	a.Close()

	if len(c.got) != 2 || c.got[0] != "1:first" || c.got[1] != "1:second" {
		t.Fatalf("got=%v", c.got)
	}
}

type boom struct{}

func (boom) NotifyAboutTransfer(bank.Account, string) { panic("boom") }

func TestAsyncRecoversPanicsAndIgnoresAfterClose(t *testing.T) {
	a := NewAsync(boom{}, 4)
	a.NotifyAboutTransfer(bank.Account{ID: "1"}, "x")
	a.NotifyAboutTransfer(bank.Account{ID: "2"}, "y")
	a.Close()
	a.Close()

	// 關閉後的通知只會被記錄
	a.NotifyAboutTransfer(bank.Account{ID: "3"}, "z")
}

// TestServiceWithAsync 驗證與 bank.Service 串接時轉帳雙方都收到通知。
func TestServiceWithAsync(t *testing.T) {
	c := &collect{}
	a := NewAsync(c, 8)
	svc := bank.NewService(bank.NewStore(), a)
	_, _ = svc.CreateAccount("1", decimalFrom(t, "100"))
	_, _ = svc.CreateAccount("2", decimalFrom(t, "50"))

	if _, err := svc.TransferFunds("1", "2", decimalFrom(t, "25")); err != nil {
		t.Fatal(err)
	}
	a.Close()

	if len(c.got) != 2 || c.got[0] != "1:Transferred 25 to 2" || c.got[1] != "2:Received 25 from 1" {
		t.Fatalf("got=%v", c.got)
	}
}

func TestLogNotifier(t *testing.T) {
	NewLogNotifier().NotifyAboutTransfer(bank.Account{ID: "1"}, "hello")
}
