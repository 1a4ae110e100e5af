package sync

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PollTickMsg is sent when the background refresh interval elapses. The
// receiver decides whether a refetch is safe; the poller itself never
// touches the store.
type PollTickMsg struct{}

// Poller drives periodic background refetches so the board converges on
// server truth even when the user takes no action.
type Poller struct {
	interval time.Duration
	tickCh   chan struct{}
	stopCh   chan struct{}
	mu       gosync.Mutex
	running  bool
}

// NewPoller creates a poller. A non-positive interval disables polling:
// Start becomes a no-op.
func NewPoller(interval time.Duration) *Poller {
	return &Poller{
		interval: interval,
		tickCh:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the ticking goroutine and returns the subscription
// command that delivers ticks to the Bubble Tea runtime.
func (p *Poller) Start() tea.Cmd {
	if p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return p.waitForTick()
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()
	return p.waitForTick()
}

// Stop halts the ticking goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	close(p.stopCh)
	p.running = false
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			select {
			case p.tickCh <- struct{}{}:
			default:
				// A tick is already pending; refetching once is enough.
			}
		}
	}
}

// waitForTick returns a command that blocks on the next tick.
func (p *Poller) waitForTick() tea.Cmd {
	return func() tea.Msg {
		_, ok := <-p.tickCh
		if !ok {
			return nil
		}
		return PollTickMsg{}
	}
}

// WaitForNext resubscribes after a PollTickMsg has been processed.
func (p *Poller) WaitForNext() tea.Cmd {
	return p.waitForTick()
}
