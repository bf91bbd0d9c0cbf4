package achievement

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/store"
)

// Watcher runs the checker on start, on a fixed interval and after every session write.
type Watcher struct {
	checker  *Checker
	store    *store.Store
	interval time.Duration
	onUnlock func([]model.Achievement)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a stopped watcher. onUnlock is called from the watcher goroutine.
func NewWatcher(checker *Checker, st *store.Store, interval time.Duration, onUnlock func([]model.Achievement)) *Watcher {
	return &Watcher{
		checker:  checker,
		store:    st,
		interval: interval,
		onUnlock: onUnlock,
	}
}

// Start launches the watcher goroutine. Starting a running watcher does nothing.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	writes := make(chan struct{}, 1)
	unsubscribe := w.store.Subscribe(func(key string) {
		if key != store.KeySessions {
			return
		}
		select {
		case writes <- struct{}{}:
		default:
		}
	})

	go func(done chan struct{}) {
		defer close(done)
		defer unsubscribe()
		w.run(ctx, writes)
	}(w.done)
}

// Stop cancels the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Watcher) run(ctx context.Context, writes <-chan struct{}) {
	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	w.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			w.check(ctx)
		case <-writes:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	fresh, err := w.checker.Check(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("achievement check: %v", err)
		}
		return
	}
	if len(fresh) > 0 && w.onUnlock != nil {
		w.onUnlock(fresh)
	}
}
