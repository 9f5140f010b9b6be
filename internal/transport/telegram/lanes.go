package telegram

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var ErrLanesStopped = errors.New("update lanes are stopped")

// Lanes spreads events over a fixed set of workers. Events of one chat
// always land on the same worker, so they are handled in arrival order
// while different chats proceed concurrently.
type Lanes struct {
	lanes  []chan Event
	handle func(ctx context.Context, ev Event)

	// mu guards stopped and the closing of lanes against Submit.
	mu       sync.RWMutex
	stopped  bool
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewLanes creates n lanes, each buffering up to buffer events.
func NewLanes(n, buffer int, handle func(ctx context.Context, ev Event)) *Lanes {
	if n < 1 {
		n = 1
	}
	l := &Lanes{
		lanes:  make([]chan Event, n),
		handle: handle,
		done:   make(chan struct{}),
	}
	for i := range l.lanes {
		l.lanes[i] = make(chan Event, buffer)
	}
	return l
}

// Start launches one worker per lane.
func (l *Lanes) Start() {
	for i, lane := range l.lanes {
		l.wg.Add(1)
		go l.loop(i, lane)
	}
	slog.Info("Update lanes started", "lanes", len(l.lanes))
}

// Stop refuses new events and waits until every queued event is handled
// or ctx ends. Queued webhook updates were already acknowledged, so they
// are drained rather than dropped.
func (l *Lanes) Stop(ctx context.Context) error {
	l.stopOnce.Do(func() {
		close(l.done)
		l.mu.Lock()
		l.stopped = true
		for _, lane := range l.lanes {
			close(lane)
		}
		l.mu.Unlock()
	})

	drained := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		pending := 0
		for _, lane := range l.lanes {
			pending += len(lane)
		}
		slog.Warn("Update lanes stopped before draining", "pending", pending)
		return ctx.Err()
	}
}

// Submit queues an event on its chat's lane. It blocks while the lane is
// full.
func (l *Lanes) Submit(ctx context.Context, ev Event) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.stopped {
		return ErrLanesStopped
	}

	lane := l.lanes[l.index(ev.ChatKey())]
	select {
	case lane <- ev:
		return nil
	case <-l.done:
		return ErrLanesStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Lanes) index(chatID int64) int {
	return int(uint64(chatID) % uint64(len(l.lanes)))
}

func (l *Lanes) loop(id int, lane <-chan Event) {
	defer l.wg.Done()

	for ev := range lane {
		l.handle(context.Background(), ev)
	}
	slog.Debug("Update lane drained", "lane", id)
}
