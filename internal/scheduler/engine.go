// Package scheduler delivers exam alerts at their trigger time on a buffered
// channel. Delivery never blocks the loop: a full channel counts a drop.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

type queueItem struct {
	alert Alert
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].alert.TriggerAt.Before(pq[j].alert.TriggerAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	out     chan Alert
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	now     func() time.Time
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		out:    make(chan Alert, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
}

// C is closed once the engine has stopped.
func (e *Engine) C() <-chan Alert {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

// Stop ends the loop and waits for it. No alert is sent after Stop returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	started := e.started
	e.mu.Unlock()
	if started {
		<-e.doneCh
		return
	}
	close(e.out)
}

func (e *Engine) Schedule(a Alert) error {
	if a.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	heap.Push(&e.queue, queueItem{alert: a})
	e.signalWakeup()
	return nil
}

// Replace swaps the whole pending queue, used after the exam list changed.
// Alerts with a zero trigger time are skipped.
func (e *Engine) Replace(alerts []Alert) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	q := make(priorityQueue, 0, len(alerts))
	for _, a := range alerts {
		if a.TriggerAt.IsZero() {
			continue
		}
		q = append(q, queueItem{alert: a})
	}
	heap.Init(&q)
	e.queue = q
	e.signalWakeup()
	return nil
}

// Cancel drops every pending alert for examID and reports how many went.
func (e *Engine) Cancel(examID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.queue[:0]
	removed := 0
	for _, item := range e.queue {
		if item.alert.ExamID == examID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	e.queue = kept
	heap.Init(&e.queue)
	if removed > 0 {
		e.signalWakeup()
	}
	return removed
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.TriggerAt.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(e.now())
			for _, a := range due {
				select {
				case <-e.stopCh:
					return
				default:
				}
				select {
				case e.out <- a:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Alert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Alert{}, false
	}
	return e.queue[0].alert, true
}

func (e *Engine) popDue(now time.Time) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Alert, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].alert
		if next.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.alert)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
