package store

import "sync"

// fanout is the subscriber registry shared by the store implementations.
// Each subscriber owns a latest-value channel of capacity one: a publish
// that finds the buffer full replaces the pending snapshot instead of
// blocking, so a slow consumer only ever skips intermediate states, never
// the newest one.
type fanout struct {
	mu   sync.Mutex
	subs map[int]chan Snapshot
	next int
}

func newFanout() *fanout {
	return &fanout{subs: make(map[int]chan Snapshot)}
}

// add registers a subscriber with its first delivery already buffered.
// Placing the initial snapshot under the same mutex that serializes
// publishes guarantees a concurrent write can only supersede it, never be
// overwritten by it.
func (f *fanout) add(initial Snapshot) (int, chan Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	ch := make(chan Snapshot, 1)
	ch <- initial
	f.subs[id] = ch
	return id, ch
}

func (f *fanout) remove(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(ch)
	}
}

// publish delivers to every subscriber. Holding the mutex makes this the
// only sender, so the drain-then-send swap cannot race.
func (f *fanout) publish(snap Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (f *fanout) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
