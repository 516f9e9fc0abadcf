package thread_pool

import "sync"

// deque holds a worker's forked tasks. The owner works at the bottom and
// thieves take from the top, so a thief gets the oldest and usually
// largest piece of work.
type deque struct {
	mu    sync.Mutex
	items []*Future
}

func (d *deque) pushBottom(f *Future) {
	d.mu.Lock()
	d.items = append(d.items, f)
	d.mu.Unlock()
}

func (d *deque) popBottom() *Future {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.items)
	if n == 0 {
		return nil
	}
	f := d.items[n-1]
	d.items[n-1] = nil
	d.items = d.items[:n-1]
	return f
}

// removeBottom pops f if it is the bottom item.
func (d *deque) removeBottom(f *Future) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.items)
	if n == 0 || d.items[n-1] != f {
		return false
	}
	d.items[n-1] = nil
	d.items = d.items[:n-1]
	return true
}

func (d *deque) stealTop() *Future {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return nil
	}
	f := d.items[0]
	d.items[0] = nil
	d.items = d.items[1:]
	return f
}

func (d *deque) len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}
