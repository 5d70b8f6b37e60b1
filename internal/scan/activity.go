package scan

import "sync"

// Activity maps a worker id to the relative path it is currently processing.
// It is a best-effort diagnostic view for the progress display: overwrites
// race with reads by design and last-write-wins is acceptable. Nothing
// authoritative may ever be derived from it.
type Activity struct {
	m sync.Map
}

// Set records the file a worker is processing.
func (a *Activity) Set(worker int, relPath string) {
	a.m.Store(worker, relPath)
}

// Clear removes a worker's entry once it goes idle.
func (a *Activity) Clear(worker int) {
	a.m.Delete(worker)
}

// Snapshot copies the current view.
func (a *Activity) Snapshot() map[int]string {
	out := make(map[int]string)
	a.m.Range(func(k, v any) bool {
		out[k.(int)] = v.(string)
		return true
	})
	return out
}

// Current returns the in-flight file of the lowest-numbered busy worker, so
// the progress display settles on one slot instead of flickering across the
// whole pool.
func (a *Activity) Current() (string, bool) {
	best := -1
	var path string
	a.m.Range(func(k, v any) bool {
		id := k.(int)
		if best == -1 || id < best {
			best = id
			path = v.(string)
		}
		return true
	})
	return path, best != -1
}
