package scrape

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Worklist is the FIFO URL queue for one pipeline run. Seeds and discovered
// links share the queue; a Bloom filter deduplicates pushes so revisits of
// already-queued URLs are dropped. The filter's rare false positive costs at
// most one skipped page, which the heuristic pipeline tolerates.
//
// Worklist is not safe for concurrent use; the pipeline fetches
// sequentially on purpose.
type Worklist struct {
	seen    *bloom.BloomFilter
	queue   []string
	pushed  int
	maxSize int
}

// NewWorklist creates a Worklist that accepts at most maxSize URLs.
// A non-positive maxSize means unbounded.
func NewWorklist(maxSize int) *Worklist {
	return &Worklist{
		seen:    bloom.NewWithEstimates(10_000, 0.001),
		maxSize: maxSize,
	}
}

// Push queues a URL unless it was already queued this run or the cap is
// reached. Fragments are stripped first so URLs differing only by fragment
// count as one page.
func (w *Worklist) Push(url string) bool {
	if idx := strings.IndexByte(url, '#'); idx != -1 {
		url = url[:idx]
	}
	if url == "" {
		return false
	}
	if w.maxSize > 0 && w.pushed >= w.maxSize {
		return false
	}
	if w.seen.TestString(url) {
		return false
	}
	w.seen.AddString(url)
	w.queue = append(w.queue, url)
	w.pushed++
	return true
}

// Pop returns the next URL in push order. The bool result is false when the
// worklist is empty.
func (w *Worklist) Pop() (string, bool) {
	if len(w.queue) == 0 {
		return "", false
	}
	url := w.queue[0]
	w.queue = w.queue[1:]
	return url, true
}

// Len returns the number of queued URLs.
func (w *Worklist) Len() int {
	return len(w.queue)
}
