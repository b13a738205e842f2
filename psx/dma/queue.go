package dma

import "container/heap"

// channelHeap is the active-channel max-heap of spec §3, ordered by
// (-priority, -id) so that equal-priority channels prefer the higher id.
// container/heap is the standard library's heap algorithm; no third-party
// priority-queue implementation in the retrieved pack does anything
// heap.Interface doesn't already provide for a 7-element queue.
type channelHeap []*Channel

func (h channelHeap) Len() int { return len(h) }

func (h channelHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].id > h[j].id
}

func (h channelHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *channelHeap) Push(x any) {
	*h = append(*h, x.(*Channel))
}

func (h *channelHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (e *Engine) pushActive(ch *Channel) {
	heap.Push(&e.queue, ch)
}

func (e *Engine) popActive() *Channel {
	return heap.Pop(&e.queue).(*Channel)
}
