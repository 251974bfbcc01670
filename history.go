package taskboard

const nilHandle = -1

type historyNode struct {
	item       Entity
	prev, next int
}

// history is a recency list of viewed items, one entry per id, newest last.
// Nodes live in an arena and link to each other by index, so any entry can be
// unlinked in O(1) through the id lookup.
type history struct {
	nodes []historyNode
	free  []int
	byID  map[int]int
	head  int
	tail  int
}

func newHistory() *history {
	return &history{
		byID: make(map[int]int),
		head: nilHandle,
		tail: nilHandle,
	}
}

// record moves the item to the tail, keeping a copy of its current value
func (h *history) record(e Entity) {
	id := e.Base().ID
	h.forget(id)

	n := historyNode{item: e.clone(), prev: h.tail, next: nilHandle}
	var handle int
	if len(h.free) > 0 {
		handle = h.free[len(h.free)-1]
		h.free = h.free[:len(h.free)-1]
		h.nodes[handle] = n
	} else {
		handle = len(h.nodes)
		h.nodes = append(h.nodes, n)
	}

	if h.tail != nilHandle {
		h.nodes[h.tail].next = handle
	} else {
		h.head = handle
	}
	h.tail = handle
	h.byID[id] = handle
}

// forget drops the entry for id, if any
func (h *history) forget(id int) {
	handle, ok := h.byID[id]
	if !ok {
		return
	}
	delete(h.byID, id)

	n := h.nodes[handle]
	if n.prev != nilHandle {
		h.nodes[n.prev].next = n.next
	} else {
		h.head = n.next
	}
	if n.next != nilHandle {
		h.nodes[n.next].prev = n.prev
	} else {
		h.tail = n.prev
	}

	h.nodes[handle] = historyNode{prev: nilHandle, next: nilHandle}
	h.free = append(h.free, handle)
}

// snapshot returns the entries oldest first
func (h *history) snapshot() []Entity {
	items := make([]Entity, 0, len(h.byID))
	for handle := h.head; handle != nilHandle; handle = h.nodes[handle].next {
		items = append(items, h.nodes[handle].item.clone())
	}
	return items
}
