package taskboard

// idAllocator hands out ids shared by every kind of item
type idAllocator struct {
	next int
}

func newIDAllocator() *idAllocator {
	return &idAllocator{next: 1}
}

func (a *idAllocator) nextID() int {
	id := a.next
	a.next++
	return id
}

// reserve moves the counter past an explicitly supplied id
func (a *idAllocator) reserve(id int) {
	if id >= a.next {
		a.next = id + 1
	}
}
