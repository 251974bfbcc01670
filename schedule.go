package taskboard

import (
	"math"
	"time"

	"github.com/google/btree"
)

// slot is one scheduled interval [start, end) in the index
type slot struct {
	start time.Time
	end   time.Time
	id    int
	item  Entity
}

// slotLess orders slots by start time, then by id so the order is total
func slotLess(a, b slot) bool {
	if !a.start.Equal(b.start) {
		return a.start.Before(b.start)
	}
	return a.id < b.id
}

// schedule indexes every stored task and subtask that has a start time.
// It keeps its own snapshots, so it must be refreshed whenever an item changes.
type schedule struct {
	tree *btree.BTreeG[slot]
	byID map[int]slot
}

func newSchedule() *schedule {
	return &schedule{
		tree: btree.NewG(8, slotLess),
		byID: make(map[int]slot),
	}
}

// insert adds or refreshes the entry for an entity. Unscheduled entities
// only have their previous entry removed.
func (s *schedule) insert(e Entity) {
	base := e.Base()
	s.remove(base.ID)
	if base.StartTime == nil {
		return
	}

	sl := slot{
		start: *base.StartTime,
		end:   base.StartTime.Add(base.Duration),
		id:    base.ID,
		item:  e.clone(),
	}
	s.tree.ReplaceOrInsert(sl)
	s.byID[base.ID] = sl
}

func (s *schedule) remove(id int) {
	if sl, ok := s.byID[id]; ok {
		s.tree.Delete(sl)
		delete(s.byID, id)
	}
}

// overlaps reports whether [start, start+d) collides with any indexed
// interval other than excludeID's. Intervals that only touch do not collide.
func (s *schedule) overlaps(start *time.Time, d time.Duration, excludeID int) bool {
	if start == nil {
		return false
	}
	end := start.Add(d)

	found := false
	// Only entries starting before the candidate's end can collide
	s.tree.AscendLessThan(slot{start: end, id: math.MinInt}, func(sl slot) bool {
		if sl.id != excludeID && sl.end.After(*start) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ascending returns copies of the indexed items, earliest start first
func (s *schedule) ascending() []Entity {
	items := make([]Entity, 0, s.tree.Len())
	s.tree.Ascend(func(sl slot) bool {
		items = append(items, sl.item.clone())
		return true
	})
	return items
}
